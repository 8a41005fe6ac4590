package domain

import "time"

type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// SyncJob tracks one batch sync run for a (user, source) pair.
type SyncJob struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Source         Source    `json:"source" db:"source"`
	Status         JobStatus `json:"status" db:"status"`
	Processed      int       `json:"processed" db:"processed"`
	Imported       int       `json:"imported" db:"imported"`
	MappedExisting int       `json:"mapped_existing" db:"mapped_existing"`
	Skipped        int       `json:"skipped" db:"skipped"`
	Failed         int       `json:"failed" db:"failed"`
	Error          string    `json:"error,omitempty" db:"error"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
