package store

import (
	"database/sql"
	"time"

	"github.com/cesargomez89/gameshelf/internal/domain"
)

func (db *DB) CreateSyncJob(job *domain.SyncJob) error {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO sync_jobs (id, user_id, source, status, created_at, updated_at)
		VALUES (:id, :user_id, :source, :status, :created_at, :updated_at)`

	_, err := db.NamedExec(query, job)
	return err
}

func (db *DB) GetSyncJob(id string) (*domain.SyncJob, error) {
	var job domain.SyncJob
	err := db.Get(&job, `SELECT * FROM sync_jobs WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (db *DB) UpdateSyncJobStatus(id string, status domain.JobStatus) error {
	_, err := db.Exec(`UPDATE sync_jobs SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id)
	return err
}

// UpdateSyncJobCounts persists the batch counters onto the job row.
func (db *DB) UpdateSyncJobCounts(job *domain.SyncJob) error {
	job.UpdatedAt = time.Now()

	query := `UPDATE sync_jobs SET
		status = :status,
		processed = :processed,
		imported = :imported,
		mapped_existing = :mapped_existing,
		skipped = :skipped,
		failed = :failed,
		error = :error,
		updated_at = :updated_at
	WHERE id = :id`

	_, err := db.NamedExec(query, job)
	return err
}

func (db *DB) MarkSyncJobFailed(id, errorMsg string) error {
	_, err := db.Exec(`UPDATE sync_jobs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		domain.JobStatusFailed, errorMsg, time.Now(), id)
	return err
}

func (db *DB) ListSyncJobs(limit int) ([]domain.SyncJob, error) {
	var jobs []domain.SyncJob
	err := db.Select(&jobs, `SELECT * FROM sync_jobs ORDER BY created_at DESC LIMIT ?`, limit)
	return jobs, err
}

func (db *DB) ListQueuedSyncJobs() ([]domain.SyncJob, error) {
	var jobs []domain.SyncJob
	err := db.Select(&jobs,
		`SELECT * FROM sync_jobs WHERE status = ? ORDER BY created_at ASC`,
		domain.JobStatusQueued)
	return jobs, err
}

// GetActiveSyncJob returns a queued or running job for (user, source), or nil.
func (db *DB) GetActiveSyncJob(userID string, source domain.Source) (*domain.SyncJob, error) {
	var job domain.SyncJob
	err := db.Get(&job,
		`SELECT * FROM sync_jobs WHERE user_id = ? AND source = ? AND status IN ('queued', 'running') LIMIT 1`,
		userID, source)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ResetStuckJobs re-queues jobs left running by an unclean shutdown.
func (db *DB) ResetStuckJobs() error {
	_, err := db.Exec(`UPDATE sync_jobs SET status = ?, updated_at = ? WHERE status = ?`,
		domain.JobStatusQueued, time.Now(), domain.JobStatusRunning)
	return err
}
