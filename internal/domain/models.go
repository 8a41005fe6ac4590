package domain

import (
	"time"
)

// Source identifies an external data provider.
type Source string

const (
	SourceSteam Source = "steam"
	SourcePSN   Source = "psn"
	SourceXbox  Source = "xbox"
	SourceRetro Source = "ra"
)

// Valid reports whether the source is a known provider.
func (s Source) Valid() bool {
	switch s {
	case SourceSteam, SourcePSN, SourceXbox, SourceRetro:
		return true
	}
	return false
}

// Platform is the platform key a Release belongs to. Retro platforms are
// system-specific keys of the form "ra-<system>" (e.g. "ra-snes").
type Platform string

const (
	PlatformSteam Platform = "steam"
	PlatformPSN   Platform = "psn"
	PlatformXbox  Platform = "xbox"
)

// Valid reports whether the platform key is usable.
func (p Platform) Valid() bool {
	if p == PlatformSteam || p == PlatformPSN || p == PlatformXbox {
		return true
	}
	return len(p) > 3 && p[:3] == "ra-"
}

// Game is the canonical, platform-independent title entity.
type Game struct {
	ID               string      `json:"id" db:"id"`
	Title            string      `json:"title" db:"title"`
	ComparisonKey    string      `json:"-" db:"comparison_key"`
	Summary          string      `json:"summary,omitempty" db:"summary"`
	Genres           StringSlice `json:"genres,omitempty" db:"genres"`
	Developer        string      `json:"developer,omitempty" db:"developer"`
	Publisher        string      `json:"publisher,omitempty" db:"publisher"`
	FirstReleaseYear int         `json:"first_release_year,omitempty" db:"first_release_year"`
	CoverURL         string      `json:"cover_url,omitempty" db:"cover_url"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// Release is a platform-specific edition of a Game. At most one Release
// exists per (platform, game_id) pair.
type Release struct {
	ID            string    `json:"id" db:"id"`
	GameID        string    `json:"game_id" db:"game_id"`
	Platform      Platform  `json:"platform" db:"platform"`
	DisplayTitle  string    `json:"display_title" db:"display_title"`
	CoverURL      string    `json:"cover_url,omitempty" db:"cover_url"`
	PlatformLabel string    `json:"platform_label,omitempty" db:"platform_label"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ExternalIDMapping links one (source, external id) pair to one Release.
// It is an index, not a data record: at most one row per (source, external id).
type ExternalIDMapping struct {
	ReleaseID  string `json:"release_id" db:"release_id"`
	Source     Source `json:"source" db:"source"`
	ExternalID string `json:"external_id" db:"external_id"`
}

// OwnedGame is a user's ownership entry for a Release.
type OwnedGame struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ReleaseID string    `json:"release_id" db:"release_id"`
	Source    Source    `json:"source" db:"source"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
}

// ProgressEntry is a per-user cached progress/trophy/achievement summary
// for a Release.
type ProgressEntry struct {
	UserID    string    `json:"user_id" db:"user_id"`
	ReleaseID string    `json:"release_id" db:"release_id"`
	Source    Source    `json:"source" db:"source"`
	Earned    int       `json:"earned" db:"earned"`
	Total     int       `json:"total" db:"total"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReleaseStats is single-row-per-release auxiliary state (aggregate counts
// refreshed opportunistically). On merge the loser's row is dropped and the
// winner's row, if present, stays authoritative.
type ReleaseStats struct {
	ReleaseID    string    `json:"release_id" db:"release_id"`
	OwnerCount   int       `json:"owner_count" db:"owner_count"`
	LastSyncedAt time.Time `json:"last_synced_at" db:"last_synced_at"`
}

// ExternalRecord is one raw ownership/progress record reported by a platform
// source for a user.
type ExternalRecord struct {
	Source        Source
	ExternalID    string
	Title         string
	Platform      Platform
	PlatformLabel string
	CoverURL      string
	Earned        int
	Total         int
	HasProgress   bool
	// SystemID is the retro-achievement system the record belongs to;
	// zero for non-retro sources.
	SystemID int
}
