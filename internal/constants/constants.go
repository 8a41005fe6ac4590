// Package constants defines application-wide default values
package constants

import "time"

// Server defaults
const (
	DefaultPort   = "8080"
	DefaultDBPath = "gameshelf.db"
)

// Metadata provider defaults
const (
	DefaultMetadataURL = "https://metadata.gameshelf.dev/v1"
	DefaultRetroURL    = "https://retroachievements.org/API"
	DefaultSteamAPIURL = "https://api.steampowered.com"
)

// HTTP client behavior
const (
	DefaultRetryCount      = 3
	DefaultRetryBase       = 500 * time.Millisecond
	DefaultRequestInterval = 250 * time.Millisecond
)

// Cache TTLs
const (
	MetadataCacheTTL     = 24 * time.Hour
	RetroCatalogCacheTTL = 72 * time.Hour
)

// Matching
const (
	// TitleMatchThreshold is the minimum token-overlap score for accepting
	// a fuzzy title match, both against local catalog candidates and
	// against retro-achievement system catalogs.
	TitleMatchThreshold = 0.72

	// GameCandidateLimit bounds candidate queries against the games table so
	// title matching never degrades into a full scan.
	GameCandidateLimit = 50
)

// Worker behavior
const (
	WorkerPollInterval  = 2 * time.Second
	WorkerMaxConcurrent = 2
)
