// Package metadata integrates an external game metadata search provider.
package metadata

import (
	"context"
)

// SearchHit is the provider's best match for a search query.
type SearchHit struct {
	ExternalTitleID  string   `json:"external_title_id"`
	Title            string   `json:"title"`
	CoverURL         string   `json:"cover_url,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	Genres           []string `json:"genres,omitempty"`
	Developer        string   `json:"developer,omitempty"`
	Publisher        string   `json:"publisher,omitempty"`
	FirstReleaseYear int      `json:"first_release_year,omitempty"`
}

// SearchProvider searches the provider's catalog and returns its best match,
// or nil when nothing matches. The provider's own ranking is trusted; no
// additional threshold is applied.
type SearchProvider interface {
	SearchBest(ctx context.Context, query string) (*SearchHit, error)
}
