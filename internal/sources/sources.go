// Package sources implements the platform record fetchers a sync job pulls
// from. Each source turns a platform's own API shape into plain
// domain.ExternalRecord values; everything downstream is platform-agnostic.
package sources

import (
	"github.com/cesargomez89/gameshelf/internal/config"
	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/syncer"
)

// FromConfig builds the record sources the configuration has credentials
// for. Sources without credentials are simply absent: enqueueing a sync for
// them fails the job with a clear error instead of a doomed fetch.
func FromConfig(cfg *config.Config) map[domain.Source]syncer.RecordSource {
	out := make(map[domain.Source]syncer.RecordSource)
	if cfg.SteamAPIKey != "" {
		out[domain.SourceSteam] = NewSteamSource(cfg.SteamAPIURL, cfg.SteamAPIKey)
	}
	if cfg.RetroAPIKey != "" {
		out[domain.SourceRetro] = NewRetroSource(cfg.RetroURL, cfg.RetroAPIKey)
	}
	return out
}
