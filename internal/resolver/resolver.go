// Package resolver implements catalog identity resolution: every external
// record maps to exactly one Game and one Release, under concurrent and
// retryable sync execution. Coordination is optimistic; the two database
// unique constraints (releases(platform, game_id) and
// external_ids(source, external_id)) are the only synchronization.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/logger"
	"github.com/cesargomez89/gameshelf/internal/match"
	"github.com/cesargomez89/gameshelf/internal/metadata"
	"github.com/cesargomez89/gameshelf/internal/retro"
	"github.com/cesargomez89/gameshelf/internal/store"
	"github.com/cesargomez89/gameshelf/internal/titlenorm"
)

var (
	// ErrNoUsableTitle rejects records whose title normalizes to nothing.
	// Not retried; the record is skipped.
	ErrNoUsableTitle = errors.New("no usable title")

	// ErrNoConfidentMatch reports that catalog matching scored below
	// threshold. A normal outcome, not a failure: the record stays
	// unresolved until a later sync pass has more catalog data.
	ErrNoConfidentMatch = errors.New("no confident catalog match")
)

// Input is one external record to resolve.
type Input struct {
	Source        domain.Source
	ExternalID    string
	Title         string
	Platform      domain.Platform
	PlatformLabel string
	CoverURL      string
}

// Result reports the canonical identity an input resolved to.
type Result struct {
	GameID    string
	ReleaseID string
	// Created is true when this call created the Release (as opposed to
	// linking an existing one).
	Created bool
}

// Resolver holds its collaborators explicitly; it has no package-level
// state. The search and catalog providers are optional: resolution works
// without them, with lower match quality.
type Resolver struct {
	db      *store.DB
	search  metadata.SearchProvider
	catalog retro.CatalogProvider
	log     *logger.Logger
}

// Config carries the optional collaborators for New.
type Config struct {
	Search  metadata.SearchProvider
	Catalog retro.CatalogProvider
	Logger  *logger.Logger
}

func New(db *store.DB, cfg Config) *Resolver {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Resolver{
		db:      db,
		search:  cfg.Search,
		catalog: cfg.Catalog,
		log:     log.WithComponent("resolver"),
	}
}

// ResolveOrCreate maps an external record to a (Game, Release) pair,
// creating the minimum necessary rows. The mapping lookup always runs
// first; skipping it is the primary cause of duplicate creation. Races
// with concurrent writers are absorbed, never surfaced.
func (r *Resolver) ResolveOrCreate(ctx context.Context, in Input) (*Result, error) {
	if !in.Source.Valid() {
		return nil, fmt.Errorf("unknown source %q", in.Source)
	}
	if !in.Platform.Valid() {
		return nil, fmt.Errorf("unknown platform %q", in.Platform)
	}

	if res, err := r.resolveByMapping(in); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}

	key := titlenorm.ComparisonKey(in.Title)
	if key == "" {
		return nil, ErrNoUsableTitle
	}

	game, err := r.resolveGame(ctx, in, key)
	if err != nil {
		return nil, err
	}

	release, created, err := r.resolveRelease(in, game)
	if err != nil {
		return nil, err
	}

	if in.ExternalID != "" {
		mapping := &domain.ExternalIDMapping{
			ReleaseID:  release.ID,
			Source:     in.Source,
			ExternalID: in.ExternalID,
		}
		if err := r.db.UpsertExternalID(mapping); err != nil {
			return nil, err
		}

		// Consistency check: re-read the authoritative mapping. If a
		// racing writer's mapping won, fold our release into theirs and
		// answer with the mapping's release.
		current, err := r.db.GetExternalID(in.Source, in.ExternalID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.ReleaseID != release.ID {
			if err := r.Merge(ctx, current.ReleaseID, release.ID); err != nil {
				return nil, err
			}
			winner, err := r.db.GetReleaseByID(current.ReleaseID)
			if err != nil {
				return nil, err
			}
			if winner == nil {
				return nil, fmt.Errorf("release %s missing after merge", current.ReleaseID)
			}
			return &Result{GameID: winner.GameID, ReleaseID: winner.ID}, nil
		}
	}

	return &Result{GameID: game.ID, ReleaseID: release.ID, Created: created}, nil
}

// ResolveRetro resolves a record from a retro-achievement system. The
// record's title is matched against the system's catalog list first; a
// confident match supplies the canonical title (and external id, when the
// record carries none). Below-threshold matches return ErrNoConfidentMatch.
func (r *Resolver) ResolveRetro(ctx context.Context, in Input, systemID int) (*Result, error) {
	// Already-mapped records never re-enter catalog matching.
	if res, err := r.resolveByMapping(in); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}

	if r.catalog != nil {
		entries, err := r.catalog.ListGamesForSystem(ctx, systemID)
		if err != nil {
			return nil, fmt.Errorf("catalog list for system %d: %w", systemID, err)
		}

		candidates := make([]match.Candidate, 0, len(entries))
		for _, e := range entries {
			candidates = append(candidates, match.Candidate{
				ID:    strconv.FormatInt(e.ID, 10),
				Title: e.Title,
			})
		}

		best, ok := match.BestMatch(in.Title, candidates, constants.TitleMatchThreshold)
		if !ok {
			return nil, ErrNoConfidentMatch
		}
		in.Title = best.Title
		if in.ExternalID == "" {
			in.ExternalID = best.ID
		}
	}

	return r.ResolveOrCreate(ctx, in)
}

// resolveByMapping is the fast authoritative path: at most one mapping
// exists per (source, external id), so the answer is never ambiguous.
func (r *Resolver) resolveByMapping(in Input) (*Result, error) {
	if in.ExternalID == "" {
		return nil, nil
	}
	mapping, err := r.db.GetExternalID(in.Source, in.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("mapping lookup: %w", err)
	}
	if mapping == nil {
		return nil, nil
	}
	release, err := r.db.GetReleaseByID(mapping.ReleaseID)
	if err != nil {
		return nil, err
	}
	if release == nil {
		// Dangling mapping: its release is gone, which normal operation
		// never produces. Clear it so the upsert path can re-link, then
		// fall through to title resolution.
		r.log.Warn("clearing dangling mapping", "source", in.Source, "external_id", in.ExternalID, "release_id", mapping.ReleaseID)
		if err := r.db.DeleteMapping(in.Source, in.ExternalID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &Result{GameID: release.GameID, ReleaseID: release.ID}, nil
}

// resolveRelease finds or creates the release for (platform, game). A
// unique violation on create means a concurrent writer won; the existing
// row is re-read and used. That is the expected outcome under concurrent
// syncs, silent to the caller.
func (r *Resolver) resolveRelease(in Input, game *domain.Game) (*domain.Release, bool, error) {
	existing, err := r.db.GetReleaseByGameAndPlatform(game.ID, in.Platform)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		// Cover backfill for releases created before their source sent one.
		if existing.CoverURL == "" && in.CoverURL != "" {
			if err := r.db.UpdateReleaseCover(existing.ID, in.CoverURL); err != nil {
				r.log.Warn("cover backfill failed", "release_id", existing.ID, "error", err)
			}
		}
		return existing, false, nil
	}

	coverURL := in.CoverURL
	if coverURL == "" {
		coverURL = game.CoverURL
	}

	release := &domain.Release{
		ID:            uuid.NewString(),
		GameID:        game.ID,
		Platform:      in.Platform,
		DisplayTitle:  strings.TrimSpace(in.Title),
		CoverURL:      coverURL,
		PlatformLabel: in.PlatformLabel,
	}

	if err := r.db.CreateRelease(release); err != nil {
		if store.IsUniqueViolation(err) {
			winner, reErr := r.db.GetReleaseByGameAndPlatform(game.ID, in.Platform)
			if reErr != nil {
				return nil, false, reErr
			}
			if winner == nil {
				return nil, false, fmt.Errorf("release for game %s on %s vanished after conflict: %w", game.ID, in.Platform, err)
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	return release, true, nil
}
