package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/match"
	"github.com/cesargomez89/gameshelf/internal/metadata"
	"github.com/cesargomez89/gameshelf/internal/titlenorm"
)

// Game lookup is an explicit ordered strategy list, iterated until the
// first hit. The final strategy creates a game, so the chain always
// terminates with a game or an error.

type state int

const (
	stateNotFound state = iota
	stateFound
	stateFailed
)

type resolution struct {
	state state
	game  *domain.Game
	err   error
}

func found(g *domain.Game) resolution { return resolution{state: stateFound, game: g} }
func notFound() resolution            { return resolution{state: stateNotFound} }
func failed(err error) resolution     { return resolution{state: stateFailed, err: err} }

type strategy struct {
	name    string
	resolve func(ctx context.Context, in Input, key string) resolution
}

func (r *Resolver) resolveGame(ctx context.Context, in Input, key string) (*domain.Game, error) {
	strategies := []strategy{
		{"exact-key", r.byComparisonKey},
		{"fuzzy-local", r.byLocalFuzzy},
		{"provider-search", r.byProviderSearch},
		{"create", r.byCreate},
	}

	for _, s := range strategies {
		res := s.resolve(ctx, in, key)
		switch res.state {
		case stateFound:
			r.log.Debug("game resolved", "strategy", s.name, "game_id", res.game.ID, "title", in.Title)
			return res.game, nil
		case stateFailed:
			return nil, fmt.Errorf("%s: %w", s.name, res.err)
		}
	}

	return nil, fmt.Errorf("no strategy resolved %q", in.Title)
}

// byComparisonKey matches existing games by exact comparison-key equality
// over a bounded candidate window. First-created wins when duplicates slip
// in; the merge path cleans those up later.
func (r *Resolver) byComparisonKey(_ context.Context, _ Input, key string) resolution {
	games, err := r.db.GamesByComparisonKey(key, constants.GameCandidateLimit)
	if err != nil {
		return failed(err)
	}
	if len(games) == 0 {
		return notFound()
	}
	return found(&games[0])
}

// byLocalFuzzy scores a bounded window of catalog candidates sharing a
// token with the incoming title. Below-threshold is a miss, not an error.
func (r *Resolver) byLocalFuzzy(_ context.Context, in Input, key string) resolution {
	token := strings.Fields(key)[0]

	games, err := r.db.SearchGameCandidates(token, constants.GameCandidateLimit)
	if err != nil {
		return failed(err)
	}
	if len(games) == 0 {
		return notFound()
	}

	byID := make(map[string]*domain.Game, len(games))
	candidates := make([]match.Candidate, 0, len(games))
	for i := range games {
		byID[games[i].ID] = &games[i]
		candidates = append(candidates, match.Candidate{ID: games[i].ID, Title: games[i].Title})
	}

	best, ok := match.BestMatch(in.Title, candidates, constants.TitleMatchThreshold)
	if !ok {
		return notFound()
	}
	return found(byID[best.ID])
}

// byProviderSearch asks the metadata provider for its best hit on the
// cleaned title, then matches or creates a game under the provider's
// canonical title. The provider is best-effort: absent or failing, the
// chain continues with lower match quality.
func (r *Resolver) byProviderSearch(ctx context.Context, in Input, _ string) resolution {
	if r.search == nil {
		return notFound()
	}

	query := titlenorm.CleanForSearch(in.Title)
	hit, err := r.search.SearchBest(ctx, query)
	if err != nil {
		r.log.Warn("metadata search unavailable", "query", query, "error", err)
		return notFound()
	}
	if hit == nil {
		return notFound()
	}

	hitKey := titlenorm.ComparisonKey(hit.Title)
	if hitKey == "" {
		return notFound()
	}

	existing, err := r.db.GamesByComparisonKey(hitKey, constants.GameCandidateLimit)
	if err != nil {
		return failed(err)
	}
	if len(existing) > 0 {
		game := &existing[0]
		r.enrichGame(game, hit)
		return found(game)
	}

	game := &domain.Game{
		ID:               uuid.NewString(),
		Title:            hit.Title,
		ComparisonKey:    hitKey,
		Summary:          hit.Summary,
		Genres:           domain.StringSlice(hit.Genres),
		Developer:        hit.Developer,
		Publisher:        hit.Publisher,
		FirstReleaseYear: hit.FirstReleaseYear,
		CoverURL:         hit.CoverURL,
	}
	if err := r.db.CreateGame(game); err != nil {
		return failed(err)
	}
	return found(game)
}

// byCreate is the terminal strategy: a new game under the best available
// canonical title.
func (r *Resolver) byCreate(_ context.Context, in Input, key string) resolution {
	title := titlenorm.CleanForSearch(in.Title)
	if title == "" {
		title = strings.TrimSpace(in.Title)
	}

	game := &domain.Game{
		ID:            uuid.NewString(),
		Title:         title,
		ComparisonKey: key,
		CoverURL:      in.CoverURL,
	}
	if err := r.db.CreateGame(game); err != nil {
		return failed(err)
	}
	return found(game)
}

// enrichGame opportunistically backfills metadata from a provider hit, and
// adopts the provider's title when it is longer and differs beyond casing.
// Title adoption is enrichment, never a resolution invariant; failures here
// are logged and swallowed.
func (r *Resolver) enrichGame(game *domain.Game, hit *metadata.SearchHit) {
	update := &domain.Game{
		ID:               game.ID,
		Summary:          hit.Summary,
		Genres:           domain.StringSlice(hit.Genres),
		Developer:        hit.Developer,
		Publisher:        hit.Publisher,
		FirstReleaseYear: hit.FirstReleaseYear,
		CoverURL:         hit.CoverURL,
	}
	if err := r.db.UpdateGameMetadata(update); err != nil {
		r.log.Warn("metadata backfill failed", "game_id", game.ID, "error", err)
	}

	if len(hit.Title) > len(game.Title) && !strings.EqualFold(hit.Title, game.Title) {
		hitKey := titlenorm.ComparisonKey(hit.Title)
		if err := r.db.UpdateGameTitle(game.ID, hit.Title, hitKey); err != nil {
			r.log.Warn("title correction failed", "game_id", game.ID, "error", err)
		} else {
			game.Title = hit.Title
			game.ComparisonKey = hitKey
		}
	}
}
