package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/httpclient"
	"github.com/cesargomez89/gameshelf/internal/syncer"
)

// RetroSource fetches a user's played games and achievement counts from the
// RetroAchievements API. The user id is the RetroAchievements username.
type RetroSource struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

var _ syncer.RecordSource = (*RetroSource)(nil)

func NewRetroSource(baseURL, apiKey string) *RetroSource {
	return &RetroSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.NewClient(nil, constants.DefaultRequestInterval),
	}
}

type retroCompletedGame struct {
	GameID      int64  `json:"GameID"`
	Title       string `json:"Title"`
	ImageIcon   string `json:"ImageIcon"`
	ConsoleID   int    `json:"ConsoleID"`
	ConsoleName string `json:"ConsoleName"`
	NumAwarded  int    `json:"NumAwarded"`
	MaxPossible int    `json:"MaxPossible"`
}

func (s *RetroSource) FetchRecords(ctx context.Context, userID string) ([]domain.ExternalRecord, error) {
	endpoint := fmt.Sprintf("%s/API_GetUserCompletedGames.php?%s", s.baseURL, url.Values{
		"u": {userID},
		"y": {s.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build retroachievements request: %w", err)
	}

	resp, err := s.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("retroachievements fetch failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retroachievements returned status %d", resp.StatusCode)
	}

	var parsed []retroCompletedGame
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode retroachievements response: %w", err)
	}

	records := make([]domain.ExternalRecord, 0, len(parsed))
	for _, g := range parsed {
		var coverURL string
		if g.ImageIcon != "" {
			coverURL = "https://media.retroachievements.org" + g.ImageIcon
		}
		records = append(records, domain.ExternalRecord{
			Source:        domain.SourceRetro,
			ExternalID:    strconv.FormatInt(g.GameID, 10),
			Title:         g.Title,
			Platform:      consolePlatform(g.ConsoleName),
			PlatformLabel: g.ConsoleName,
			CoverURL:      coverURL,
			Earned:        g.NumAwarded,
			Total:         g.MaxPossible,
			HasProgress:   g.MaxPossible > 0,
			SystemID:      g.ConsoleID,
		})
	}
	return records, nil
}

// consolePlatform maps a console name to its platform key, e.g.
// "SNES/Super Famicom" -> "ra-snes-super-famicom".
func consolePlatform(consoleName string) domain.Platform {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, consoleName)
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return domain.Platform("ra-" + slug)
}
