package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/httpclient"
	"github.com/cesargomez89/gameshelf/internal/syncer"
)

// SteamSource fetches a user's owned games from the Steam Web API. The
// user id is the 64-bit steamid.
type SteamSource struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

var _ syncer.RecordSource = (*SteamSource)(nil)

func NewSteamSource(baseURL, apiKey string) *SteamSource {
	return &SteamSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.NewClient(nil, constants.DefaultRequestInterval),
	}
}

type steamOwnedGamesResponse struct {
	Response struct {
		Games []struct {
			AppID int64  `json:"appid"`
			Name  string `json:"name"`
		} `json:"games"`
	} `json:"response"`
}

func (s *SteamSource) FetchRecords(ctx context.Context, userID string) ([]domain.ExternalRecord, error) {
	endpoint := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?%s", s.baseURL, url.Values{
		"key":             {s.apiKey},
		"steamid":         {userID},
		"include_appinfo": {"1"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build steam request: %w", err)
	}

	resp, err := s.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("steam owned games failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam owned games returned status %d", resp.StatusCode)
	}

	var parsed steamOwnedGamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode steam response: %w", err)
	}

	records := make([]domain.ExternalRecord, 0, len(parsed.Response.Games))
	for _, g := range parsed.Response.Games {
		appID := strconv.FormatInt(g.AppID, 10)
		records = append(records, domain.ExternalRecord{
			Source:        domain.SourceSteam,
			ExternalID:    appID,
			Title:         g.Name,
			Platform:      domain.PlatformSteam,
			PlatformLabel: "Steam",
			CoverURL:      fmt.Sprintf("https://steamcdn-a.akamaihd.net/steam/apps/%s/header.jpg", appID),
		})
	}
	return records, nil
}
