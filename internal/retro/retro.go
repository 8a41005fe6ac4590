// Package retro integrates a retro-achievement catalog-list provider. The
// provider exposes full per-system game lists rather than search, so catalog
// matching happens locally against the fetched list.
package retro

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/httpclient"
)

// Entry is one game in a system catalog.
type Entry struct {
	ID    int64  `json:"ID"`
	Title string `json:"Title"`
}

// CatalogProvider lists all games for a retro system. Lists change rarely;
// implementations are expected to be cacheable for days, and callers treat
// a cache hit and a live fetch identically.
type CatalogProvider interface {
	ListGamesForSystem(ctx context.Context, systemID int) ([]Entry, error)
}

// Client fetches system catalogs from the retro-achievement API.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

var _ CatalogProvider = (*Client)(nil)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.NewClient(nil, constants.DefaultRequestInterval),
	}
}

func (c *Client) ListGamesForSystem(ctx context.Context, systemID int) ([]Entry, error) {
	endpoint := fmt.Sprintf("%s/API_GetGameList.php?%s", c.baseURL, url.Values{
		"i": {strconv.Itoa(systemID)},
		"y": {c.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return entries, nil
}
