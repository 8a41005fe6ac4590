package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cesargomez89/gameshelf/internal/constants"
	"github.com/cesargomez89/gameshelf/internal/httpclient"
)

const DefaultUserAgent = "gameshelf/1.0 (https://github.com/cesargomez89/gameshelf)"

// Client queries the metadata provider's search endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

var _ SearchProvider = (*Client)(nil)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.NewClient(nil, constants.DefaultRequestInterval),
	}
}

type searchResponse struct {
	Results []SearchHit `json:"results"`
}

// SearchBest returns the provider's top-ranked hit for query, or nil when
// the provider has no match.
func (c *Client) SearchBest(ctx context.Context, query string) (*SearchHit, error) {
	if query == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/games/search?%s", c.baseURL, url.Values{
		"q":     {query},
		"limit": {"1"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("metadata search failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return nil, nil
	}
	hit := parsed.Results[0]
	if hit.Title == "" {
		return nil, nil
	}
	return &hit, nil
}
