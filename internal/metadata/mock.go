package metadata

import (
	"context"
	"strings"
)

// MockProvider is a fixture-backed SearchProvider for tests and local
// development. Titles map to canned hits; unknown queries return nil.
type MockProvider struct {
	Hits  map[string]*SearchHit
	Calls []string
}

var _ SearchProvider = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{Hits: make(map[string]*SearchHit)}
}

func (p *MockProvider) Add(query string, hit *SearchHit) {
	p.Hits[strings.ToLower(query)] = hit
}

func (p *MockProvider) SearchBest(ctx context.Context, query string) (*SearchHit, error) {
	p.Calls = append(p.Calls, query)
	return p.Hits[strings.ToLower(query)], nil
}
