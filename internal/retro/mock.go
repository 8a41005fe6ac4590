package retro

import (
	"context"
)

// MockProvider serves fixed catalogs keyed by system id.
type MockProvider struct {
	Catalogs map[int][]Entry
	Calls    int
}

var _ CatalogProvider = (*MockProvider)(nil)

func NewMockProvider() *MockProvider {
	return &MockProvider{Catalogs: make(map[int][]Entry)}
}

func (p *MockProvider) ListGamesForSystem(ctx context.Context, systemID int) ([]Entry, error) {
	p.Calls++
	return p.Catalogs[systemID], nil
}
