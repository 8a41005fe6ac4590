package retro

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// Cache is the minimal cache surface the decorator needs.
type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
}

// CachedProvider caches whole system catalogs. Lists run to thousands of
// entries but change on the order of days, so one fetch serves many syncs.
type CachedProvider struct {
	provider CatalogProvider
	cache    Cache
	ttl      time.Duration
}

var _ CatalogProvider = (*CachedProvider)(nil)

func NewCachedProvider(provider CatalogProvider, cache Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

func (c *CachedProvider) ListGamesForSystem(ctx context.Context, systemID int) ([]Entry, error) {
	cacheKey := "retro:catalog:" + strconv.Itoa(systemID)

	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var cached []Entry
		if unmarshalErr := json.Unmarshal(data, &cached); unmarshalErr == nil {
			return cached, nil
		}
	}

	entries, err := c.provider.ListGamesForSystem(ctx, systemID)
	if err != nil {
		return nil, err
	}

	if encoded, marshalErr := json.Marshal(entries); marshalErr == nil {
		_ = c.cache.SetCache(cacheKey, encoded, c.ttl)
	}

	return entries, nil
}
