package metadata

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the minimal cache surface the decorator needs.
type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
}

// CachedProvider decorates a SearchProvider with a durable cache so repeat
// searches for the same cleaned title skip the network. Misses are cached
// too: a title the provider does not know stays unknown until the entry
// expires.
type CachedProvider struct {
	provider SearchProvider
	cache    Cache
	ttl      time.Duration
}

var _ SearchProvider = (*CachedProvider)(nil)

func NewCachedProvider(provider SearchProvider, cache Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

type cachedHit struct {
	Hit      *SearchHit `json:"hit"`
	NotFound bool       `json:"not_found"`
}

func (c *CachedProvider) SearchBest(ctx context.Context, query string) (*SearchHit, error) {
	cacheKey := "metadata:search:" + query

	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var cached cachedHit
		if unmarshalErr := json.Unmarshal(data, &cached); unmarshalErr == nil {
			return cached.Hit, nil
		}
	}

	hit, err := c.provider.SearchBest(ctx, query)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(cachedHit{Hit: hit, NotFound: hit == nil})
	if err == nil {
		_ = c.cache.SetCache(cacheKey, encoded, c.ttl)
	}

	return hit, nil
}
