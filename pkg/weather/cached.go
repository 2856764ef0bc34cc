package weather

import (
	"context"
	"fmt"
	"time"
)

// ConditionCache is the subset of the cache layer this package needs.
type ConditionCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// CachedProvider memoizes condition lookups per rounded coordinate cell so
// that concurrent estimates in the same area do not stampede the upstream
// provider. Cache failures degrade to a direct lookup.
type CachedProvider struct {
	provider Provider
	cache    ConditionCache
	ttl      time.Duration
}

func NewCachedProvider(provider Provider, cache ConditionCache, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

func (c *CachedProvider) GetCondition(ctx context.Context, latitude, longitude float64) (Condition, error) {
	key := cacheKey(latitude, longitude)

	if c.cache != nil {
		var cached string
		if err := c.cache.Get(ctx, key, &cached); err == nil && cached != "" {
			return cached, nil
		}
	}

	condition, err := c.provider.GetCondition(ctx, latitude, longitude)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		// Best effort; a write failure must not fail the lookup.
		_ = c.cache.Set(ctx, key, condition, c.ttl)
	}

	return condition, nil
}

// cacheKey buckets coordinates to two decimal places, roughly a 1 km cell.
func cacheKey(latitude, longitude float64) string {
	return fmt.Sprintf("weather:%.2f:%.2f", latitude, longitude)
}
