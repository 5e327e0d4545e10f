package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/minus3theta/bitris-commands/pkg/cache"
	"github.com/minus3theta/bitris-commands/pkg/observability"
)

// Cache key types reported through the observability hooks.
const (
	keyTypeCount    = "count"
	keyTypePossible = "possible"
)

// cacheLookup loads the JSON value stored under key into out. Transient
// backend failures retry with backoff; a failed lookup degrades to a miss so
// solves never fail on cache trouble.
func cacheLookup(ctx context.Context, backend cache.Cache, key, keyType string, out any) bool {
	var (
		data []byte
		ok   bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, ok, err = backend.Get(ctx, key)
		return err
	})
	if err != nil {
		loggerFromContext(ctx).Warnf("Cache read failed, solving fresh: %v", err)
		return false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// cacheStore writes value as JSON under key. Failures log and are otherwise
// ignored; the solve result is already in hand.
func cacheStore(ctx context.Context, backend cache.Cache, key, keyType string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return backend.Set(ctx, key, data, ttl)
	})
	if err != nil {
		loggerFromContext(ctx).Warnf("Cache write failed: %v", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
