package cache

import (
	"context"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
)

// Returns data, created, error
//
// Concurrent callers for the same key wait for the first caller instead of calling create.
// If create fails the claim is released so the next caller may try again.
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	logger := logging.FromContext(ctx).With("cache", cache.name(), "key", key)

	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logger.DebugContext(ctx, "Cache lookup", "result", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, true, nil
		}

		if result.valid {
			logger.DebugContext(ctx, "Cache lookup", "result", "hit")
			return result.data, false, nil
		}

		logger.DebugContext(ctx, "Waiting for cache")
		cache.wait()
	}
}
