package swgohgg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const cacheKeyPrefix = "swgohgg:cache:"

// ResponseStore persists raw response bodies between runs
type ResponseStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the redis instance at redisURL. The returned function closes the client.
func NewRedisStore(ctx context.Context, redisURL string) (ResponseStore, func() error, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logging.FromContext(ctx).DebugContext(ctx, "Connected to redis", "addr", opt.Addr, "db", opt.DB)

	return redisStore{client: client}, client.Close, nil
}

func (r redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return data, true, nil
}

func (r redisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

type cachedAPI struct {
	api   API
	store ResponseStore

	referenceTTL time.Duration
	responseTTL  time.Duration

	metrics cacheMetricsCollection
}

// NewCachedAPI serves successful responses from store when present and stores fresh ones.
// Reference endpoints are kept for referenceTTL, everything else for responseTTL.
// Store failures are logged and the request falls through to api.
func NewCachedAPI(api API, store ResponseStore, referenceTTL, responseTTL time.Duration) (API, error) {
	meter := otel.Meter("swgohgg/cache")
	metrics, err := setupCacheMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return cachedAPI{
		api:          api,
		store:        store,
		referenceTTL: referenceTTL,
		responseTTL:  responseTTL,
		metrics:      metrics,
	}, nil
}

func isReferencePath(path string) bool {
	switch path {
	case charactersPath, shipsPath, abilitiesPath, gearPath:
		return true
	}
	return false
}

func (c cachedAPI) ttlFor(path string) time.Duration {
	if isReferencePath(path) {
		return c.referenceTTL
	}
	return c.responseTTL
}

func (c cachedAPI) Get(ctx context.Context, path string) ([]byte, int, error) {
	logger := logging.FromContext(ctx).With("path", path)
	key := cacheKeyPrefix + path

	data, hit, err := c.store.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Failed to read cached response", "error", err.Error())
	} else if hit {
		c.metrics.lookupCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", true)))
		logger.DebugContext(ctx, "Serving cached response")
		return data, http.StatusOK, nil
	}
	c.metrics.lookupCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", false)))

	data, statusCode, err := c.api.Get(ctx, path)
	if err != nil {
		return data, statusCode, err
	}

	if statusCode == http.StatusOK {
		if err := c.store.Set(ctx, key, data, c.ttlFor(path)); err != nil {
			logger.WarnContext(ctx, "Failed to store response", "error", err.Error())
		}
	}

	return data, statusCode, nil
}

type cacheMetricsCollection struct {
	lookupCount metric.Int64Counter
}

func setupCacheMetrics(meter metric.Meter) (cacheMetricsCollection, error) {
	lookupCount, err := meter.Int64Counter("swgohgg/cache/lookups")
	if err != nil {
		return cacheMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return cacheMetricsCollection{
		lookupCount: lookupCount,
	}, nil
}
