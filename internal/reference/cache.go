package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 3600 * time.Second

const refreshKey = "reference"

type Fetcher interface {
	FetchCharacters(ctx context.Context) ([]domain.Character, error)
	FetchShips(ctx context.Context) ([]domain.Ship, error)
	FetchAbilities(ctx context.Context) ([]domain.Ability, error)
	FetchGear(ctx context.Context) ([]domain.Gear, error)
}

// Snapshot is one consistent generation of the reference data. Never mutated after install.
type Snapshot struct {
	Characters  Collection[domain.Character]
	Ships       Collection[domain.Ship]
	Abilities   Collection[domain.Ability]
	Gear        Collection[domain.Gear]
	RefreshedAt time.Time
}

type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	nowFunc func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot

	flight singleflight.Group

	tracer  trace.Tracer
	metrics cacheMetricsCollection
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

func WithNowFunc(nowFunc func() time.Time) Option {
	return func(c *Cache) {
		c.nowFunc = nowFunc
	}
}

func New(fetcher Fetcher, opts ...Option) (*Cache, error) {
	meter := otel.Meter("reference/cache")
	metrics, err := setupCacheMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	c := &Cache{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		nowFunc: time.Now,

		tracer:  otel.Tracer("reference/cache"),
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Cache) current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Cache) install(snapshot *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
}

func (c *Cache) expired(snapshot *Snapshot) bool {
	return c.nowFunc().Sub(snapshot.RefreshedAt) > c.ttl
}

// EnsureFresh returns a snapshot no older than the TTL, fetching a new one when needed.
//
// If the refresh fails and an older snapshot exists, the older snapshot is returned
// together with a *FetchError wrapping ErrStale. Without an older snapshot the
// returned snapshot is nil.
func (c *Cache) EnsureFresh(ctx context.Context) (*Snapshot, error) {
	if snapshot := c.current(); snapshot != nil && !c.expired(snapshot) {
		return snapshot, nil
	}

	result, err, shared := c.flight.Do(refreshKey, func() (any, error) {
		// Another caller may have installed a fresh snapshot while we were waiting to get here
		if snapshot := c.current(); snapshot != nil && !c.expired(snapshot) {
			return snapshot, nil
		}
		return c.refresh(context.WithoutCancel(ctx))
	})
	if shared {
		logging.FromContext(ctx).DebugContext(ctx, "Joined in-flight reference refresh")
	}
	if err == nil {
		snapshot, ok := result.(*Snapshot)
		if !ok {
			return nil, fmt.Errorf("unexpected refresh result type %T", result)
		}
		return snapshot, nil
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = &FetchError{Err: err}
	}

	stale := c.current()
	if stale == nil {
		return nil, fetchErr
	}

	c.metrics.staleReads.Add(ctx, 1)
	return stale, fetchErr.asStale()
}

func (c *Cache) refresh(ctx context.Context) (*Snapshot, error) {
	ctx, span := c.tracer.Start(ctx, "reference.refresh")
	defer span.End()

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "Refreshing reference data")

	start := time.Now()

	var (
		characters []domain.Character
		ships      []domain.Ship
		abilities  []domain.Ability
		gear       []domain.Gear
	)
	errs := make([]error, len(allKinds))

	var g errgroup.Group
	g.Go(func() error {
		var err error
		characters, err = c.fetcher.FetchCharacters(ctx)
		errs[Characters] = err
		return err
	})
	g.Go(func() error {
		var err error
		ships, err = c.fetcher.FetchShips(ctx)
		errs[Ships] = err
		return err
	})
	g.Go(func() error {
		var err error
		abilities, err = c.fetcher.FetchAbilities(ctx)
		errs[Abilities] = err
		return err
	})
	g.Go(func() error {
		var err error
		gear, err = c.fetcher.FetchGear(ctx)
		errs[Gear] = err
		return err
	})
	// Every per-kind error is inspected below
	_ = g.Wait()

	duration := time.Since(start)

	var failed []Kind
	var joined error
	for _, kind := range allKinds {
		if errs[kind] == nil {
			continue
		}
		failed = append(failed, kind)
		joined = errors.Join(joined, fmt.Errorf("%s: %w", kind, errs[kind]))
	}

	if len(failed) > 0 {
		c.metrics.refreshCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", false)))
		c.metrics.refreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", false)))

		err := &FetchError{Kinds: failed, Err: joined}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to refresh reference data")
		logger.ErrorContext(ctx, "Failed to refresh reference data", "error", err.Error(), "duration", duration.String())
		return nil, err
	}

	snapshot := &Snapshot{
		Characters:  NewCollection(characters, func(character domain.Character) string { return character.BaseID }),
		Ships:       NewCollection(ships, func(ship domain.Ship) string { return ship.BaseID }),
		Abilities:   NewCollection(abilities, func(ability domain.Ability) string { return ability.BaseID }),
		Gear:        NewCollection(gear, func(item domain.Gear) string { return item.BaseID }),
		RefreshedAt: c.nowFunc(),
	}
	c.install(snapshot)

	c.metrics.refreshCount.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", true)))
	c.metrics.refreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", true)))
	span.SetAttributes(
		attribute.Int("reference.characters", snapshot.Characters.Len()),
		attribute.Int("reference.ships", snapshot.Ships.Len()),
		attribute.Int("reference.abilities", snapshot.Abilities.Len()),
		attribute.Int("reference.gear", snapshot.Gear.Len()),
	)

	logger.InfoContext(
		ctx,
		"Refreshed reference data",
		slog.Int("characters", snapshot.Characters.Len()),
		slog.Int("ships", snapshot.Ships.Len()),
		slog.Int("abilities", snapshot.Abilities.Len()),
		slog.Int("gear", snapshot.Gear.Len()),
		slog.String("duration", duration.String()),
	)

	return snapshot, nil
}

// The lookups return (zero, false, nil) for unknown ids. When serving stale data the
// record is returned together with the stale error.

func (c *Cache) Character(ctx context.Context, baseID string) (domain.Character, bool, error) {
	return lookup(ctx, c, baseID, func(s *Snapshot) Collection[domain.Character] { return s.Characters })
}

func (c *Cache) Ship(ctx context.Context, baseID string) (domain.Ship, bool, error) {
	return lookup(ctx, c, baseID, func(s *Snapshot) Collection[domain.Ship] { return s.Ships })
}

func (c *Cache) Ability(ctx context.Context, baseID string) (domain.Ability, bool, error) {
	return lookup(ctx, c, baseID, func(s *Snapshot) Collection[domain.Ability] { return s.Abilities })
}

func (c *Cache) Gear(ctx context.Context, baseID string) (domain.Gear, bool, error) {
	return lookup(ctx, c, baseID, func(s *Snapshot) Collection[domain.Gear] { return s.Gear })
}

func lookup[T any](ctx context.Context, c *Cache, id string, pick func(*Snapshot) Collection[T]) (T, bool, error) {
	snapshot, err := c.EnsureFresh(ctx)
	if snapshot == nil {
		var zero T
		return zero, false, err
	}

	record, ok := pick(snapshot).Get(id)
	return record, ok, err
}

type cacheMetricsCollection struct {
	refreshCount    metric.Int64Counter
	refreshDuration metric.Float64Histogram
	staleReads      metric.Int64Counter
}

func setupCacheMetrics(meter metric.Meter) (cacheMetricsCollection, error) {
	refreshCount, err := meter.Int64Counter("reference/cache/refreshes")
	if err != nil {
		return cacheMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	refreshDuration, err := meter.Float64Histogram(
		"reference/cache/refresh_duration",
		metric.WithUnit("s"),
	)
	if err != nil {
		return cacheMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	staleReads, err := meter.Int64Counter("reference/cache/stale_reads")
	if err != nil {
		return cacheMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return cacheMetricsCollection{
		refreshCount:    refreshCount,
		refreshDuration: refreshDuration,
		staleReads:      staleReads,
	}, nil
}
