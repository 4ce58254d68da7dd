package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

// DefaultTTL is how long a fetched value stays in the store.
const DefaultTTL = 60 * time.Second

// Operation fetches and transforms a value on a cache miss.
type Operation[V any] func(ctx context.Context) (V, error)

type Cache struct {
	store   Store
	ttl     time.Duration
	logger  *zap.Logger
	metrics *Metrics
}

type Option func(*Cache)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithTTL overrides DefaultTTL for every key of this Cache. Redis keeps
// whole seconds, so the TTL is never below one second.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		ttl:    DefaultTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ttl < time.Second {
		c.ttl = time.Second
	}
	return c
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Fetch returns the value stored under key, or runs op and stores its result
// for the cache TTL.
//
// Upstream failures come back as an Err result with a nil error and leave the
// store untouched. The returned error is only set when the store lookup
// itself fails.
//
// Concurrent misses on the same key are not coalesced: each caller runs op
// and writes, and the last write wins.
func Fetch[V any](ctx context.Context, c *Cache, key string, op Operation[V]) (mo.Result[V], error) {
	log := c.logger.With(zap.String("key", key))

	cached, err := c.store.Get(ctx, key)
	if err != nil {
		c.metrics.storeError()
		err = fmt.Errorf("cache lookup %s: %w", key, err)
		return mo.Err[V](err), err
	}

	if raw, ok := cached.Get(); ok {
		var v V
		err := json.Unmarshal([]byte(raw), &v)
		if err == nil {
			c.metrics.hit()
			log.Debug("cache hit")
			return mo.Ok(v), nil
		}
		log.Warn("undecodable cache entry, refetching", zap.Error(err))
	}

	c.metrics.miss()
	v, err := op(ctx)
	if err != nil {
		c.metrics.upstreamError()
		log.Warn("upstream fetch failed", zap.Error(err))
		return mo.Err[V](err), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.metrics.upstreamError()
		log.Warn("fetched value is not serializable", zap.Error(err))
		return mo.Err[V](fmt.Errorf("encode %s: %w", key, err)), nil
	}

	if err := c.store.SetEx(ctx, key, c.ttl, string(data)); err != nil {
		c.metrics.storeError()
		log.Error("cache write failed", zap.Error(err))
	} else {
		log.Debug("cached", zap.Duration("ttl", c.ttl))
	}

	return mo.Ok(v), nil
}
