package oracle

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"licensing/internal/ledger"
	"licensing/internal/platform/tracer"
)

const (
	// Redis key prefix for cached base terms, followed by the hex permit hash.
	termsKeyPrefix = "permit:terms:"

	DefaultCacheTTL = 5 * time.Minute
)

// CacheMetrics records cache effectiveness.
type CacheMetrics interface {
	IncPermitCacheHit()
	IncPermitCacheMiss()
}

// Cache fronts a TermsSource with Redis. Only registered permits are cached;
// an unknown permit is looked up again on every request so a newly registered
// permit becomes visible immediately. Redis failures degrade to a direct lookup.
type Cache struct {
	next    TermsSource
	rdb     redis.Cmdable
	ttl     time.Duration
	logger  *zap.Logger
	tracer  tracer.Tracer
	metrics CacheMetrics
}

type CacheOption func(*Cache)

func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(l *zap.Logger) CacheOption {
	return func(c *Cache) { c.logger = l }
}

func WithTracer(t tracer.Tracer) CacheOption {
	return func(c *Cache) { c.tracer = t }
}

func WithMetrics(m CacheMetrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

func NewCache(next TermsSource, rdb redis.Cmdable, opts ...CacheOption) *Cache {
	c := &Cache{
		next:   next,
		rdb:    rdb,
		ttl:    DefaultCacheTTL,
		logger: zap.NewNop(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) BaseTerms(ctx context.Context, permit string) (url string, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanPermitExists, tracer.String(tracer.AttrPermit, permit))
	defer func() { span.End(err) }()

	key := cacheKey(permit)
	cached, getErr := c.rdb.Get(ctx, key).Result()
	switch {
	case getErr == nil:
		span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, true))
		c.hit()
		return cached, nil
	case errors.Is(getErr, redis.Nil):
	default:
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("permit cache read failed", zap.String("key", key), zap.Error(getErr))
	}
	span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, false))
	c.miss()

	url, err = c.next.BaseTerms(ctx, permit)
	if err != nil || url == "" {
		return url, err
	}
	if setErr := c.rdb.Set(ctx, key, url, c.ttl).Err(); setErr != nil {
		c.logger.Warn("permit cache write failed", zap.String("key", key), zap.Error(setErr))
	}
	return url, nil
}

func (c *Cache) PermitExists(ctx context.Context, permit string) (bool, error) {
	return exists(ctx, c, permit)
}

func (c *Cache) hit() {
	if c.metrics != nil {
		c.metrics.IncPermitCacheHit()
	}
}

func (c *Cache) miss() {
	if c.metrics != nil {
		c.metrics.IncPermitCacheMiss()
	}
}

func cacheKey(permit string) string {
	h := ledger.PermitHash(permit)
	return termsKeyPrefix + hex.EncodeToString(h[:])
}
