package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"licensing/internal/platform/config"
)

// PoolRecorder receives pool statistics sampled by RecordPoolStats.
type PoolRecorder interface {
	RecordRedisPool(totalConns, idleConns, hitsDelta, missesDelta, timeoutsDelta uint32)
}

// Client wraps the go-redis client with health checking capabilities.
type Client struct {
	*redis.Client
	lastStats *redis.PoolStats
}

// New creates a new Redis client from the provided configuration.
// Returns nil if the URL is empty (Redis not configured).
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.Client.Close()
}

// RecordPoolStats pushes the current pool statistics to rec. Counters are
// reported as deltas from the previous call.
func (c *Client) RecordPoolStats(rec PoolRecorder) {
	stats := c.PoolStats()

	var hits, misses, timeouts uint32
	if c.lastStats != nil {
		hits = delta(stats.Hits, c.lastStats.Hits)
		misses = delta(stats.Misses, c.lastStats.Misses)
		timeouts = delta(stats.Timeouts, c.lastStats.Timeouts)
	} else {
		hits, misses, timeouts = stats.Hits, stats.Misses, stats.Timeouts
	}
	rec.RecordRedisPool(stats.TotalConns, stats.IdleConns, hits, misses, timeouts)

	c.lastStats = stats
}

func delta(now, prev uint32) uint32 {
	if now > prev {
		return now - prev
	}
	return 0
}
