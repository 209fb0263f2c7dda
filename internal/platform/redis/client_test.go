package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensing/internal/platform/config"
)

type poolSample struct {
	total, idle, hits, misses, timeouts uint32
}

type recorder struct {
	samples []poolSample
}

func (r *recorder) RecordRedisPool(total, idle, hits, misses, timeouts uint32) {
	r.samples = append(r.samples, poolSample{total, idle, hits, misses, timeouts})
}

func TestNew_EmptyURLDisablesRedis(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "://nope"})
	require.Error(t, err)
}

func TestClient_HealthAndPoolStats(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := New(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr(), PoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Health(context.Background()))

	rec := &recorder{}
	client.RecordPoolStats(rec)
	require.NoError(t, client.Health(context.Background()))
	client.RecordPoolStats(rec)

	require.Len(t, rec.samples, 2)
	assert.GreaterOrEqual(t, rec.samples[0].total, uint32(1))
	assert.GreaterOrEqual(t, rec.samples[1].hits, uint32(1))
}
