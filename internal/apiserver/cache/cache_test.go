package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
)

type summary struct {
	Farmers int `json:"farmers"`
}

func newRedisCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New(Config{
		TTL:       ttl,
		Redis:     redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		KeyPrefix: "test:",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_MemoryOnly(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{TTL: time.Minute, MaxEntries: 2}, zap.NewNop())
	require.NoError(t, err)

	var got summary
	_, ok := c.Get(ctx, "dashboard", &got)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "dashboard", summary{Farmers: 3}))
	layer, ok := c.Get(ctx, "dashboard", &got)
	require.True(t, ok)
	assert.Equal(t, L1Memory, layer)
	assert.Equal(t, 3, got.Farmers)

	// oldest entry is evicted past MaxEntries
	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))
	_, ok = c.Get(ctx, "dashboard", &got)
	assert.False(t, ok)

	s := c.Stats()
	assert.Equal(t, 2, s.Entries)
	assert.Equal(t, int64(1), s.L1Hits)
	assert.Equal(t, int64(2), s.Misses)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{TTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", summary{Farmers: 1}))
	require.NoError(t, c.Set(ctx, "j", summary{Farmers: 2}))
	now = now.Add(2 * time.Minute)

	var got summary
	_, ok := c.Get(ctx, "k", &got)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestCache_RedisLayer(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.Set(ctx, "dashboard", summary{Farmers: 7}))
	assert.True(t, mr.Exists("test:dashboard"))
	assert.Equal(t, time.Minute, mr.TTL("test:dashboard"))

	// a second process sees the redis copy and promotes it
	other, err := New(Config{TTL: time.Minute, Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}), KeyPrefix: "test:"}, zap.NewNop())
	require.NoError(t, err)
	var got summary
	layer, ok := other.Get(ctx, "dashboard", &got)
	require.True(t, ok)
	assert.Equal(t, L2Redis, layer)
	assert.Equal(t, 7, got.Farmers)
	layer, _ = other.Get(ctx, "dashboard", &got)
	assert.Equal(t, L1Memory, layer)

	require.NoError(t, c.Set(ctx, "analytics:farmers::", summary{}))
	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("test:dashboard"))
	assert.False(t, mr.Exists("test:analytics:farmers::"))
	assert.Equal(t, int64(1), c.Stats().Cleared)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{TTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)

	calls := 0
	load := func(context.Context) (*summary, error) {
		calls++
		return &summary{Farmers: calls}, nil
	}
	for range 3 {
		v, err := Fetch(ctx, c, "k", load)
		require.NoError(t, err)
		assert.Equal(t, 1, v.Farmers)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = Fetch(ctx, c, "bad", func(context.Context) (*summary, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get(ctx, "bad", &summary{})
	assert.False(t, ok)
}

func TestFetch_NilCacheAlwaysLoads(t *testing.T) {
	var c *Cache
	calls := 0
	for range 2 {
		_, err := Fetch(context.Background(), c, "k", func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, c.Sweep())
	assert.NoError(t, c.Clear(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNewFromConfig(t *testing.T) {
	logger := zap.NewNop()

	c, err := NewFromConfig(logger, &config.CacheConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewFromConfig(logger, &config.CacheConfig{Type: "memory", TTL: time.Second})
	require.NoError(t, err)
	assert.Nil(t, c.l2)

	mr := miniredis.RunT(t)
	c, err = NewFromConfig(logger, &config.CacheConfig{Type: "redis", TTL: time.Second, Redis: config.RedisConfig{Addr: mr.Addr()}})
	require.NoError(t, err)
	assert.Equal(t, defaultPrefix, c.prefix)
	assert.NoError(t, c.Close())

	_, err = NewFromConfig(logger, &config.CacheConfig{Type: "memcached", TTL: time.Second})
	assert.EqualError(t, err, "unsupported cache type: memcached")

	_, err = New(Config{}, logger)
	assert.Error(t, err)
}
