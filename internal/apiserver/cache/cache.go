package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Layer names where a hit was served from
type Layer string

const (
	L1Memory Layer = "memory"
	L2Redis  Layer = "redis"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Stats is a snapshot of the hit counters
type Stats struct {
	Entries int     `json:"entries"`
	L1Hits  int64   `json:"l1_hits"`
	L2Hits  int64   `json:"l2_hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
	Sweeps  int64   `json:"sweeps"`
	Cleared int64   `json:"cleared"`
}

// Config holds the settings for a Cache. Redis is optional, without it the
// cache is process local.
type Config struct {
	TTL        time.Duration
	MaxEntries int
	Redis      redis.UniversalClient
	KeyPrefix  string
}

// Cache keeps JSON encoded aggregates in an LRU memory layer backed by an
// optional redis layer shared between api server processes. A nil *Cache
// is valid and caches nothing.
type Cache struct {
	logger *zap.Logger
	l1     *lru.Cache[string, entry]
	l2     redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time

	l1Hits, l2Hits, misses, sweeps, cleared atomic.Int64
}

func New(cfg Config, logger *zap.Logger) (*Cache, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", cfg.TTL)
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 256
	}
	l1, err := lru.New[string, entry](cfg.MaxEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{
		logger: logger.Named("apiserver.cache"),
		l1:     l1,
		l2:     cfg.Redis,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Get decodes the cached value for key into dst and reports the layer it
// came from. A redis hit is promoted into memory.
func (c *Cache) Get(ctx context.Context, key string, dst any) (Layer, bool) {
	if c == nil {
		return "", false
	}
	now := c.now()
	if e, ok := c.l1.Get(key); ok {
		if e.expiresAt.After(now) && json.Unmarshal(e.data, dst) == nil {
			c.l1Hits.Add(1)
			return L1Memory, true
		}
		c.l1.Remove(key)
	}

	if c.l2 != nil {
		data, err := c.l2.Get(ctx, c.prefix+key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			c.logger.Warn("failed to read from redis cache", zap.String("key", key), zap.Error(err))
		case json.Unmarshal(data, dst) == nil:
			ttl, terr := c.l2.PTTL(ctx, c.prefix+key).Result()
			if terr != nil || ttl <= 0 || ttl > c.ttl {
				ttl = c.ttl
			}
			c.l1.Add(key, entry{data: data, expiresAt: now.Add(ttl)})
			c.l2Hits.Add(1)
			return L2Redis, true
		}
	}

	c.misses.Add(1)
	return "", false
}

// Set stores value under key in both layers
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	c.l1.Add(key, entry{data: data, expiresAt: c.now().Add(c.ttl)})
	if c.l2 == nil {
		return nil
	}
	return c.l2.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Clear drops every entry from both layers. Report approval and rejection
// call this.
func (c *Cache) Clear(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.l1.Purge()
	c.cleared.Add(1)
	if c.l2 == nil {
		return nil
	}

	iter := c.l2.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.l2.Del(ctx, keys...).Err()
}

// Sweep removes expired memory entries and returns how many were dropped.
// Redis expires its own keys.
func (c *Cache) Sweep() int {
	if c == nil {
		return 0
	}
	now := c.now()
	n := 0
	for _, k := range c.l1.Keys() {
		if e, ok := c.l1.Peek(k); ok && !e.expiresAt.After(now) {
			c.l1.Remove(k)
			n++
		}
	}
	c.sweeps.Add(1)
	if n > 0 {
		c.logger.Debug("swept expired cache entries", zap.Int("count", n))
	}
	return n
}

func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	s := Stats{
		Entries: c.l1.Len(),
		L1Hits:  c.l1Hits.Load(),
		L2Hits:  c.l2Hits.Load(),
		Misses:  c.misses.Load(),
		Sweeps:  c.sweeps.Load(),
		Cleared: c.cleared.Load(),
	}
	if total := s.L1Hits + s.L2Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.L1Hits+s.L2Hits) / float64(total)
	}
	return s
}

func (c *Cache) Close() error {
	if c == nil || c.l2 == nil {
		return nil
	}
	return c.l2.Close()
}

// Fetch returns the cached value for key, calling load and caching its
// result on a miss. A failed cache write is logged, not returned.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	if _, ok := c.Get(ctx, key, &v); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, key, v); err != nil {
		c.logger.Warn("failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
