package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
)

const defaultPrefix = "kukkuta:stats:"

// NewFromConfig builds the cache described by cfg. It returns nil when the
// cache is disabled.
func NewFromConfig(logger *zap.Logger, cfg *config.CacheConfig) (*Cache, error) {
	if cfg.Type == "" {
		return nil, nil
	}
	logger.Info("Initializing stats cache", zap.String("type", cfg.Type), zap.Duration("ttl", cfg.TTL))

	c := Config{TTL: cfg.TTL, MaxEntries: cfg.MaxEntries}
	switch cfg.Type {
	case cnst.CacheTypeMemory:
	case cnst.CacheTypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Redis = client
		c.KeyPrefix = cfg.Redis.Prefix
		if c.KeyPrefix == "" {
			c.KeyPrefix = defaultPrefix
		}
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
	return New(c, logger)
}
