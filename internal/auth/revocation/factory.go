package revocation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
)

// NewStore creates a revocation store based on configuration
func NewStore(logger *zap.Logger, cfg *config.RevocationConfig) (Store, error) {
	logger.Info("Initializing token revocation store", zap.String("type", cfg.Type))
	switch cfg.Type {
	case cnst.RevocationTypeMemory, "":
		return NewMemoryStore(), nil
	case cnst.RevocationTypeRedis:
		s, err := NewRedisStore(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported revocation store type: %s", cfg.Type)
	}
}
