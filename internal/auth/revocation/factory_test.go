package revocation

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewStore(t *testing.T) {
	logger := zap.NewNop()

	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(logger, &config.RevocationConfig{Type: "memory"})
		require.NoError(t, err)
		_, ok := store.(*MemoryStore)
		assert.True(t, ok)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := NewStore(logger, &config.RevocationConfig{
			Type:  "redis",
			Redis: config.RedisConfig{Addr: mr.Addr(), Prefix: "t:"},
		})
		require.NoError(t, err)
		rs, ok := store.(*RedisStore)
		require.True(t, ok)
		assert.Equal(t, "t:", rs.prefix)
		assert.NoError(t, store.Close())
	})

	t.Run("unsupported", func(t *testing.T) {
		store, err := NewStore(logger, &config.RevocationConfig{Type: "etcd"})
		assert.Nil(t, store)
		assert.EqualError(t, err, "unsupported revocation store type: etcd")
	})
}
