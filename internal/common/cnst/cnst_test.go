package cnst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestI18nConstants(t *testing.T) {
	assert.Equal(t, "en", LangEN)
	assert.Equal(t, "hi", LangHI)
	assert.Equal(t, LangEN, LangDefault)
	assert.Equal(t, "X-Lang", XLang)
}

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "apiserver.yaml", ApiServerYaml)
	assert.Equal(t, "memory", RevocationTypeMemory)
	assert.Equal(t, "redis", RevocationTypeRedis)
	assert.Equal(t, "memory", CacheTypeMemory)
	assert.Equal(t, "redis", CacheTypeRedis)
}

func TestAdminActionsAreDistinct(t *testing.T) {
	all := []AdminAction{
		ActionApproveReport, ActionRejectReport, ActionVerifyFarmers,
		ActionCreateFarmer, ActionUpdateFarmer, ActionDeleteFarmer,
		ActionCreateMill, ActionUpdateMill, ActionDeleteMill,
		ActionCreateFeed, ActionManual,
	}
	seen := map[AdminAction]bool{}
	for _, a := range all {
		assert.False(t, seen[a], a)
		seen[a] = true
	}
}
