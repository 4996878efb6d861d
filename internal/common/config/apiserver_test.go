package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_GetDSN_Postgres(t *testing.T) {
	c := &DatabaseConfig{Type: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	got := c.GetDSN()
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", got)
}

func TestDatabaseConfig_GetDSN_MySQL(t *testing.T) {
	c := &DatabaseConfig{Type: "mysql", Host: "h", Port: 3306, User: "u", Password: "p", DBName: "d"}
	got := c.GetDSN()
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true", got)
}

func TestDatabaseConfig_GetDSN_SQLite(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "data", "kukkuta.db")
	c := &DatabaseConfig{Type: "sqlite", DBName: dbPath}
	got := c.GetDSN()
	assert.Equal(t, dbPath, got)
	_, err := os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)

	mem := &DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	assert.Equal(t, ":memory:", mem.GetDSN())
}

func TestDatabaseConfig_GetDSN_Unknown(t *testing.T) {
	c := &DatabaseConfig{Type: "unknown"}
	assert.Equal(t, "", c.GetDSN())
}

func TestAPIServerConfig_Defaults(t *testing.T) {
	var c APIServerConfig
	c.Upload.URLPrefix = "static/"
	c.applyDefaults()

	assert.Equal(t, DefaultPort, c.Server.Port)
	assert.Equal(t, DefaultTokenDuration, c.JWT.Duration)
	assert.Equal(t, "en", c.I18n.DefaultLang)
	assert.Equal(t, DefaultUploadDir, c.Upload.Dir)
	assert.EqualValues(t, DefaultMaxUploadSize, c.Upload.MaxSize)
	assert.Equal(t, "/static", c.Upload.URLPrefix)
	assert.Equal(t, "memory", c.Revocation.Type)
	assert.Equal(t, "/metrics", c.Metrics.Path)
	assert.Equal(t, "kukkuta-apiserver", c.Tracing.ServiceName)
	assert.Equal(t, ":8000", c.Server.Addr())
	assert.Equal(t, 10*time.Minute, c.Scheduler.SweepInterval)
	assert.Zero(t, c.Cache.TTL)
}

func TestAPIServerConfig_CacheDefaults(t *testing.T) {
	var c APIServerConfig
	c.Cache.Type = "memory"
	c.applyDefaults()
	assert.Equal(t, DefaultCacheTTL, c.Cache.TTL)
	assert.Equal(t, DefaultCacheEntries, c.Cache.MaxEntries)
}

func TestAPIServerConfig_CORSDeduplicated(t *testing.T) {
	var c APIServerConfig
	c.CORS.AllowOrigins = []string{"http://a", "http://b", "http://a"}
	c.CORS.AllowMethods = []string{"GET", "GET"}
	c.applyDefaults()
	assert.ElementsMatch(t, []string{"http://a", "http://b"}, c.CORS.AllowOrigins)
	assert.Equal(t, []string{"GET"}, c.CORS.AllowMethods)
}
