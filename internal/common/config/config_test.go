package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}\nc: ${X_C}")
	out := string(resolveEnv(in))
	assert.Contains(t, out, "a: va")
	assert.Contains(t, out, "b: db")
	assert.True(t, strings.HasSuffix(out, "c: "))
}

func TestLoadConfig_APIServer(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	t.Setenv("KK_DB_TYPE", "sqlite")
	yaml := `
server:
  port: 9100
  read_timeout: 5s
database:
  type: ${KK_DB_TYPE:postgres}
  dbname: ${KK_DB_NAME:./data/kk.db}
jwt:
  secret_key: ${KK_SECRET:0123456789abcdef0123456789abcdef}
  duration: 1h
revocation:
  type: redis
  redis:
    addr: localhost:6379
    prefix: "kk:revoked:"
cors:
  allow_origins: ["http://localhost:3000"]
  allow_credentials: true
tracing:
  enabled: false
  protocol: http
`
	file := filepath.Join(tmp, "apiserver.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig[APIServerConfig]("apiserver.yaml")
	require.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./data/kk.db", cfg.Database.DBName)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWT.SecretKey)
	assert.Equal(t, time.Hour, cfg.JWT.Duration)
	assert.Equal(t, "redis", cfg.Revocation.Type)
	assert.Equal(t, "kk:revoked:", cfg.Revocation.Redis.Prefix)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, "http", cfg.Tracing.Protocol)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, path, err := LoadConfig[APIServerConfig]("/nonexistent/apiserver.yaml")
	assert.Error(t, err)
	assert.Equal(t, "/nonexistent/apiserver.yaml", path)
}
