package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/revocation"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/pkg/version"
)

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	f()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestRootCmd_Version(t *testing.T) {
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	rootCmd.SetArgs([]string{"version"})
	out := captureOutput(func() { _ = rootCmd.Execute() })
	assert.Contains(t, out, cnst.CommandName)
	assert.Contains(t, out, version.Get())
}

func TestRootCmd_Help(t *testing.T) {
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	rootCmd.SetArgs([]string{"--help"})
	assert.NoError(t, rootCmd.Execute())
}

func TestRootCmd_ConfFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("conf")
	require.NotNil(t, f)
	assert.Equal(t, "c", f.Shorthand)
	assert.Equal(t, cnst.ApiServerYaml, f.DefValue)
}

func TestMigrate_SQLite(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "apiserver.yaml")
	dbFile := filepath.Join(dir, "data", "kukkuta.db")
	yaml := "database:\n  type: sqlite\n  dbname: " + dbFile + "\nlogger:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0o644))

	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		configPath = cnst.ApiServerYaml
	})
	rootCmd.SetArgs([]string{"migrate", "--conf", cfgFile})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(dbFile)
	assert.NoError(t, err)
}

func TestHousekeeping(t *testing.T) {
	lg := zap.NewNop()

	s, err := housekeeping(lg, time.Minute, revocation.NewMemoryStore(), nil)
	require.NoError(t, err)
	require.Len(t, s.Status(), 1)
	assert.Equal(t, "revocation-prune", s.Status()[0].Name)

	stats, err := cache.New(cache.Config{TTL: time.Second}, lg)
	require.NoError(t, err)
	s, err = housekeeping(lg, time.Minute, revocation.NewMemoryStore(), stats)
	require.NoError(t, err)
	assert.Len(t, s.Status(), 2)
}
