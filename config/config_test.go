package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENCHAIN_API_URL", "LISTEN_ADDR", "DATABASE_PATH", "STATS_CACHE_TTL",
		"UPSTREAM_TIMEOUT", "RESULT_LIMIT", "LOG_LEVEL", "LOG_FORMAT", "GIN_MODE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.openchain.xyz", cfg.APIURL)
	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, 50, cfg.ResultLimit)
	assert.Equal(t, time.Minute, cfg.StatsCacheTTL)
	assert.Zero(t, cfg.UpstreamTimeout)
}

func TestFromEnv(t *testing.T) {
	t.Run("No variables gives defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("Overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENCHAIN_API_URL", "http://localhost:9999")
		t.Setenv("STATS_CACHE_TTL", "5s")
		t.Setenv("UPSTREAM_TIMEOUT", "3s")
		t.Setenv("RESULT_LIMIT", "10")
		t.Setenv("LOG_FORMAT", "console")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999", cfg.APIURL)
		assert.Equal(t, 5*time.Second, cfg.StatsCacheTTL)
		assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
		assert.Equal(t, 10, cfg.ResultLimit)
		assert.Equal(t, "console", cfg.LogFormat)
	})

	t.Run("Empty DATABASE_PATH disables history", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_PATH", "")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Empty(t, cfg.DatabasePath)
	})

	t.Run("Bad values are rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RESULT_LIMIT", "zero")
		_, err := FromEnv()
		assert.Error(t, err)

		clearEnv(t)
		t.Setenv("STATS_CACHE_TTL", "soon")
		_, err = FromEnv()
		assert.Error(t, err)

		clearEnv(t)
		t.Setenv("UPSTREAM_TIMEOUT", "-1s")
		_, err = FromEnv()
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("Reads an env file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("OPENCHAIN_API_URL=http://upstream.test\nRESULT_LIMIT=7\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://upstream.test", cfg.APIURL)
		assert.Equal(t, 7, cfg.ResultLimit)
	})

	t.Run("Missing file is fine", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}
