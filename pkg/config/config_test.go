package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nbmdigital/siteclient/pkg/config"
	"github.com/nbmdigital/siteclient/pkg/logger"
)

// Env vars are process-global, so these tests stay sequential and rely
// on t.Setenv for cleanup.

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "siteclient.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		config.EnvBaseURL, config.EnvEnvironment, config.EnvSentryDSN,
		config.EnvStaleTime, config.EnvGCTime, config.EnvTokenDir,
	} {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("yaml file populates the config", func(t *testing.T) {
		clearEnv(t)
		path := writeYAML(t, `
base_url: https://api.example.com/api
environment: development
sentry_dsn: https://key@sentry.example.com/1
stale_time: 2m
gc_time: 20m
token_dir: /tmp/siteclient
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "https://api.example.com/api", cfg.BaseURL)
		require.Equal(t, logger.Development, cfg.Environment)
		require.Equal(t, "https://key@sentry.example.com/1", cfg.SentryDSN)
		require.Equal(t, 2*time.Minute, cfg.StaleTime)
		require.Equal(t, 20*time.Minute, cfg.GCTime)
		require.Equal(t, "/tmp/siteclient", cfg.TokenDir)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		clearEnv(t)
		path := writeYAML(t, `
base_url: https://file.example.com
stale_time: 2m
`)
		t.Setenv(config.EnvBaseURL, "https://env.example.com")
		t.Setenv(config.EnvStaleTime, "90s")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "https://env.example.com", cfg.BaseURL)
		require.Equal(t, 90*time.Second, cfg.StaleTime)
	})

	t.Run("environment alone is enough", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(config.EnvBaseURL, "https://env.example.com")

		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, "https://env.example.com", cfg.BaseURL)
		require.Equal(t, logger.Production, cfg.Environment, "production is the default")
	})

	t.Run("missing base url fails", func(t *testing.T) {
		clearEnv(t)

		_, err := config.Load("")
		require.ErrorIs(t, err, config.ErrMissingBaseURL)
	})

	t.Run("missing yaml file is not an error", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(config.EnvBaseURL, "https://env.example.com")

		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, "https://env.example.com", cfg.BaseURL)
	})

	t.Run("malformed duration fails loudly", func(t *testing.T) {
		clearEnv(t)
		path := writeYAML(t, `
base_url: https://file.example.com
stale_time: soon
`)

		_, err := config.Load(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "stale_time")
	})
}
