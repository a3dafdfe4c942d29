package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	for _, k := range []string{"PORT", "HTTP_TIMEOUT_SECONDS", "LOG_LEVEL", "MAX_UPLOAD_MB"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("DATASET_TTL_MINUTES", "10")
	t.Setenv("MAX_DATASETS", "7")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 10*time.Minute, cfg.DatasetTTL)
	assert.Equal(t, 7, cfg.MaxDatasets)
	assert.True(t, cfg.CookieSecure)
}

func TestFromEnv_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"port: \"7070\"\nsink_url: http://sink.local/in\ndataset_ttl: 30m\nlog_level: debug\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("SINK_URL", "http://override/in")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "http://override/in", cfg.SinkURL)
	assert.Equal(t, 30*time.Minute, cfg.DatasetTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 100, cfg.MaxDatasets)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
