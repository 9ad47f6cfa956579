package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: production\n"))
	require.NoError(t, err)

	assert.Equal(t, 2333, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 60, cfg.Vision.TimeoutSeconds)
	assert.Equal(t, int64(5*1024*1024), cfg.Fetcher.MaxImageSizeBytes)
	assert.Equal(t, 300, cfg.Pipeline.Pass2CooldownSeconds)
	assert.Equal(t, 3600, cfg.Pipeline.NSFWCacheTTLSeconds)
	assert.InDelta(t, 0.25, cfg.Pipeline.StopWordThreshold, 1e-9)
	assert.Contains(t, cfg.DSN, "tcp(127.0.0.1:3306)")
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "prot: 8080\n"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VISION_API_KEY", "sk-test")
	t.Setenv("ALLOWED_IMAGE_HOSTS", "cdn.example.com, B2.Example.Org")
	t.Setenv("PASS2_COOLDOWN_SECONDS", "600")
	t.Setenv("STOP_WORD_THRESHOLD", "0.5")

	cfg, err := Load(writeConfig(t, "vision:\n  api_key: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Vision.APIKey)
	assert.Equal(t, []string{"cdn.example.com", "b2.example.org"}, cfg.Fetcher.AllowedHosts)
	assert.Equal(t, 600, cfg.Pipeline.Pass2CooldownSeconds)
	assert.InDelta(t, 0.5, cfg.Pipeline.StopWordThreshold, 1e-9)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	_, err := Load(writeConfig(t, "pipeline:\n  stop_word_threshold: 1.5\n"))
	assert.Error(t, err)
}

func TestRedisURLSynthesis(t *testing.T) {
	c := RedisRuntimeConfig{Host: "cache", Port: 6380, Password: "secret", DB: 2, TLS: true}
	assert.Equal(t, "rediss://:secret@cache:6380/2", c.URLValue())

	c = RedisRuntimeConfig{URL: "redis://explicit:6379/1"}
	assert.Equal(t, "redis://explicit:6379/1", c.URLValue())

	c = RedisRuntimeConfig{URL: "bare-host:6379"}
	assert.Equal(t, "redis://bare-host:6379", c.URLValue())
}
