package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvClientSecret, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Provider.BaseURL)
	assert.Equal(t, 24, cfg.Cache.TTLHours)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL())
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout())
	assert.False(t, cfg.Provider.HasCredentials())
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv(EnvClientID, "test-id")
	t.Setenv(EnvClientSecret, "test-secret")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9999

[provider]
base_url = "https://api.example.com"
timeout_seconds = 5

[cache]
ttl_hours = 1

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "https://api.example.com", cfg.Provider.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Credentials come from the environment, never the file
	assert.Equal(t, "test-id", cfg.Provider.ClientID)
	assert.Equal(t, "test-secret", cfg.Provider.ClientSecret)
	assert.True(t, cfg.Provider.HasCredentials())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvClientSecret, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nttl_hours = 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCredentialsPartialIsMissing(t *testing.T) {
	t.Setenv(EnvClientID, "only-id")
	t.Setenv(EnvClientSecret, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Provider.HasCredentials())
}
