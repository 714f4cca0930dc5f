package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, ":8080", cfg.Address())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL", "90")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}

func TestRedisAddr_Disabled(t *testing.T) {
	cfg := &Config{RedisPort: "6379"}
	assert.Empty(t, cfg.RedisAddr())
}

func TestLoadConsole(t *testing.T) {
	t.Setenv("ETAMS_API_URL", "")

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadConsole(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultAPIURL, cfg.APIURL)
		assert.Equal(t, DefaultConsoleTimeout, cfg.Timeout)
		assert.NotEmpty(t, cfg.SessionFile)
	})

	t.Run("file values are applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.yaml")
		content := "api_url: http://api.internal:9000\ntimeout: 3s\nsession_file: /tmp/s.yaml\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadConsole(path)
		require.NoError(t, err)
		assert.Equal(t, "http://api.internal:9000", cfg.APIURL)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t, "/tmp/s.yaml", cfg.SessionFile)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("ETAMS_API_URL", "http://override")
		cfg, err := LoadConsole("")
		require.NoError(t, err)
		assert.Equal(t, "http://override", cfg.APIURL)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed"), 0o600))
		_, err := LoadConsole(path)
		assert.Error(t, err)
	})
}
