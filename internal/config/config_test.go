package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

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
	path := writeConfig(t, `
database:
  dsn: postgres://localhost/venuepos
jwt:
  secret: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "venuepos-server", cfg.Server.Name)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.NATS.MaxReconnects)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: postgres://localhost/venuepos
jwt:
  secret: file-secret
log:
  level: info
`)

	t.Setenv("DATABASE_URL", "postgres://override/venuepos")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("NATS_URL", "nats://override:4222")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://override/venuepos", cfg.Database.DSN)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "nats://override:4222", cfg.NATS.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		path := writeConfig(t, `
jwt:
  secret: test-secret
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "database.dsn")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		path := writeConfig(t, `
database:
  dsn: postgres://localhost/venuepos
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "jwt.secret")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}
