package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "garage-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.False(t, cfg.Session.UseStore)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 500*time.Millisecond, cfg.Session.LookupTimeout())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_COOKIE_NAME", "garage_session")
	t.Setenv("SESSION_TTL_MINUTES", "60")
	t.Setenv("SESSION_USE_STORE", "true")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "garage_session", cfg.Session.CookieName)
	assert.Equal(t, time.Hour, cfg.Session.TTL())
	assert.True(t, cfg.Session.UseStore)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns, "bad values fall back to defaults")
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "two")

	_, err := Load()
	assert.Error(t, err)
}
