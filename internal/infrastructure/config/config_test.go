package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Server.Environment)
	assert.Equal(t, "RCH", cfg.Tickets.Prefix)
	assert.Equal(t, "sql", cfg.Storage.Backend)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 120, cfg.Auth.LockDurationMinutes)
	assert.Equal(t, "Africa/Nairobi", cfg.Business.Timezone)
	assert.Equal(t, 3, cfg.RateLimit.Rule("consultation").Limit)
	assert.Equal(t, 10, cfg.RateLimit.Rule("unknown-action").Limit)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RCH_SERVER_PORT", "6001")
	t.Setenv("RCH_TICKETS_MAX_ATTEMPTS", "9")

	cfg, err := Load("test")
	require.NoError(t, err)
	assert.Equal(t, 6001, cfg.Server.Port)
	assert.Equal(t, 9, cfg.Tickets.MaxAttempts)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("RCH_AUTH_JWT_SECRET", defaultJWTSecret)
	_, err := Load("production")
	require.Error(t, err)

	t.Setenv("RCH_AUTH_JWT_SECRET", "a-real-secret")
	cfg, err := Load("production")
	require.NoError(t, err)
	assert.True(t, cfg.Server.IsProduction())

	_, err = Load("test")
	require.NoError(t, err)
}
