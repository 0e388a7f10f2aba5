package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_FILE", "JWT_SECRET", "TOKEN_TTL_HOURS", "ENVIRONMENT", "SEED_USERS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.SeedUsers)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_FILE", "/var/lib/eems/data.json")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SEED_USERS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/var/lib/eems/data.json", cfg.DataFile)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.SeedUsers)
}

func TestLoadConfig_BadTTLFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
