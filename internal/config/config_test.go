package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/fitcoach/internal/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": secret}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "fitcoach.db", cfg.DatabasePath)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.HTTP.CookieSecure)
	assert.Empty(t, cfg.HTTP.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "random", cfg.Strategy)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET":              secret,
		"PORT":                    "9000",
		"TOKEN_TTL":               "30m",
		"BCRYPT_COST":             "4",
		"COOKIE_SECURE":           "false",
		"CORS_ORIGINS":            "http://localhost:3000, https://app.example.com ,",
		"LOG_LEVEL":               "debug",
		"RECOMMENDATION_STRATEGY": "FIRST",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.False(t, cfg.HTTP.CookieSecure)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "first", cfg.Strategy)
}

func TestFromViper_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"missing secret", map[string]any{}},
		{"short secret", map[string]any{"JWT_SECRET": "short"}},
		{"bcrypt too low", map[string]any{"JWT_SECRET": secret, "BCRYPT_COST": 3}},
		{"bcrypt too high", map[string]any{"JWT_SECRET": secret, "BCRYPT_COST": 15}},
		{"unknown strategy", map[string]any{"JWT_SECRET": secret, "RECOMMENDATION_STRATEGY": "best"}},
		{"bad log level", map[string]any{"JWT_SECRET": secret, "LOG_LEVEL": "loud"}},
		{"zero ttl", map[string]any{"JWT_SECRET": secret, "TOKEN_TTL": "0s"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.FromViper(newViper(tc.values))
			assert.Error(t, err)
		})
	}
}
