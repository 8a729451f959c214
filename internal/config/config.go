// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DatabasePath string
	LogLevel     slog.Level
	ImportDir    string
	Auth         AuthConfig
	HTTP         HTTPConfig
	// Strategy picks how a recommendation chooses among matching classes:
	// "random" or "first".
	Strategy string
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	LoginRate  float64 // attempts refilled per second
	LoginBurst float64
}

type HTTPConfig struct {
	CookieSecure bool
	CORSOrigins  []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "fitcoach.db")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RECOMMENDATION_STRATEGY", "random")
	v.SetDefault("IMPORT_DIR", "")
	v.SetDefault("LOGIN_RATE", 0.2)
	v.SetDefault("LOGIN_BURST", 5)
}

// Load reads .env from the working directory when present, then the
// process environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v, filling defaults for unset keys.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Port:         v.GetString("PORT"),
		DatabasePath: v.GetString("DATABASE_PATH"),
		ImportDir:    v.GetString("IMPORT_DIR"),
		Strategy:     strings.ToLower(v.GetString("RECOMMENDATION_STRATEGY")),
		Auth: AuthConfig{
			JWTSecret:  v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("TOKEN_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
			LoginRate:  v.GetFloat64("LOGIN_RATE"),
			LoginBurst: v.GetFloat64("LOGIN_BURST"),
		},
		HTTP: HTTPConfig{
			CookieSecure: v.GetBool("COOKIE_SECURE"),
			CORSOrigins:  splitList(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.LoginRate <= 0 || c.Auth.LoginBurst < 1 {
		return errors.New("LOGIN_RATE must be positive and LOGIN_BURST at least 1")
	}
	switch c.Strategy {
	case "random", "first":
	default:
		return fmt.Errorf("RECOMMENDATION_STRATEGY must be random or first, got %q", c.Strategy)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
