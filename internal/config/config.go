// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DevSessionSecret is used when SESSION_SECRET is unset outside production.
const DevSessionSecret = "dovito-edu-development-secret-key"

// DefaultGoogleCallbackURL is used when GOOGLE_CALLBACK_URL is unset.
const DefaultGoogleCallbackURL = "https://edu.dovito.com/auth/google/callback"

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
	SessionStoreRedis  = "redis"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	DevSessionSecret,
	"dovito-edu-secret-key",
	"change-me-to-32-byte-secret-key!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"SESSION_SECRET"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL"`

	Env        string `env:"DOVITO_ENV" envDefault:"development"`
	ServerHost string `env:"DOVITO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"DOVITO_SERVER_PORT" envDefault:"5000"`
	LogLevel   string `env:"DOVITO_LOG_LEVEL" envDefault:"info"`
	DBPath     string `env:"DOVITO_DB_PATH" envDefault:"./data/dovito.db"`
	UploadsDir string `env:"DOVITO_UPLOADS_DIR" envDefault:"./uploads"`
	ClientDir  string `env:"DOVITO_CLIENT_DIR"` // Built SPA assets (optional)

	SessionStore   string   `env:"DOVITO_SESSION_STORE" envDefault:"memory"`
	RedisURL       string   `env:"DOVITO_REDIS_URL"`
	AllowedOrigins []string `env:"DOVITO_ALLOWED_ORIGINS" envSeparator:","`

	// Seeding configuration
	DoSeed     bool   `env:"DOVITO_DO_SEED" envDefault:"false"`
	AdminEmail string `env:"DOVITO_ADMIN_EMAIL"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env != "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GoogleEnabled returns true if Google OAuth credentials are configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// MinSessionSecretLength is the minimum required length for the session secret in production.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreSQLite:
	case SessionStoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("DOVITO_REDIS_URL is required when DOVITO_SESSION_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("unknown DOVITO_SESSION_STORE %q (use memory, sqlite or redis)", cfg.SessionStore)
	}

	if err := cfg.resolveSessionSecret(); err != nil {
		return nil, err
	}

	if cfg.GoogleEnabled() && cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = DefaultGoogleCallbackURL
		slog.Warn("GOOGLE_CALLBACK_URL not set, using default", "callback_url", cfg.GoogleCallbackURL)
	}

	return cfg, nil
}

// resolveSessionSecret applies the development fallback and rejects weak secrets in production.
func (c *Config) resolveSessionSecret() error {
	if c.SessionSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		c.SessionSecret = DevSessionSecret
		slog.Warn("SESSION_SECRET not set, using development fallback")
		return nil
	}

	if c.IsDevelopment() {
		return nil
	}

	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("SESSION_SECRET is a known default value and must not be used in production")
		}
	}

	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
