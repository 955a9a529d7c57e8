// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"user_backend/internal/platform/db"
)

// EnvKeyJWTSecret is the environment variable holding the token signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// devJWTSecret signs tokens when no secret is configured outside production.
const devJWTSecret = "dev-secret-change-me"

// Config is the full application configuration.
type Config struct {
	Env         string
	Port        string
	DB          db.Config
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	BcryptCost  int
	CORSEnabled bool
	LogLevel    slog.Level
	LogFormat   string

	// Warnings lists settings that were ignored or defaulted. They are logged by the
	// caller once the configured logger is installed.
	Warnings []string
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadDotEnv loads .env into the environment. It reports false when the file
// could not be read and the system environment is used as is.
func LoadDotEnv(path string) bool {
	return godotenv.Load(path) == nil
}

// Load reads the configuration from the environment and applies defaults.
// A missing JWT secret is fatal in production and a warning otherwise.
func Load() (Config, error) {
	var env envReader
	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DB:          db.LoadConfigFromEnv(),
		JWTSecret:   os.Getenv(EnvKeyJWTSecret),
		JWTIssuer:   os.Getenv("JWT_ISSUER"),
		JWTTTL:      env.duration("JWT_TTL", time.Hour),
		BcryptCost:  env.integer("BCRYPT_COST", bcrypt.DefaultCost),
		CORSEnabled: env.boolean("CORS_ENABLED", false),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}
	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			env.warnf("ignoring invalid DB_CONNECT_TIMEOUT %q", v)
		}
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, errors.New("JWT_SECRET is required in production")
		}
		env.warnf("JWT_SECRET is not set. Set a strong secret in production.")
		cfg.JWTSecret = devJWTSecret
	}
	cfg.Warnings = env.warnings
	return cfg, nil
}

// NewLogger builds the process logger from the configured format and level.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed values and records the ones it had to ignore.
type envReader struct {
	warnings []string
}

func (r *envReader) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *envReader) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.warnf("ignoring invalid integer %s=%q", key, v)
		return fallback
	}
	return n
}

func (r *envReader) boolean(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.warnf("ignoring invalid boolean %s=%q", key, v)
		return fallback
	}
	return b
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.warnf("ignoring invalid duration %s=%q", key, v)
		return fallback
	}
	return d
}
