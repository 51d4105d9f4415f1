package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds the development backend configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	ResetTokenExpiry   time.Duration
	RateLimit          string // ulule limiter format, e.g. "20-M"
	CORSAllowedOrigins []string
}

// loadEnv reads a .env file if present. Real environment variables still win.
func loadEnv() {
	_ = godotenv.Load()
	viper.AutomaticEnv()
}

// durationOr parses key as a duration, falling back to def with a warning.
func durationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration in configuration, using default",
			slog.String("key", key), slog.String("value", raw), slog.String("default", def.String()))
		return def
	}
	return d
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadServerConfig loads the backend configuration from the environment and .env.
func LoadServerConfig() (*Config, error) {
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "720h")
	viper.SetDefault("JWT_ISSUER", "komunity")
	viper.SetDefault("RESET_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("RATE_LIMIT", "20-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	loadEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTExpiryDuration:  durationOr("JWT_EXPIRY_DURATION", 30*24*time.Hour),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		ResetTokenExpiry:   durationOr("RESET_TOKEN_EXPIRY_DURATION", time.Hour),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == defaultJWTSecret {
		slog.Warn("JWT_SECRET not set. Using default insecure key.")
	}
	return cfg, nil
}
