package config

import (
	"os"
	"strings"
	"time"
)

// DefaultSigningSecret is used when JWT_SECRET is unset. Shipping a fallback
// key is a deliberate weakness of this demo; main logs a warning when it is
// in effect.
const DefaultSigningSecret = "fallback-secret-key-change-in-production"

const (
	envDevelopment = "development"
	envProduction  = "production"
)

// Config holds runtime settings for the API process.
type Config struct {
	Port           string        // HTTP listen port
	Environment    string        // development or production
	SigningSecret  string        // session token signing key
	TokenTTL       time.Duration // session token lifetime
	AllowedOrigins []string      // CORS allow-list
}

// Load populates Config from environment variables with demo-friendly
// defaults.
func Load() Config {
	cfg := Config{
		Port:          firstNonEmpty(os.Getenv("PORT"), "3000"),
		Environment:   firstNonEmpty(os.Getenv("APP_ENV"), envDevelopment),
		SigningSecret: firstNonEmpty(os.Getenv("JWT_SECRET"), DefaultSigningSecret),
		TokenTTL:      durationFromEnv("JWT_TTL", time.Hour),
	}
	cfg.AllowedOrigins = parseCSV(os.Getenv("ALLOWED_ORIGINS"))
	if len(cfg.AllowedOrigins) == 0 {
		if cfg.Production() {
			cfg.AllowedOrigins = []string{"https://your-production-domain.com"}
		} else {
			cfg.AllowedOrigins = []string{
				"http://localhost:3000",
				"http://localhost:3001",
				"http://127.0.0.1:3000",
			}
		}
	}
	return cfg
}

// Production reports whether the process runs in production mode, which
// turns on the Secure cookie flag and the production CORS origin list.
func (c Config) Production() bool {
	return c.Environment == envProduction
}

// UsingDefaultSecret reports whether the insecure fallback signing key is in
// effect.
func (c Config) UsingDefaultSecret() bool {
	return c.SigningSecret == DefaultSigningSecret
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// durationFromEnv reads a duration from env var name, falling back to
// defaultVal when empty or invalid.
func durationFromEnv(name string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

// parseCSV splits a comma-separated list and trims spaces; empty entries are
// skipped.
func parseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
