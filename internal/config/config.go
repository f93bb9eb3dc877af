package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the app.
type Config struct {
	Addr                string
	DatabaseURL         string
	JWTSecret           string
	JWTExpiry           time.Duration
	MaterializeInterval time.Duration
	CatchupTime         string // HH:MM, daily generation catch-up pass
	ReminderInterval    time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is honored if present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:                getEnv("TADA_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", "tada.db"),
		JWTSecret:           getEnv("JWT_SECRET", "tada-local-secret"),
		JWTExpiry:           parseDuration(os.Getenv("JWT_EXPIRY"), 168*time.Hour),
		MaterializeInterval: parseHours(os.Getenv("MATERIALIZE_INTERVAL_HOURS"), time.Hour),
		CatchupTime:         getEnv("MATERIALIZE_CATCHUP_TIME", "00:05"),
		ReminderInterval:    parseDuration(os.Getenv("REMINDER_INTERVAL"), time.Minute),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseHours(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return fallback
	}
	return hours
}
