package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string        // dev, prod
	APIBaseURL      string        // clinic backend base URL
	PollInterval    time.Duration // how often the queue re-fetches
	SessionFile     string        // where the admin session is persisted
	AdminPassword   string        // admin console credential (devserver + console login)
	SessionTTL      time.Duration // how long an admin session stays valid
	HTTPPort        string        // devserver listen port
	SeedCount       int           // devserver demo appointments
	ShutdownTimeout time.Duration // graceful shutdown timeout
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("APP_ENV", "dev"),
		APIBaseURL:      getEnv("CLINIC_API_URL", "http://localhost:8080"),
		PollInterval:    getDuration("POLL_INTERVAL", time.Minute),
		SessionFile:     getEnv("SESSION_FILE", ".clinic-session.json"),
		AdminPassword:   os.Getenv("ADMIN_CONSOLE_PASSWORD"),
		SessionTTL:      getDuration("ADMIN_SESSION_TTL", 8*time.Hour),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		SeedCount:       getInt("SEED_COUNT", 25),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return Config{}, fmt.Errorf("invalid CLINIC_API_URL: %w", err)
	}
	if cfg.PollInterval <= 0 {
		return Config{}, errors.New("POLL_INTERVAL must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
