package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort            int
	DatabasePath          string
	JWTSecret             string
	TokenTTLHours         int
	CORSOrigins           []string
	ActivityRetentionDays int
	ActivityPruneCron     string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	retention, err := strconv.Atoi(getEnv("ACTIVITY_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:            port,
		DatabasePath:          getEnv("DATABASE_PATH", "./devsync.db"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		TokenTTLHours:         ttl,
		CORSOrigins:           strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		ActivityRetentionDays: retention,
		// Default is a nightly sweep at 03:00.
		ActivityPruneCron: getEnv("ACTIVITY_PRUNE_CRON", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
