package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	SessionDuration   time.Duration
	AdminPassword     string
	AdminPasswordHash string

	ShareTokenSecret string
	ShareTokenTTL    time.Duration

	StatsCacheTTL  time.Duration
	WeekendOffsets []int

	AWSRegion        string
	DigestFromEmail  string
	DigestFromName   string
	DigestRecipients []string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./wordletracker.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration:   getEnvDuration("SESSION_DURATION", 24*time.Hour),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		ShareTokenSecret: getEnv("SHARE_TOKEN_SECRET", ""),
		ShareTokenTTL:    getEnvDuration("SHARE_TOKEN_TTL", 7*24*time.Hour),

		StatsCacheTTL:  getEnvDuration("STATS_CACHE_TTL", 5*time.Minute),
		WeekendOffsets: getEnvIntList("WEEKEND_OFFSETS", []int{0, 1}),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		DigestFromEmail:  getEnv("DIGEST_FROM_EMAIL", ""),
		DigestFromName:   getEnv("DIGEST_FROM_NAME", "Wordle Tracker"),
		DigestRecipients: getEnvList("DIGEST_RECIPIENTS", nil),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a Go duration string such as "30m" or "24h"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList reads a comma-separated list, trimming whitespace around entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvIntList reads a comma-separated list of integers
func getEnvIntList(key string, defaultValue []int) []int {
	var out []int
	for _, part := range getEnvList(key, nil) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
