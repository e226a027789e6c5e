// ABOUTME: Configuration loader for the Parlor client
// ABOUTME: Loads settings from environment variables with optional .env file

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Remote endpoints
	APIURL     string // Parlor backend base URL
	StorageURL string // object storage base URL for photo uploads

	// Client behavior
	FeedLimit      int // default page size for feed requests
	CacheTTL       int // seconds, for rankings/profile reads
	RequestTimeout int // seconds, transport default for API calls

	// Logging for command output (the TUI logs to a file instead)
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json
}

const (
	DefaultAPIURL     = "http://localhost:5000"
	DefaultStorageURL = "http://localhost:9199"
)

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:         getEnv("PARLOR_API_URL", DefaultAPIURL),
		StorageURL:     getEnv("PARLOR_STORAGE_URL", DefaultStorageURL),
		FeedLimit:      getEnvInt("PARLOR_FEED_LIMIT", 20),
		CacheTTL:       getEnvInt("PARLOR_CACHE_TTL", 60),
		RequestTimeout: getEnvInt("PARLOR_REQUEST_TIMEOUT", 30),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
