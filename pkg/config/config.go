// Package config loads runtime configuration from the environment and defines
// the static catalog source table.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/redpulseofficialscripter-dev/SHUT/pkg/catalog"
)

// Config holds the runtime configuration.
type Config struct {
	// DataDir is the directory output snapshots are written into.
	DataDir string

	// UserAgent sent with every upstream request.
	UserAgent string

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// LogPretty enables human-readable console output.
	LogPretty bool

	// RedisURL enables the page cache when non-empty.
	RedisURL string

	// CacheTTL is the page cache entry lifetime.
	CacheTTL time.Duration

	// MetricsAddr exposes /metrics on this address when non-empty.
	MetricsAddr string

	// PageDelay is the pause between page requests.
	PageDelay time.Duration

	// RetryDelay is the base unit of the linear retry delay.
	RetryDelay time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() Config {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	return Config{
		DataDir:     getEnv("DATA_DIR", "data"),
		UserAgent:   getEnv("USER_AGENT", "shut/1.0"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getBool("LOG_PRETTY", true),
		RedisURL:    getEnv("REDIS_URL", ""),
		CacheTTL:    getDuration("CACHE_TTL", 5*time.Minute),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
		PageDelay:   getDuration("PAGE_DELAY", catalog.DefaultPageDelay),
		RetryDelay:  getDuration("RETRY_DELAY", 2*time.Second),
	}
}

// Sources returns the static source table rooted at dataDir. Three sources
// feed two output files; the two shirt queries share shirts.json and are
// deduplicated against each other.
func Sources(dataDir string) []catalog.Source {
	shirts := filepath.Join(dataDir, "shirts.json")
	pants := filepath.Join(dataDir, "pants.json")

	return []catalog.Source{
		{
			Name: "free-shirts",
			URL:  "https://catalog.roblox.com/v1/search/items/details?Category=3&Subcategory=12&MaxPrice=0&Limit=30",
			File: shirts,
		},
		{
			Name: "newest-shirts",
			URL:  "https://catalog.roblox.com/v1/search/items/details?Category=3&Subcategory=12&SortType=3&Limit=30",
			File: shirts,
		},
		{
			Name: "free-pants",
			URL:  "https://catalog.roblox.com/v1/search/items/details?Category=3&Subcategory=14&MaxPrice=0&Limit=30",
			File: pants,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
