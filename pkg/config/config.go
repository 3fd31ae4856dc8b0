// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, browser, cache, storage and pipeline settings

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Browser contains renderer session configuration
	Browser BrowserConfig

	// Pipeline contains enrichment run configuration
	Pipeline PipelineConfig

	// Storage contains article store configuration
	Storage StorageConfig

	// Briefing contains audio briefing configuration
	Briefing BriefingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RefreshSchedule is the cron expression for scheduled generation
	RefreshSchedule string

	// RateLimit is requests per second per client IP
	RateLimit int

	// RateBurst is the rate limiter burst size
	RateBurst int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLite contains file cache configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SQLiteConfig holds file cache configuration
type SQLiteConfig struct {
	// Path is the cache database file path
	Path string
}

// BrowserConfig holds renderer session configuration
type BrowserConfig struct {
	// PoolSize is the number of concurrent renderer sessions.
	// 1 selects sequential single-session mode.
	PoolSize int

	// Headless runs the browser without a display
	Headless bool

	// NavigationTimeout bounds a single page load
	NavigationTimeout time.Duration

	// ExtractionTimeout bounds extraction over one rendered page
	ExtractionTimeout time.Duration
}

// PipelineConfig holds enrichment run configuration
type PipelineConfig struct {
	// MaxArticles caps articles processed per document, 0 for all
	MaxArticles int

	// PacingDelay is the wait between successive articles in a session
	PacingDelay time.Duration

	// DataDir is where feed and result documents are exchanged
	DataDir string
}

// StorageConfig holds article store configuration
type StorageConfig struct {
	// PostgresDSN is the article store connection string; empty
	// disables the store
	PostgresDSN string

	// RetentionDays is how long stored articles are kept
	RetentionDays int
}

// BriefingConfig holds audio briefing configuration
type BriefingConfig struct {
	// Enabled toggles speech synthesis; requires Google credentials
	Enabled bool

	// LanguageCode selects the synthesis voice language
	LanguageCode string

	// CredentialsFile is an explicit service account key path,
	// overriding application default credentials
	CredentialsFile string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is honored when present.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8000"),
			RefreshSchedule: getEnvOrDefault("REFRESH_SCHEDULE", "@every 6h"),
			RateLimit:       getEnvAsIntOrDefault("RATE_LIMIT", 1),
			RateBurst:       getEnvAsIntOrDefault("RATE_BURST", 3),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_CACHE_PATH", "cache.db"),
			},
		},
		Browser: BrowserConfig{
			PoolSize:          getEnvAsIntOrDefault("BROWSER_POOL_SIZE", 1),
			Headless:          getEnvAsBoolOrDefault("BROWSER_HEADLESS", true),
			NavigationTimeout: getEnvAsDurationOrDefault("NAVIGATION_TIMEOUT", 20*time.Second),
			ExtractionTimeout: getEnvAsDurationOrDefault("EXTRACTION_TIMEOUT", 15*time.Second),
		},
		Pipeline: PipelineConfig{
			MaxArticles: getEnvAsIntOrDefault("MAX_ARTICLES", 10),
			PacingDelay: getEnvAsDurationOrDefault("PACING_DELAY", 300*time.Millisecond),
			DataDir:     getEnvOrDefault("DATA_DIR", "data"),
		},
		Storage: StorageConfig{
			PostgresDSN:   getEnvOrDefault("POSTGRES_DSN", ""),
			RetentionDays: getEnvAsIntOrDefault("RETENTION_DAYS", 30),
		},
		Briefing: BriefingConfig{
			Enabled:         getEnvAsBoolOrDefault("BRIEFING_ENABLED", false),
			LanguageCode:    getEnvOrDefault("BRIEFING_LANGUAGE", "en-IN"),
			CredentialsFile: getEnvOrDefault("BRIEFING_CREDENTIALS", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the environment variable as a duration or a default
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" && c.Cache.Type != "sqlite" {
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Browser.PoolSize < 1 {
		return errors.New("browser pool size must be at least 1")
	}

	if c.Browser.NavigationTimeout <= 0 {
		return errors.New("navigation timeout must be positive")
	}

	if c.Pipeline.DataDir == "" {
		return errors.New("data directory cannot be empty")
	}

	return nil
}
