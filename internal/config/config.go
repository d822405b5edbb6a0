package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath    string
	Port            int
	LogLevel        string
	DevMode         bool
	SteamAppID      int           // Steam app the market items belong to (730 = CS2)
	SteamCurrency   int           // Steam currency code (1 = USD)
	FetchDelay      time.Duration // Minimum delay between consecutive Steam requests
	FetchTimeout    time.Duration // Timeout for a single Steam request
	QuoteCacheTTL   time.Duration // How long a fetched quote stays reusable
	RefreshSchedule string        // Cron expression for background refresh, empty = disabled
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "./data/portfolio.db"),
		Port:            getEnvAsInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		SteamAppID:      getEnvAsInt("STEAM_APP_ID", 730),
		SteamCurrency:   getEnvAsInt("STEAM_CURRENCY", 1),
		FetchDelay:      getEnvAsDuration("STEAM_FETCH_DELAY", 3*time.Second),
		FetchTimeout:    getEnvAsDuration("STEAM_FETCH_TIMEOUT", 15*time.Second),
		QuoteCacheTTL:   getEnvAsDuration("QUOTE_CACHE_TTL", time.Minute),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.SteamAppID <= 0 {
		return fmt.Errorf("STEAM_APP_ID must be positive")
	}
	if c.FetchDelay < 0 {
		return fmt.Errorf("STEAM_FETCH_DELAY must not be negative")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
