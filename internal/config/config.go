package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Logging
	LogLevel  string
	LogPretty bool

	// Postcode lookup service
	LookupBaseURL string        // e.g. http://postcodes.io
	LookupTimeout time.Duration // per-request timeout, a timeout counts as a lookup failure

	// Settings store
	SettingsStore    string // "memory", "csv", "redis" or "mysql"
	SettingsCSVPath  string // seed file for the csv store and cmd/seed-settings
	SettingsCache    string // "none" or "redis" (in front of mysql)
	SettingsCacheTTL time.Duration

	// MySQL configuration
	MySQLDSN string // Data Source Name

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Settings API basic auth, disabled unless both are set
	AdminUser     string
	AdminPassword string
}

// Load reads configuration from environment variables
// with sensible defaults
func Load() *Config {
	// Load .env file if it exists (for local development)
	// In production/Docker, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		LookupBaseURL: strings.TrimRight(getEnv("LOOKUP_BASE_URL", "http://postcodes.io"), "/"),
		LookupTimeout: time.Duration(getEnvAsInt("LOOKUP_TIMEOUT_MS", 5000)) * time.Millisecond,

		SettingsStore:    strings.ToLower(getEnv("SETTINGS_STORE", "memory")),
		SettingsCSVPath:  getEnv("SETTINGS_CSV_PATH", "./data/settings.csv"),
		SettingsCache:    strings.ToLower(getEnv("SETTINGS_CACHE", "none")),
		SettingsCacheTTL: time.Duration(getEnvAsInt("SETTINGS_CACHE_TTL_SECONDS", 60)) * time.Second,

		MySQLDSN: getEnv("MYSQL_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AdminUser:     getEnv("ADMIN_USER", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// AdminAuthEnabled reports whether the settings API is protected
func (c *Config) AdminAuthEnabled() bool {
	return c.AdminUser != "" && c.AdminPassword != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a boolean
// Accepts the forms understood by strconv.ParseBool
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
