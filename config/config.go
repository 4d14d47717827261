package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// DefaultTimezone is applied to acquisition dates entered without one.
	// Any registry token works: a name ("Asia/Tokyo"), an abbreviation
	// ("JST") or a numeric offset ("+09:00"). Empty leaves dates naive.
	DefaultTimezone string
	// StrictDateInput rejects mixed separators in entered dates
	// ("2023-4/1", "9:5.3").
	StrictDateInput bool
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "db/app.db"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", ""),
		StrictDateInput: getEnvBool("STRICT_DATE_INPUT", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
