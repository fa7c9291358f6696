package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	FrontendURL string
	// Dataset Configuration
	DatasetPath     string // Empty means the bundled dataset
	FilterCacheSize int
	// Edit Rules
	AdultAge int
	// Logging
	LogFile string // Terminal UI only; the API always logs to stdout
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		FrontendURL:     strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		DatasetPath:     getEnv("DATASET_PATH", ""),
		FilterCacheSize: getEnvInt("FILTER_CACHE_SIZE", 128),
		AdultAge:        getEnvInt("ADULT_AGE", 18),
		LogFile:         getEnv("LOG_FILE", "profile-directory.log"),
	}

	if cfg.AdultAge <= 0 {
		log.Printf("WARNING: ADULT_AGE=%d is not positive, falling back to 18", cfg.AdultAge)
		cfg.AdultAge = 18
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
