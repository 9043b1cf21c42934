package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client's runtime settings
type Config struct {
	APIBaseURL  string
	TokenPath   string // empty means the default location under the user config dir
	HTTPTimeout time.Duration
	LogLevel    string
}

// Load reads configuration from a .env file (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		APIBaseURL:  getEnv("THREADS_API_URL", "http://localhost:8000"),
		TokenPath:   getEnv("THREADS_TOKEN_PATH", ""),
		HTTPTimeout: time.Duration(getEnvAsInt("THREADS_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		LogLevel:    getEnv("THREADS_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
