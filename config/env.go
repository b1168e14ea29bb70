package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from .env if present (non-fatal if missing).
func LoadEnv() {
	_ = godotenv.Load()
}

// GetEnvOrDefault returns the environment variable's value, or def when it
// is unset or empty.
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
