package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven settings for the server.
type Config struct {
	Port        string
	DBPath      string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	GinMode     string
}

// Load reads configuration from the environment, with an optional .env
// file for local development. Missing keys fall back to defaults.
func Load() *Config {
	// Ignore a missing .env; env vars alone are fine in deployment
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8008"),
		DBPath:      getEnv("DB_PATH", "taskboard.db"),
		JWTSecret:   getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:   getEnv("JWT_ISSUER", "taskboard-api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "taskboard-clients"),
		GinMode:     getEnv("GIN_MODE", "debug"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
