// Package config loads application configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// HTTP server
	ServerAddr string

	// Database. Empty selects the local SQLite database; a postgres://
	// URL selects PostgreSQL.
	DatabaseURL string

	// Redis. Empty disables the list cache.
	RedisURL string

	// RabbitMQ. Empty disables event publishing.
	RabbitMQURL string

	// Auth
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0:8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", "taskflow-dev-secret-change-in-production"),
		JWTIssuer: getEnv("JWT_ISSUER", "taskflow"),
		TokenTTL:  getDurationEnv("TOKEN_TTL", 24*time.Hour),
	}

	return cfg, nil
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
