// Package config reads process configuration from the environment, with
// defaults suitable for local development.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port           string
	StorageBackend string // "memory" or "mongo"
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTExpiry      time.Duration
	AdminPassword  string

	MQTTBroker   string // empty disables the metric ingestor
	MQTTClientID string
	// Performance readings below this value raise a critical alert.
	MetricAlertThreshold float64

	LogLevel string
}

// Load builds a Config from environment variables.
func Load() Config {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		StorageBackend:       getEnv("STORAGE_BACKEND", "memory"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:              getEnv("MONGO_DB", "assetsentry"),
		JWTSecret:            getEnv("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry:            24 * time.Hour,
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		MQTTBroker:           getEnv("MQTT_BROKER", ""),
		MQTTClientID:         getEnv("MQTT_CLIENT_ID", "assetsentry-server"),
		MetricAlertThreshold: 70.0,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if expStr := os.Getenv("JWT_EXPIRY"); expStr != "" {
		if parsed, err := time.ParseDuration(expStr); err == nil {
			cfg.JWTExpiry = parsed
		}
	}
	if thresholdStr := os.Getenv("METRIC_ALERT_THRESHOLD"); thresholdStr != "" {
		if threshold, err := strconv.ParseFloat(thresholdStr, 64); err == nil {
			cfg.MetricAlertThreshold = threshold
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
