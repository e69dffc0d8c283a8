package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORAGE_BACKEND", "MONGO_URI", "MONGO_DB",
		"JWT_EXPIRY", "METRIC_ALERT_THRESHOLD", "MQTT_BROKER", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "assetsentry", cfg.MongoDB)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 70.0, cfg.MetricAlertThreshold)
	assert.Empty(t, cfg.MQTTBroker)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "mongo")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("METRIC_ALERT_THRESHOLD", "55.5")
	t.Setenv("MQTT_BROKER", "tcp://broker:1883")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongo", cfg.StorageBackend)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 55.5, cfg.MetricAlertThreshold)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTTBroker)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "not-a-duration")
	t.Setenv("METRIC_ALERT_THRESHOLD", "not-a-number")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 70.0, cfg.MetricAlertThreshold)
}
