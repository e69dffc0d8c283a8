package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// metricPayload matches the wire format the server's ingestor expects on
// assets/<tag>/metrics.
type metricPayload struct {
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Timestamp  time.Time `json:"timestamp"`
}

type simulatedAsset struct {
	Tag         string
	Performance float64 // current simulated performance percentage
	Temperature float64 // degrees C
}

// Matches the seeded fixture so readings land on real assets.
var assets = []*simulatedAsset{
	{Tag: "AS001", Performance: 85.0, Temperature: 42.0},
	{Tag: "AS002", Performance: 60.0, Temperature: 58.0},
	{Tag: "AS003", Performance: 92.0, Temperature: 35.0},
}

func jitter(value, amount, min, max float64) float64 {
	value += (rand.Float64()*2 - 1) * amount
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}

func publish(client mqtt.Client, tag string, payload metricPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("assets/%s/metrics", tag)
	token := client.Publish(topic, 1, false, body)
	token.Wait()
	return token.Error()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}

	interval := 10 * time.Second
	if intervalStr := os.Getenv("SIM_INTERVAL_SECONDS"); intervalStr != "" {
		if seconds, err := strconv.Atoi(intervalStr); err == nil && seconds > 0 {
			interval = time.Duration(seconds) * time.Second
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("assetsentry-simulator").
		SetAutoReconnect(true).
		SetConnectRetry(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		log.WithError(err).Fatal("failed to connect to mqtt broker")
	}
	defer client.Disconnect(250)

	log.WithFields(log.Fields{
		"broker":   broker,
		"interval": interval.String(),
		"assets":   len(assets),
	}).Info("simulator started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		for _, asset := range assets {
			asset.Performance = jitter(asset.Performance, 3.0, 40.0, 100.0)
			asset.Temperature = jitter(asset.Temperature, 1.5, 15.0, 90.0)

			readings := []metricPayload{
				{MetricType: "performance", Value: asset.Performance, Unit: "percent", Timestamp: now},
				{MetricType: "temperature", Value: asset.Temperature, Unit: "celsius", Timestamp: now},
			}
			for _, reading := range readings {
				if err := publish(client, asset.Tag, reading); err != nil {
					log.WithError(err).WithField("asset", asset.Tag).Warn("failed to publish metric")
					continue
				}
			}
			log.WithFields(log.Fields{
				"asset":       asset.Tag,
				"performance": fmt.Sprintf("%.1f", asset.Performance),
				"temperature": fmt.Sprintf("%.1f", asset.Temperature),
			}).Debug("published metrics")
		}
	}
}
