// Package ingest records asset performance readings published over MQTT.
// Assets publish to assets/<tag>/metrics; readings become PerformanceMetric
// records, and degraded performance raises a critical alert.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/assetsentry/assetsentry/internal/models"
	"github.com/assetsentry/assetsentry/internal/storage"
)

const metricTopic = "assets/+/metrics"

// metricPayload is the wire format published to assets/<tag>/metrics.
type metricPayload struct {
	MetricType string     `json:"metric_type"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Config holds ingestor settings.
type Config struct {
	Broker   string
	ClientID string
	// Performance readings below this value raise a critical alert.
	AlertThreshold float64
}

// Ingestor subscribes to asset metric topics and writes readings to storage.
type Ingestor struct {
	store  storage.Storage
	cfg    Config
	client mqtt.Client
}

// New creates an ingestor; call Start to connect and subscribe.
func New(store storage.Storage, cfg Config) *Ingestor {
	return &Ingestor{store: store, cfg: cfg}
}

// Start connects to the broker and subscribes to the metric topic. The
// subscription is re-established on every reconnect.
func (i *Ingestor) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.Broker).
		SetClientID(i.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOnConnectHandler(func(client mqtt.Client) {
			token := client.Subscribe(metricTopic, 1, i.handleMessage)
			token.Wait()
			if err := token.Error(); err != nil {
				log.WithError(err).Error("failed to subscribe to metric topic")
				return
			}
			log.WithField("topic", metricTopic).Info("subscribed to asset metrics")
		})

	i.client = mqtt.NewClient(opts)
	token := i.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}
	return nil
}

// Stop disconnects from the broker, allowing in-flight work to finish.
func (i *Ingestor) Stop() {
	if i.client != nil && i.client.IsConnected() {
		i.client.Disconnect(250)
	}
}

func (i *Ingestor) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	tag := tagFromTopic(msg.Topic())
	if err := i.process(context.Background(), tag, msg.Payload()); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("dropped metric message")
	}
}

// process records one reading for the asset with the given tag.
func (i *Ingestor) process(ctx context.Context, tag string, payload []byte) error {
	var reading metricPayload
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("invalid metric payload: %w", err)
	}
	if reading.MetricType == "" || reading.Unit == "" {
		return fmt.Errorf("metric payload missing metric_type or unit")
	}

	asset, err := i.store.GetAssetByAssetID(ctx, tag)
	if err != nil {
		return fmt.Errorf("unknown asset tag %q: %w", tag, err)
	}

	metric, err := i.store.CreatePerformanceMetric(ctx, models.PerformanceMetricInsert{
		AssetID:    asset.ID,
		MetricType: reading.MetricType,
		Value:      reading.Value,
		Unit:       reading.Unit,
		Timestamp:  reading.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to record metric: %w", err)
	}

	log.WithFields(log.Fields{
		"asset":       asset.AssetID,
		"metric_type": metric.MetricType,
		"value":       metric.Value,
	}).Debug("recorded performance metric")

	if reading.MetricType != "performance" {
		return nil
	}

	// Performance readings also refresh the asset's current figure.
	if _, err := i.store.UpdateAsset(ctx, asset.ID, models.AssetUpdate{Performance: &reading.Value}); err != nil {
		return fmt.Errorf("failed to refresh asset performance: %w", err)
	}

	if reading.Value < i.cfg.AlertThreshold {
		return i.raisePerformanceAlert(ctx, asset, reading.Value)
	}
	return nil
}

// raisePerformanceAlert creates a critical alert unless one is already active
// for the asset.
func (i *Ingestor) raisePerformanceAlert(ctx context.Context, asset *models.Asset, value float64) error {
	existing, err := i.store.GetAlertsByAsset(ctx, asset.ID)
	if err != nil {
		return err
	}
	for _, alert := range existing {
		if alert.Status == models.AlertStatusActive &&
			alert.Level == models.AlertLevelCritical &&
			alert.TriggerType == "performance" {
			return nil
		}
	}

	_, err = i.store.CreateAlert(ctx, models.AlertInsert{
		AssetID:     asset.ID,
		Title:       fmt.Sprintf("%s - Performance Degraded", asset.Name),
		Description: fmt.Sprintf("Performance dropped to %.1f%%, below the %.1f%% threshold", value, i.cfg.AlertThreshold),
		Level:       models.AlertLevelCritical,
		TriggerType: "performance",
		Metadata: map[string]interface{}{
			"reading":   value,
			"threshold": i.cfg.AlertThreshold,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to raise performance alert: %w", err)
	}

	log.WithFields(log.Fields{
		"asset": asset.AssetID,
		"value": value,
	}).Warn("raised performance alert")
	return nil
}

func tagFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
