package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetsentry/assetsentry/internal/models"
	"github.com/assetsentry/assetsentry/internal/storage"
)

func newTestIngestor(t *testing.T) (*Ingestor, *storage.MemStorage, *models.Asset) {
	t.Helper()

	store := storage.NewMemStorage()
	asset, err := store.CreateAsset(context.Background(), models.AssetInsert{
		AssetID:  "AS001",
		Name:     "Centrifugal Pump",
		Type:     "Pump System",
		Location: "Building A - Floor 1",
	})
	require.NoError(t, err)

	ing := New(store, Config{
		Broker:         "tcp://localhost:1883",
		ClientID:       "test-ingestor",
		AlertThreshold: 70,
	})
	return ing, store, asset
}

func TestProcess_RecordsMetric(t *testing.T) {
	ing, store, asset := newTestIngestor(t)
	ctx := context.Background()

	err := ing.process(ctx, "AS001", []byte(`{"metric_type":"temperature","value":42.5,"unit":"celsius"}`))
	require.NoError(t, err)

	metrics, err := store.GetPerformanceMetrics(ctx, asset.ID, 0)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "temperature", metrics[0].MetricType)
	assert.Equal(t, 42.5, metrics[0].Value)
	assert.Equal(t, "celsius", metrics[0].Unit)

	// Non-performance readings leave the asset's figure alone.
	got, err := store.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.Performance, got.Performance)
}

func TestProcess_PerformanceRefreshesAsset(t *testing.T) {
	ing, store, asset := newTestIngestor(t)
	ctx := context.Background()

	err := ing.process(ctx, "AS001", []byte(`{"metric_type":"performance","value":91.5,"unit":"percent"}`))
	require.NoError(t, err)

	got, err := store.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, 91.5, got.Performance)

	// Healthy reading raises no alerts.
	alerts, err := store.GetAlertsByAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestProcess_DegradedPerformanceRaisesAlert(t *testing.T) {
	ing, store, asset := newTestIngestor(t)
	ctx := context.Background()

	err := ing.process(ctx, "AS001", []byte(`{"metric_type":"performance","value":55,"unit":"percent"}`))
	require.NoError(t, err)

	alerts, err := store.GetAlertsByAsset(ctx, asset.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertLevelCritical, alerts[0].Level)
	assert.Equal(t, models.AlertStatusActive, alerts[0].Status)
	assert.Equal(t, "performance", alerts[0].TriggerType)
	assert.Equal(t, 55.0, alerts[0].Metadata["reading"])

	// A second degraded reading does not stack another alert.
	err = ing.process(ctx, "AS001", []byte(`{"metric_type":"performance","value":50,"unit":"percent"}`))
	require.NoError(t, err)

	alerts, err = store.GetAlertsByAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	// Once resolved, the next degraded reading raises a fresh alert.
	resolved := models.AlertStatusResolved
	_, err = store.UpdateAlert(ctx, alerts[0].ID, models.AlertUpdate{Status: &resolved})
	require.NoError(t, err)

	err = ing.process(ctx, "AS001", []byte(`{"metric_type":"performance","value":48,"unit":"percent"}`))
	require.NoError(t, err)

	alerts, err = store.GetAlertsByAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestProcess_BadPayloads(t *testing.T) {
	ing, store, asset := newTestIngestor(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		tag     string
		payload string
	}{
		{"invalid json", "AS001", `{not json`},
		{"missing metric_type", "AS001", `{"value":50,"unit":"percent"}`},
		{"missing unit", "AS001", `{"metric_type":"performance","value":50}`},
		{"unknown asset tag", "AS999", `{"metric_type":"performance","value":50,"unit":"percent"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ing.process(ctx, tt.tag, []byte(tt.payload)))
		})
	}

	metrics, err := store.GetPerformanceMetrics(ctx, asset.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, metrics)
}

func TestTagFromTopic(t *testing.T) {
	assert.Equal(t, "AS001", tagFromTopic("assets/AS001/metrics"))
	assert.Equal(t, "", tagFromTopic("assets"))
}
