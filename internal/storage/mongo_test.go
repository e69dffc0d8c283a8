package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetsentry/assetsentry/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, "mongodb://bad:uri")
	assert.Error(t, err)
	assert.Nil(t, client)
}

// Integration test (requires running MongoDB)
func TestMongoStorage_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "assetsentry_test"
	}
	db := client.Database(dbName)
	defer db.Drop(context.Background())

	s := NewMongoStorage(db)

	asset, err := s.CreateAsset(ctx, models.AssetInsert{
		AssetID:  "IT001",
		Name:     "Integration Pump",
		Type:     "Pump System",
		Location: "Test Bay",
	})
	require.NoError(t, err)
	require.NotEmpty(t, asset.ID)

	found, err := s.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "Integration Pump", found.Name)

	byTag, err := s.GetAssetByAssetID(ctx, "IT001")
	require.NoError(t, err)
	assert.Equal(t, asset.ID, byTag.ID)

	_, err = s.CreateAsset(ctx, models.AssetInsert{
		AssetID: "IT001", Name: "Duplicate", Type: "Pump System", Location: "Test Bay",
	})
	assert.ErrorIs(t, err, ErrDuplicateAssetID)

	status := models.AssetStatusOffline
	updated, err := s.UpdateAsset(ctx, asset.ID, models.AssetUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusOffline, updated.Status)
	assert.Equal(t, found.Name, updated.Name)

	_, err = s.CreatePerformanceMetric(ctx, models.PerformanceMetricInsert{
		AssetID: asset.ID, MetricType: "performance", Value: 75, Unit: "percent",
	})
	require.NoError(t, err)

	metrics, err := s.GetPerformanceMetrics(ctx, asset.ID, 0)
	require.NoError(t, err)
	assert.Len(t, metrics, 1)

	summary, err := s.GetDashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalAssets)

	deleted, err := s.DeleteAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	metrics, err = s.GetPerformanceMetrics(ctx, asset.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, metrics)

	_, err = s.GetAsset(ctx, asset.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
