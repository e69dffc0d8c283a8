package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetsentry/assetsentry/internal/models"
)

func TestSeed(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, s, DefaultAdminPassword))

	admin, err := s.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "maintenance_manager", admin.Role)
	// Stored as a hash, not the plaintext credential.
	assert.NotEqual(t, DefaultAdminPassword, admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(DefaultAdminPassword)))

	assets, err := s.GetAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, 3)

	pump, err := s.GetAssetByAssetID(ctx, "AS001")
	require.NoError(t, err)
	assert.Equal(t, "Centrifugal Pump A1", pump.Name)
	assert.Equal(t, 85.0, pump.Performance)

	generator, err := s.GetAssetByAssetID(ctx, "AS002")
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatusMaintenance, generator.Status)

	alerts, err := s.GetActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 3)

	tasks, err := s.GetMaintenanceTasksByAsset(ctx, generator.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Monthly Generator Inspection", tasks[0].Title)
	assert.Equal(t, admin.ID, tasks[0].AssignedTo)

	metrics, err := s.GetPerformanceMetrics(ctx, pump.ID, 0)
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	// Most recent reading first.
	assert.Equal(t, 85.0, metrics[0].Value)

	summary, err := s.GetDashboardMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalAssets)
	assert.Equal(t, 1, summary.ActiveMaintenance)
	assert.Equal(t, 66.7, summary.UptimeRate)
	assert.Equal(t, 1, summary.CriticalAlerts)
}
