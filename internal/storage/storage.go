// Package storage is the sole authority for entity persistence and retrieval.
// Two implementations share the Storage contract: MemStorage for tests and
// single-node deployments, MongoStorage for a durable backend.
package storage

import (
	"context"
	"errors"

	"github.com/assetsentry/assetsentry/internal/models"
)

var (
	// ErrNotFound is returned when a lookup, update, or delete target does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateAssetID is returned when an asset tag is already in use.
	ErrDuplicateAssetID = errors.New("asset tag already in use")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
)

// DefaultMetricLimit bounds performance metric queries when the caller does
// not supply a limit.
const DefaultMetricLimit = 30

// Storage defines the persistence contract for all entity collections.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, in models.UserInsert) (*models.User, error)
	UpdateUser(ctx context.Context, id string, user models.User) error

	// Assets
	GetAssets(ctx context.Context) ([]models.Asset, error)
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	GetAssetByAssetID(ctx context.Context, assetID string) (*models.Asset, error)
	CreateAsset(ctx context.Context, in models.AssetInsert) (*models.Asset, error)
	UpdateAsset(ctx context.Context, id string, upd models.AssetUpdate) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id string) (bool, error)

	// Maintenance tasks
	GetMaintenanceTasks(ctx context.Context) ([]models.MaintenanceTask, error)
	GetMaintenanceTask(ctx context.Context, id string) (*models.MaintenanceTask, error)
	GetMaintenanceTasksByAsset(ctx context.Context, assetID string) ([]models.MaintenanceTask, error)
	CreateMaintenanceTask(ctx context.Context, in models.MaintenanceTaskInsert) (*models.MaintenanceTask, error)
	UpdateMaintenanceTask(ctx context.Context, id string, upd models.MaintenanceTaskUpdate) (*models.MaintenanceTask, error)
	DeleteMaintenanceTask(ctx context.Context, id string) (bool, error)

	// Alerts
	GetAlerts(ctx context.Context) ([]models.Alert, error)
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	GetActiveAlerts(ctx context.Context) ([]models.Alert, error)
	GetAlertsByAsset(ctx context.Context, assetID string) ([]models.Alert, error)
	CreateAlert(ctx context.Context, in models.AlertInsert) (*models.Alert, error)
	UpdateAlert(ctx context.Context, id string, upd models.AlertUpdate) (*models.Alert, error)
	DeleteAlert(ctx context.Context, id string) (bool, error)

	// Performance metrics, most recent first, at most limit entries
	// (DefaultMetricLimit when limit <= 0). This is the one list operation
	// with a defined ordering.
	GetPerformanceMetrics(ctx context.Context, assetID string, limit int) ([]models.PerformanceMetric, error)
	CreatePerformanceMetric(ctx context.Context, in models.PerformanceMetricInsert) (*models.PerformanceMetric, error)

	// Dashboard summary, recomputed fresh on every call.
	GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error)
}
