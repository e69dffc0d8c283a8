package storage

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/assetsentry/assetsentry/internal/models"
)

// MemStorage is an in-memory Storage implementation. Each collection is a map
// from generated id to record, guarded by its own RWMutex so updates run as
// atomic get-merge-set sequences under parallel request handling.
type MemStorage struct {
	usersMu sync.RWMutex
	users   map[string]models.User

	assetsMu sync.RWMutex
	assets   map[string]models.Asset

	tasksMu sync.RWMutex
	tasks   map[string]models.MaintenanceTask

	alertsMu sync.RWMutex
	alerts   map[string]models.Alert

	metricsMu sync.RWMutex
	metrics   map[string]models.PerformanceMetric
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:   make(map[string]models.User),
		assets:  make(map[string]models.Asset),
		tasks:   make(map[string]models.MaintenanceTask),
		alerts:  make(map[string]models.Alert),
		metrics: make(map[string]models.PerformanceMetric),
	}
}

// User methods

func (s *MemStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStorage) CreateUser(ctx context.Context, in models.UserInsert) (*models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	for _, existing := range s.users {
		if existing.Username == in.Username {
			return nil, ErrDuplicateUsername
		}
	}

	user := in.NewRecord(uuid.NewString(), time.Now())
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemStorage) UpdateUser(ctx context.Context, id string, user models.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	user.ID = id
	s.users[id] = user
	return nil
}

// Asset methods

func (s *MemStorage) GetAssets(ctx context.Context) ([]models.Asset, error) {
	s.assetsMu.RLock()
	defer s.assetsMu.RUnlock()

	assets := make([]models.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		assets = append(assets, asset)
	}
	return assets, nil
}

func (s *MemStorage) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	s.assetsMu.RLock()
	defer s.assetsMu.RUnlock()

	asset, ok := s.assets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &asset, nil
}

func (s *MemStorage) GetAssetByAssetID(ctx context.Context, assetID string) (*models.Asset, error) {
	s.assetsMu.RLock()
	defer s.assetsMu.RUnlock()

	for _, asset := range s.assets {
		if asset.AssetID == assetID {
			a := asset
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStorage) CreateAsset(ctx context.Context, in models.AssetInsert) (*models.Asset, error) {
	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	for _, existing := range s.assets {
		if existing.AssetID == in.AssetID {
			return nil, ErrDuplicateAssetID
		}
	}

	asset := in.NewRecord(uuid.NewString(), time.Now())
	s.assets[asset.ID] = asset
	return &asset, nil
}

func (s *MemStorage) UpdateAsset(ctx context.Context, id string, upd models.AssetUpdate) (*models.Asset, error) {
	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	asset, ok := s.assets[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.AssetID != nil && *upd.AssetID != asset.AssetID {
		for _, existing := range s.assets {
			if existing.AssetID == *upd.AssetID {
				return nil, ErrDuplicateAssetID
			}
		}
	}

	upd.Apply(&asset)
	asset.UpdatedAt = time.Now()
	s.assets[id] = asset
	return &asset, nil
}

// DeleteAsset removes the asset and cascades to its maintenance tasks, alerts,
// and performance metrics so no dangling references remain.
func (s *MemStorage) DeleteAsset(ctx context.Context, id string) (bool, error) {
	s.assetsMu.Lock()
	_, ok := s.assets[id]
	if !ok {
		s.assetsMu.Unlock()
		return false, nil
	}
	delete(s.assets, id)
	s.assetsMu.Unlock()

	s.tasksMu.Lock()
	for taskID, task := range s.tasks {
		if task.AssetID == id {
			delete(s.tasks, taskID)
		}
	}
	s.tasksMu.Unlock()

	s.alertsMu.Lock()
	for alertID, alert := range s.alerts {
		if alert.AssetID == id {
			delete(s.alerts, alertID)
		}
	}
	s.alertsMu.Unlock()

	s.metricsMu.Lock()
	for metricID, metric := range s.metrics {
		if metric.AssetID == id {
			delete(s.metrics, metricID)
		}
	}
	s.metricsMu.Unlock()

	return true, nil
}

// Maintenance task methods

func (s *MemStorage) GetMaintenanceTasks(ctx context.Context) ([]models.MaintenanceTask, error) {
	s.tasksMu.RLock()
	defer s.tasksMu.RUnlock()

	tasks := make([]models.MaintenanceTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *MemStorage) GetMaintenanceTask(ctx context.Context, id string) (*models.MaintenanceTask, error) {
	s.tasksMu.RLock()
	defer s.tasksMu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (s *MemStorage) GetMaintenanceTasksByAsset(ctx context.Context, assetID string) ([]models.MaintenanceTask, error) {
	s.tasksMu.RLock()
	defer s.tasksMu.RUnlock()

	tasks := make([]models.MaintenanceTask, 0)
	for _, task := range s.tasks {
		if task.AssetID == assetID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *MemStorage) CreateMaintenanceTask(ctx context.Context, in models.MaintenanceTaskInsert) (*models.MaintenanceTask, error) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	task := in.NewRecord(uuid.NewString(), time.Now())
	s.tasks[task.ID] = task
	return &task, nil
}

func (s *MemStorage) UpdateMaintenanceTask(ctx context.Context, id string, upd models.MaintenanceTaskUpdate) (*models.MaintenanceTask, error) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	upd.Apply(&task)
	task.UpdatedAt = time.Now()
	s.tasks[id] = task
	return &task, nil
}

func (s *MemStorage) DeleteMaintenanceTask(ctx context.Context, id string) (bool, error) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

// Alert methods

func (s *MemStorage) GetAlerts(ctx context.Context) ([]models.Alert, error) {
	s.alertsMu.RLock()
	defer s.alertsMu.RUnlock()

	alerts := make([]models.Alert, 0, len(s.alerts))
	for _, alert := range s.alerts {
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (s *MemStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	s.alertsMu.RLock()
	defer s.alertsMu.RUnlock()

	alert, ok := s.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &alert, nil
}

func (s *MemStorage) GetActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	s.alertsMu.RLock()
	defer s.alertsMu.RUnlock()

	alerts := make([]models.Alert, 0)
	for _, alert := range s.alerts {
		if alert.Status == models.AlertStatusActive {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}

func (s *MemStorage) GetAlertsByAsset(ctx context.Context, assetID string) ([]models.Alert, error) {
	s.alertsMu.RLock()
	defer s.alertsMu.RUnlock()

	alerts := make([]models.Alert, 0)
	for _, alert := range s.alerts {
		if alert.AssetID == assetID {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}

func (s *MemStorage) CreateAlert(ctx context.Context, in models.AlertInsert) (*models.Alert, error) {
	s.alertsMu.Lock()
	defer s.alertsMu.Unlock()

	alert := in.NewRecord(uuid.NewString(), time.Now())
	s.alerts[alert.ID] = alert
	return &alert, nil
}

func (s *MemStorage) UpdateAlert(ctx context.Context, id string, upd models.AlertUpdate) (*models.Alert, error) {
	s.alertsMu.Lock()
	defer s.alertsMu.Unlock()

	alert, ok := s.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}

	upd.Apply(&alert)
	alert.UpdatedAt = time.Now()
	s.alerts[id] = alert
	return &alert, nil
}

func (s *MemStorage) DeleteAlert(ctx context.Context, id string) (bool, error) {
	s.alertsMu.Lock()
	defer s.alertsMu.Unlock()

	if _, ok := s.alerts[id]; !ok {
		return false, nil
	}
	delete(s.alerts, id)
	return true, nil
}

// Performance metric methods

func (s *MemStorage) GetPerformanceMetrics(ctx context.Context, assetID string, limit int) ([]models.PerformanceMetric, error) {
	if limit <= 0 {
		limit = DefaultMetricLimit
	}

	s.metricsMu.RLock()
	metrics := make([]models.PerformanceMetric, 0)
	for _, metric := range s.metrics {
		if metric.AssetID == assetID {
			metrics = append(metrics, metric)
		}
	}
	s.metricsMu.RUnlock()

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Timestamp.After(metrics[j].Timestamp)
	})
	if len(metrics) > limit {
		metrics = metrics[:limit]
	}
	return metrics, nil
}

func (s *MemStorage) CreatePerformanceMetric(ctx context.Context, in models.PerformanceMetricInsert) (*models.PerformanceMetric, error) {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()

	metric := in.NewRecord(uuid.NewString(), time.Now())
	s.metrics[metric.ID] = metric
	return &metric, nil
}

// Dashboard analytics

func (s *MemStorage) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	s.assetsMu.RLock()
	totalAssets := len(s.assets)
	operational := 0
	for _, asset := range s.assets {
		if asset.Status == models.AssetStatusOperational {
			operational++
		}
	}
	s.assetsMu.RUnlock()

	s.tasksMu.RLock()
	activeMaintenance := 0
	for _, task := range s.tasks {
		if models.IsActiveTaskStatus(task.Status) {
			activeMaintenance++
		}
	}
	s.tasksMu.RUnlock()

	s.alertsMu.RLock()
	criticalAlerts := 0
	for _, alert := range s.alerts {
		if alert.Level == models.AlertLevelCritical && alert.Status == models.AlertStatusActive {
			criticalAlerts++
		}
	}
	s.alertsMu.RUnlock()

	// With no assets the fleet is trivially healthy.
	uptimeRate := 100.0
	if totalAssets > 0 {
		uptimeRate = float64(operational) / float64(totalAssets) * 100
	}

	return &models.DashboardMetrics{
		TotalAssets:       totalAssets,
		ActiveMaintenance: activeMaintenance,
		UptimeRate:        math.Round(uptimeRate*10) / 10,
		CriticalAlerts:    criticalAlerts,
	}, nil
}
