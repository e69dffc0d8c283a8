package storage

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assetsentry/assetsentry/internal/models"
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoStorage implements Storage on top of MongoDB. Records keep the same
// generated uuid string ids as MemStorage, stored in `_id`.
type MongoStorage struct {
	users   *mongo.Collection
	assets  *mongo.Collection
	tasks   *mongo.Collection
	alerts  *mongo.Collection
	metrics *mongo.Collection
}

// NewMongoStorage wires a MongoStorage over the named database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{
		users:   db.Collection("users"),
		assets:  db.Collection("assets"),
		tasks:   db.Collection("maintenance_tasks"),
		alerts:  db.Collection("alerts"),
		metrics: db.Collection("performance_metrics"),
	}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var record T
	err := coll.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// User methods

func (s *MongoStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"_id": id})
}

func (s *MongoStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"username": username})
}

func (s *MongoStorage) CreateUser(ctx context.Context, in models.UserInsert) (*models.User, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"username": in.Username})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	user := in.NewRecord(uuid.NewString(), time.Now())
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoStorage) UpdateUser(ctx context.Context, id string, user models.User) error {
	user.ID = id
	result, err := s.users.ReplaceOne(ctx, bson.M{"_id": id}, user)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Asset methods

func (s *MongoStorage) GetAssets(ctx context.Context) ([]models.Asset, error) {
	return findAll[models.Asset](ctx, s.assets, bson.M{})
}

func (s *MongoStorage) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return findOne[models.Asset](ctx, s.assets, bson.M{"_id": id})
}

func (s *MongoStorage) GetAssetByAssetID(ctx context.Context, assetID string) (*models.Asset, error) {
	return findOne[models.Asset](ctx, s.assets, bson.M{"asset_id": assetID})
}

func (s *MongoStorage) CreateAsset(ctx context.Context, in models.AssetInsert) (*models.Asset, error) {
	count, err := s.assets.CountDocuments(ctx, bson.M{"asset_id": in.AssetID})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateAssetID
	}

	asset := in.NewRecord(uuid.NewString(), time.Now())
	if _, err := s.assets.InsertOne(ctx, asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *MongoStorage) UpdateAsset(ctx context.Context, id string, upd models.AssetUpdate) (*models.Asset, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.AssetID != nil && *upd.AssetID != asset.AssetID {
		count, err := s.assets.CountDocuments(ctx, bson.M{"asset_id": *upd.AssetID})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDuplicateAssetID
		}
	}

	upd.Apply(asset)
	asset.UpdatedAt = time.Now()
	if _, err := s.assets.ReplaceOne(ctx, bson.M{"_id": id}, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *MongoStorage) DeleteAsset(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteOne(ctx, s.assets, id)
	if err != nil || !deleted {
		return false, err
	}

	// Cascade to dependent records.
	byAsset := bson.M{"asset_id": id}
	if _, err := s.tasks.DeleteMany(ctx, byAsset); err != nil {
		return true, err
	}
	if _, err := s.alerts.DeleteMany(ctx, byAsset); err != nil {
		return true, err
	}
	if _, err := s.metrics.DeleteMany(ctx, byAsset); err != nil {
		return true, err
	}
	return true, nil
}

// Maintenance task methods

func (s *MongoStorage) GetMaintenanceTasks(ctx context.Context) ([]models.MaintenanceTask, error) {
	return findAll[models.MaintenanceTask](ctx, s.tasks, bson.M{})
}

func (s *MongoStorage) GetMaintenanceTask(ctx context.Context, id string) (*models.MaintenanceTask, error) {
	return findOne[models.MaintenanceTask](ctx, s.tasks, bson.M{"_id": id})
}

func (s *MongoStorage) GetMaintenanceTasksByAsset(ctx context.Context, assetID string) ([]models.MaintenanceTask, error) {
	return findAll[models.MaintenanceTask](ctx, s.tasks, bson.M{"asset_id": assetID})
}

func (s *MongoStorage) CreateMaintenanceTask(ctx context.Context, in models.MaintenanceTaskInsert) (*models.MaintenanceTask, error) {
	task := in.NewRecord(uuid.NewString(), time.Now())
	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *MongoStorage) UpdateMaintenanceTask(ctx context.Context, id string, upd models.MaintenanceTaskUpdate) (*models.MaintenanceTask, error) {
	task, err := s.GetMaintenanceTask(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(task)
	task.UpdatedAt = time.Now()
	if _, err := s.tasks.ReplaceOne(ctx, bson.M{"_id": id}, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *MongoStorage) DeleteMaintenanceTask(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, s.tasks, id)
}

// Alert methods

func (s *MongoStorage) GetAlerts(ctx context.Context) ([]models.Alert, error) {
	return findAll[models.Alert](ctx, s.alerts, bson.M{})
}

func (s *MongoStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	return findOne[models.Alert](ctx, s.alerts, bson.M{"_id": id})
}

func (s *MongoStorage) GetActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	return findAll[models.Alert](ctx, s.alerts, bson.M{"status": models.AlertStatusActive})
}

func (s *MongoStorage) GetAlertsByAsset(ctx context.Context, assetID string) ([]models.Alert, error) {
	return findAll[models.Alert](ctx, s.alerts, bson.M{"asset_id": assetID})
}

func (s *MongoStorage) CreateAlert(ctx context.Context, in models.AlertInsert) (*models.Alert, error) {
	alert := in.NewRecord(uuid.NewString(), time.Now())
	if _, err := s.alerts.InsertOne(ctx, alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s *MongoStorage) UpdateAlert(ctx context.Context, id string, upd models.AlertUpdate) (*models.Alert, error) {
	alert, err := s.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(alert)
	alert.UpdatedAt = time.Now()
	if _, err := s.alerts.ReplaceOne(ctx, bson.M{"_id": id}, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *MongoStorage) DeleteAlert(ctx context.Context, id string) (bool, error) {
	return deleteOne(ctx, s.alerts, id)
}

// Performance metric methods

func (s *MongoStorage) GetPerformanceMetrics(ctx context.Context, assetID string, limit int) ([]models.PerformanceMetric, error) {
	if limit <= 0 {
		limit = DefaultMetricLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	return findAll[models.PerformanceMetric](ctx, s.metrics, bson.M{"asset_id": assetID}, opts)
}

func (s *MongoStorage) CreatePerformanceMetric(ctx context.Context, in models.PerformanceMetricInsert) (*models.PerformanceMetric, error) {
	metric := in.NewRecord(uuid.NewString(), time.Now())
	if _, err := s.metrics.InsertOne(ctx, metric); err != nil {
		return nil, err
	}
	return &metric, nil
}

// Dashboard analytics

func (s *MongoStorage) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	totalAssets, err := s.assets.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	operational, err := s.assets.CountDocuments(ctx, bson.M{"status": models.AssetStatusOperational})
	if err != nil {
		return nil, err
	}
	activeMaintenance, err := s.tasks.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": []models.TaskStatus{models.TaskStatusScheduled, models.TaskStatusInProgress}},
	})
	if err != nil {
		return nil, err
	}
	criticalAlerts, err := s.alerts.CountDocuments(ctx, bson.M{
		"level":  models.AlertLevelCritical,
		"status": models.AlertStatusActive,
	})
	if err != nil {
		return nil, err
	}

	uptimeRate := 100.0
	if totalAssets > 0 {
		uptimeRate = float64(operational) / float64(totalAssets) * 100
	}

	return &models.DashboardMetrics{
		TotalAssets:       int(totalAssets),
		ActiveMaintenance: int(activeMaintenance),
		UptimeRate:        math.Round(uptimeRate*10) / 10,
		CriticalAlerts:    int(criticalAlerts),
	}, nil
}
