package storage

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/assetsentry/assetsentry/internal/models"
)

// DefaultAdminPassword is the seeded admin credential, overridable via env in main.
const DefaultAdminPassword = "admin123"

func timePtr(t time.Time) *time.Time { return &t }

// Seed loads the default fixture into an empty store: one admin user, three
// assets, three active alerts, and one scheduled task. Intended for the
// in-memory backend on startup and for tests.
func Seed(ctx context.Context, s Storage, adminPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin, err := s.CreateUser(ctx, models.UserInsert{
		Username:     "admin",
		PasswordHash: string(hash),
		Name:         "John Smith",
		Role:         "maintenance_manager",
		Email:        "john.smith@assetsentry.com",
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	assets := []models.AssetInsert{
		{
			AssetID:         "AS001",
			Name:            "Centrifugal Pump A1",
			Type:            "Pump System",
			Status:          models.AssetStatusOperational,
			Location:        "Building A - Floor 1",
			Description:     "Primary water circulation pump for cooling system",
			Manufacturer:    "FlowTech Industries",
			Model:           "FT-2500X",
			SerialNumber:    "FT2500X-2024-001",
			InstallDate:     timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			LastMaintenance: timePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
			NextMaintenance: timePtr(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
			Performance:     floatPtr(85.0),
			Specifications: map[string]interface{}{
				"power":     "15kW",
				"flow_rate": "250 L/min",
				"pressure":  "3.5 bar",
			},
		},
		{
			AssetID:         "AS002",
			Name:            "Generator Unit B3",
			Type:            "Generator",
			Status:          models.AssetStatusMaintenance,
			Location:        "Building B - Basement",
			Description:     "Backup power generator for emergency situations",
			Manufacturer:    "PowerGen Corp",
			Model:           "PG-500E",
			SerialNumber:    "PG500E-2024-003",
			InstallDate:     timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
			LastMaintenance: timePtr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
			NextMaintenance: timePtr(time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC)),
			Performance:     floatPtr(60.0),
			Specifications: map[string]interface{}{
				"power_output": "500kW",
				"fuel_type":    "Diesel",
				"runtime":      "24 hours",
			},
		},
		{
			AssetID:         "AS003",
			Name:            "HVAC System C2",
			Type:            "HVAC",
			Status:          models.AssetStatusOperational,
			Location:        "Building C - Rooftop",
			Description:     "Climate control system for office areas",
			Manufacturer:    "ClimateControl Systems",
			Model:           "CC-HVAC-1000",
			SerialNumber:    "CC1000-2024-007",
			InstallDate:     timePtr(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
			LastMaintenance: timePtr(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)),
			NextMaintenance: timePtr(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)),
			Performance:     floatPtr(92.0),
			Specifications: map[string]interface{}{
				"cooling_capacity":  "100 tons",
				"heating_capacity":  "150kW",
				"efficiency_rating": "SEER 15",
			},
		},
	}

	created := make([]*models.Asset, 0, len(assets))
	for _, in := range assets {
		asset, err := s.CreateAsset(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to seed asset %s: %w", in.AssetID, err)
		}
		created = append(created, asset)
	}

	alerts := []models.AlertInsert{
		{
			AssetID:     created[0].ID,
			Title:       "Pump System A1 - Pressure Drop",
			Description: "Critical pressure drop detected in main circulation pump",
			Level:       models.AlertLevelCritical,
			TriggerType: "performance",
			Metadata:    map[string]interface{}{"pressure_reading": "2.1 bar", "threshold": "3.0 bar"},
		},
		{
			AssetID:     created[1].ID,
			Title:       "Generator B3 - Maintenance Due",
			Description: "Scheduled maintenance window approaching in 2 days",
			Level:       models.AlertLevelWarning,
			TriggerType: "maintenance",
			Metadata:    map[string]interface{}{"due_date": "2024-04-25", "days_remaining": 2},
		},
		{
			AssetID:     created[2].ID,
			Title:       "HVAC System C2 - Efficiency Update",
			Description: "Energy efficiency improved by 8% after recent optimization",
			Level:       models.AlertLevelInfo,
			TriggerType: "performance",
			Metadata:    map[string]interface{}{"efficiency_improvement": "8%", "current_rating": "92%"},
		},
	}
	for _, in := range alerts {
		if _, err := s.CreateAlert(ctx, in); err != nil {
			return fmt.Errorf("failed to seed alert %q: %w", in.Title, err)
		}
	}

	_, err = s.CreateMaintenanceTask(ctx, models.MaintenanceTaskInsert{
		AssetID:           created[1].ID,
		Title:             "Monthly Generator Inspection",
		Description:       "Routine monthly inspection and maintenance of backup generator",
		Type:              models.MaintenancePreventive,
		Priority:          models.PriorityMedium,
		AssignedTo:        admin.ID,
		ScheduledDate:     timePtr(time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC)),
		EstimatedDuration: 120,
		Cost:              250.0,
		Notes:             "Check fuel levels, test startup sequence, inspect filters",
	})
	if err != nil {
		return fmt.Errorf("failed to seed maintenance task: %w", err)
	}

	// A short metric history for the pump so charts have something to show.
	now := time.Now()
	history := []float64{88.5, 87.2, 85.0}
	for i, value := range history {
		ts := now.Add(-time.Duration(len(history)-i) * time.Hour)
		_, err := s.CreatePerformanceMetric(ctx, models.PerformanceMetricInsert{
			AssetID:    created[0].ID,
			MetricType: "performance",
			Value:      value,
			Unit:       "percent",
			Timestamp:  &ts,
		})
		if err != nil {
			return fmt.Errorf("failed to seed performance metric: %w", err)
		}
	}

	return nil
}

func floatPtr(f float64) *float64 { return &f }
