package models

import (
	"time"
)

// PerformanceMetric represents a timestamped numeric observation about an asset.
type PerformanceMetric struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	AssetID    string    `bson:"asset_id" json:"asset_id"`
	MetricType string    `bson:"metric_type" json:"metric_type"` // efficiency, uptime, temperature, pressure, ...
	Value      float64   `bson:"value" json:"value"`
	Unit       string    `bson:"unit" json:"unit"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// PerformanceMetricInsert carries the caller-supplied fields for recording a metric.
type PerformanceMetricInsert struct {
	AssetID    string     `json:"asset_id" validate:"required"`
	MetricType string     `json:"metric_type" validate:"required"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit" validate:"required"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// NewRecord builds a full PerformanceMetric from an insert payload. The
// observation timestamp defaults to the creation time when not supplied.
func (in PerformanceMetricInsert) NewRecord(id string, now time.Time) PerformanceMetric {
	metric := PerformanceMetric{
		ID:         id,
		AssetID:    in.AssetID,
		MetricType: in.MetricType,
		Value:      in.Value,
		Unit:       in.Unit,
		Timestamp:  now,
		CreatedAt:  now,
	}
	if in.Timestamp != nil {
		metric.Timestamp = *in.Timestamp
	}
	return metric
}

// DashboardMetrics is the summary computed fresh on every dashboard request.
type DashboardMetrics struct {
	TotalAssets       int     `json:"total_assets"`
	ActiveMaintenance int     `json:"active_maintenance"`
	UptimeRate        float64 `json:"uptime_rate"`
	CriticalAlerts    int     `json:"critical_alerts"`
}
