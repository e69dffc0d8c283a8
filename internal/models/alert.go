package models

import (
	"time"
)

// AlertLevel represents the severity of an alert.
type AlertLevel string

const (
	AlertLevelInfo     AlertLevel = "info"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

// AlertStatus represents the handling state of an alert.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// Alert represents a notification of an abnormal or noteworthy condition,
// optionally tied to an asset.
type Alert struct {
	ID             string                 `bson:"_id,omitempty" json:"id"`
	AssetID        string                 `bson:"asset_id,omitempty" json:"asset_id,omitempty"`
	Title          string                 `bson:"title" json:"title"`
	Description    string                 `bson:"description" json:"description"`
	Level          AlertLevel             `bson:"level" json:"level"`
	Status         AlertStatus            `bson:"status" json:"status"`
	TriggerType    string                 `bson:"trigger_type" json:"trigger_type"` // performance, maintenance, system, ...
	Metadata       map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	AcknowledgedBy string                 `bson:"acknowledged_by,omitempty" json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time             `bson:"acknowledged_at,omitempty" json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time             `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	CreatedAt      time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `bson:"updated_at" json:"updated_at"`
}

// AlertInsert carries the caller-supplied fields for creating an alert.
type AlertInsert struct {
	AssetID        string                 `json:"asset_id,omitempty"`
	Title          string                 `json:"title" validate:"required"`
	Description    string                 `json:"description" validate:"required"`
	Level          AlertLevel             `json:"level" validate:"required,oneof=info warning critical"`
	Status         AlertStatus            `json:"status" validate:"omitempty,oneof=active acknowledged resolved"`
	TriggerType    string                 `json:"trigger_type" validate:"required"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	AcknowledgedBy string                 `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time             `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time             `json:"resolved_at,omitempty"`
}

// NewRecord builds a full Alert from an insert payload, applying the schema
// default status "active".
func (in AlertInsert) NewRecord(id string, now time.Time) Alert {
	alert := Alert{
		ID:             id,
		AssetID:        in.AssetID,
		Title:          in.Title,
		Description:    in.Description,
		Level:          in.Level,
		Status:         in.Status,
		TriggerType:    in.TriggerType,
		Metadata:       in.Metadata,
		AcknowledgedBy: in.AcknowledgedBy,
		AcknowledgedAt: in.AcknowledgedAt,
		ResolvedAt:     in.ResolvedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if alert.Status == "" {
		alert.Status = AlertStatusActive
	}
	return alert
}

// AlertUpdate carries a partial update. Nil fields leave the record untouched.
type AlertUpdate struct {
	AssetID        *string                `json:"asset_id,omitempty"`
	Title          *string                `json:"title,omitempty"`
	Description    *string                `json:"description,omitempty"`
	Level          *AlertLevel            `json:"level,omitempty" validate:"omitempty,oneof=info warning critical"`
	Status         *AlertStatus           `json:"status,omitempty" validate:"omitempty,oneof=active acknowledged resolved"`
	TriggerType    *string                `json:"trigger_type,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	AcknowledgedBy *string                `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time             `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time             `json:"resolved_at,omitempty"`
}

// Apply merges the update onto an existing alert.
func (u AlertUpdate) Apply(a *Alert) {
	if u.AssetID != nil {
		a.AssetID = *u.AssetID
	}
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Level != nil {
		a.Level = *u.Level
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.TriggerType != nil {
		a.TriggerType = *u.TriggerType
	}
	if u.Metadata != nil {
		a.Metadata = u.Metadata
	}
	if u.AcknowledgedBy != nil {
		a.AcknowledgedBy = *u.AcknowledgedBy
	}
	if u.AcknowledgedAt != nil {
		a.AcknowledgedAt = u.AcknowledgedAt
	}
	if u.ResolvedAt != nil {
		a.ResolvedAt = u.ResolvedAt
	}
}
