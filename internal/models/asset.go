package models

import (
	"time"
)

// AssetStatus represents the operational state of an asset.
type AssetStatus string

const (
	AssetStatusOperational    AssetStatus = "operational"
	AssetStatusMaintenance    AssetStatus = "maintenance"
	AssetStatusOffline        AssetStatus = "offline"
	AssetStatusDecommissioned AssetStatus = "decommissioned"
)

// IsValidAssetStatus checks if an asset status is valid
func IsValidAssetStatus(s AssetStatus) bool {
	switch s {
	case AssetStatusOperational, AssetStatusMaintenance, AssetStatusOffline, AssetStatusDecommissioned:
		return true
	default:
		return false
	}
}

// Asset represents a physical piece of equipment being monitored and maintained.
type Asset struct {
	ID              string                 `bson:"_id,omitempty" json:"id"`
	AssetID         string                 `bson:"asset_id" json:"asset_id"` // human-readable tag, e.g. "AS001"
	Name            string                 `bson:"name" json:"name"`
	Type            string                 `bson:"type" json:"type"`
	Status          AssetStatus            `bson:"status" json:"status"`
	Location        string                 `bson:"location" json:"location"`
	Description     string                 `bson:"description,omitempty" json:"description,omitempty"`
	Manufacturer    string                 `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Model           string                 `bson:"model,omitempty" json:"model,omitempty"`
	SerialNumber    string                 `bson:"serial_number,omitempty" json:"serial_number,omitempty"`
	InstallDate     *time.Time             `bson:"install_date,omitempty" json:"install_date,omitempty"`
	LastMaintenance *time.Time             `bson:"last_maintenance,omitempty" json:"last_maintenance,omitempty"`
	NextMaintenance *time.Time             `bson:"next_maintenance,omitempty" json:"next_maintenance,omitempty"`
	Performance     float64                `bson:"performance" json:"performance"`
	Specifications  map[string]interface{} `bson:"specifications,omitempty" json:"specifications,omitempty"`
	CreatedAt       time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `bson:"updated_at" json:"updated_at"`
}

// AssetInsert carries the caller-supplied fields for creating an asset.
type AssetInsert struct {
	AssetID         string                 `json:"asset_id" validate:"required"`
	Name            string                 `json:"name" validate:"required"`
	Type            string                 `json:"type" validate:"required"`
	Status          AssetStatus            `json:"status" validate:"omitempty,oneof=operational maintenance offline decommissioned"`
	Location        string                 `json:"location" validate:"required"`
	Description     string                 `json:"description,omitempty"`
	Manufacturer    string                 `json:"manufacturer,omitempty"`
	Model           string                 `json:"model,omitempty"`
	SerialNumber    string                 `json:"serial_number,omitempty"`
	InstallDate     *time.Time             `json:"install_date,omitempty"`
	LastMaintenance *time.Time             `json:"last_maintenance,omitempty"`
	NextMaintenance *time.Time             `json:"next_maintenance,omitempty"`
	Performance     *float64               `json:"performance,omitempty"`
	Specifications  map[string]interface{} `json:"specifications,omitempty"`
}

// NewRecord builds a full Asset from an insert payload, applying schema
// defaults (status operational, performance 100).
func (in AssetInsert) NewRecord(id string, now time.Time) Asset {
	asset := Asset{
		ID:              id,
		AssetID:         in.AssetID,
		Name:            in.Name,
		Type:            in.Type,
		Status:          in.Status,
		Location:        in.Location,
		Description:     in.Description,
		Manufacturer:    in.Manufacturer,
		Model:           in.Model,
		SerialNumber:    in.SerialNumber,
		InstallDate:     in.InstallDate,
		LastMaintenance: in.LastMaintenance,
		NextMaintenance: in.NextMaintenance,
		Performance:     100.0,
		Specifications:  in.Specifications,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if asset.Status == "" {
		asset.Status = AssetStatusOperational
	}
	if in.Performance != nil {
		asset.Performance = *in.Performance
	}
	return asset
}

// AssetUpdate carries a partial update. Nil fields leave the record untouched.
type AssetUpdate struct {
	AssetID         *string                `json:"asset_id,omitempty"`
	Name            *string                `json:"name,omitempty"`
	Type            *string                `json:"type,omitempty"`
	Status          *AssetStatus           `json:"status,omitempty" validate:"omitempty,oneof=operational maintenance offline decommissioned"`
	Location        *string                `json:"location,omitempty"`
	Description     *string                `json:"description,omitempty"`
	Manufacturer    *string                `json:"manufacturer,omitempty"`
	Model           *string                `json:"model,omitempty"`
	SerialNumber    *string                `json:"serial_number,omitempty"`
	InstallDate     *time.Time             `json:"install_date,omitempty"`
	LastMaintenance *time.Time             `json:"last_maintenance,omitempty"`
	NextMaintenance *time.Time             `json:"next_maintenance,omitempty"`
	Performance     *float64               `json:"performance,omitempty"`
	Specifications  map[string]interface{} `json:"specifications,omitempty"`
}

// Apply merges the update onto an existing asset. System-managed fields are
// left to the storage layer.
func (u AssetUpdate) Apply(a *Asset) {
	if u.AssetID != nil {
		a.AssetID = *u.AssetID
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Location != nil {
		a.Location = *u.Location
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Manufacturer != nil {
		a.Manufacturer = *u.Manufacturer
	}
	if u.Model != nil {
		a.Model = *u.Model
	}
	if u.SerialNumber != nil {
		a.SerialNumber = *u.SerialNumber
	}
	if u.InstallDate != nil {
		a.InstallDate = u.InstallDate
	}
	if u.LastMaintenance != nil {
		a.LastMaintenance = u.LastMaintenance
	}
	if u.NextMaintenance != nil {
		a.NextMaintenance = u.NextMaintenance
	}
	if u.Performance != nil {
		a.Performance = *u.Performance
	}
	if u.Specifications != nil {
		a.Specifications = u.Specifications
	}
}
