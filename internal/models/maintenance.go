package models

import (
	"time"
)

// MaintenanceType classifies why a task exists.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
	MaintenanceEmergency  MaintenanceType = "emergency"
)

// TaskPriority represents the urgency of a maintenance task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// TaskStatus represents the lifecycle state of a maintenance task.
type TaskStatus string

const (
	TaskStatusScheduled  TaskStatus = "scheduled"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsActiveTaskStatus reports whether a task still counts toward the active
// maintenance workload.
func IsActiveTaskStatus(s TaskStatus) bool {
	return s == TaskStatusScheduled || s == TaskStatusInProgress
}

// MaintenanceTask represents a scheduled or completed work item against an asset.
type MaintenanceTask struct {
	ID                string          `bson:"_id,omitempty" json:"id"`
	AssetID           string          `bson:"asset_id" json:"asset_id"`
	Title             string          `bson:"title" json:"title"`
	Description       string          `bson:"description,omitempty" json:"description,omitempty"`
	Type              MaintenanceType `bson:"type" json:"type"`
	Priority          TaskPriority    `bson:"priority" json:"priority"`
	Status            TaskStatus      `bson:"status" json:"status"`
	AssignedTo        string          `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	ScheduledDate     *time.Time      `bson:"scheduled_date,omitempty" json:"scheduled_date,omitempty"`
	CompletedDate     *time.Time      `bson:"completed_date,omitempty" json:"completed_date,omitempty"`
	EstimatedDuration int             `bson:"estimated_duration,omitempty" json:"estimated_duration,omitempty"` // minutes
	ActualDuration    int             `bson:"actual_duration,omitempty" json:"actual_duration,omitempty"`       // minutes
	Cost              float64         `bson:"cost,omitempty" json:"cost,omitempty"`
	Notes             string          `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `bson:"updated_at" json:"updated_at"`
}

// MaintenanceTaskInsert carries the caller-supplied fields for creating a task.
type MaintenanceTaskInsert struct {
	AssetID           string          `json:"asset_id" validate:"required"`
	Title             string          `json:"title" validate:"required"`
	Description       string          `json:"description,omitempty"`
	Type              MaintenanceType `json:"type" validate:"required,oneof=preventive corrective emergency"`
	Priority          TaskPriority    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status            TaskStatus      `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	AssignedTo        string          `json:"assigned_to,omitempty"`
	ScheduledDate     *time.Time      `json:"scheduled_date,omitempty"`
	CompletedDate     *time.Time      `json:"completed_date,omitempty"`
	EstimatedDuration int             `json:"estimated_duration,omitempty" validate:"omitempty,gte=0"`
	ActualDuration    int             `json:"actual_duration,omitempty" validate:"omitempty,gte=0"`
	Cost              float64         `json:"cost,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// NewRecord builds a full MaintenanceTask from an insert payload, applying
// schema defaults (priority medium, status scheduled).
func (in MaintenanceTaskInsert) NewRecord(id string, now time.Time) MaintenanceTask {
	task := MaintenanceTask{
		ID:                id,
		AssetID:           in.AssetID,
		Title:             in.Title,
		Description:       in.Description,
		Type:              in.Type,
		Priority:          in.Priority,
		Status:            in.Status,
		AssignedTo:        in.AssignedTo,
		ScheduledDate:     in.ScheduledDate,
		CompletedDate:     in.CompletedDate,
		EstimatedDuration: in.EstimatedDuration,
		ActualDuration:    in.ActualDuration,
		Cost:              in.Cost,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if task.Status == "" {
		task.Status = TaskStatusScheduled
	}
	return task
}

// MaintenanceTaskUpdate carries a partial update. Nil fields leave the record untouched.
type MaintenanceTaskUpdate struct {
	AssetID           *string          `json:"asset_id,omitempty"`
	Title             *string          `json:"title,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Type              *MaintenanceType `json:"type,omitempty" validate:"omitempty,oneof=preventive corrective emergency"`
	Priority          *TaskPriority    `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Status            *TaskStatus      `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	AssignedTo        *string          `json:"assigned_to,omitempty"`
	ScheduledDate     *time.Time       `json:"scheduled_date,omitempty"`
	CompletedDate     *time.Time       `json:"completed_date,omitempty"`
	EstimatedDuration *int             `json:"estimated_duration,omitempty" validate:"omitempty,gte=0"`
	ActualDuration    *int             `json:"actual_duration,omitempty" validate:"omitempty,gte=0"`
	Cost              *float64         `json:"cost,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

// Apply merges the update onto an existing task.
func (u MaintenanceTaskUpdate) Apply(t *MaintenanceTask) {
	if u.AssetID != nil {
		t.AssetID = *u.AssetID
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.AssignedTo != nil {
		t.AssignedTo = *u.AssignedTo
	}
	if u.ScheduledDate != nil {
		t.ScheduledDate = u.ScheduledDate
	}
	if u.CompletedDate != nil {
		t.CompletedDate = u.CompletedDate
	}
	if u.EstimatedDuration != nil {
		t.EstimatedDuration = *u.EstimatedDuration
	}
	if u.ActualDuration != nil {
		t.ActualDuration = *u.ActualDuration
	}
	if u.Cost != nil {
		t.Cost = *u.Cost
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
}
