package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/assetsentry/assetsentry/internal/models"
	"github.com/assetsentry/assetsentry/internal/storage"
	"github.com/assetsentry/assetsentry/internal/validate"
)

// MaintenanceHandler serves the maintenance task endpoints.
type MaintenanceHandler struct {
	store storage.Storage
}

// NewMaintenanceHandler creates a new maintenance task handler
func NewMaintenanceHandler(store storage.Storage) *MaintenanceHandler {
	return &MaintenanceHandler{store: store}
}

// List handles GET /api/maintenance
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.GetMaintenanceTasks(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list maintenance tasks")
		respondError(w, http.StatusInternalServerError, "Failed to fetch maintenance tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/maintenance/{id}
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.store.GetMaintenanceTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Maintenance task not found")
			return
		}
		log.WithError(err).Error("failed to fetch maintenance task")
		respondError(w, http.StatusInternalServerError, "Failed to fetch maintenance task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// ListByAsset handles GET /api/maintenance/asset/{assetId}
func (h *MaintenanceHandler) ListByAsset(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.GetMaintenanceTasksByAsset(r.Context(), mux.Vars(r)["assetId"])
	if err != nil {
		log.WithError(err).Error("failed to list maintenance tasks for asset")
		respondError(w, http.StatusInternalServerError, "Failed to fetch maintenance tasks for asset")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Create handles POST /api/maintenance
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.MaintenanceTaskInsert
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(in); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid maintenance task data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create maintenance task")
		return
	}

	task, err := h.store.CreateMaintenanceTask(r.Context(), in)
	if err != nil {
		log.WithError(err).Error("failed to create maintenance task")
		respondError(w, http.StatusInternalServerError, "Failed to create maintenance task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/maintenance/{id}
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.MaintenanceTaskUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(upd); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid maintenance task data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update maintenance task")
		return
	}

	task, err := h.store.UpdateMaintenanceTask(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Maintenance task not found")
			return
		}
		log.WithError(err).Error("failed to update maintenance task")
		respondError(w, http.StatusInternalServerError, "Failed to update maintenance task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/maintenance/{id}
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteMaintenanceTask(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.WithError(err).Error("failed to delete maintenance task")
		respondError(w, http.StatusInternalServerError, "Failed to delete maintenance task")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Maintenance task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
