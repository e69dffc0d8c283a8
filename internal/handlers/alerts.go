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

// AlertHandler serves the alert endpoints.
type AlertHandler struct {
	store storage.Storage
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(store storage.Storage) *AlertHandler {
	return &AlertHandler{store: store}
}

// List handles GET /api/alerts
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.GetAlerts(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list alerts")
		respondError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// ListActive handles GET /api/alerts/active
func (h *AlertHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.GetActiveAlerts(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list active alerts")
		respondError(w, http.StatusInternalServerError, "Failed to fetch active alerts")
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// ListByAsset handles GET /api/alerts/asset/{assetId}
func (h *AlertHandler) ListByAsset(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.GetAlertsByAsset(r.Context(), mux.Vars(r)["assetId"])
	if err != nil {
		log.WithError(err).Error("failed to list alerts for asset")
		respondError(w, http.StatusInternalServerError, "Failed to fetch alerts for asset")
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// Get handles GET /api/alerts/{id}
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	alert, err := h.store.GetAlert(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Alert not found")
			return
		}
		log.WithError(err).Error("failed to fetch alert")
		respondError(w, http.StatusInternalServerError, "Failed to fetch alert")
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

// Create handles POST /api/alerts
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AlertInsert
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(in); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid alert data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create alert")
		return
	}

	alert, err := h.store.CreateAlert(r.Context(), in)
	if err != nil {
		log.WithError(err).Error("failed to create alert")
		respondError(w, http.StatusInternalServerError, "Failed to create alert")
		return
	}
	respondJSON(w, http.StatusCreated, alert)
}

// Update handles PUT /api/alerts/{id}
func (h *AlertHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.AlertUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(upd); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid alert data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update alert")
		return
	}

	alert, err := h.store.UpdateAlert(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Alert not found")
			return
		}
		log.WithError(err).Error("failed to update alert")
		respondError(w, http.StatusInternalServerError, "Failed to update alert")
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

// Delete handles DELETE /api/alerts/{id}
func (h *AlertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteAlert(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.WithError(err).Error("failed to delete alert")
		respondError(w, http.StatusInternalServerError, "Failed to delete alert")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Alert not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
