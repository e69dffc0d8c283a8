package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/assetsentry/assetsentry/internal/storage"
)

// DashboardHandler serves the dashboard summary endpoint.
type DashboardHandler struct {
	store storage.Storage
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store storage.Storage) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Metrics handles GET /api/dashboard/metrics
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.store.GetDashboardMetrics(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to compute dashboard metrics")
		respondError(w, http.StatusInternalServerError, "Failed to fetch dashboard metrics")
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}
