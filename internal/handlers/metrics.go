package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/assetsentry/assetsentry/internal/models"
	"github.com/assetsentry/assetsentry/internal/storage"
	"github.com/assetsentry/assetsentry/internal/validate"
)

// MetricHandler serves the performance metric endpoints.
type MetricHandler struct {
	store storage.Storage
}

// NewMetricHandler creates a new performance metric handler
func NewMetricHandler(store storage.Storage) *MetricHandler {
	return &MetricHandler{store: store}
}

// ListForAsset handles GET /api/metrics/{assetId}?limit=N, returning the most
// recent readings first.
func (h *MetricHandler) ListForAsset(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	metrics, err := h.store.GetPerformanceMetrics(r.Context(), mux.Vars(r)["assetId"], limit)
	if err != nil {
		log.WithError(err).Error("failed to fetch performance metrics")
		respondError(w, http.StatusInternalServerError, "Failed to fetch performance metrics")
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}

// Create handles POST /api/metrics
func (h *MetricHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PerformanceMetricInsert
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(in); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid performance metric data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to record performance metric")
		return
	}

	metric, err := h.store.CreatePerformanceMetric(r.Context(), in)
	if err != nil {
		log.WithError(err).Error("failed to record performance metric")
		respondError(w, http.StatusInternalServerError, "Failed to record performance metric")
		return
	}
	respondJSON(w, http.StatusCreated, metric)
}
