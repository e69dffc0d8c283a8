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

// AssetHandler serves the asset CRUD endpoints.
type AssetHandler struct {
	store storage.Storage
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(store storage.Storage) *AssetHandler {
	return &AssetHandler{store: store}
}

// List handles GET /api/assets
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.store.GetAssets(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list assets")
		respondError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// Get handles GET /api/assets/{id}
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.store.GetAsset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		log.WithError(err).Error("failed to fetch asset")
		respondError(w, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// GetByTag handles GET /api/assets/tag/{assetId}, looking an asset up by its
// human-readable tag.
func (h *AssetHandler) GetByTag(w http.ResponseWriter, r *http.Request) {
	asset, err := h.store.GetAssetByAssetID(r.Context(), mux.Vars(r)["assetId"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		log.WithError(err).Error("failed to fetch asset by tag")
		respondError(w, http.StatusInternalServerError, "Failed to fetch asset")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// Create handles POST /api/assets
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInsert
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(in); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid asset data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create asset")
		return
	}

	asset, err := h.store.CreateAsset(r.Context(), in)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateAssetID) {
			respondError(w, http.StatusConflict, "Asset tag already in use")
			return
		}
		log.WithError(err).Error("failed to create asset")
		respondError(w, http.StatusInternalServerError, "Failed to create asset")
		return
	}
	respondJSON(w, http.StatusCreated, asset)
}

// Update handles PUT /api/assets/{id}
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.AssetUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validate.Struct(upd); err != nil {
		if ve, ok := validate.AsValidationError(err); ok {
			respondValidationError(w, "Invalid asset data", ve)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update asset")
		return
	}

	asset, err := h.store.UpdateAsset(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respondError(w, http.StatusNotFound, "Asset not found")
		case errors.Is(err, storage.ErrDuplicateAssetID):
			respondError(w, http.StatusConflict, "Asset tag already in use")
		default:
			log.WithError(err).Error("failed to update asset")
			respondError(w, http.StatusInternalServerError, "Failed to update asset")
		}
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// Delete handles DELETE /api/assets/{id}
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteAsset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		log.WithError(err).Error("failed to delete asset")
		respondError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
