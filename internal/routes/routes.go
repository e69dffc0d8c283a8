// Package routes wires the HTTP API onto a gorilla/mux router.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/assetsentry/assetsentry/internal/auth"
	"github.com/assetsentry/assetsentry/internal/handlers"
	"github.com/assetsentry/assetsentry/internal/storage"
)

// Register mounts every API endpoint on the router.
func Register(router *mux.Router, store storage.Storage, authService *auth.Service) {
	dashboard := handlers.NewDashboardHandler(store)
	assets := handlers.NewAssetHandler(store)
	maintenance := handlers.NewMaintenanceHandler(store)
	alerts := handlers.NewAlertHandler(store)
	metrics := handlers.NewMetricHandler(store)
	authH := handlers.NewAuthHandler(authService, store)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Auth
	router.HandleFunc("/api/auth/login", authH.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", authH.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/profile", authH.GetProfile).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/profile", authH.UpdateProfile).Methods(http.MethodPut)
	router.HandleFunc("/api/auth/password", authH.ChangePassword).Methods(http.MethodPost)

	// Dashboard
	router.HandleFunc("/api/dashboard/metrics", dashboard.Metrics).Methods(http.MethodGet)

	// Assets
	router.HandleFunc("/api/assets", assets.List).Methods(http.MethodGet)
	router.HandleFunc("/api/assets", assets.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/assets/tag/{assetId}", assets.GetByTag).Methods(http.MethodGet)
	router.HandleFunc("/api/assets/{id}", assets.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/assets/{id}", assets.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/assets/{id}", assets.Delete).Methods(http.MethodDelete)

	// Maintenance tasks
	router.HandleFunc("/api/maintenance", maintenance.List).Methods(http.MethodGet)
	router.HandleFunc("/api/maintenance", maintenance.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/maintenance/asset/{assetId}", maintenance.ListByAsset).Methods(http.MethodGet)
	router.HandleFunc("/api/maintenance/{id}", maintenance.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/maintenance/{id}", maintenance.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/maintenance/{id}", maintenance.Delete).Methods(http.MethodDelete)

	// Alerts
	router.HandleFunc("/api/alerts", alerts.List).Methods(http.MethodGet)
	router.HandleFunc("/api/alerts", alerts.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/alerts/active", alerts.ListActive).Methods(http.MethodGet)
	router.HandleFunc("/api/alerts/asset/{assetId}", alerts.ListByAsset).Methods(http.MethodGet)
	router.HandleFunc("/api/alerts/{id}", alerts.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/alerts/{id}", alerts.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/alerts/{id}", alerts.Delete).Methods(http.MethodDelete)

	// Performance metrics
	router.HandleFunc("/api/metrics", metrics.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/metrics/{assetId}", metrics.ListForAsset).Methods(http.MethodGet)
}
