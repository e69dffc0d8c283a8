package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/assetsentry/assetsentry/internal/auth"
	"github.com/assetsentry/assetsentry/internal/config"
	"github.com/assetsentry/assetsentry/internal/ingest"
	"github.com/assetsentry/assetsentry/internal/middleware"
	"github.com/assetsentry/assetsentry/internal/routes"
	"github.com/assetsentry/assetsentry/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()
	store, cleanup, err := buildStorage(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}
	defer cleanup()

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	if cfg.MQTTBroker != "" {
		ingestor := ingest.New(store, ingest.Config{
			Broker:         cfg.MQTTBroker,
			ClientID:       cfg.MQTTClientID,
			AlertThreshold: cfg.MetricAlertThreshold,
		})
		if err := ingestor.Start(); err != nil {
			log.WithError(err).Fatal("failed to start metric ingestor")
		}
		defer ingestor.Stop()
		log.WithField("broker", cfg.MQTTBroker).Info("metric ingestor started")
	}

	router := mux.NewRouter()
	routes.Register(router, store, authService)

	authMw := middleware.NewAuthMiddleware(authService)
	rateLimit := middleware.NewRateLimitMiddleware()
	router.Use(middleware.Logging)
	router.Use(middleware.Recovery)
	router.Use(middleware.CORS)
	router.Use(rateLimit.RateLimit(300, 60))
	router.Use(authMw.Authenticate)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

// buildStorage selects the storage backend. The in-memory backend is seeded
// with the default fixture so the dashboard has data on first boot.
func buildStorage(ctx context.Context, cfg config.Config) (storage.Storage, func(), error) {
	switch cfg.StorageBackend {
	case "mongo":
		client, err := storage.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to MongoDB")
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Disconnect(disconnectCtx)
		}
		return storage.NewMongoStorage(client.Database(cfg.MongoDB)), cleanup, nil
	default:
		store := storage.NewMemStorage()
		adminPassword := cfg.AdminPassword
		if adminPassword == "" {
			adminPassword = storage.DefaultAdminPassword
		}
		if err := storage.Seed(ctx, store, adminPassword); err != nil {
			return nil, nil, err
		}
		log.Info("using seeded in-memory storage")
		return store, func() {}, nil
	}
}
