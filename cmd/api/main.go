package main

import (
	"log"
	"time"

	"shipment-tracker/internal/core/cache"
	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/httpclient"
	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/core/server"
	trackingadapter "shipment-tracker/internal/features/tracking/adapters"
	trackinghandler "shipment-tracker/internal/features/tracking/handler"
	"shipment-tracker/internal/features/tracking/ports"
	trackingservice "shipment-tracker/internal/features/tracking/service"
	watchlistadapters "shipment-tracker/internal/features/watchlist/adapters"
	watchlisthandler "shipment-tracker/internal/features/watchlist/handler"
	watchlistservice "shipment-tracker/internal/features/watchlist/service"

	"go.uber.org/zap"
)

// @title Shipment Tracker API
// @version 1.0
// @description Tracks shipments across Blue Dart, DTDC and Delhivery and manages a persistent watchlist.
// @contact.name API Support
// @contact.email support@shipmenttracker.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	client := httpclient.NewClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)

	providers := []ports.TrackingProvider{
		trackingadapter.NewBlueDartAdapter(cfg.Couriers.BlueDartURL, client),
		trackingadapter.NewDTDCAdapter(cfg.Couriers.DTDCURL, client),
		trackingadapter.NewDelhiveryAdapter(cfg.Couriers.DelhiveryURL, client),
	}

	var recordCache ports.RecordCache
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
		if err != nil {
			l.Fatal("Failed to connect record cache", zap.Error(err))
		}
		defer redisCache.Close()
		recordCache = trackingadapter.NewRedisRecordCache(
			redisCache,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		)
		l.Info("Record cache enabled", zap.Int("ttl_seconds", cfg.Cache.TTLSeconds))
	}

	trackingSvc := trackingservice.NewTrackingService(providers, recordCache)
	trackingHdl := trackinghandler.NewTrackingHandler(trackingSvc)

	watchlistRepo := watchlistadapters.NewFileRepository(cfg.Watchlist.Path)
	watchlistSvc := watchlistservice.NewWatchlistService(watchlistRepo, trackingSvc)
	watchlistHdl := watchlisthandler.NewWatchlistHandler(watchlistSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/tracking/:number", trackingHdl.Track)
	srv.App.Get("/watchlist", watchlistHdl.List)
	srv.App.Post("/watchlist", watchlistHdl.Add)
	srv.App.Post("/watchlist/refresh", watchlistHdl.Refresh)
	srv.App.Delete("/watchlist/:id", watchlistHdl.Remove)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
