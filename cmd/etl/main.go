package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/MiguelCorado/haxkthon-air-quality/internal/adapter/http"
	kafkaadapter "github.com/MiguelCorado/haxkthon-air-quality/internal/adapter/kafka"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/adapter/openweather"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/config"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/observability"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via OPENWEATHER_ENABLED / OPENWEATHER_API_KEY).
	var geocoder domain.Geocoder
	if cfg.OpenWeatherEnabled {
		client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherTimeout, metrics, logger)
		geocoder = openweather.NewCachedGeocoder(client, cfg.OpenWeatherCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("openweathermap geocoding enabled", "cache_size", cfg.OpenWeatherCacheSize, "timeout", cfg.OpenWeatherTimeout)
	} else {
		metrics.GeocodeEnabled.Set(0)
		logger.Info("openweathermap geocoding disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(geocoder, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
