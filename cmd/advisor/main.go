package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"
	"github.com/powerplant/plant-advisor/internal/adapter/httpadapter"
	kafkaadapter "github.com/powerplant/plant-advisor/internal/adapter/kafka"
	"github.com/powerplant/plant-advisor/internal/adapter/mapbox"
	"github.com/powerplant/plant-advisor/internal/adapter/openweather"
	"github.com/powerplant/plant-advisor/internal/adapter/places"
	"github.com/powerplant/plant-advisor/internal/adapter/redis"
	"github.com/powerplant/plant-advisor/internal/adapter/sqlite"
	"github.com/powerplant/plant-advisor/internal/advisor"
	"github.com/powerplant/plant-advisor/internal/config"
	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/powerplant/plant-advisor/internal/observability"
	"github.com/powerplant/plant-advisor/internal/pipeline"
	"github.com/powerplant/plant-advisor/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	validator, err := validation.New()
	if err != nil {
		logger.Error("failed to compile request schema", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := advisor.Deps{
		Clock:               clockwork.NewRealClock(),
		Validator:           validator,
		DefaultLimit:        cfg.RecommendationLimit,
		NurseryRadiusMeters: cfg.PlacesRadiusMeters,
	}
	var checks []sharedobs.ReadinessChecker

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		deps.Geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, cfg.GeocodeCacheTTL, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	if cfg.OpenWeatherAPIKey != "" {
		deps.Weather = openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.WeatherTimeout, metrics, logger)
	} else {
		logger.Info("weather provider disabled, using fallback readings")
	}

	// Places shares the weather provider's timeout.
	if cfg.GoogleMapsAPIKey != "" {
		pc := places.NewClient(cfg.GoogleMapsAPIKey, cfg.WeatherTimeout, metrics, logger)
		deps.Nurseries = pc
		deps.Suggestions = pc
	} else {
		logger.Info("places provider disabled, using fallback listings")
	}

	if cfg.RedisAddr != "" {
		cache := redis.NewRecommendationCache(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RecommendationCacheTTL,
		})
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable at startup", "addr", cfg.RedisAddr, "error", err)
		}
		deps.Cache = cache
		checks = append(checks, httpadapter.ReadinessFunc(cache.Ping))
	}

	if cfg.DatabasePath != "" {
		store, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.InitSchema(ctx); err != nil {
			logger.Error("failed to init schema", "error", err)
			os.Exit(1)
		}
		deps.Store = store
		checks = append(checks, httpadapter.ReadinessFunc(store.Ping))
	}

	deps.Catalog = domain.DefaultCatalog()
	svc := advisor.New(deps, logger, metrics)

	var (
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
		p      *pipeline.Pipeline
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p = pipeline.New(reader, pipeline.NewTransformer(svc, validator), writer, logger, metrics, cfg.BatchSize)
		checks = append(checks, p)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, validator, httpadapter.AllReady(checks...), metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start recommendation pipeline.
	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
