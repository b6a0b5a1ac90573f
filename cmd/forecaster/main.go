package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/storm-forecast-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/storm-forecast-service/internal/adapter/kafka"
	"github.com/couchcryptid/storm-forecast-service/internal/adapter/mapbox"
	"github.com/couchcryptid/storm-forecast-service/internal/config"
	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/forecast"
	"github.com/couchcryptid/storm-forecast-service/internal/model"
	"github.com/couchcryptid/storm-forecast-service/internal/observability"
	"github.com/couchcryptid/storm-forecast-service/internal/pipeline"
	"github.com/couchcryptid/storm-forecast-service/internal/region"
)

// classifierSpread is the probability mass the wind classifier assigns to
// neighbouring categories when FORECAST_MODEL is steering.
const classifierSpread = 0.1

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("service failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	regions, err := loadRegions(cfg.CoastalRegionsFile)
	if err != nil {
		return err
	}
	logger.Info("coastal regions loaded", "count", len(regions.Regions()), "file", cfg.CoastalRegionsFile)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, cfg.MapboxRateLimit, metrics, logger)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return err
		}
		defer cached.Close()
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled",
			"cache_size", cfg.MapboxCacheSize,
			"timeout", cfg.MapboxTimeout,
			"rate_limit", cfg.MapboxRateLimit,
		)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	positions, intensity, err := model.Build(cfg.ForecastModel, float64(cfg.ForecastStepHours), classifierSpread)
	if err != nil {
		return err
	}
	logger.Info("forecast model selected", "model", cfg.ForecastModel)

	clock := clockwork.NewRealClock()
	engine := forecast.NewEngine(
		positions,
		intensity,
		regions,
		logger,
		forecast.WithClock(clock),
		forecast.WithMaxHorizon(cfg.ForecastMaxHorizonHours),
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(engine, geocoder, pipeline.RunSettings{
		HorizonHours:       cfg.ForecastHorizonHours,
		StepHours:          cfg.ForecastStepHours,
		Seed:               cfg.ForecastSeed,
		Perturbation:       cfg.ForecastPerturbation,
		PriorLookbackHours: cfg.PriorLookbackHours,
	}, clock, metrics, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	regionsReady := httpadapter.ReadinessFunc(func(context.Context) error {
		return regions.Ready()
	})
	srv := httpadapter.NewServer(cfg.HTTPAddr, map[string]httpadapter.ReadinessChecker{
		"pipeline": p,
		"regions":  regionsReady,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return p.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	runErr := g.Wait()

	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
	return runErr
}

func loadRegions(path string) (*region.Registry, error) {
	if path == "" {
		return region.Default(), nil
	}
	return region.LoadFile(path)
}
