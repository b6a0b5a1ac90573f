package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/forecast"
	"github.com/couchcryptid/storm-forecast-service/internal/observability"
)

// Forecaster runs a single forecast. *forecast.Engine implements it.
type Forecaster interface {
	Run(initial domain.FeatureVector, cfg forecast.RunConfig) (domain.ForecastResult, error)
}

// RunSettings are the per-run parameters applied to every observation.
type RunSettings struct {
	HorizonHours       int
	StepHours          int
	Seed               uint64
	Perturbation       bool
	PriorLookbackHours int
}

// ForecastTransformer implements Transformer: it parses an observation, runs
// the forecast engine and enriches coastal threats with place names.
type ForecastTransformer struct {
	engine   Forecaster
	geocoder domain.Geocoder
	settings RunSettings
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewTransformer creates a ForecastTransformer. Pass a nil geocoder to disable
// place enrichment.
func NewTransformer(engine Forecaster, geocoder domain.Geocoder, settings RunSettings, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *ForecastTransformer {
	return &ForecastTransformer{
		engine:   engine,
		geocoder: geocoder,
		settings: settings,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
}

func (t *ForecastTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.ForecastResult, error) {
	obs, err := domain.ParseObservation(raw)
	if err != nil {
		return domain.ForecastResult{}, err
	}
	initial, err := obs.FeatureVector()
	if err != nil {
		return domain.ForecastResult{}, fmt.Errorf("storm %s: %w", obs.StormID, err)
	}

	cfg := forecast.RunConfig{
		HorizonHours:       t.settings.HorizonHours,
		StepHours:          t.settings.StepHours,
		StartTime:          obs.ObservedAt,
		StormID:            obs.StormID,
		PriorLookbackHours: t.settings.PriorLookbackHours,
	}
	if t.settings.Perturbation {
		cfg.Source = rand.NewPCG(t.settings.Seed, ObservationSeed(obs))
	}

	start := t.clock.Now()
	result, err := t.engine.Run(initial, cfg)
	t.metrics.ForecastDuration.Observe(t.clock.Since(start).Seconds())
	if err != nil {
		return domain.ForecastResult{}, fmt.Errorf("storm %s: %w", obs.StormID, err)
	}

	result.Threats = domain.EnrichThreatsWithPlaces(ctx, result.Threats, t.geocoder, t.logger)
	for _, threat := range result.Threats {
		t.metrics.ThreatRecords.WithLabelValues(string(threat.ThreatLevel)).Inc()
	}
	result.ProcessedAt = t.clock.Now().UTC()

	t.logger.Debug("forecast produced",
		"storm_id", result.StormID,
		"run_id", result.RunID,
		"points", len(result.Points),
		"threats", len(result.Threats),
		"max_threat_level", result.MaxThreatLevel(),
	)
	return result, nil
}

// ObservationSeed derives a stream selector from the storm and fix time, so
// a redelivered observation reproduces its forecast exactly.
func ObservationSeed(obs domain.Observation) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(obs.StormID)
	_, _ = d.WriteString(obs.ObservedAt.UTC().Format(time.RFC3339Nano))
	return d.Sum64()
}
