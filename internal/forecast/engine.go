// Package forecast runs the iterative track-and-intensity forecast: it
// repeatedly queries the position and intensity predictors, evolves the
// storm state, and derives trajectory, coastal threat and advisory output
// from the finished track.
package forecast

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/geomath"
)

const (
	// DefaultStepHours is the forecast cadence when RunConfig.StepHours is 0.
	DefaultStepHours = 6
	// DefaultMaxHorizonHours bounds the forecast loop.
	DefaultMaxHorizonHours = 240

	probabilityTolerance = 1e-6
	shearWalkSigma       = 1.0
)

// RunConfig parameterizes a single forecast run.
type RunConfig struct {
	HorizonHours int
	StepHours    int       // 0 means DefaultStepHours
	StartTime    time.Time // zero means the engine clock's now
	// Source drives the wind shear random walk. It is consumed by the run,
	// so reuse a source only to continue a sequence. Nil disables the walk.
	Source  rand.Source
	StormID string
	// PriorLookbackHours, when positive, takes the prior position from the
	// track that many hours back (rounded down to whole steps) instead of
	// from the previous step.
	PriorLookbackHours int
}

// Engine composes the forecast stages. It holds no per-run state and is safe
// for concurrent use when its predictors are.
type Engine struct {
	positions   domain.PositionPredictor
	intensity   domain.IntensityClassifier
	threats     *ThreatAssessor
	uncertainty UncertaintyEstimator
	clock       clockwork.Clock
	logger      *slog.Logger
	maxHorizon  int
	newRunID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for issue and default start times.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithMaxHorizon overrides DefaultMaxHorizonHours.
func WithMaxHorizon(hours int) Option {
	return func(e *Engine) { e.maxHorizon = hours }
}

// WithUncertaintyEstimator replaces the default uncertainty model.
func WithUncertaintyEstimator(u UncertaintyEstimator) Option {
	return func(e *Engine) { e.uncertainty = u }
}

// WithRunIDGenerator replaces the random UUID run identifiers.
func WithRunIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newRunID = fn }
}

// NewEngine creates an Engine. regions may be nil to disable threat assessment.
func NewEngine(positions domain.PositionPredictor, intensity domain.IntensityClassifier, regions domain.CoastalRegionRegistry, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		positions:   positions,
		intensity:   intensity,
		threats:     NewThreatAssessor(regions, logger),
		uncertainty: DefaultUncertaintyEstimator(),
		clock:       clockwork.NewRealClock(),
		logger:      logger,
		maxHorizon:  DefaultMaxHorizonHours,
		newRunID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run forecasts the track of a storm from its initial state. Failures are
// atomic: on error the returned result is zero and no partial track escapes.
func (e *Engine) Run(initial domain.FeatureVector, cfg RunConfig) (domain.ForecastResult, error) {
	if err := initial.Validate(); err != nil {
		return domain.ForecastResult{}, err
	}
	step := cfg.StepHours
	if step == 0 {
		step = DefaultStepHours
	}
	horizon, err := e.resolveHorizon(cfg.HorizonHours, step)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	issuedAt := e.clock.Now().UTC()
	start := cfg.StartTime
	if start.IsZero() {
		start = issuedAt
	}

	evolver := FeatureEvolver{}
	if cfg.Source != nil {
		evolver.Perturbation = NewGaussianWalk(cfg.Source, shearWalkSigma)
	}

	var history *positionHistory
	if lookbackSteps := cfg.PriorLookbackHours / step; lookbackSteps > 0 {
		history = newPositionHistory(lookbackSteps + 1)
	}

	state := initial.Normalized()
	if history != nil {
		history.push(domain.Geo{Lat: state.CurrentLat, Lon: state.CurrentLon})
	}

	points := make([]domain.ForecastPoint, 0, horizon/step)
	for h := step; h <= horizon; h += step {
		point, err := e.predictStep(state, h, start)
		if err != nil {
			return domain.ForecastResult{}, &domain.PredictionFailure{StepHour: h, Err: err}
		}
		points = append(points, point)

		state = evolver.Evolve(state, point.PredictedLat, point.PredictedLon, float64(step))
		if history != nil {
			history.push(domain.Geo{Lat: state.CurrentLat, Lon: state.CurrentLon})
			if prior, ok := history.oldest(); ok {
				state = state.WithPrior(prior.Lat, prior.Lon)
			}
		}
	}

	threats := e.threats.Assess(points)
	result := domain.ForecastResult{
		RunID:        e.newRunID(),
		StormID:      cfg.StormID,
		IssuedAt:     issuedAt,
		StartTime:    start,
		HorizonHours: horizon,
		StepHours:    step,
		Points:       points,
		Analysis:     Analyze(points, initial),
		Threats:      threats,
		Confidence:   AssessConfidence(initial),
	}
	result.Recommendations = Recommendations(result.MaxThreatLevel(), points)
	return result, nil
}

// resolveHorizon validates the horizon and rounds it down to a whole number
// of steps.
func (e *Engine) resolveHorizon(horizon, step int) (int, error) {
	invalid := func(reason string) error {
		return &domain.InvalidHorizonError{HorizonHours: horizon, StepHours: step, Reason: reason}
	}
	switch {
	case step <= 0:
		return 0, invalid("step must be positive")
	case horizon <= 0:
		return 0, invalid("horizon must be positive")
	case horizon > e.maxHorizon:
		return 0, invalid(fmt.Sprintf("exceeds maximum of %dh", e.maxHorizon))
	case horizon < step:
		return 0, invalid("shorter than one step")
	}

	rounded := horizon - horizon%step
	if rounded != horizon {
		e.logger.Info("forecast horizon rounded down to a whole number of steps",
			"requested_hours", horizon,
			"step_hours", step,
			"horizon_hours", rounded,
		)
	}
	return rounded, nil
}

// predictStep queries both predictors for the point hour h ahead and checks
// their output contracts.
func (e *Engine) predictStep(state domain.FeatureVector, h int, start time.Time) (domain.ForecastPoint, error) {
	lat, lon, err := e.positions.PredictPosition(state)
	if err != nil {
		return domain.ForecastPoint{}, fmt.Errorf("predict position: %w", err)
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return domain.ForecastPoint{}, fmt.Errorf("predict position: non-finite coordinate (%v, %v)", lat, lon)
	}
	lat, lon = geomath.ClampLat(lat), geomath.WrapLon(lon)

	category, probs, err := e.intensity.ClassifyIntensity(state)
	if err != nil {
		return domain.ForecastPoint{}, fmt.Errorf("classify intensity: %w", err)
	}
	if err := checkClassification(category, probs); err != nil {
		return domain.ForecastPoint{}, fmt.Errorf("classify intensity: %w", err)
	}

	return domain.ForecastPoint{
		ForecastHour:           h,
		PredictedLat:           lat,
		PredictedLon:           lon,
		IntensityCategory:      category,
		IntensityProbabilities: maps.Clone(probs),
		UncertaintyRadiusKm:    e.uncertainty.Estimate(state, h),
		Timestamp:              start.Add(time.Duration(h) * time.Hour),
	}, nil
}

var errEmptyProbabilities = errors.New("no category probabilities")

func checkClassification(category domain.IntensityCategory, probs map[domain.IntensityCategory]float64) error {
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	if len(probs) == 0 {
		return errEmptyProbabilities
	}
	var sum float64
	for c, p := range probs {
		if !c.Valid() {
			return fmt.Errorf("probability for unknown category %q", c)
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("probability %v for %s out of range", p, c)
		}
		sum += p
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("probabilities sum to %v", sum)
	}
	return nil
}
