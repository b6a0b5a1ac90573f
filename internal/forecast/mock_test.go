package forecast

import (
	"errors"
	"io"
	"log/slog"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// hurricaneState is a category 1 storm south-east of Puerto Rico.
func hurricaneState() domain.FeatureVector {
	return domain.FeatureVector{
		CurrentLat:         18.5,
		CurrentLon:         -65.0,
		PriorLat:           18.2,
		PriorLon:           -64.4,
		MaxWindKmh:         150,
		CentralPressureHPa: 970,
		SeaSurfaceTempC:    28.5,
		WindShear:          6,
		RelativeHumidity:   75,
		SteeringU:          -8,
		SteeringV:          3,
		TimeOfDay:          12,
	}.Normalized()
}

// mockPredictor moves the storm by a fixed offset and records the states
// it was called with. It fails on call failOn when failOn > 0.
type mockPredictor struct {
	dLat, dLon float64
	shearGain  float64 // extra latitude per unit of wind shear
	failOn     int
	lat, lon   float64 // returned verbatim when set
	fixed      bool

	calls []domain.FeatureVector
}

var errModelUnavailable = errors.New("model unavailable")

func (m *mockPredictor) PredictPosition(state domain.FeatureVector) (float64, float64, error) {
	m.calls = append(m.calls, state)
	if m.failOn > 0 && len(m.calls) == m.failOn {
		return 0, 0, errModelUnavailable
	}
	if m.fixed {
		return m.lat, m.lon, nil
	}
	return state.CurrentLat + m.dLat + m.shearGain*state.WindShear, state.CurrentLon + m.dLon, nil
}

type mockClassifier struct {
	category domain.IntensityCategory
	probs    map[domain.IntensityCategory]float64
	err      error
}

func (m mockClassifier) ClassifyIntensity(domain.FeatureVector) (domain.IntensityCategory, map[domain.IntensityCategory]float64, error) {
	return m.category, m.probs, m.err
}

// mockRegistry marks everything west of westOf as coastal, or fails with err.
type mockRegistry struct {
	westOf float64
	err    error
}

func (m mockRegistry) NearPopulatedCoast(_, lon float64) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	if lon < m.westOf {
		return "test-coast", true, nil
	}
	return "", false, nil
}

type constStep float64

func (c constStep) Step() float64 { return float64(c) }
