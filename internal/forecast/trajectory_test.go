package forecast

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/geomath"
)

func track(coords ...[2]float64) []domain.ForecastPoint {
	points := make([]domain.ForecastPoint, len(coords))
	for i, c := range coords {
		points[i] = domain.ForecastPoint{ForecastHour: 6 * (i + 1), PredictedLat: c[0], PredictedLon: c[1]}
	}
	return points
}

func TestAnalyze_MovementPattern(t *testing.T) {
	tests := []struct {
		name   string
		points []domain.ForecastPoint
		want   domain.MovementPattern
	}{
		{"due east", track([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{0, 2}), domain.MovementNortheastward},
		{"due south", track([2]float64{0, 0}, [2]float64{-1, 0}, [2]float64{-2, 0}), domain.MovementSoutheastward},
		{"due west", track([2]float64{0, 0}, [2]float64{0, -1}, [2]float64{0, -2}), domain.MovementSouthwestward},
		{"due north", track([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}), domain.MovementNorthwestward},
		{"back and forth", track([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{0, 0}, [2]float64{0, 1}), domain.MovementErratic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.points, domain.FeatureVector{})
			assert.Equal(t, tt.want, got.MovementPattern)
		})
	}
}

func TestAnalyze_DistanceAndSpeed(t *testing.T) {
	points := track([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{0, 2})
	got := Analyze(points, domain.FeatureVector{})

	oneDegree := geomath.DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 2*oneDegree, got.TotalDistanceKm, 1e-6)
	assert.InDelta(t, 2*oneDegree/12, got.AverageSpeedKmh, 1e-6)
	assert.InDelta(t, 90, got.AverageBearingDeg, 1e-6)
	assert.InDelta(t, 0, got.BearingVariability, 1e-6)
}

func TestAnalyze_BearingsAveragedOnTheCircle(t *testing.T) {
	// Zig-zag north: segment bearings near 350° and 10°.
	points := track([2]float64{0, 0}, [2]float64{1, -0.1763}, [2]float64{2, 0})
	got := Analyze(points, domain.FeatureVector{})

	offNorth := math.Min(got.AverageBearingDeg, 360-got.AverageBearingDeg)
	assert.Less(t, offNorth, 1.0)
	assert.Less(t, got.BearingVariability, 45.0)
	assert.Equal(t, domain.MovementNorthwestward, got.MovementPattern)
}

func TestAnalyze_OpposingSegmentsAreErratic(t *testing.T) {
	points := track([2]float64{0, 0}, [2]float64{0, 1}, [2]float64{0, 0})
	got := Analyze(points, domain.FeatureVector{})

	assert.Equal(t, domain.MovementErratic, got.MovementPattern)
	assert.Equal(t, 180.0, got.BearingVariability)
}

func TestAnalyze_ShortTrack(t *testing.T) {
	for _, points := range [][]domain.ForecastPoint{nil, track([2]float64{10, 10})} {
		got := Analyze(points, domain.FeatureVector{})
		assert.Equal(t, domain.MovementUndetermined, got.MovementPattern)
		assert.Zero(t, got.TotalDistanceKm)
		assert.Zero(t, got.AverageSpeedKmh)
		assert.InDelta(t, 0.1, got.RecurvatureProbability, 1e-12)
	}
}

func TestAnalyze_Recurvature(t *testing.T) {
	rising := track([2]float64{20, -60}, [2]float64{21, -61}, [2]float64{22, -61})
	falling := track([2]float64{20, -60}, [2]float64{19, -61}, [2]float64{18, -61})

	tests := []struct {
		name    string
		initial domain.FeatureVector
		points  []domain.ForecastPoint
		want    float64
	}{
		{"subtropical moderate shear rising", domain.FeatureVector{CurrentLat: 26, WindShear: 10}, rising, 0.9},
		{"subtropical rising high shear", domain.FeatureVector{CurrentLat: 26, WindShear: 20}, rising, 0.7},
		{"mid latitude falling", domain.FeatureVector{CurrentLat: 21, WindShear: 20}, falling, 0.2},
		{"tropics falling moderate shear", domain.FeatureVector{CurrentLat: 15, WindShear: 8}, falling, 0.3},
		{"tropics nothing", domain.FeatureVector{CurrentLat: 10, WindShear: 2}, falling, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.points, tt.initial)
			assert.InDelta(t, tt.want, got.RecurvatureProbability, 1e-12)
		})
	}
}

func TestAnalyze_RecurvatureAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 500 {
		n := rng.IntN(6)
		points := make([]domain.ForecastPoint, n)
		for i := range points {
			points[i] = domain.ForecastPoint{ForecastHour: 6 * (i + 1), PredictedLat: rng.Float64()*180 - 90, PredictedLon: rng.Float64()*360 - 180}
		}
		initial := domain.FeatureVector{CurrentLat: rng.Float64()*180 - 90, WindShear: rng.Float64() * 40}

		got := Analyze(points, initial)
		assert.GreaterOrEqual(t, got.RecurvatureProbability, 0.0)
		assert.LessOrEqual(t, got.RecurvatureProbability, 1.0)
		assert.GreaterOrEqual(t, got.AverageBearingDeg, 0.0)
		assert.Less(t, got.AverageBearingDeg, 360.0)
	}
}
