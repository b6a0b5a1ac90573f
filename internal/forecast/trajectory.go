package forecast

import (
	"math"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/geomath"
)

const (
	erraticVariabilityDeg = 45
	// A circular standard deviation is unbounded as the bearings cancel out.
	maxBearingVariabilityDeg = 180
)

// Analyze summarizes the geometry of a forecast track. Segment bearings are
// averaged on the circle, so 350° and 10° average to 0°. Recurvature factors
// on latitude and shear come from the initial state.
func Analyze(points []domain.ForecastPoint, initial domain.FeatureVector) domain.TrajectoryAnalysis {
	analysis := domain.TrajectoryAnalysis{
		MovementPattern:        domain.MovementUndetermined,
		RecurvatureProbability: recurvatureProbability(points, initial),
	}
	if len(points) < 2 {
		return analysis
	}

	bearings := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		analysis.TotalDistanceKm += geomath.DistanceKm(a.PredictedLat, a.PredictedLon, b.PredictedLat, b.PredictedLon)
		bearings = append(bearings, geomath.BearingDeg(a.PredictedLat, a.PredictedLon, b.PredictedLat, b.PredictedLon))
	}

	if hours := points[len(points)-1].ForecastHour - points[0].ForecastHour; hours > 0 {
		analysis.AverageSpeedKmh = analysis.TotalDistanceKm / float64(hours)
	}
	analysis.AverageBearingDeg = geomath.CircularMeanDeg(bearings)
	analysis.BearingVariability = math.Min(geomath.CircularStdDevDeg(bearings), maxBearingVariabilityDeg)
	analysis.MovementPattern = movementPattern(analysis.AverageBearingDeg, analysis.BearingVariability)
	return analysis
}

func movementPattern(bearing, variability float64) domain.MovementPattern {
	if variability > erraticVariabilityDeg {
		return domain.MovementErratic
	}
	switch b := geomath.NormalizeDeg(bearing); {
	case b >= 45 && b < 135:
		return domain.MovementNortheastward
	case b >= 135 && b < 225:
		return domain.MovementSoutheastward
	case b >= 225 && b < 315:
		return domain.MovementSouthwestward
	default:
		return domain.MovementNorthwestward
	}
}

func recurvatureProbability(points []domain.ForecastPoint, initial domain.FeatureVector) float64 {
	p := 0.1
	switch {
	case initial.CurrentLat > 25:
		p += 0.3
	case initial.CurrentLat > 20:
		p += 0.1
	}
	if initial.WindShear > 5 && initial.WindShear < 15 {
		p += 0.2
	}
	if n := len(points); n >= 3 && points[n-1].PredictedLat > points[n-3].PredictedLat {
		p += 0.3
	}
	return math.Max(0, math.Min(1, p))
}
