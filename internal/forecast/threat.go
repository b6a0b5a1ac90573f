package forecast

import (
	"log/slog"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

// ThreatAssessor grades forecast points that fall near a populated coast.
type ThreatAssessor struct {
	registry domain.CoastalRegionRegistry
	logger   *slog.Logger
}

// NewThreatAssessor creates a ThreatAssessor. A nil registry yields no threats.
func NewThreatAssessor(registry domain.CoastalRegionRegistry, logger *slog.Logger) *ThreatAssessor {
	return &ThreatAssessor{registry: registry, logger: logger}
}

// Assess returns one record per point near a monitored coastline, in track
// order. A failed registry lookup counts as "not near coast".
func (a *ThreatAssessor) Assess(points []domain.ForecastPoint) []domain.CoastalThreatRecord {
	threats := make([]domain.CoastalThreatRecord, 0)
	if a.registry == nil {
		return threats
	}

	for _, p := range points {
		region, near, err := a.registry.NearPopulatedCoast(p.PredictedLat, p.PredictedLon)
		if err != nil {
			a.logger.Warn("coastal region lookup failed, treating as offshore",
				"error", err,
				"forecast_hour", p.ForecastHour,
				"lat", p.PredictedLat,
				"lon", p.PredictedLon,
			)
			continue
		}
		if !near {
			continue
		}
		threats = append(threats, domain.CoastalThreatRecord{
			ForecastHour:        p.ForecastHour,
			Location:            domain.Geo{Lat: p.PredictedLat, Lon: p.PredictedLon},
			IntensityCategory:   p.IntensityCategory,
			ThreatLevel:         ThreatLevelFor(p.IntensityCategory, p.UncertaintyRadiusKm),
			UncertaintyRadiusKm: p.UncertaintyRadiusKm,
			EstimatedArrival:    p.Timestamp,
			Region:              region,
		})
	}
	return threats
}

// ThreatLevelFor scores a category by its ordinal, adjusted one step down for
// a wide uncertainty radius (> 200 km) and one step up for a tight one
// (< 100 km).
func ThreatLevelFor(category domain.IntensityCategory, uncertaintyKm float64) domain.ThreatLevel {
	score := category.Ordinal()
	switch {
	case uncertaintyKm > 200:
		score--
	case uncertaintyKm < 100:
		score++
	}
	score = max(1, min(score, len(domain.IntensityCategories)))

	switch {
	case score <= 2:
		return domain.ThreatLow
	case score <= 4:
		return domain.ThreatModerate
	case score <= 6:
		return domain.ThreatHigh
	default:
		return domain.ThreatExtreme
	}
}
