package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ForecastPoint is one step of a forecast track.
type ForecastPoint struct {
	ForecastHour           int                           `json:"forecast_hour"`
	PredictedLat           float64                       `json:"predicted_lat"`
	PredictedLon           float64                       `json:"predicted_lon"`
	IntensityCategory      IntensityCategory             `json:"intensity_category"`
	IntensityProbabilities map[IntensityCategory]float64 `json:"intensity_probabilities"`
	UncertaintyRadiusKm    float64                       `json:"uncertainty_radius_km"`
	Timestamp              time.Time                     `json:"timestamp"`
}

// MovementPattern classifies the dominant direction of a track.
type MovementPattern string

const (
	MovementNortheastward MovementPattern = "northeastward"
	MovementSoutheastward MovementPattern = "southeastward"
	MovementSouthwestward MovementPattern = "southwestward"
	MovementNorthwestward MovementPattern = "northwestward"
	MovementErratic       MovementPattern = "erratic"
	// MovementUndetermined is reported for tracks with fewer than two points.
	MovementUndetermined MovementPattern = "undetermined"
)

// TrajectoryAnalysis summarizes the geometry of a complete forecast track.
type TrajectoryAnalysis struct {
	TotalDistanceKm        float64         `json:"total_distance_km"`
	AverageSpeedKmh        float64         `json:"average_speed_kmh"`
	AverageBearingDeg      float64         `json:"average_bearing_deg"`
	BearingVariability     float64         `json:"bearing_variability"`
	MovementPattern        MovementPattern `json:"movement_pattern"`
	RecurvatureProbability float64         `json:"recurvature_probability"`
}

// ThreatLevel grades the danger a forecast point poses to a coastline.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "low"
	ThreatModerate ThreatLevel = "moderate"
	ThreatHigh     ThreatLevel = "high"
	ThreatExtreme  ThreatLevel = "extreme"
)

// Rank orders threat levels: low=1 .. extreme=4, unknown=0.
func (l ThreatLevel) Rank() int {
	switch l {
	case ThreatLow:
		return 1
	case ThreatModerate:
		return 2
	case ThreatHigh:
		return 3
	case ThreatExtreme:
		return 4
	default:
		return 0
	}
}

// CoastalThreatRecord is emitted for each forecast point near a populated coast.
type CoastalThreatRecord struct {
	ForecastHour        int               `json:"forecast_hour"`
	Location            Geo               `json:"location"`
	IntensityCategory   IntensityCategory `json:"intensity_category"`
	ThreatLevel         ThreatLevel       `json:"threat_level"`
	UncertaintyRadiusKm float64           `json:"uncertainty_radius_km"`
	EstimatedArrival    time.Time         `json:"estimated_arrival"`
	Region              string            `json:"region,omitempty"`

	// Geocoding enrichment.
	PlaceName        string `json:"place_name,omitempty"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// ConfidenceLevel is the coarse label attached to a forecast.
type ConfidenceLevel string

const (
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceModerate ConfidenceLevel = "moderate"
	ConfidenceLow      ConfidenceLevel = "low"
)

// Confidence is derived from the volatility of the initial state.
type Confidence struct {
	Overall float64            `json:"overall"`
	Factors map[string]float64 `json:"factors"`
	Level   ConfidenceLevel    `json:"level"`
}

// ForecastResult is the complete output of one forecast run.
type ForecastResult struct {
	RunID           string                `json:"run_id"`
	StormID         string                `json:"storm_id,omitempty"`
	IssuedAt        time.Time             `json:"issued_at"`
	StartTime       time.Time             `json:"start_time"`
	HorizonHours    int                   `json:"horizon_hours"`
	StepHours       int                   `json:"step_hours"`
	Points          []ForecastPoint       `json:"points"`
	Analysis        TrajectoryAnalysis    `json:"trajectory_analysis"`
	Threats         []CoastalThreatRecord `json:"coastal_threats"`
	Confidence      Confidence            `json:"confidence"`
	Recommendations []string              `json:"recommendations"`
	ProcessedAt     time.Time             `json:"processed_at"`
}

// MaxThreatLevel returns the most severe threat level in the result, or ""
// when no coastal threat was found.
func (r ForecastResult) MaxThreatLevel() ThreatLevel {
	var worst ThreatLevel
	for _, t := range r.Threats {
		if t.ThreatLevel.Rank() > worst.Rank() {
			worst = t.ThreatLevel
		}
	}
	return worst
}
