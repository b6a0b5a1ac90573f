package domain

import (
	"math"

	"github.com/couchcryptid/storm-forecast-service/internal/geomath"
)

// EarthRotationRate is Omega in rad/s.
const EarthRotationRate = 7.272e-5

// betaDriftFactor scales the Coriolis parameter into the beta-drift feature.
const betaDriftFactor = 0.1

// FeatureNames lists the model features in the order returned by
// FeatureVector.Values. Trained model coefficients are laid out in this order.
var FeatureNames = []string{
	"current_lat",
	"current_lon",
	"prior_lat",
	"prior_lon",
	"max_wind_speed",
	"central_pressure",
	"pressure_gradient",
	"sea_surface_temp",
	"upper_level_divergence",
	"wind_shear",
	"relative_humidity",
	"coriolis_parameter",
	"steering_flow_u",
	"steering_flow_v",
	"atmospheric_instability",
	"season_factor",
	"ocean_heat_content",
	"land_distance",
	"beta_drift",
	"time_of_day",
}

// FeatureVector is the kinematic and environmental state of a storm at one
// instant. It is a value type: every update returns a new vector and the
// receiver is left untouched.
type FeatureVector struct {
	CurrentLat             float64 `json:"current_lat"`
	CurrentLon             float64 `json:"current_lon"`
	PriorLat               float64 `json:"prior_lat"`
	PriorLon               float64 `json:"prior_lon"`
	MaxWindKmh             float64 `json:"max_wind_speed"`
	CentralPressureHPa     float64 `json:"central_pressure"`
	PressureGradient       float64 `json:"pressure_gradient"`
	SeaSurfaceTempC        float64 `json:"sea_surface_temp"`
	UpperLevelDivergence   float64 `json:"upper_level_divergence"`
	WindShear              float64 `json:"wind_shear"`
	RelativeHumidity       float64 `json:"relative_humidity"`
	Coriolis               float64 `json:"coriolis_parameter"`
	SteeringU              float64 `json:"steering_flow_u"`
	SteeringV              float64 `json:"steering_flow_v"`
	AtmosphericInstability float64 `json:"atmospheric_instability"`
	SeasonFactor           float64 `json:"season_factor"`
	OceanHeatContent       float64 `json:"ocean_heat_content"`
	LandDistanceKm         float64 `json:"land_distance"`
	BetaDrift              float64 `json:"beta_drift"`
	TimeOfDay              float64 `json:"time_of_day"`
}

// Values returns the features in FeatureNames order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.CurrentLat,
		f.CurrentLon,
		f.PriorLat,
		f.PriorLon,
		f.MaxWindKmh,
		f.CentralPressureHPa,
		f.PressureGradient,
		f.SeaSurfaceTempC,
		f.UpperLevelDivergence,
		f.WindShear,
		f.RelativeHumidity,
		f.Coriolis,
		f.SteeringU,
		f.SteeringV,
		f.AtmosphericInstability,
		f.SeasonFactor,
		f.OceanHeatContent,
		f.LandDistanceKm,
		f.BetaDrift,
		f.TimeOfDay,
	}
}

// Validate reports the first feature that is NaN or infinite as missing.
func (f FeatureVector) Validate() error {
	for i, v := range f.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &MissingFeatureError{Field: FeatureNames[i]}
		}
	}
	return nil
}

// SteeringMagnitude returns |(u, v)| in m/s.
func (f FeatureVector) SteeringMagnitude() float64 {
	return math.Hypot(f.SteeringU, f.SteeringV)
}

// Normalized clips latitudes, wraps longitudes, wraps the time of day into
// [0, 24) and recomputes the latitude-derived features.
func (f FeatureVector) Normalized() FeatureVector {
	f.CurrentLat = geomath.ClampLat(f.CurrentLat)
	f.CurrentLon = geomath.WrapLon(f.CurrentLon)
	f.PriorLat = geomath.ClampLat(f.PriorLat)
	f.PriorLon = geomath.WrapLon(f.PriorLon)
	f.TimeOfDay = WrapHour(f.TimeOfDay)
	f.Coriolis = CoriolisParameter(f.CurrentLat)
	f.BetaDrift = f.Coriolis * betaDriftFactor
	return f
}

// MovedTo shifts the current position into the prior slot and places the
// storm at (lat, lon).
func (f FeatureVector) MovedTo(lat, lon float64) FeatureVector {
	f.PriorLat = f.CurrentLat
	f.PriorLon = f.CurrentLon
	f.CurrentLat = lat
	f.CurrentLon = lon
	return f.Normalized()
}

// WithPrior replaces the prior position.
func (f FeatureVector) WithPrior(lat, lon float64) FeatureVector {
	f.PriorLat = lat
	f.PriorLon = lon
	return f.Normalized()
}

// WithWindShear replaces the wind shear.
func (f FeatureVector) WithWindShear(shear float64) FeatureVector {
	f.WindShear = shear
	return f
}

// AdvancedBy moves the time of day forward by hours, wrapping at 24.
func (f FeatureVector) AdvancedBy(hours float64) FeatureVector {
	f.TimeOfDay = WrapHour(f.TimeOfDay + hours)
	return f
}

// CoriolisParameter returns f = 2*Omega*sin(lat).
func CoriolisParameter(lat float64) float64 {
	return 2 * EarthRotationRate * math.Sin(lat*math.Pi/180)
}

// WrapHour maps an hour value into [0, 24).
func WrapHour(h float64) float64 {
	w := math.Mod(h, 24)
	if w < 0 {
		w += 24
	}
	if w >= 24 {
		w = 0
	}
	return w
}
