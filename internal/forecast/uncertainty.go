package forecast

import (
	"math"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

// UncertaintyEstimator grows a position-uncertainty radius with lead time and
// widens it for states that are known to forecast poorly.
type UncertaintyEstimator struct {
	BaseKm          float64
	GrowthKmPerHour float64
	MaxKm           float64

	HighShear          float64 // wind shear above this widens the radius
	HighShearFactor    float64
	WeakSteering       float64 // steering magnitude below this (m/s) widens the radius
	WeakSteeringFactor float64
	WeakSystemWind     float64 // max wind below this (km/h) widens the radius
	WeakSystemFactor   float64
}

// DefaultUncertaintyEstimator returns the standard growth model:
// 25 km + 2 km/h, capped at 500 km.
func DefaultUncertaintyEstimator() UncertaintyEstimator {
	return UncertaintyEstimator{
		BaseKm:             25,
		GrowthKmPerHour:    2,
		MaxKm:              500,
		HighShear:          15,
		HighShearFactor:    1.5,
		WeakSteering:       3,
		WeakSteeringFactor: 1.3,
		WeakSystemWind:     80,
		WeakSystemFactor:   1.2,
	}
}

// Estimate returns the uncertainty radius in km for a point forecastHour
// hours ahead of state.
func (u UncertaintyEstimator) Estimate(state domain.FeatureVector, forecastHour int) float64 {
	radius := u.BaseKm + u.GrowthKmPerHour*float64(forecastHour)
	if state.WindShear > u.HighShear {
		radius *= u.HighShearFactor
	}
	if state.SteeringMagnitude() < u.WeakSteering {
		radius *= u.WeakSteeringFactor
	}
	if state.MaxWindKmh < u.WeakSystemWind {
		radius *= u.WeakSystemFactor
	}
	return math.Min(math.Max(radius, 0), u.MaxKm)
}
