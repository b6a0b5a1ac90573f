package model

import (
	"errors"
	"math"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/geomath"
)

const (
	defaultLeadHours      = 6.0
	defaultBetaDriftSpeed = 1.5 // m/s
	earthRadiusMeters     = geomath.EarthRadiusKm * 1000
	// minCosLat keeps the longitude step finite near the poles.
	minCosLat = 0.01
)

// SteeringPredictor advects the storm along its steering flow, adding a
// poleward-westward beta drift of BetaDriftSpeed.
type SteeringPredictor struct {
	LeadHours      float64
	BetaDriftSpeed float64
}

// NewSteeringPredictor returns a predictor for the given lead time. A
// non-positive lead falls back to 6 hours.
func NewSteeringPredictor(leadHours float64) *SteeringPredictor {
	if leadHours <= 0 {
		leadHours = defaultLeadHours
	}
	return &SteeringPredictor{
		LeadHours:      leadHours,
		BetaDriftSpeed: defaultBetaDriftSpeed,
	}
}

// PredictPosition implements domain.PositionPredictor.
func (p *SteeringPredictor) PredictPosition(state domain.FeatureVector) (float64, float64, error) {
	u, v := state.SteeringU, state.SteeringV

	// Beta drift pushes northwest in the northern hemisphere and southwest
	// in the southern; none on the equator.
	hemi := 0.0
	switch {
	case state.CurrentLat > 0:
		hemi = 1
	case state.CurrentLat < 0:
		hemi = -1
	}
	drift := p.BetaDriftSpeed * math.Sqrt2 / 2
	u -= drift * math.Abs(hemi)
	v += drift * hemi

	dt := p.LeadHours * 3600
	cosLat := math.Max(minCosLat, math.Cos(state.CurrentLat*math.Pi/180))

	lat := state.CurrentLat + 180/math.Pi*v*dt/earthRadiusMeters
	lon := state.CurrentLon + 180/math.Pi*u*dt/(earthRadiusMeters*cosLat)

	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return 0, 0, errors.New("steering predictor: non-finite position")
	}
	return geomath.ClampLat(lat), geomath.WrapLon(lon), nil
}
