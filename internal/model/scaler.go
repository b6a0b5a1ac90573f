package model

import (
	"fmt"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Scaler standardizes features as (x - mean) / scale.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

func (s Scaler) validate() error {
	n := len(domain.FeatureNames)
	if len(s.Mean) != n || len(s.Scale) != n {
		return fmt.Errorf("scaler: want %d means and scales, got %d and %d", n, len(s.Mean), len(s.Scale))
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("scaler: zero scale for %s", domain.FeatureNames[i])
		}
	}
	return nil
}

// Transform returns the standardized feature values of state.
func (s Scaler) Transform(state domain.FeatureVector) []float64 {
	z := make([]float64, len(s.Mean))
	floats.SubTo(z, state.Values(), s.Mean)
	floats.Div(z, s.Scale)
	return z
}
