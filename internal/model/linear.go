package model

import (
	"fmt"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"github.com/couchcryptid/storm-forecast-service/internal/geomath"
	"gonum.org/v1/gonum/mat"
)

// LinearPositionCoefficients are the fitted parameters of a pair of
// standard-scaled linear regressors, one per coordinate.
type LinearPositionCoefficients struct {
	Scaler       Scaler
	LatWeights   []float64
	LonWeights   []float64
	LatIntercept float64
	LonIntercept float64
}

// LinearPositionModel predicts the next position as intercept + w·z.
type LinearPositionModel struct {
	scaler       Scaler
	latWeights   *mat.VecDense
	lonWeights   *mat.VecDense
	latIntercept float64
	lonIntercept float64
}

// NewLinearPositionModel validates the coefficient dimensions against
// domain.FeatureNames.
func NewLinearPositionModel(c LinearPositionCoefficients) (*LinearPositionModel, error) {
	if err := c.Scaler.validate(); err != nil {
		return nil, fmt.Errorf("linear position model: %w", err)
	}
	n := len(domain.FeatureNames)
	if len(c.LatWeights) != n || len(c.LonWeights) != n {
		return nil, fmt.Errorf("linear position model: want %d weights per coordinate, got %d and %d",
			n, len(c.LatWeights), len(c.LonWeights))
	}
	return &LinearPositionModel{
		scaler:       c.Scaler,
		latWeights:   mat.NewVecDense(n, append([]float64(nil), c.LatWeights...)),
		lonWeights:   mat.NewVecDense(n, append([]float64(nil), c.LonWeights...)),
		latIntercept: c.LatIntercept,
		lonIntercept: c.LonIntercept,
	}, nil
}

// PredictPosition implements domain.PositionPredictor.
func (m *LinearPositionModel) PredictPosition(state domain.FeatureVector) (float64, float64, error) {
	z := mat.NewVecDense(len(domain.FeatureNames), m.scaler.Transform(state))
	lat := m.latIntercept + mat.Dot(m.latWeights, z)
	lon := m.lonIntercept + mat.Dot(m.lonWeights, z)
	return geomath.ClampLat(lat), geomath.WrapLon(lon), nil
}
