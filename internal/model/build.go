package model

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

// Model kinds accepted by Build.
const (
	KindSteering = "steering"
	KindLinear   = "linear"
)

// Kinds lists every kind Build accepts.
var Kinds = []string{KindSteering, KindLinear}

const (
	referenceLatitude = 20.0
	centroidSigmaKmh  = 15.0
)

// Build returns the predictor pair for kind. "steering" pairs SteeringPredictor
// with WindThresholdClassifier{Spread: spread}; "linear" runs the same physics
// through LinearPositionModel and SoftmaxClassifier with coefficients from
// SteeringLinearCoefficients and WindCentroidCoefficients.
func Build(kind string, leadHours, spread float64) (domain.PositionPredictor, domain.IntensityClassifier, error) {
	switch kind {
	case KindSteering:
		if spread < 0 || spread >= 1 {
			return nil, nil, fmt.Errorf("classifier spread %v outside [0, 1)", spread)
		}
		return NewSteeringPredictor(leadHours), WindThresholdClassifier{Spread: spread}, nil
	case KindLinear:
		positions, err := NewLinearPositionModel(SteeringLinearCoefficients(leadHours, referenceLatitude))
		if err != nil {
			return nil, nil, err
		}
		intensity, err := NewSoftmaxClassifier(WindCentroidCoefficients(centroidSigmaKmh))
		if err != nil {
			return nil, nil, err
		}
		return positions, intensity, nil
	default:
		return nil, nil, fmt.Errorf("unknown model %q: must be one of %s", kind, strings.Join(Kinds, ", "))
	}
}
