package model

import (
	"math"
	"slices"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

// categoryCentroids are the sustained winds (km/h) each category's softmax
// row is centred on. Consecutive midpoints fall on the CategoryForWind
// thresholds 63, 119, 154, 178, 209 and 252.
var categoryCentroids = []float64{35, 91, 147, 161, 195, 223, 281}

// IdentityScaler leaves every feature unscaled.
func IdentityScaler() Scaler {
	n := len(domain.FeatureNames)
	s := Scaler{Mean: make([]float64, n), Scale: make([]float64, n)}
	for i := range s.Scale {
		s.Scale[i] = 1
	}
	return s
}

func featureIndex(name string) int {
	i := slices.Index(domain.FeatureNames, name)
	if i < 0 {
		panic("model: unknown feature " + name)
	}
	return i
}

// SteeringLinearCoefficients linearizes SteeringPredictor around
// referenceLat: the longitude step uses cos(referenceLat) instead of the
// storm's own latitude, and beta drift is the northern-hemisphere constant.
// The two models agree exactly for storms at referenceLat.
func SteeringLinearCoefficients(leadHours, referenceLat float64) LinearPositionCoefficients {
	if leadHours <= 0 {
		leadHours = defaultLeadHours
	}
	n := len(domain.FeatureNames)
	k := 180 / math.Pi * leadHours * 3600 / earthRadiusMeters
	cosLat := math.Max(minCosLat, math.Cos(referenceLat*math.Pi/180))
	drift := defaultBetaDriftSpeed * math.Sqrt2 / 2

	latW := make([]float64, n)
	lonW := make([]float64, n)
	latW[featureIndex("current_lat")] = 1
	latW[featureIndex("steering_flow_v")] = k
	lonW[featureIndex("current_lon")] = 1
	lonW[featureIndex("steering_flow_u")] = k / cosLat

	return LinearPositionCoefficients{
		Scaler:       IdentityScaler(),
		LatWeights:   latW,
		LonWeights:   lonW,
		LatIntercept: k * drift,
		LonIntercept: -k * drift / cosLat,
	}
}

// WindCentroidCoefficients builds softmax rows whose logits are Gaussian
// log-likelihoods of the sustained wind around each category centroid, with
// the quadratic term dropped since it is shared by every row. sigmaKmh sets
// how sharply probability concentrates on the nearest category.
func WindCentroidCoefficients(sigmaKmh float64) SoftmaxCoefficients {
	n := len(domain.FeatureNames)
	wind := featureIndex("max_wind_speed")
	variance := sigmaKmh * sigmaKmh

	weights := make([][]float64, len(categoryCentroids))
	biases := make([]float64, len(categoryCentroids))
	for i, m := range categoryCentroids {
		weights[i] = make([]float64, n)
		weights[i][wind] = m / variance
		biases[i] = -m * m / (2 * variance)
	}
	return SoftmaxCoefficients{Scaler: IdentityScaler(), Weights: weights, Biases: biases}
}
