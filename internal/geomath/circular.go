package geomath

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CircularMeanDeg returns the vector mean of a set of bearings in [0, 360).
// Averaging 350 and 10 yields 0, not 180. An empty set returns 0.
func CircularMeanDeg(bearings []float64) float64 {
	if len(bearings) == 0 {
		return 0
	}
	return NormalizeDeg(stat.CircularMean(toRadians(bearings), nil) * 180 / math.Pi)
}

// MeanResultantLength returns R in [0, 1]: 1 when every bearing agrees, 0 when
// they cancel out.
func MeanResultantLength(bearings []float64) float64 {
	if len(bearings) == 0 {
		return 0
	}
	var sumSin, sumCos float64
	for _, b := range toRadians(bearings) {
		sumSin += math.Sin(b)
		sumCos += math.Cos(b)
	}
	r := math.Hypot(sumSin, sumCos) / float64(len(bearings))
	return math.Min(1, r)
}

// CircularStdDevDeg returns the circular standard deviation sqrt(-2 ln R) in
// degrees. Fully cancelling bearings give +Inf.
func CircularStdDevDeg(bearings []float64) float64 {
	if len(bearings) < 2 {
		return 0
	}
	r := MeanResultantLength(bearings)
	if r < resultantEpsilon {
		return math.Inf(1)
	}
	return math.Sqrt(-2*math.Log(r)) * 180 / math.Pi
}

// resultantEpsilon absorbs the rounding left over when opposite bearings cancel.
const resultantEpsilon = 1e-12

func toRadians(deg []float64) []float64 {
	out := make([]float64, len(deg))
	for i, d := range deg {
		out[i] = d * math.Pi / 180
	}
	return out
}
