package model

import (
	"fmt"
	"math"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SoftmaxCoefficients are the fitted parameters of a multinomial logistic
// classifier. Row i of Weights and Biases[i] belong to
// domain.IntensityCategories[i].
type SoftmaxCoefficients struct {
	Scaler  Scaler
	Weights [][]float64
	Biases  []float64
}

// SoftmaxClassifier scores each category as W·z + b and normalizes the scores
// with softmax.
type SoftmaxClassifier struct {
	scaler  Scaler
	weights *mat.Dense
	biases  *mat.VecDense
}

// NewSoftmaxClassifier validates the coefficient dimensions.
func NewSoftmaxClassifier(c SoftmaxCoefficients) (*SoftmaxClassifier, error) {
	if err := c.Scaler.validate(); err != nil {
		return nil, fmt.Errorf("softmax classifier: %w", err)
	}
	k, n := len(domain.IntensityCategories), len(domain.FeatureNames)
	if len(c.Weights) != k || len(c.Biases) != k {
		return nil, fmt.Errorf("softmax classifier: want %d weight rows and biases, got %d and %d", k, len(c.Weights), len(c.Biases))
	}
	data := make([]float64, 0, k*n)
	for i, row := range c.Weights {
		if len(row) != n {
			return nil, fmt.Errorf("softmax classifier: row %d has %d weights, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}
	return &SoftmaxClassifier{
		scaler:  c.Scaler,
		weights: mat.NewDense(k, n, data),
		biases:  mat.NewVecDense(k, append([]float64(nil), c.Biases...)),
	}, nil
}

// ClassifyIntensity implements domain.IntensityClassifier.
func (c *SoftmaxClassifier) ClassifyIntensity(state domain.FeatureVector) (domain.IntensityCategory, map[domain.IntensityCategory]float64, error) {
	z := mat.NewVecDense(len(domain.FeatureNames), c.scaler.Transform(state))

	var logits mat.VecDense
	logits.MulVec(c.weights, z)
	logits.AddVec(&logits, c.biases)

	scores := make([]float64, logits.Len())
	for i := range scores {
		scores[i] = logits.AtVec(i)
	}
	// Shift by the max logit so exp never overflows.
	shift := floats.Max(scores)
	for i := range scores {
		scores[i] = math.Exp(scores[i] - shift)
	}
	total := floats.Sum(scores)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return "", nil, fmt.Errorf("softmax classifier: degenerate scores")
	}
	floats.Scale(1/total, scores)

	probs := make(map[domain.IntensityCategory]float64, len(scores))
	for i, cat := range domain.IntensityCategories {
		probs[cat] = scores[i]
	}
	return domain.IntensityCategories[floats.MaxIdx(scores)], probs, nil
}
