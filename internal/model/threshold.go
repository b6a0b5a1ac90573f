package model

import (
	"fmt"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

// WindThresholdClassifier assigns the category implied by the current
// sustained wind. Spread moves that much probability mass from the chosen
// category onto its immediate neighbours; zero yields a one-hot distribution.
type WindThresholdClassifier struct {
	Spread float64
}

// ClassifyIntensity implements domain.IntensityClassifier.
func (c WindThresholdClassifier) ClassifyIntensity(state domain.FeatureVector) (domain.IntensityCategory, map[domain.IntensityCategory]float64, error) {
	if c.Spread < 0 || c.Spread >= 1 {
		return "", nil, fmt.Errorf("wind threshold classifier: spread %v outside [0, 1)", c.Spread)
	}

	category := domain.CategoryForWind(state.MaxWindKmh)
	idx := category.Ordinal() - 1

	probs := make(map[domain.IntensityCategory]float64, len(domain.IntensityCategories))
	for _, cat := range domain.IntensityCategories {
		probs[cat] = 0
	}

	var neighbours []domain.IntensityCategory
	if idx > 0 {
		neighbours = append(neighbours, domain.IntensityCategories[idx-1])
	}
	if idx < len(domain.IntensityCategories)-1 {
		neighbours = append(neighbours, domain.IntensityCategories[idx+1])
	}

	probs[category] = 1 - c.Spread
	for _, n := range neighbours {
		probs[n] = c.Spread / float64(len(neighbours))
	}
	return category, probs, nil
}
