package forecast

import (
	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

const highUncertaintyKm = 300

// AssessConfidence scores the initial state's volatility. Each indicator
// contributes one named factor; the overall score is their mean.
func AssessConfidence(initial domain.FeatureVector) domain.Confidence {
	factors := make(map[string]float64, 3)
	if initial.WindShear < 10 {
		factors["low_wind_shear"] = 0.8
	} else {
		factors["high_wind_shear"] = 0.6
	}
	if initial.SteeringMagnitude() > 5 {
		factors["strong_steering"] = 0.8
	} else {
		factors["weak_steering"] = 0.6
	}
	if initial.MaxWindKmh > 120 {
		factors["strong_system"] = 0.7
	} else {
		factors["weak_system"] = 0.6
	}

	var sum float64
	for _, v := range factors {
		sum += v
	}
	overall := sum / float64(len(factors))

	level := domain.ConfidenceLow
	switch {
	case overall > 0.75:
		level = domain.ConfidenceHigh
	case overall > 0.6:
		level = domain.ConfidenceModerate
	}
	return domain.Confidence{Overall: overall, Factors: factors, Level: level}
}

var threatActions = map[domain.ThreatLevel][]string{
	domain.ThreatExtreme: {
		"EMERGENCY: Issue hurricane evacuation orders",
		"Activate emergency operations centers",
		"Pre-position emergency resources",
		"Issue maritime safety warnings",
		"Coordinate with international agencies",
	},
	domain.ThreatHigh: {
		"Issue hurricane watch/warning",
		"Prepare evacuation plans",
		"Alert emergency management",
		"Monitor storm surge models",
		"Update forecast frequently",
	},
	domain.ThreatModerate: {
		"Issue tropical storm warning",
		"Prepare for potential impacts",
		"Monitor track closely",
		"Alert coastal communities",
	},
	domain.ThreatLow: {
		"Continue routine monitoring of coastal conditions",
	},
}

var generalMonitoring = []string{
	"Continue satellite and aircraft reconnaissance",
	"Update numerical weather models",
	"Monitor environmental conditions",
	"Coordinate with meteorological agencies",
}

const highUncertaintyAction = "HIGH UNCERTAINTY: Increase observation frequency"

// Recommendations returns the action list for the worst threat level on the
// track. An empty level is treated as low.
func Recommendations(worst domain.ThreatLevel, points []domain.ForecastPoint) []string {
	if worst.Rank() == 0 {
		worst = domain.ThreatLow
	}

	recs := make([]string, 0, len(threatActions[worst])+len(generalMonitoring)+1)
	recs = append(recs, threatActions[worst]...)
	recs = append(recs, generalMonitoring...)
	for _, p := range points {
		if p.UncertaintyRadiusKm > highUncertaintyKm {
			recs = append(recs, highUncertaintyAction)
			break
		}
	}
	return recs
}
