package forecast

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/couchcryptid/storm-forecast-service/internal/domain"
)

// Wind shear is kept inside this range while the state evolves.
const (
	minWindShear = 0
	maxWindShear = 30
)

// Perturbation yields the random-walk steps applied to evolving features.
type Perturbation interface {
	Step() float64
}

// GaussianWalk draws N(0, sigma) steps truncated to ±3 sigma.
// It is not safe for concurrent use; build one per run.
type GaussianWalk struct {
	dist  distuv.Normal
	limit float64
}

// NewGaussianWalk returns a walk drawing from src.
func NewGaussianWalk(src rand.Source, sigma float64) *GaussianWalk {
	return &GaussianWalk{
		dist:  distuv.Normal{Mu: 0, Sigma: sigma, Src: src},
		limit: 3 * sigma,
	}
}

// Step returns the next truncated draw.
func (g *GaussianWalk) Step() float64 {
	return math.Max(-g.limit, math.Min(g.limit, g.dist.Rand()))
}

// FeatureEvolver derives the next state from a predicted position. Only the
// position, time of day, latitude-derived terms and wind shear change; every
// other feature carries over.
type FeatureEvolver struct {
	Perturbation Perturbation // nil leaves wind shear unperturbed
}

// Evolve moves state to (lat, lon) and advances it by elapsedHours.
func (e FeatureEvolver) Evolve(state domain.FeatureVector, lat, lon, elapsedHours float64) domain.FeatureVector {
	next := state.MovedTo(lat, lon).AdvancedBy(elapsedHours)

	shear := next.WindShear
	if e.Perturbation != nil {
		shear += e.Perturbation.Step()
	}
	return next.WithWindShear(math.Max(minWindShear, math.Min(maxWindShear, shear)))
}
