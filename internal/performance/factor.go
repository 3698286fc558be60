package performance

import (
	"math/rand/v2"
)

// Gold benchmark shaping constants. The benchmark is synthetic: each month's
// gold return is the strategy return scaled by a factor drawn from
// [GoldFactorMin, GoldFactorMin+GoldFactorSpan).
const (
	GoldFactorMin  = 0.45
	GoldFactorSpan = 0.10

	// GoldCumulativeWeight discounts each monthly gold return before it is
	// added to the running cumulative gold profit.
	GoldCumulativeWeight = 0.6
)

// FactorSource supplies the per-month gold factors for one derivation.
type FactorSource interface {
	Factors(n int) []float64
}

type randomFactors struct{}

// NewRandomFactors returns an unseeded source: every derivation draws new
// factors, so two renders of the same data disagree on the gold series.
func NewRandomFactors() FactorSource {
	return randomFactors{}
}

func (randomFactors) Factors(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = GoldFactorMin + rand.Float64()*GoldFactorSpan
	}
	return out
}

type seededFactors struct {
	seed uint64
}

// NewSeededFactors returns a source that yields the same factors for the same
// seed on every derivation.
func NewSeededFactors(seed int64) FactorSource {
	return seededFactors{seed: uint64(seed)}
}

func (s seededFactors) Factors(n int) []float64 {
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = GoldFactorMin + rng.Float64()*GoldFactorSpan
	}
	return out
}

// FixedFactor uses one factor for every month.
type FixedFactor float64

func (f FixedFactor) Factors(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(f)
	}
	return out
}

// SourceForSeed maps the configured seed to a source; zero means unseeded.
func SourceForSeed(seed int64) FactorSource {
	if seed == 0 {
		return NewRandomFactors()
	}
	return NewSeededFactors(seed)
}
