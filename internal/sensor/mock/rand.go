package mock

import "math/rand/v2"

// Rand is the source of uniform draws in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// uniform draws from [a, b).
func uniform(rnd Rand, a, b float64) float64 {
	return a + (b-a)*rnd.Float64()
}

// jitter draws a symmetric delta in [-amplitude, amplitude).
func jitter(rnd Rand, amplitude float64) float64 {
	return (rnd.Float64() - 0.5) * 2 * amplitude
}
