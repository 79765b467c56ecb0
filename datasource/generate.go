package datasource

import (
	"fmt"
	"math"
	"math/rand"
)

// Kind names a generated dataset shape
type Kind string

const (
	// Uniform values are drawn uniformly from [-100, 100)
	Uniform Kind = "uniform"
	// Sequence values are 1, 2, ..., n
	Sequence Kind = "sequence"
	// Skewed values follow a Pareto distribution with minimum 1, so a few elements are far
	// larger than the rest. Paired with a Transform whose cost grows with its input, this
	// produces the uneven per-element cost that work stealing is meant to absorb.
	Skewed Kind = "skewed"
)

// Generate produces n values of the given Kind. The same seed always produces the same values.
func Generate(kind Kind, n int, seed int64) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("Cannot generate %d values", n)
	}
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	switch kind {
	case Uniform:
		for i := range values {
			values[i] = rng.Float64()*200 - 100
		}
	case Sequence:
		for i := range values {
			values[i] = float64(i + 1)
		}
	case Skewed:
		const alpha = 1.16 // the 80/20 shape
		for i := range values {
			values[i] = math.Pow(1-rng.Float64(), -1/alpha)
		}
	default:
		return nil, fmt.Errorf("%s is an unknown dataset kind", kind)
	}
	return values, nil
}
