package accumulators

import (
	"github.com/go-sif/preduce"
)

// Counter returns a new Count Accumulator
func Counter[N preduce.Number]() preduce.Accumulator[N] {
	return Count[N]{}
}

// Count counts elements, ignoring their transformed values
type Count[N preduce.Number] struct{}

// Identity returns zero
func (Count[N]) Identity() N {
	return 0
}

// Combine adds two partial counts
func (Count[N]) Combine(a, b N) N {
	return a + b
}

// Absorb increments a partial count
func (Count[N]) Absorb(acc, _ N) N {
	return acc + 1
}
