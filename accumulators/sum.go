package accumulators

import (
	"github.com/go-sif/preduce"
)

// Adder returns a new Sum Accumulator
func Adder[N preduce.Number]() preduce.Accumulator[N] {
	return Sum[N]{}
}

// Sum sums transformed elements
type Sum[N preduce.Number] struct{}

// Identity returns zero
func (Sum[N]) Identity() N {
	return 0
}

// Combine adds two partial sums
func (Sum[N]) Combine(a, b N) N {
	return a + b
}

// Absorb adds an element to a partial sum
func (Sum[N]) Absorb(acc, v N) N {
	return acc + v
}
