package accumulators

import (
	"math"

	"github.com/go-sif/preduce"
)

// Maximizer returns a new Max Accumulator
func Maximizer[N preduce.Number]() preduce.Accumulator[N] {
	return Max[N]{}
}

// Max tracks the largest transformed element. The result of an empty reduction is the
// lowest value representable by N (negative infinity for floating point types).
type Max[N preduce.Number] struct{}

// Identity returns the lowest value representable by N
func (Max[N]) Identity() N {
	var zero N
	switch any(zero).(type) {
	case int:
		return any(math.MinInt).(N)
	case int32:
		return any(int32(math.MinInt32)).(N)
	case int64:
		return any(int64(math.MinInt64)).(N)
	case float32:
		return any(float32(math.Inf(-1))).(N)
	case float64:
		return any(math.Inf(-1)).(N)
	default:
		// unsigned
		return zero
	}
}

// Combine returns the larger of two partial maxima
func (Max[N]) Combine(a, b N) N {
	if b > a {
		return b
	}
	return a
}

// Absorb returns the larger of a partial maximum and an element
func (m Max[N]) Absorb(acc, v N) N {
	return m.Combine(acc, v)
}
