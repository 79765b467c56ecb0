package preduce

// Number is the set of numeric types a reduction may produce. The set is closed so that
// every value has a fixed-width bit pattern, which the atomic strategy relies on.
type Number interface {
	int | int32 | int64 | uint | uint32 | uint64 | float32 | float64
}

// An Accumulator describes how transformed elements are folded into partial results,
// and how partial results are merged. Implementations must be pure: the same arguments
// always produce the same value, and Combine must be associative and commutative, so that
// strategies are free to choose their own grouping and merge order.
type Accumulator[N Number] interface {
	Identity() N       // Identity returns the neutral element for Combine
	Combine(a, b N) N  // Combine merges two partial results
	Absorb(acc, v N) N // Absorb folds one transformed element into a partial result
}

// AccumulatorFactory produces an Accumulator, for callers which configure reductions by name
type AccumulatorFactory[N Number] func() Accumulator[N]
