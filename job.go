package preduce

// A Transform maps one input element to the numeric value that is absorbed into a
// partial result. Returning an error (or panicking) aborts the reduction.
type Transform[E any, N Number] func(elem E) (N, error)

// A Job binds an input sequence to a Transform and an Accumulator. The Input is borrowed,
// and must not be modified while a reduction over it is running.
type Job[E any, N Number] struct {
	Input       []E
	Transform   Transform[E, N]
	Accumulator Accumulator[N]
}

// Len returns the length of the Job's input
func (j *Job[E, N]) Len() int {
	return len(j.Input)
}

// Identity returns a Transform which converts each element to itself
func Identity[N Number]() Transform[N, N] {
	return func(elem N) (N, error) {
		return elem, nil
	}
}
