package harness

import (
	"math"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/errors"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultTolerance is the relative difference permitted between floating point results
	// of different strategies, which may group their additions differently
	DefaultTolerance = 1e-9
	// absoluteTolerance stops results that should be zero from failing a relative comparison
	absoluteTolerance = 1e-12
)

// Equivalent returns true iff a and b are equal, or, for floating point types, differ by no
// more than tolerance relative to the larger magnitude (or by no more than 1e-12 absolutely).
// Integer results must match exactly.
func Equivalent[N preduce.Number](a, b N, tolerance float64) bool {
	if a == b {
		return true
	}
	switch any(a).(type) {
	case float32, float64:
	default:
		return false
	}
	fa, fb := float64(a), float64(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return math.IsNaN(fa) && math.IsNaN(fb)
	}
	diff := math.Abs(fa - fb)
	if diff <= absoluteTolerance {
		return true
	}
	return diff <= tolerance*math.Max(math.Abs(fa), math.Abs(fb))
}

// Verify checks every result in every report against a reference: the first result of the
// Serial report if there is one, otherwise of the first report. Reports without results
// have nothing to check and are never chosen as the reference. Each disagreement is
// reported as a ConsistencyViolationError, aggregated into a single error.
func Verify[N preduce.Number](tolerance float64, reports ...*Report[N]) error {
	var reference *Report[N]
	for _, r := range reports {
		if len(r.Results) == 0 {
			continue
		}
		if reference == nil || (r.Strategy == preduce.Serial && reference.Strategy != preduce.Serial) {
			reference = r
		}
	}
	if reference == nil {
		return nil
	}
	expected := reference.Result()
	var merr *multierror.Error
	for _, r := range reports {
		for _, actual := range r.Results {
			if !Equivalent(expected, actual, tolerance) {
				merr = multierror.Append(merr, errors.ConsistencyViolationError{
					Reference: string(reference.Strategy),
					Other:     string(r.Strategy),
					Expected:  expected,
					Actual:    actual,
					Tolerance: tolerance,
				})
			}
		}
	}
	return merr.ErrorOrNil()
}
