package errors

import (
	"fmt"
)

// InvalidConfigurationError occurs when a reduction or benchmark is configured with an
// unusable value. It is always detected before any work is scheduled.
type InvalidConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

// Error returns a textual representation of this InvalidConfigurationError
func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("Invalid configuration: %s=%v %s", e.Field, e.Value, e.Reason)
}

// TransformFailureError occurs when a caller-supplied Transform returns an error or panics
// while processing the element at Index
type TransformFailureError struct {
	Index int
	Cause error
	Trace string // populated when the failure was a recovered panic
}

// Error returns a textual representation of this TransformFailureError
func (e TransformFailureError) Error() string {
	if len(e.Trace) > 0 {
		return fmt.Sprintf("Transform Panic at element %d: %v\n%s", e.Index, e.Cause, e.Trace)
	}
	return fmt.Sprintf("Transform Error at element %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying cause of this TransformFailureError
func (e TransformFailureError) Unwrap() error {
	return e.Cause
}

// ConsistencyViolationError occurs when two strategies disagree on the result of the same
// reduction by more than the permitted tolerance
type ConsistencyViolationError struct {
	Reference string // name of the strategy whose result was treated as correct
	Other     string // name of the disagreeing strategy
	Expected  interface{}
	Actual    interface{}
	Tolerance float64
}

// Error returns a textual representation of this ConsistencyViolationError
func (e ConsistencyViolationError) Error() string {
	return fmt.Sprintf("Strategy %s produced %v, which disagrees with %s result %v (tolerance %g)", e.Other, e.Actual, e.Reference, e.Expected, e.Tolerance)
}
