package util

import (
	"fmt"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/errors"
)

// PanicToFailure converts a value recovered from a panicking Transform into a TransformFailureError
func PanicToFailure(idx int, r interface{}) error {
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	return errors.TransformFailureError{Index: idx, Cause: cause, Trace: GetTrace()}
}

// SafeTransform wraps a Transform such that panics are recovered and failures are reported as
// TransformFailureErrors carrying the index of the offending element
func SafeTransform[E any, N preduce.Number](fn preduce.Transform[E, N]) func(idx int, elem E) (N, error) {
	return func(idx int, elem E) (result N, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = PanicToFailure(idx, r)
			} else if err != nil {
				err = errors.TransformFailureError{Index: idx, Cause: err}
			}
		}()
		result, err = fn(elem)
		return
	}
}
