package ufunc

import (
	"fmt"

	"github.com/born-ml/ufunc/internal/array"
)

// TypeMismatchError reports an input whose element type is not accepted
// by, or safely promotable to, a kernel's declared parameter type.
type TypeMismatchError struct {
	Kernel string
	Arg    int
	Got    array.DataType
	Want   array.DataType
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: argument %d has type %s, not promotable to %s",
		e.Kernel, e.Arg, e.Got, e.Want)
}

// ComputeFault reports a scalar function failing at a specific output
// coordinate. The whole dispatch is aborted; no partial output is returned.
type ComputeFault struct {
	Kernel string
	Coord  []int
	Err    error
}

// Error implements the error interface.
func (e *ComputeFault) Error() string {
	return fmt.Sprintf("%s: compute fault at coordinate %v: %v", e.Kernel, e.Coord, e.Err)
}

// Unwrap allows error chain inspection.
func (e *ComputeFault) Unwrap() error {
	return e.Err
}

// BackendUnavailableError reports a backend that cannot be initialized,
// e.g. no accelerator present. It is never silently downgraded to another
// backend.
type BackendUnavailableError struct {
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *BackendUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s unavailable: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("backend %s unavailable", e.Backend)
}

// Unwrap allows error chain inspection.
func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
