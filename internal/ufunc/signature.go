// Package ufunc implements the broadcasting elementwise evaluator: scalar
// functions lifted over arrays of possibly different shapes, executed by a
// pluggable backend.
package ufunc

import (
	"fmt"
	"strings"

	"github.com/born-ml/ufunc/internal/array"
)

// Signature declares a scalar function's parameter and return element
// types. It is the unit of type checking during dispatch and part of the
// accelerator's compilation cache key.
type Signature struct {
	Params []array.DataType
	Return array.DataType
}

// Arity returns the number of parameters.
func (s Signature) Arity() int {
	return len(s.Params)
}

// String formats the signature as (p0, p1, ...) -> r.
func (s Signature) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), s.Return)
}

// Key returns a stable identifier for the signature, suitable as a cache
// key. Two signatures with the same parameter and return types share a key.
func (s Signature) Key() string {
	var b strings.Builder
	for i, p := range s.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(':')
	b.WriteString(s.Return.String())
	return b.String()
}
