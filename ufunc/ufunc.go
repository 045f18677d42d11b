// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ufunc

import (
	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/ufunc"
)

// Type aliases for public API

// Kernel is a registered scalar function: a name, an explicit type
// signature and a pure function from scalars to one scalar.
type Kernel = ufunc.Kernel

// Signature declares a kernel's parameter and return element types.
type Signature = ufunc.Signature

// Backend is the execution strategy applied during a dispatch.
//
// Implementations:
//   - backend/sequential: one coordinate at a time on the host
//   - backend/parallel: chunked goroutines, no ordering guarantee
//   - backend/webgpu: massively parallel accelerator
type Backend = ufunc.Backend

// Registry holds named kernels and is safe for concurrent use.
type Registry = ufunc.Registry

// Error types surfaced by Dispatch.

// TypeMismatchError reports an input element type that is not accepted
// by, or safely promotable to, a kernel's declared parameter type.
type TypeMismatchError = ufunc.TypeMismatchError

// ComputeFault reports a scalar function failing at a specific output
// coordinate; the whole dispatch is aborted.
type ComputeFault = ufunc.ComputeFault

// BackendUnavailableError reports a backend that cannot be initialized.
type BackendUnavailableError = ufunc.BackendUnavailableError

// Kernel constructors

// New creates a kernel from a boxed scalar function with an explicit
// signature, supporting arbitrary arity and mixed parameter types.
func New(name string, sig Signature, fn func(args []any) (any, error)) *Kernel {
	return ufunc.New(name, sig, fn)
}

// Unary creates a kernel with signature (T) -> T.
func Unary[T array.DType](name string, f func(T) (T, error)) *Kernel {
	return ufunc.Unary(name, f)
}

// Binary creates a kernel with signature (T, T) -> T.
//
// Example:
//
//	add := ufunc.Binary("add", func(x, y int64) (int64, error) { return x + y, nil })
func Binary[T array.DType](name string, f func(x, y T) (T, error)) *Kernel {
	return ufunc.Binary(name, f)
}

// Ternary creates a kernel with signature (T, T, T) -> T.
func Ternary[T array.DType](name string, f func(x, y, z T) (T, error)) *Kernel {
	return ufunc.Ternary(name, f)
}

// Dispatch functions

// Dispatch applies kernel k over raw inputs on the given backend,
// returning one output array with the broadcast output shape and the
// kernel's declared return type. See the package documentation for the
// failure model.
func Dispatch(k *Kernel, be Backend, inputs ...*array.Raw) (*array.Raw, error) {
	return ufunc.Dispatch(k, be, inputs...)
}

// Apply1 dispatches a unary kernel over a typed array.
func Apply1[T array.DType](k *Kernel, be Backend, x *array.Array[T]) (*array.Array[T], error) {
	return ufunc.Apply1(k, be, x)
}

// Apply2 dispatches a binary kernel over typed arrays.
func Apply2[T array.DType](k *Kernel, be Backend, x, y *array.Array[T]) (*array.Array[T], error) {
	return ufunc.Apply2(k, be, x, y)
}

// Apply3 dispatches a ternary kernel over typed arrays.
func Apply3[T array.DType](k *Kernel, be Backend, x, y, z *array.Array[T]) (*array.Array[T], error) {
	return ufunc.Apply3(k, be, x, y, z)
}

// Registry functions

// NewRegistry creates an empty kernel registry.
func NewRegistry() *Registry {
	return ufunc.NewRegistry()
}

// Register adds a kernel to the default registry.
// Duplicate registration is an error, never a silent replacement.
func Register(k *Kernel) error {
	return ufunc.Register(k)
}

// Lookup returns a kernel from the default registry.
func Lookup(name string) (*Kernel, bool) {
	return ufunc.Lookup(name)
}

// Names lists the default registry's kernel names in sorted order.
func Names() []string {
	return ufunc.Names()
}
