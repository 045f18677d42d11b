// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ufunc provides the public API of the broadcasting elementwise
// evaluator: scalar functions registered with an explicit type signature
// and lifted over whole arrays, with the execution strategy chosen per
// dispatch.
//
// # Overview
//
//   - Kernel: a named, pure scalar function with a declared signature
//   - Backend: one of three interchangeable execution strategies
//     (sequential host, parallel host, WebGPU accelerator)
//   - Dispatch/Apply1..3: broadcast the inputs, evaluate, return one
//     fully-populated output array or an error
//   - Registry: named kernel lookup
//
// # Basic Usage
//
//	add := ufunc.Binary("add", func(x, y int64) (int64, error) {
//	    return x + y, nil
//	})
//
//	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
//	b, _ := array.FromSlice([]int64{10, 20, 30, 40}, array.Shape{4})
//
//	out, err := ufunc.Apply2(add, sequential.New(), a, b)
//	// out.Data() == []int64{11, 22, 33, 44}
//
// # Failure model
//
// A dispatch is synchronous and all-or-nothing. Shape incompatibilities
// surface as *array.ShapeMismatchError, unacceptable input types as
// *TypeMismatchError, scalar-function failures as *ComputeFault naming
// the failing coordinate, and missing accelerators as
// *BackendUnavailableError. Partial results are never observable and no
// backend is substituted silently.
package ufunc
