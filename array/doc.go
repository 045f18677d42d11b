// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides the public API for multi-dimensional numeric
// arrays used by the ufunc evaluator.
//
// # Overview
//
// Arrays are fixed-shape, fixed-element-type containers with a contiguous
// row-major byte layout. The package provides:
//   - Array[T]: generic type-safe arrays
//   - Raw: the low-level container used by backends
//   - Shape with NumPy-style broadcasting (Broadcast, Plan)
//   - DataType tags for 16/32/64-bit integers and 32/64-bit floats
//
// # Basic Usage
//
//	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
//	b := array.Full[int64](array.Shape{4}, 10)
//	out, _ := array.Broadcast(a.Shape(), b.Shape()) // (4,)
//
// # Broadcasting
//
// Shapes are aligned from the trailing axis; a size-1 axis expands to the
// other operand's size without copying. A scalar (0-dimensional array)
// broadcasts against any shape.
package array
