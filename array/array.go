// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/ufunc/internal/array"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: int16, int32, int64, float32, float64.
type DType = array.DType

// DataType represents the underlying element type of an array.
type DataType = array.DataType

// Element type constants.
const (
	Int16   DataType = array.Int16
	Int32   DataType = array.Int32
	Int64   DataType = array.Int64
	Float32 DataType = array.Float32
	Float64 DataType = array.Float64
)

// Kind classifies element types into integer and float families.
type Kind = array.Kind

// Numeric kinds.
const (
	KindInt   Kind = array.KindInt
	KindFloat Kind = array.KindFloat
)

// Device represents where array data resides.
type Device = array.Device

// Device constants.
const (
	CPU    Device = array.CPU
	WebGPU Device = array.WebGPU
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = array.Shape

// Raw is the low-level array representation: a contiguous byte buffer
// with shape, strides and a runtime element type tag.
//
// Most users should use the high-level Array[T] type instead.
type Raw = array.Raw

// Plan is a broadcast plan mapping input shapes onto a common output
// shape with broadcast-adjusted strides.
type Plan = array.Plan

// ShapeMismatchError reports input shapes that cannot be broadcast,
// naming the first incompatible axis and the conflicting sizes.
type ShapeMismatchError = array.ShapeMismatchError

// Array is a generic type-safe array.
//
// T is the element type (int16, int32, int64, float32, float64).
//
// Example:
//
//	a, _ := array.FromSlice([]float64{1, 2, 3}, array.Shape{3})
//	v := a.At(1) // 2
type Array[T DType] = array.Array[T]

// Creation functions

// Zeros creates an array filled with zeros.
func Zeros[T DType](shape Shape) *Array[T] {
	return array.Zeros[T](shape)
}

// Ones creates an array filled with ones.
func Ones[T DType](shape Shape) *Array[T] {
	return array.Ones[T](shape)
}

// Full creates an array filled with a specific value.
func Full[T DType](shape Shape, value T) *Array[T] {
	return array.Full[T](shape, value)
}

// Scalar creates a 0-dimensional array holding a single value.
// A scalar broadcasts against any shape.
func Scalar[T DType](value T) *Array[T] {
	return array.Scalar[T](value)
}

// Arange creates a 1D array with values [start, end) in steps of 1.
func Arange[T DType](start, end T) *Array[T] {
	return array.Arange[T](start, end)
}

// Linspace creates a 1D array with n evenly spaced values over
// [start, end] inclusive. Only works with float types.
func Linspace[T DType](start, end T, n int) *Array[T] {
	return array.Linspace[T](start, end, n)
}

// Rand creates an array with random values uniformly distributed in
// [0, 1). Only works with float types.
func Rand[T DType](shape Shape) *Array[T] {
	return array.Rand[T](shape)
}

// Randn creates an array with random values from a standard normal
// distribution. Only works with float types.
func Randn[T DType](shape Shape) *Array[T] {
	return array.Randn[T](shape)
}

// FromSlice creates an array from a Go slice.
//
// Example:
//
//	a, err := array.FromSlice([]float32{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*Array[T], error) {
	return array.FromSlice(data, shape)
}

// New creates an array from a raw container.
//
// This is a low-level function. Most users should use creation functions
// like Zeros or FromSlice instead.
func New[T DType](raw *Raw) *Array[T] {
	return array.New[T](raw)
}

// NewRaw creates a new raw container with the given shape, dtype and device.
//
// This is a low-level function. Most users should use high-level creation
// functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*Raw, error) {
	return array.NewRaw(shape, dtype, device)
}

// Data returns a zero-copy typed view of a raw container's memory.
// Panics if T does not match the container's element type.
func Data[T DType](r *Raw) []T {
	return array.Data[T](r)
}

// Utility functions

// Broadcast computes the common output shape for a set of input shapes
// following NumPy broadcasting rules, or fails with a ShapeMismatchError
// naming the first incompatible axis.
//
// Example:
//
//	out, err := array.Broadcast(array.Shape{4}, array.Shape{4, 4})
//	// out = (4, 4)
func Broadcast(shapes ...Shape) (Shape, error) {
	return array.Broadcast(shapes...)
}

// NewPlan computes the broadcast plan for the given input shapes.
func NewPlan(shapes ...Shape) (*Plan, error) {
	return array.NewPlan(shapes...)
}

// TypeOf returns the DataType tag for a generic element type T.
func TypeOf[T DType]() DataType {
	return array.TypeOf[T]()
}
