package array

import (
	"math"
	"math/rand"
)

// Zeros creates an array filled with zeros.
//
// Example:
//
//	a := array.Zeros[float32](array.Shape{3, 4})
func Zeros[T DType](shape Shape) *Array[T] {
	raw, err := NewRaw(shape, TypeOf[T](), CPU)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return &Array[T]{raw: raw}
}

// Ones creates an array filled with ones.
func Ones[T DType](shape Shape) *Array[T] {
	return Full[T](shape, 1)
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	a := array.Full[float64](array.Shape{3, 3}, 3.14)
func Full[T DType](shape Shape, value T) *Array[T] {
	a := Zeros[T](shape)
	data := a.Data()
	for i := range data {
		data[i] = value
	}
	return a
}

// Scalar creates a 0-dimensional array holding a single value.
// A scalar broadcasts against any shape.
func Scalar[T DType](value T) *Array[T] {
	a := Zeros[T](Shape{})
	a.Data()[0] = value
	return a
}

// Arange creates a 1D array with values [start, end) in steps of 1.
//
// Example:
//
//	a := array.Arange[int32](0, 10) // [0, 1, ..., 9]
func Arange[T DType](start, end T) *Array[T] {
	n := int(end - start)
	if n < 0 {
		n = 0
	}
	a := Zeros[T](Shape{n})
	data := a.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return a
}

// Linspace creates a 1D array with n evenly spaced values over
// [start, end] inclusive. Only works with float types.
//
// Example:
//
//	grid := array.Linspace[float64](-3, 3, 61)
func Linspace[T DType](start, end T, n int) *Array[T] {
	var dummy T
	switch any(dummy).(type) {
	case float32, float64:
	default:
		panic("Linspace only supports float32 and float64 types")
	}

	a := Zeros[T](Shape{n})
	data := a.Data()
	if n == 1 {
		data[0] = start
		return a
	}
	step := float64(end-start) / float64(n-1)
	for i := range data {
		data[i] = start + T(float64(i)*step)
	}
	return a
}

// Rand creates an array with random values uniformly distributed in [0, 1).
// Only works with float types.
// Note: uses math/rand (not crypto/rand) - appropriate for numerical work.
func Rand[T DType](shape Shape) *Array[T] {
	a := Zeros[T](shape)
	data := a.Data()

	var dummy T
	switch any(dummy).(type) {
	case float32:
		dataF32 := any(data).([]float32)
		for i := range dataF32 {
			dataF32[i] = rand.Float32() //nolint:gosec // G404: math/rand intentionally for reproducibility
		}
	case float64:
		dataF64 := any(data).([]float64)
		for i := range dataF64 {
			dataF64[i] = rand.Float64() //nolint:gosec // G404: math/rand intentionally for reproducibility
		}
	default:
		panic("Rand only supports float32 and float64 types")
	}
	return a
}

// Randn creates an array with random values from a normal distribution
// (mean=0, std=1). Uses the Box-Muller transform.
// Only works with float types.
func Randn[T DType](shape Shape) *Array[T] {
	a := Zeros[T](shape)
	data := a.Data()

	var dummy T
	switch any(dummy).(type) {
	case float32:
		dataF32 := any(data).([]float32)
		fillNormal(len(dataF32), func(i int, v float64) { dataF32[i] = float32(v) })
	case float64:
		dataF64 := any(data).([]float64)
		fillNormal(len(dataF64), func(i int, v float64) { dataF64[i] = v })
	default:
		panic("Randn only supports float32 and float64 types")
	}
	return a
}

// fillNormal writes n normally distributed samples via set(i, value).
func fillNormal(n int, set func(int, float64)) {
	for i := 0; i < n; i += 2 {
		u1 := rand.Float64() //nolint:gosec // G404: math/rand intentionally for reproducibility
		u2 := rand.Float64() //nolint:gosec // G404: math/rand intentionally for reproducibility
		z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
		z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
		set(i, z0)
		if i+1 < n {
			set(i+1, z1)
		}
	}
}
