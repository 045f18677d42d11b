package array

import "fmt"

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the total number of elements in the array.
// A 0-dimensional shape describes a scalar with one element; any
// zero-length axis makes the count zero.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid. Zero-length axes are legal.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as (d0, d1, ...).
func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * max(s[i+1], 1)
	}
	return strides
}

// Broadcast computes the common output shape for a set of input shapes
// following NumPy broadcasting rules.
//
// Rules:
//  1. Compare shapes element-wise from right to left.
//  2. Aligned sizes are compatible if they are equal or one of them is 1.
//  3. Missing leading dimensions are treated as 1.
//
// A zero-length axis propagates: it broadcasts against 0 and 1, and
// conflicts with any other size. The first incompatible axis is reported
// via ShapeMismatchError.
//
// Examples:
//
//	(3, 1), (3, 5) → (3, 5)
//	(4,), (4, 4)   → (4, 4)
//	(3,), (4,)     → ShapeMismatchError at axis 0
func Broadcast(shapes ...Shape) (Shape, error) {
	if len(shapes) == 0 {
		return Shape{}, nil
	}

	ndim := 0
	for _, s := range shapes {
		ndim = max(ndim, len(s))
	}

	result := make(Shape, ndim)
	for i := range result {
		result[i] = 1
	}

	for axis := 0; axis < ndim; axis++ {
		for _, s := range shapes {
			idx := len(s) - ndim + axis
			if idx < 0 {
				continue // padded leading dimension, size 1
			}
			dim := s[idx]
			switch {
			case result[axis] == dim || dim == 1:
				// compatible, keep current size
			case result[axis] == 1:
				result[axis] = dim
			default:
				return nil, &ShapeMismatchError{
					Shapes: cloneShapes(shapes),
					Axis:   axis,
					Sizes:  sizesAt(shapes, ndim, axis),
				}
			}
		}
	}

	return result, nil
}

// sizesAt collects each input's aligned size at the given output axis.
func sizesAt(shapes []Shape, ndim, axis int) []int {
	sizes := make([]int, len(shapes))
	for i, s := range shapes {
		idx := len(s) - ndim + axis
		if idx < 0 {
			sizes[i] = 1
		} else {
			sizes[i] = s[idx]
		}
	}
	return sizes
}

func cloneShapes(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
