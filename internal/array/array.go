package array

import "fmt"

// Array is a typed, fixed-shape view over a Raw container.
// It provides type-safe element access; execution strategy is chosen per
// dispatch, not per array.
//
// Example:
//
//	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
//	v := a.At(2) // 3
type Array[T DType] struct {
	raw *Raw
}

// New creates an Array from a Raw container.
// Panics if T does not match the container's element type.
func New[T DType](raw *Raw) *Array[T] {
	if want := TypeOf[T](); raw.DType() != want {
		panic(fmt.Sprintf("array dtype is %s, not %s", raw.DType(), want))
	}
	return &Array[T]{raw: raw}
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice[T DType](data []T, shape Shape) (*Array[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, TypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}

	a := &Array[T]{raw: raw}
	copy(a.Data(), data)
	return a, nil
}

// Shape returns the array's shape.
func (a *Array[T]) Shape() Shape {
	return a.raw.Shape()
}

// DType returns the array's element type.
func (a *Array[T]) DType() DataType {
	return a.raw.DType()
}

// NumElements returns the total number of elements.
func (a *Array[T]) NumElements() int {
	return a.raw.NumElements()
}

// Raw returns the underlying container.
// Used by the dispatcher and backend implementations.
func (a *Array[T]) Raw() *Raw {
	return a.raw
}

// Data returns a typed slice view of the array's data (zero-copy).
//
// WARNING: modifications to the returned slice modify the array.
func (a *Array[T]) Data() []T {
	return Data[T](a.raw)
}

// Item returns the value of a single-element array.
// Panics if the array holds more than one element.
func (a *Array[T]) Item() T {
	if a.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element arrays, got shape %v", a.Shape()))
	}
	return a.Data()[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (a *Array[T]) At(indices ...int) T {
	return a.Data()[a.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (a *Array[T]) Set(value T, indices ...int) {
	a.Data()[a.offset(indices)] = value
}

func (a *Array[T]) offset(indices []int) int {
	shape := a.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}

	offset := 0
	strides := a.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// Clone creates a deep copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{raw: a.raw.Clone()}
}

// String returns a human-readable representation of the array.
func (a *Array[T]) String() string {
	return a.raw.String()
}
