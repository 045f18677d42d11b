package array

import (
	"fmt"
	"unsafe"
)

// Device represents where an array's memory lives.
type Device int

// Supported devices. Host arrays back every dispatch; the accelerator
// backend stages them to device memory for the duration of a dispatch.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Raw is the low-level array representation: a contiguous byte buffer
// with shape, row-major strides and a runtime element type tag.
//
// A Raw produced by a dispatch is a value container: callers receive full
// ownership and the evaluator retains no reference to it.
type Raw struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw creates a new Raw with the given shape and type.
// Memory is allocated zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*Raw, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Raw{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the array's shape.
func (r *Raw) Shape() Shape {
	return r.shape
}

// Strides returns the array's memory strides.
func (r *Raw) Strides() []int {
	return r.stride
}

// DType returns the array's element type.
func (r *Raw) DType() DataType {
	return r.dtype
}

// Device returns the array's device.
func (r *Raw) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *Raw) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *Raw) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Bytes returns the raw byte slice.
// WARNING: direct access to underlying memory.
func (r *Raw) Bytes() []byte {
	return r.data
}

// AsInt16 interprets the data as []int16.
// Panics if the element type is not Int16.
func (r *Raw) AsInt16() []int16 {
	return view[int16](r, Int16)
}

// AsInt32 interprets the data as []int32.
// Panics if the element type is not Int32.
func (r *Raw) AsInt32() []int32 {
	return view[int32](r, Int32)
}

// AsInt64 interprets the data as []int64.
// Panics if the element type is not Int64.
func (r *Raw) AsInt64() []int64 {
	return view[int64](r, Int64)
}

// AsFloat32 interprets the data as []float32.
// Panics if the element type is not Float32.
func (r *Raw) AsFloat32() []float32 {
	return view[float32](r, Float32)
}

// AsFloat64 interprets the data as []float64.
// Panics if the element type is not Float64.
func (r *Raw) AsFloat64() []float64 {
	return view[float64](r, Float64)
}

// Data returns a zero-copy typed view of the array's memory.
// Panics if T does not match the array's element type.
func Data[T DType](r *Raw) []T {
	return view[T](r, TypeOf[T]())
}

func view[T any](r *Raw, want DataType) []T {
	if r.dtype != want {
		panic(fmt.Sprintf("array dtype is %s, not %s", r.dtype, want))
	}
	if len(r.data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy views, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Item returns the scalar value encoded at flat index i, widened to the
// requested element type. Used by the boxed dispatch path when inputs
// need promotion to a kernel's declared parameter type.
func (r *Raw) Item(i int, as DataType) any {
	switch r.dtype {
	case Int16:
		return widenInt(int64(r.AsInt16()[i]), as)
	case Int32:
		return widenInt(int64(r.AsInt32()[i]), as)
	case Int64:
		return widenInt(r.AsInt64()[i], as)
	case Float32:
		return widenFloat(float64(r.AsFloat32()[i]), as)
	case Float64:
		return widenFloat(r.AsFloat64()[i], as)
	default:
		panic("unknown data type")
	}
}

// SetItem stores a scalar of the array's element type at flat index i.
// The value must be the exact Go type for the array's DataType.
func (r *Raw) SetItem(i int, v any) {
	switch r.dtype {
	case Int16:
		r.AsInt16()[i] = v.(int16)
	case Int32:
		r.AsInt32()[i] = v.(int32)
	case Int64:
		r.AsInt64()[i] = v.(int64)
	case Float32:
		r.AsFloat32()[i] = v.(float32)
	case Float64:
		r.AsFloat64()[i] = v.(float64)
	default:
		panic("unknown data type")
	}
}

func widenInt(v int64, as DataType) any {
	switch as {
	case Int16:
		return int16(v)
	case Int32:
		return int32(v)
	case Int64:
		return v
	default:
		panic(fmt.Sprintf("cannot widen integer to %s", as))
	}
}

func widenFloat(v float64, as DataType) any {
	switch as {
	case Float32:
		return float32(v)
	case Float64:
		return v
	default:
		panic(fmt.Sprintf("cannot widen float to %s", as))
	}
}

// Clone creates a deep copy of the Raw.
func (r *Raw) Clone() *Raw {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &Raw{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// String returns a human-readable representation of the array.
func (r *Raw) String() string {
	return fmt.Sprintf("Array[%s]%v on %s", r.dtype, r.shape, r.device)
}
