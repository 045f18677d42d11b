package ufunc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ufunc/internal/array"
)

// hostBackend is the minimal sequential strategy used by dispatcher
// tests; the real backends live in internal/backend and are exercised by
// their own packages.
type hostBackend struct{}

func (hostBackend) Name() string         { return "test-host" }
func (hostBackend) Device() array.Device { return array.CPU }
func (hostBackend) Execute(k *Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan) error {
	return ApplyRange(k, inputs, out, plan, 0, plan.NumElements())
}

// acceleratorStub reports an accelerator device but executes on the
// host, like the real WebGPU backend after readback.
type acceleratorStub struct{ hostBackend }

func (acceleratorStub) Device() array.Device { return array.WebGPU }

func addInt64() *Kernel {
	return Binary("add", func(x, y int64) (int64, error) { return x + y, nil })
}

func suppressInt16() *Kernel {
	return Binary("suppress", func(value, threshold int16) (int16, error) {
		abs := value
		if abs < 0 {
			abs = -abs
		}
		if abs < threshold {
			return 0, nil
		}
		return value, nil
	})
}

func TestDispatchAdd(t *testing.T) {
	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
	b, _ := array.FromSlice([]int64{10, 20, 30, 40}, array.Shape{4})

	out, err := Apply2(addInt64(), hostBackend{}, a, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 22, 33, 44}, out.Data())
}

func TestDispatchZeroSuppress(t *testing.T) {
	values, _ := array.FromSlice([]int16{5, -20, 3, 40}, array.Shape{4})
	threshold := array.Scalar[int16](10)

	out, err := Apply2(suppressInt16(), hostBackend{}, values, threshold)
	require.NoError(t, err)
	assert.Equal(t, []int16{0, -20, 0, 40}, out.Data())
}

func TestDispatchBroadcast(t *testing.T) {
	// (4,) against (4,4): output element (i,j) combines A[j] with B[i,j].
	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
	b, _ := array.FromSlice([]int64{
		0, 0, 0, 0,
		10, 10, 10, 10,
		20, 20, 20, 20,
		30, 30, 30, 30,
	}, array.Shape{4, 4})

	out, err := Apply2(addInt64(), hostBackend{}, a, b)
	require.NoError(t, err)
	assert.True(t, array.Shape{4, 4}.Equal(out.Shape()))
	assert.Equal(t, []int64{
		1, 2, 3, 4,
		11, 12, 13, 14,
		21, 22, 23, 24,
		31, 32, 33, 34,
	}, out.Data())
}

func TestDispatchShapeMismatch(t *testing.T) {
	a, _ := array.FromSlice([]int64{1, 2, 3}, array.Shape{3})
	b, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})

	_, err := Apply2(addInt64(), hostBackend{}, a, b)
	require.Error(t, err)

	var mismatch *array.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 0, mismatch.Axis)
}

func TestDispatchTypeMismatch(t *testing.T) {
	k := addInt64()

	// int64 input is not narrowable to int16, and floats never promote
	// to integer parameters.
	f, _ := array.NewRaw(array.Shape{2}, array.Float32, array.CPU)
	i, _ := array.NewRaw(array.Shape{2}, array.Int64, array.CPU)

	_, err := Dispatch(k, hostBackend{}, f, i)
	require.Error(t, err)

	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, 0, tm.Arg)
	assert.Equal(t, array.Float32, tm.Got)
	assert.Equal(t, array.Int64, tm.Want)
}

func TestDispatchPromotion(t *testing.T) {
	// int16 inputs widen to the kernel's int64 parameters.
	a, _ := array.FromSlice([]int16{1, 2, 3}, array.Shape{3})
	b, _ := array.FromSlice([]int64{10, 20, 30}, array.Shape{3})

	out, err := Dispatch(addInt64(), hostBackend{}, a.Raw(), b.Raw())
	require.NoError(t, err)
	assert.Equal(t, array.Int64, out.DType())
	assert.Equal(t, []int64{11, 22, 33}, array.Data[int64](out))
}

func TestDispatchOutputResidesOnHost(t *testing.T) {
	a, _ := array.FromSlice([]int64{1, 2}, array.Shape{2})
	b, _ := array.FromSlice([]int64{3, 4}, array.Shape{2})

	// The device tag describes residence, not the producing backend.
	out, err := Dispatch(addInt64(), acceleratorStub{}, a.Raw(), b.Raw())
	require.NoError(t, err)
	assert.Equal(t, array.CPU, out.Device())
	assert.Equal(t, []int64{4, 6}, array.Data[int64](out))
}

func TestDispatchArityMismatch(t *testing.T) {
	a, _ := array.FromSlice([]int64{1}, array.Shape{1})
	_, err := Dispatch(addInt64(), hostBackend{}, a.Raw())
	assert.Error(t, err)
}

func TestDispatchComputeFault(t *testing.T) {
	div := Binary("div", func(x, y int64) (int64, error) {
		if y == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return x / y, nil
	})

	a, _ := array.FromSlice([]int64{6, 8, 10, 12}, array.Shape{2, 2})
	b, _ := array.FromSlice([]int64{2, 2, 0, 2}, array.Shape{2, 2})

	out, err := Apply2(div, hostBackend{}, a, b)
	require.Error(t, err)
	assert.Nil(t, out, "no partial output on fault")

	var fault *ComputeFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, []int{1, 0}, fault.Coord)
	assert.Contains(t, fault.Err.Error(), "division by zero")
}

func TestDispatchIdempotent(t *testing.T) {
	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
	b, _ := array.FromSlice([]int64{10, 20, 30, 40}, array.Shape{4})
	k := addInt64()

	first, err := Apply2(k, hostBackend{}, a, b)
	require.NoError(t, err)
	second, err := Apply2(k, hostBackend{}, a, b)
	require.NoError(t, err)

	assert.Equal(t, first.Data(), second.Data(), "same inputs, same backend, bit-identical results")
}

func TestDispatchScalarOutput(t *testing.T) {
	a := array.Scalar[float64](2)
	b := array.Scalar[float64](3)
	mul := Binary("mul", func(x, y float64) (float64, error) { return x * y, nil })

	out, err := Apply2(mul, hostBackend{}, a, b)
	require.NoError(t, err)
	assert.Equal(t, 6.0, out.Item())
}

func TestDispatchZeroSizeOutput(t *testing.T) {
	a, _ := array.FromSlice([]int64{}, array.Shape{0})
	b := array.Scalar[int64](1)

	out, err := Apply2(addInt64(), hostBackend{}, a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumElements())
}

func TestDispatchReturnTypeCheck(t *testing.T) {
	a, _ := array.FromSlice([]int16{1, 2}, array.Shape{2})
	b, _ := array.FromSlice([]int16{3, 4}, array.Shape{2})

	// addInt64 returns int64, but the typed front door expects int16.
	_, err := Apply2(addInt64(), hostBackend{}, a, b)
	assert.Error(t, err)
}

func TestDispatchBoxedKernel(t *testing.T) {
	// Mixed-type signature via the boxed constructor.
	scale := New("scale", Signature{
		Params: []array.DataType{array.Float64, array.Int32},
		Return: array.Float64,
	}, func(args []any) (any, error) {
		return args[0].(float64) * float64(args[1].(int32)), nil
	})

	x, _ := array.FromSlice([]float64{1.5, 2.5}, array.Shape{2})
	n, _ := array.FromSlice([]int32{2, 4}, array.Shape{2})

	out, err := Dispatch(scale, hostBackend{}, x.Raw(), n.Raw())
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 10}, array.Data[float64](out))
}
