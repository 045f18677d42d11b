package sequential

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/ufunc"
)

func TestExecuteAdd(t *testing.T) {
	add := ufunc.Binary("add", func(x, y int64) (int64, error) { return x + y, nil })

	a, _ := array.FromSlice([]int64{1, 2, 3, 4}, array.Shape{4})
	b, _ := array.FromSlice([]int64{10, 20, 30, 40}, array.Shape{4})

	out, err := ufunc.Apply2(add, New(), a, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 22, 33, 44}, out.Data())
}

func TestExecuteSuppress(t *testing.T) {
	suppress := ufunc.Binary("suppress", func(value, threshold int16) (int16, error) {
		abs := value
		if abs < 0 {
			abs = -abs
		}
		if abs < threshold {
			return 0, nil
		}
		return value, nil
	})

	values, _ := array.FromSlice([]int16{5, -20, 3, 40}, array.Shape{4})
	threshold := array.Scalar[int16](10)

	out, err := ufunc.Apply2(suppress, New(), values, threshold)
	require.NoError(t, err)
	assert.Equal(t, []int16{0, -20, 0, 40}, out.Data())
}

func TestExecuteFaultCoordinate(t *testing.T) {
	div := ufunc.Binary("div", func(x, y int64) (int64, error) {
		if y == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return x / y, nil
	})

	a, _ := array.FromSlice([]int64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
	b, _ := array.FromSlice([]int64{1, 1, 1, 1, 0, 1}, array.Shape{2, 3})

	out, err := ufunc.Apply2(div, New(), a, b)
	require.Error(t, err)
	assert.Nil(t, out)

	var fault *ufunc.ComputeFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, []int{1, 1}, fault.Coord)
}

func TestExecuteZeroElements(t *testing.T) {
	neg := ufunc.Unary("neg", func(x float32) (float32, error) { return -x, nil })

	empty, _ := array.FromSlice([]float32{}, array.Shape{0, 3})
	out, err := ufunc.Apply1(neg, New(), empty)
	require.NoError(t, err)
	assert.Equal(t, 0, out.NumElements())
	assert.True(t, array.Shape{0, 3}.Equal(out.Shape()))
}

func TestBackendName(t *testing.T) {
	b := New()
	assert.Equal(t, "sequential-host", b.Name())
	assert.Equal(t, array.CPU, b.Device())
}
