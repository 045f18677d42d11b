package ufunc

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/metrics"
)

// Dispatch applies kernel k over the inputs on the given backend and
// returns one output array with the broadcast output shape and the
// kernel's declared return type. The output always resides in host
// memory; accelerator backends retrieve their result before returning.
//
// A dispatch is synchronous and all-or-nothing: it returns a fully
// populated array or an error with no array. Errors are never recovered
// internally and backends are never silently substituted.
//
// Error taxonomy:
//   - *array.ShapeMismatchError: inputs cannot be broadcast
//   - *TypeMismatchError: an input type is not promotable to a parameter type
//   - *ComputeFault: the scalar function failed at a coordinate
//   - *BackendUnavailableError: surfaced by backend constructors
func Dispatch(k *Kernel, be Backend, inputs ...*array.Raw) (*array.Raw, error) {
	if len(inputs) != k.Arity() {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", k.name, k.Arity(), len(inputs))
	}
	for i, in := range inputs {
		if !in.DType().PromotesTo(k.sig.Params[i]) {
			return nil, &TypeMismatchError{Kernel: k.name, Arg: i, Got: in.DType(), Want: k.sig.Params[i]}
		}
	}

	shapes := make([]array.Shape, len(inputs))
	for i, in := range inputs {
		shapes[i] = in.Shape()
	}

	// No allocation happens before the plan is known to be valid.
	plan, err := array.NewPlan(shapes...)
	if err != nil {
		return nil, err
	}

	// Outputs live in host memory regardless of the executing backend;
	// the accelerator reads its result back before Execute returns.
	out, err := array.NewRaw(plan.OutShape(), k.sig.Return, array.CPU)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to allocate output: %w", k.name, err)
	}

	start := time.Now()
	if err := be.Execute(k, inputs, out, plan); err != nil {
		metrics.DispatchTotal.WithLabelValues(be.Name(), "error").Inc()
		log.Debug().Str("kernel", k.name).Str("backend", be.Name()).Err(err).Msg("dispatch failed")
		return nil, err // partially filled output is discarded
	}
	metrics.DispatchTotal.WithLabelValues(be.Name(), "ok").Inc()
	metrics.DispatchDuration.WithLabelValues(be.Name()).Observe(time.Since(start).Seconds())

	return out, nil
}

// Apply1 dispatches a unary kernel over a typed array.
// The kernel's return type must be T.
func Apply1[T array.DType](k *Kernel, be Backend, x *array.Array[T]) (*array.Array[T], error) {
	return typedDispatch[T](k, be, x.Raw())
}

// Apply2 dispatches a binary kernel over typed arrays.
// The kernel's return type must be T.
func Apply2[T array.DType](k *Kernel, be Backend, x, y *array.Array[T]) (*array.Array[T], error) {
	return typedDispatch[T](k, be, x.Raw(), y.Raw())
}

// Apply3 dispatches a ternary kernel over typed arrays.
// The kernel's return type must be T.
func Apply3[T array.DType](k *Kernel, be Backend, x, y, z *array.Array[T]) (*array.Array[T], error) {
	return typedDispatch[T](k, be, x.Raw(), y.Raw(), z.Raw())
}

func typedDispatch[T array.DType](k *Kernel, be Backend, inputs ...*array.Raw) (*array.Array[T], error) {
	if want := array.TypeOf[T](); k.sig.Return != want {
		return nil, fmt.Errorf("%s: kernel returns %s, caller expects %s", k.name, k.sig.Return, want)
	}
	raw, err := Dispatch(k, be, inputs...)
	if err != nil {
		return nil, err
	}
	return array.New[T](raw), nil
}
