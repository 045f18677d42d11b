package ufunc

import (
	"fmt"

	"github.com/born-ml/ufunc/internal/array"
)

// loopFunc is a typed fast path over a half-open range [lo, hi) of the
// flat output index space. Installed by the typed constructors; only valid
// when every input's element type matches the signature exactly.
type loopFunc func(out *array.Raw, inputs []*array.Raw, plan *array.Plan, lo, hi int) error

// Kernel is a registered scalar function: a name, an explicit type
// signature and a pure function from scalars to one scalar. Kernels are
// immutable after construction and safe for concurrent dispatch.
type Kernel struct {
	name string
	sig  Signature

	// fn is the boxed form, always present. It receives scalars already
	// widened to the declared parameter types and must return a value of
	// the declared return type.
	fn func(args []any) (any, error)

	// loop is the typed fast path, present for kernels built with the
	// generic constructors.
	loop loopFunc

	// wgsl is the optional device expression for the accelerator backend,
	// written over parameters x0..xN-1.
	wgsl string
}

// New creates a kernel from a boxed scalar function with an explicit
// signature. The function receives scalars of the declared parameter
// types (inputs of narrower same-kind types are widened first) and must
// return a value of the declared return type.
//
// Use the typed constructors Unary, Binary and Ternary where the
// signature is homogeneous; they install a faster dispatch path.
func New(name string, sig Signature, fn func(args []any) (any, error)) *Kernel {
	if len(sig.Params) == 0 {
		panic(fmt.Sprintf("kernel %s: signature needs at least one parameter", name))
	}
	return &Kernel{name: name, sig: sig, fn: fn}
}

// Unary creates a kernel with signature (T) -> T.
//
// Example:
//
//	neg := ufunc.Unary("neg", func(x float64) (float64, error) { return -x, nil })
func Unary[T array.DType](name string, f func(T) (T, error)) *Kernel {
	dt := array.TypeOf[T]()
	k := &Kernel{
		name: name,
		sig:  Signature{Params: []array.DataType{dt}, Return: dt},
		fn: func(args []any) (any, error) {
			return f(args[0].(T))
		},
	}
	k.loop = func(out *array.Raw, inputs []*array.Raw, plan *array.Plan, lo, hi int) error {
		in := array.Data[T](inputs[0])
		dst := array.Data[T](out)
		if plan.Uniform() {
			for i := lo; i < hi; i++ {
				v, err := f(in[i])
				if err != nil {
					return &ComputeFault{Kernel: name, Coord: plan.Coord(i), Err: err}
				}
				dst[i] = v
			}
			return nil
		}
		for i := lo; i < hi; i++ {
			v, err := f(in[plan.Index(i, 0)])
			if err != nil {
				return &ComputeFault{Kernel: name, Coord: plan.Coord(i), Err: err}
			}
			dst[i] = v
		}
		return nil
	}
	return k
}

// Binary creates a kernel with signature (T, T) -> T.
//
// Example:
//
//	add := ufunc.Binary("add", func(x, y int64) (int64, error) { return x + y, nil })
func Binary[T array.DType](name string, f func(x, y T) (T, error)) *Kernel {
	dt := array.TypeOf[T]()
	k := &Kernel{
		name: name,
		sig:  Signature{Params: []array.DataType{dt, dt}, Return: dt},
		fn: func(args []any) (any, error) {
			return f(args[0].(T), args[1].(T))
		},
	}
	k.loop = func(out *array.Raw, inputs []*array.Raw, plan *array.Plan, lo, hi int) error {
		a := array.Data[T](inputs[0])
		b := array.Data[T](inputs[1])
		dst := array.Data[T](out)
		if plan.Uniform() {
			for i := lo; i < hi; i++ {
				v, err := f(a[i], b[i])
				if err != nil {
					return &ComputeFault{Kernel: name, Coord: plan.Coord(i), Err: err}
				}
				dst[i] = v
			}
			return nil
		}
		for i := lo; i < hi; i++ {
			v, err := f(a[plan.Index(i, 0)], b[plan.Index(i, 1)])
			if err != nil {
				return &ComputeFault{Kernel: name, Coord: plan.Coord(i), Err: err}
			}
			dst[i] = v
		}
		return nil
	}
	return k
}

// Ternary creates a kernel with signature (T, T, T) -> T.
//
// Example:
//
//	pdf := ufunc.Ternary("gaussian_pdf", gaussian) // (x, mean, sigma)
func Ternary[T array.DType](name string, f func(x, y, z T) (T, error)) *Kernel {
	dt := array.TypeOf[T]()
	k := &Kernel{
		name: name,
		sig:  Signature{Params: []array.DataType{dt, dt, dt}, Return: dt},
		fn: func(args []any) (any, error) {
			return f(args[0].(T), args[1].(T), args[2].(T))
		},
	}
	k.loop = func(out *array.Raw, inputs []*array.Raw, plan *array.Plan, lo, hi int) error {
		a := array.Data[T](inputs[0])
		b := array.Data[T](inputs[1])
		c := array.Data[T](inputs[2])
		dst := array.Data[T](out)
		if plan.Uniform() {
			for i := lo; i < hi; i++ {
				v, err := f(a[i], b[i], c[i])
				if err != nil {
					return &ComputeFault{Kernel: name, Coord: plan.Coord(i), Err: err}
				}
				dst[i] = v
			}
			return nil
		}
		for i := lo; i < hi; i++ {
			v, err := f(a[plan.Index(i, 0)], b[plan.Index(i, 1)], c[plan.Index(i, 2)])
			if err != nil {
				return &ComputeFault{Kernel: name, Coord: plan.Coord(i), Err: err}
			}
			dst[i] = v
		}
		return nil
	}
	return k
}

// WithWGSL attaches a device expression for the accelerator backend,
// written in WGSL over parameters named x0..xN-1. Returns the kernel for
// chaining.
//
// Example:
//
//	add := ufunc.Binary("add", addFn).WithWGSL("x0 + x1")
func (k *Kernel) WithWGSL(expr string) *Kernel {
	k.wgsl = expr
	return k
}

// Name returns the kernel's registered name.
func (k *Kernel) Name() string {
	return k.name
}

// Signature returns the kernel's declared type signature.
func (k *Kernel) Signature() Signature {
	return k.sig
}

// Arity returns the number of scalar inputs.
func (k *Kernel) Arity() int {
	return k.sig.Arity()
}

// WGSL returns the kernel's device expression, or "" if none was attached.
func (k *Kernel) WGSL() string {
	return k.wgsl
}

// CacheKey returns a stable identifier for this kernel and signature,
// used by backends to key compiled artifacts.
func (k *Kernel) CacheKey() string {
	return k.name + "|" + k.sig.Key()
}

// String returns a human-readable representation of the kernel.
func (k *Kernel) String() string {
	return fmt.Sprintf("%s%s", k.name, k.sig)
}
