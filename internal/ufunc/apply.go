package ufunc

import "github.com/born-ml/ufunc/internal/array"

// ApplyRange applies k to the flat output indices [lo, hi), gathering
// each input scalar through the plan's broadcast-adjusted strides. Host
// backends build their whole execution out of this: the sequential
// backend calls it once over the full range, the parallel backend over
// disjoint chunks.
//
// The typed fast path is taken when the kernel has one and every input's
// element type matches the signature exactly; otherwise scalars are
// widened per element through the boxed path.
func ApplyRange(k *Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan, lo, hi int) error {
	if k.loop != nil && exactMatch(k, inputs) {
		return k.loop(out, inputs, plan, lo, hi)
	}
	return applyBoxed(k, inputs, out, plan, lo, hi)
}

func exactMatch(k *Kernel, inputs []*array.Raw) bool {
	for i, in := range inputs {
		if in.DType() != k.sig.Params[i] {
			return false
		}
	}
	return true
}

// applyBoxed is the generic path: scalars are gathered as boxed values,
// widened to the declared parameter types, and the result stored by the
// declared return type.
func applyBoxed(k *Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan, lo, hi int) error {
	args := make([]any, len(inputs))
	uniform := plan.Uniform()
	for i := lo; i < hi; i++ {
		for j, in := range inputs {
			idx := i
			if !uniform {
				idx = plan.Index(i, j)
			}
			args[j] = in.Item(idx, k.sig.Params[j])
		}
		v, err := k.fn(args)
		if err != nil {
			return &ComputeFault{Kernel: k.name, Coord: plan.Coord(i), Err: err}
		}
		out.SetItem(i, v)
	}
	return nil
}
