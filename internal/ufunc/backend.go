package ufunc

import "github.com/born-ml/ufunc/internal/array"

// Backend is the execution strategy for a dispatch: it applies a scalar
// function at every coordinate of the broadcast output space.
//
// Implementations:
//   - backend/sequential: one coordinate at a time on the host
//   - backend/parallel: chunked goroutines over the host, no ordering guarantee
//   - backend/webgpu: massively parallel accelerator via WebGPU
//
// Backend choice never changes broadcasting semantics or the error
// taxonomy, only the execution strategy. All backends must produce results
// equal up to the element type's precision tolerance: bit-exact for
// integers, within a relative tolerance for floats (parallel execution
// orders may round differently).
type Backend interface {
	// Name returns the backend's identifier.
	Name() string

	// Device returns where this backend's output arrays live.
	Device() array.Device

	// Execute applies k across the plan's output index space, gathering
	// inputs through their broadcast-adjusted strides and storing one
	// result per coordinate in out. It either fills out completely or
	// returns an error; out must then be discarded by the caller.
	Execute(k *Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan) error
}
