// Package sequential implements the host backend that evaluates strictly
// one coordinate at a time.
package sequential

import (
	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/ufunc"
)

// Backend evaluates kernels sequentially on the host. It is the reference
// execution strategy: the parallel and accelerator backends must agree
// with it up to the element type's precision tolerance.
type Backend struct{}

// New creates a sequential host backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "sequential-host"
}

// Device returns the compute device.
func (b *Backend) Device() array.Device {
	return array.CPU
}

// Execute applies k over the whole output index space in one pass.
func (b *Backend) Execute(k *ufunc.Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan) error {
	return ufunc.ApplyRange(k, inputs, out, plan, 0, plan.NumElements())
}
