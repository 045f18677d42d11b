// Package parallel implements the host backend that evaluates many
// coordinates concurrently.
package parallel

import (
	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/parallel"
	"github.com/born-ml/ufunc/internal/ufunc"
)

// Backend evaluates kernels on the host with chunked goroutines. There is
// no ordering guarantee between coordinates and no shared mutable state
// between coordinate evaluations; the scalar function must be pure.
type Backend struct {
	cfg parallel.Config
}

// New creates a parallel host backend sized to the machine's CPU count.
func New() *Backend {
	return &Backend{cfg: parallel.DefaultConfig()}
}

// NewWithConfig creates a parallel host backend with explicit worker
// settings. Useful in tests to force specific chunking.
func NewWithConfig(cfg parallel.Config) *Backend {
	return &Backend{cfg: cfg}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "parallel-host"
}

// Device returns the compute device.
func (b *Backend) Device() array.Device {
	return array.CPU
}

// Execute applies k over disjoint chunks of the output index space.
// The first fault aborts the dispatch; remaining chunks are skipped and
// the partially filled output is discarded by the dispatcher.
func (b *Backend) Execute(k *ufunc.Kernel, inputs []*array.Raw, out *array.Raw, plan *array.Plan) error {
	return parallel.ForRanges(plan.NumElements(), func(lo, hi int) error {
		return ufunc.ApplyRange(k, inputs, out, plan, lo, hi)
	}, b.cfg)
}
