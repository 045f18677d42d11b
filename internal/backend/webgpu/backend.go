// Package webgpu implements the accelerator backend on WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/born-ml/ufunc/internal/array"
	"github.com/born-ml/ufunc/internal/ufunc"
)

// Backend executes kernels on a GPU via WebGPU. Kernels must carry a WGSL
// device expression; the backend generates an elementwise compute shader
// per (kernel, type signature) and caches the compiled pipeline, so the
// first dispatch of a signature pays a compilation latency that later
// dispatches do not.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	adapterInfo *wgpu.AdapterInfoGo

	// Compiled artifact cache, keyed by Kernel.CacheKey(). Entries are
	// read-only after construction; group guarantees a single build per
	// key under concurrent first use.
	mu        sync.RWMutex
	pipelines map[string]*pipeline
	group     singleflight.Group
}

// pipeline is a compiled execution artifact for one kernel signature.
type pipeline struct {
	shader  *wgpu.ShaderModule
	compute *wgpu.ComputePipeline
}

// New creates a WebGPU backend, or a *ufunc.BackendUnavailableError if no
// compatible adapter or device is present. The error is surfaced to the
// caller; there is no silent fallback to a host backend.
func New() (backend *Backend, err error) {
	// Recover from panic if the wgpu native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = &ufunc.BackendUnavailableError{
				Backend: "accelerator",
				Err:     fmt.Errorf("webgpu: native library not available: %v", r),
			}
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, &ufunc.BackendUnavailableError{
			Backend: "accelerator",
			Err:     fmt.Errorf("webgpu: failed to create instance: %w", instanceErr),
		}
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, &ufunc.BackendUnavailableError{
			Backend: "accelerator",
			Err:     fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr),
		}
	}

	adapterInfo, _ := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, &ufunc.BackendUnavailableError{
			Backend: "accelerator",
			Err:     fmt.Errorf("webgpu: failed to request device: %w", deviceErr),
		}
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, &ufunc.BackendUnavailableError{
			Backend: "accelerator",
			Err:     fmt.Errorf("webgpu: failed to get queue"),
		}
	}

	b := &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		adapterInfo: adapterInfo,
		pipelines:   make(map[string]*pipeline),
	}

	if adapterInfo != nil {
		log.Info().
			Str("adapter", adapterInfo.Device).
			Str("vendor", adapterInfo.Vendor).
			Msg("webgpu backend initialized")
	}

	return b, nil
}

// IsAvailable reports whether a WebGPU adapter and device can be
// initialized on this system. Useful for graceful skipping in tests and
// examples; the evaluator itself never falls back silently.
func IsAvailable() bool {
	b, err := New()
	if err != nil {
		return false
	}
	b.Release()
	return true
}

// Name returns the backend name.
func (b *Backend) Name() string {
	if b.adapterInfo != nil && b.adapterInfo.Device != "" {
		return fmt.Sprintf("accelerator (%s)", b.adapterInfo.Device)
	}
	return "accelerator"
}

// Device returns the compute device.
func (b *Backend) Device() array.Device {
	return array.WebGPU
}

// Release frees all GPU resources, including cached pipelines.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.compute.Release()
		p.shader.Release()
	}
	b.pipelines = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
