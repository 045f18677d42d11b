// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the accelerator execution backend on WebGPU.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via Dawn/D3D12)
//   - macOS (via Dawn/Metal)
//   - Linux (via Dawn/Vulkan)
//
// Kernels dispatched to this backend must carry a WGSL device expression
// (see ufunc.Kernel.WithWGSL). The compiled pipeline for each
// (kernel, type signature) pair is cached, so only the first dispatch of
// a signature pays compilation latency.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("no accelerator")
//	}
//	defer gpu.Release()
//
//	add := ufunc.Binary("add", addFn).WithWGSL("x0 + x1")
//	out, err := ufunc.Apply2(add, gpu, a, b)
package webgpu

import (
	internalwebgpu "github.com/born-ml/ufunc/internal/backend/webgpu"
	"github.com/born-ml/ufunc/ufunc"
)

// Backend represents the WebGPU accelerator backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements ufunc.Backend.
var _ ufunc.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// Returns a *ufunc.BackendUnavailableError if no compatible GPU or
// driver is present; the caller decides what to do — the evaluator never
// downgrades to a host backend silently. Call Release() when done to
// free GPU resources.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    be, _ = webgpu.New()
//	} else {
//	    be = parallel.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
