// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides the parallel-host execution backend: chunked
// goroutines over the output index space with no ordering guarantee
// between coordinates. Scalar functions must be pure; the backend shares
// no mutable state between coordinate evaluations.
package parallel

import (
	internalpar "github.com/born-ml/ufunc/internal/backend/parallel"
	"github.com/born-ml/ufunc/ufunc"
)

// Backend represents the parallel host backend implementation.
type Backend = internalpar.Backend

// Compile-time check that Backend implements ufunc.Backend.
var _ ufunc.Backend = (*Backend)(nil)

// New creates a new parallel host backend sized to the machine's CPU
// count.
//
// Example:
//
//	be := parallel.New()
//	out, err := ufunc.Apply2(add, be, a, b)
func New() *Backend {
	return internalpar.New()
}
