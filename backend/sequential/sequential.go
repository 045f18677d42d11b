// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sequential provides the sequential-host execution backend:
// strictly one coordinate at a time, no concurrency. It is the reference
// strategy the other backends are checked against.
package sequential

import (
	internalseq "github.com/born-ml/ufunc/internal/backend/sequential"
	"github.com/born-ml/ufunc/ufunc"
)

// Backend represents the sequential host backend implementation.
type Backend = internalseq.Backend

// Compile-time check that Backend implements ufunc.Backend.
var _ ufunc.Backend = (*Backend)(nil)

// New creates a new sequential host backend.
//
// Example:
//
//	be := sequential.New()
//	out, err := ufunc.Apply2(add, be, a, b)
func New() *Backend {
	return internalseq.New()
}
