// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"log/slog"

	internalcpu "github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/simd"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.Backend

// Option configures a Backend.
type Option = internalcpu.Option

// ISA identifies a SIMD instruction set.
type ISA = simd.ISA

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New(cpu.WithWorkers(4), cpu.WithSIMD(false))
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// Default returns the shared backend used when none is supplied.
func Default() *Backend {
	return internalcpu.Default()
}

// WithWorkers sets the maximum number of concurrent workers. Panics if n < 1.
func WithWorkers(n int) Option {
	return internalcpu.WithWorkers(n)
}

// WithMinChunkSize sets the minimum work per worker. Panics if n < 1.
func WithMinChunkSize(n int) Option {
	return internalcpu.WithMinChunkSize(n)
}

// WithParallel enables or disables worker fan-out.
func WithParallel(on bool) Option {
	return internalcpu.WithParallel(on)
}

// WithSIMD enables or disables lane kernels.
func WithSIMD(on bool) Option {
	return internalcpu.WithSIMD(on)
}

// WithLogger attaches a structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	return internalcpu.WithLogger(l)
}

// DetectedISA returns the instruction set selected for this process.
func DetectedISA() ISA {
	return simd.ActiveISA()
}
