// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"fmt"

	"github.com/born-ml/ndarray/backend/cpu"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Option configures a Matrix at construction.
type Option func(*options)

type options struct {
	mode    Mode
	backend *cpu.Backend
}

func defaultOptions() options {
	return options{mode: Parallel}
}

// WithConcurrent selects the parallel (true) or sequential (false) variant
// of the matrix's mode.
func WithConcurrent(on bool) Option {
	return func(o *options) {
		o.mode = o.mode.WithParallel(on)
	}
}

// WithMode sets the execution mode. Panics on an unknown mode.
func WithMode(m Mode) Option {
	if !m.Valid() {
		panic(fmt.Sprintf("matrix: WithMode(%d): unknown mode", int(m)))
	}
	return func(o *options) {
		o.mode = m
	}
}

// WithBackend runs the matrix's operations on b instead of cpu.Default().
// Panics on nil.
func WithBackend(b *cpu.Backend) Option {
	if b == nil {
		panic("matrix: WithBackend(nil)")
	}
	return func(o *options) {
		o.backend = b
	}
}

// Mode selects the kernel strategy for one operation.
type Mode = tensor.Mode

// Execution modes.
const (
	Sequential   Mode = tensor.Sequential
	Parallel     Mode = tensor.Parallel
	SIMD         Mode = tensor.SIMD
	ParallelSIMD Mode = tensor.ParallelSIMD
)
