// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend behind matrices and tensors.
//
// # Overview
//
// A Backend bundles the resources an operation may use:
//   - a bounded worker set for Parallel and ParallelSIMD modes
//   - the detected SIMD instruction set for SIMD and ParallelSIMD modes
//   - a structured logger for dispatch decisions
//
// # Basic Usage
//
//	import (
//	    "log/slog"
//
//	    "github.com/born-ml/ndarray/backend/cpu"
//	    "github.com/born-ml/ndarray/matrix"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithWorkers(6), cpu.WithLogger(slog.Default()))
//	    m, _ := matrix.Identity[float64](4, matrix.WithBackend(backend))
//	    _ = m
//	}
//
// # Configuration
//
// Without options, New reads the environment:
//   - NDARRAY_WORKERS: maximum concurrent workers (default: number of CPUs)
//   - NDARRAY_MIN_CHUNK: minimum rows or elements per worker (default: 64)
//   - NDARRAY_PARALLEL: set to false to keep parallel modes on the caller
//   - NDARRAY_SIMD: force an ISA (generic, sse, avx2, avx512, neon)
//
// # Thread Safety
//
// A Backend is immutable after New and safe for concurrent use.
package cpu
