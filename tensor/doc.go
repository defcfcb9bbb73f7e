// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense N-dimensional tensors with an explicit
// execution mode on every operation.
//
// # Overview
//
// A Tensor owns one contiguous row-major buffer plus its shape. Every
// operation returns a fresh Tensor and never mutates its operands; only Set
// writes in place.
//
// # Basic Usage
//
//	a, _ := tensor.New([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	b, _ := tensor.New([]float32{5, 6, 7, 8}, tensor.Shape{2, 2})
//
//	c, err := a.MatMul(b, tensor.ParallelSIMD) // [[19 22] [43 50]]
//
// # Execution Modes
//
// Every mode produces the same result up to float rounding:
//   - Sequential: scalar kernels on the calling goroutine
//   - Parallel: scalar kernels over disjoint ranges on a bounded worker set
//   - SIMD: lane kernels on the calling goroutine (float32/float64 only)
//   - ParallelSIMD: lane kernels over disjoint ranges
//
// Integer tensors always use scalar kernels; the SIMD modes still split work
// the same way as their non-SIMD counterparts.
//
// # Matrix Multiplication
//
// MatMul dispatches on operand ranks:
//
//	(M, K) x (K, N) -> (M, N)
//	(M, K) x (K)    -> (M)
//	(K)    x (K)    -> (1)
//	(K)    x (K, N) -> (N)
//
// # Errors
//
// Failures are reported as *Error values that match one of the sentinel
// errors with errors.Is, e.g. ErrShapeMismatch or ErrDivisionByZero.
package tensor
