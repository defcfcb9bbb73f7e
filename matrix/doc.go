// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides a generic dense 2-D matrix.
//
// # Overview
//
// A Matrix carries its own execution mode. New matrices are concurrent:
// products and element-wise operations spread rows across a bounded worker
// set. SetConcurrent toggles between the parallel and sequential variant of
// the current mode; SetMode selects any of the four modes directly.
//
// # Basic Usage
//
//	a, _ := matrix.FromSlice(2, 2, []float64{1, 2, 3, 4})
//	b, _ := matrix.FromSlice(2, 2, []float64{5, 6, 7, 8})
//
//	c, err := a.Mul(b)          // [[19 22] [43 50]]
//	d, err := a.Determinant()   // -2
//
// # Operators
//
// Go has no operator overloading, so arithmetic is exposed as methods:
//   - Add, Sub: element-wise sum and difference
//   - Mul: matrix product; Scale: product with a scalar
//   - Div: division by a scalar
//   - Neg: negation
//   - Hadamard: element-wise product
//
// All of them return a new Matrix and leave the receiver untouched.
package matrix
