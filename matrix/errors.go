// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import "github.com/born-ml/ndarray/internal/tensor"

// Sentinel errors. Match them with errors.Is; use errors.As with *Error to
// read the operand shapes or offending index.
var (
	ErrInvalidDimensions      = tensor.ErrInvalidDimensions
	ErrIndexOutOfBounds       = tensor.ErrIndexOutOfBounds
	ErrDimensionMismatch      = tensor.ErrDimensionMismatch
	ErrIncompatibleDimensions = tensor.ErrIncompatibleDimensions
	ErrNotSquareMatrix        = tensor.ErrNotSquareMatrix
	ErrDivisionByZero         = tensor.ErrDivisionByZero
	ErrInvalidOperation       = tensor.ErrInvalidOperation
	ErrMatrixMultiplication   = tensor.ErrMatrixMultiplication
)

// Error is the concrete error type returned by every fallible operation.
type Error = tensor.Error
