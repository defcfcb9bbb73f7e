// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndarray/internal/tensor"
)

// Numeric is the element constraint: signed integers and floats.
type Numeric = tensor.Numeric

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// DataType represents the element type of a tensor at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int     DataType = tensor.Int
	Int8    DataType = tensor.Int8
	Int16   DataType = tensor.Int16
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Mode selects the kernel strategy for one operation.
type Mode = tensor.Mode

// Execution modes.
const (
	Sequential   Mode = tensor.Sequential
	Parallel     Mode = tensor.Parallel
	SIMD         Mode = tensor.SIMD
	ParallelSIMD Mode = tensor.ParallelSIMD
)

// Modes lists every execution mode in declaration order.
func Modes() []Mode {
	return tensor.Modes()
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	return tensor.ParseMode(s)
}

// Error is the concrete error type returned by every fallible operation.
type Error = tensor.Error

// Kind classifies an Error.
type Kind = tensor.Kind

// Error kinds.
const (
	KindInvalidDimensions      Kind = tensor.KindInvalidDimensions
	KindIndexOutOfBounds       Kind = tensor.KindIndexOutOfBounds
	KindDimensionMismatch      Kind = tensor.KindDimensionMismatch
	KindIncompatibleDimensions Kind = tensor.KindIncompatibleDimensions
	KindNotSquareMatrix        Kind = tensor.KindNotSquareMatrix
	KindDivisionByZero         Kind = tensor.KindDivisionByZero
	KindInvalidOperation       Kind = tensor.KindInvalidOperation
	KindMatrixMultiplication   Kind = tensor.KindMatrixMultiplication
)

// Sentinel errors for errors.Is.
var (
	ErrInvalidDimensions      = tensor.ErrInvalidDimensions
	ErrIndexOutOfBounds       = tensor.ErrIndexOutOfBounds
	ErrDimensionMismatch      = tensor.ErrDimensionMismatch
	ErrIncompatibleDimensions = tensor.ErrIncompatibleDimensions
	ErrNotSquareMatrix        = tensor.ErrNotSquareMatrix
	ErrDivisionByZero         = tensor.ErrDivisionByZero
	ErrInvalidOperation       = tensor.ErrInvalidOperation
	ErrMatrixMultiplication   = tensor.ErrMatrixMultiplication

	// ErrShapeMismatch is an alias of ErrIncompatibleDimensions.
	ErrShapeMismatch = tensor.ErrShapeMismatch
	// ErrDimensionError is an alias of ErrNotSquareMatrix.
	ErrDimensionError = tensor.ErrDimensionError
)

// KindOf returns the kind of err, or 0 if err did not come from this module.
func KindOf(err error) Kind {
	return tensor.KindOf(err)
}
