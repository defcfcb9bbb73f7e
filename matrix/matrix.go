// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/born-ml/ndarray/backend/cpu"
	internalcpu "github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Numeric is the element constraint: signed integers and floats.
type Numeric = tensor.Numeric

// Matrix is a dense rows×cols matrix stored in row-major order.
//
// The execution mode is instance configuration read at call time; it picks
// kernels and never changes results beyond float rounding. Results inherit
// the receiver's mode and backend.
type Matrix[T Numeric] struct {
	a       *tensor.Array[T]
	mode    Mode
	backend *cpu.Backend
}

func build[T Numeric](a *tensor.Array[T], err error, opts []Option) (*Matrix[T], error) {
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = cpu.Default()
	}
	return &Matrix[T]{a: a, mode: o.mode, backend: o.backend}, nil
}

// derive wraps a result computed from m, keeping m's configuration.
func (m *Matrix[T]) derive(a *tensor.Array[T], err error) (*Matrix[T], error) {
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{a: a, mode: m.mode, backend: m.backend}, nil
}

// Construction

// New creates a rows×cols matrix of zeros.
// Fails with ErrInvalidDimensions on a negative dimension.
func New[T Numeric](rows, cols int, opts ...Option) (*Matrix[T], error) {
	return Zeros[T](rows, cols, opts...)
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros[T Numeric](rows, cols int, opts ...Option) (*Matrix[T], error) {
	a, err := tensor.Zeros[T](tensor.Shape{rows, cols})
	return build(a, err, opts)
}

// Ones creates a rows×cols matrix of ones.
func Ones[T Numeric](rows, cols int, opts ...Option) (*Matrix[T], error) {
	a, err := tensor.Ones[T](tensor.Shape{rows, cols})
	return build(a, err, opts)
}

// Full creates a rows×cols matrix filled with value.
func Full[T Numeric](rows, cols int, value T, opts ...Option) (*Matrix[T], error) {
	a, err := tensor.Full(tensor.Shape{rows, cols}, value)
	return build(a, err, opts)
}

// Identity creates an n×n identity matrix. Fails with ErrInvalidDimensions
// if n < 1.
func Identity[T Numeric](n int, opts ...Option) (*Matrix[T], error) {
	a, err := tensor.Identity[T](n)
	return build(a, err, opts)
}

// FromSlice creates a rows×cols matrix from row-major data. The slice is
// copied. Fails with ErrDimensionMismatch if len(data) != rows*cols.
//
// Example:
//
//	m, err := matrix.FromSlice(2, 3, []int{1, 2, 3, 4, 5, 6})
func FromSlice[T Numeric](rows, cols int, data []T, opts ...Option) (*Matrix[T], error) {
	a, err := tensor.FromSlice(tensor.Shape{rows, cols}, data)
	return build(a, err, opts)
}

// Rand creates a matrix of reproducible pseudo-random values: floats in
// [0, 1), integers in [0, 10).
func Rand[T Numeric](rows, cols int, seed uint64, opts ...Option) (*Matrix[T], error) {
	a, err := tensor.Rand[T](tensor.Shape{rows, cols}, seed)
	return build(a, err, opts)
}

// Accessors

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.a.Dim(0) }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.a.Dim(1) }

// Dims returns the number of rows and columns.
func (m *Matrix[T]) Dims() (rows, cols int) { return m.a.Dim(0), m.a.Dim(1) }

// Shape returns the dimensions as a slice {rows, cols}.
func (m *Matrix[T]) Shape() []int { return m.a.Shape() }

// Rank always returns 2.
func (m *Matrix[T]) Rank() int { return 2 }

// Size returns rows*cols.
func (m *Matrix[T]) Size() int { return m.a.Size() }

// IsSquare reports whether rows == cols.
func (m *Matrix[T]) IsSquare() bool { return m.a.IsSquare() }

// IsEmpty reports whether the matrix has no elements.
func (m *Matrix[T]) IsEmpty() bool { return m.a.IsEmpty() }

// At returns the element at (row, col). Fails with ErrIndexOutOfBounds.
func (m *Matrix[T]) At(row, col int) (T, error) {
	return m.a.At(row, col)
}

// Set stores value at (row, col). Fails with ErrIndexOutOfBounds.
func (m *Matrix[T]) Set(row, col int, value T) error {
	return m.a.Set(value, row, col)
}

// Row returns a copy of row i.
func (m *Matrix[T]) Row(i int) ([]T, error) { return m.a.Row(i) }

// Col returns a copy of column j.
func (m *Matrix[T]) Col(j int) ([]T, error) { return m.a.Col(j) }

// Values returns a copy of the elements in row-major order.
func (m *Matrix[T]) Values() []T { return m.a.Values() }

// Clone returns a deep copy with the same configuration.
func (m *Matrix[T]) Clone() *Matrix[T] {
	return &Matrix[T]{a: m.a.Clone(), mode: m.mode, backend: m.backend}
}

// Equal reports whether dimensions match and elements are equal: exactly
// for integers, within 1e-6 for floats.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	return m.a.Equal(other.a)
}

// Execution mode

// IsConcurrent reports whether the matrix's mode uses workers.
func (m *Matrix[T]) IsConcurrent() bool { return m.mode.IsParallel() }

// SetConcurrent switches between the parallel and sequential variant of
// the current mode: Sequential <-> Parallel, SIMD <-> ParallelSIMD.
func (m *Matrix[T]) SetConcurrent(on bool) {
	m.mode = m.mode.WithParallel(on)
}

// Mode returns the execution mode used by operations without an explicit mode.
func (m *Matrix[T]) Mode() Mode { return m.mode }

// SetMode sets the execution mode. Operations fail with ErrInvalidOperation
// while an unknown mode is set.
func (m *Matrix[T]) SetMode(mode Mode) { m.mode = mode }

// Arithmetic

// Add returns m + other. Fails with ErrIncompatibleDimensions.
func (m *Matrix[T]) Add(other *Matrix[T]) (*Matrix[T], error) {
	return m.derive(internalcpu.Add(m.backend, m.mode, m.a, other.a))
}

// Sub returns m - other. Fails with ErrIncompatibleDimensions.
func (m *Matrix[T]) Sub(other *Matrix[T]) (*Matrix[T], error) {
	return m.derive(internalcpu.Sub(m.backend, m.mode, m.a, other.a))
}

// Hadamard returns the element-wise product.
// Fails with ErrIncompatibleDimensions.
func (m *Matrix[T]) Hadamard(other *Matrix[T]) (*Matrix[T], error) {
	return m.derive(internalcpu.Hadamard(m.backend, m.mode, m.a, other.a))
}

// Mul returns the matrix product m × other in the matrix's mode.
// Fails with ErrIncompatibleDimensions if m.Cols() != other.Rows().
func (m *Matrix[T]) Mul(other *Matrix[T]) (*Matrix[T], error) {
	return m.MatMul(other, m.mode)
}

// MatMul returns the matrix product m × other in an explicit mode.
// Fails with ErrIncompatibleDimensions if m.Cols() != other.Rows(); the
// error also matches ErrMatrixMultiplication.
func (m *Matrix[T]) MatMul(other *Matrix[T], mode Mode) (*Matrix[T], error) {
	return m.derive(internalcpu.MatMul(m.backend, mode, m.a, other.a))
}

// Scale returns m * s.
func (m *Matrix[T]) Scale(s T) (*Matrix[T], error) {
	return m.derive(internalcpu.Scale(m.backend, m.mode, m.a, s))
}

// Div returns m / s. Fails with ErrDivisionByZero if s is zero.
func (m *Matrix[T]) Div(s T) (*Matrix[T], error) {
	return m.derive(internalcpu.DivScalar(m.backend, m.mode, m.a, s))
}

// Neg returns -m.
func (m *Matrix[T]) Neg() (*Matrix[T], error) {
	return m.derive(internalcpu.Neg(m.backend, m.mode, m.a))
}

// Linear algebra

// Transpose returns the cols×rows transpose.
func (m *Matrix[T]) Transpose() (*Matrix[T], error) {
	return m.derive(internalcpu.Transpose(m.backend, m.mode, m.a))
}

// Trace returns the sum of the diagonal. Fails with ErrNotSquareMatrix.
func (m *Matrix[T]) Trace() (T, error) {
	return internalcpu.Trace(m.a)
}

// Determinant returns the determinant. Fails with ErrNotSquareMatrix.
// The determinant of a 0×0 matrix is 1.
func (m *Matrix[T]) Determinant() (T, error) {
	return internalcpu.Determinant(m.a)
}

// Minor returns a copy without the given row and column.
// Fails with ErrIndexOutOfBounds.
func (m *Matrix[T]) Minor(row, col int) (*Matrix[T], error) {
	return m.derive(internalcpu.Minor(m.a, row, col))
}

// CofactorMatrix returns the matrix of signed minor determinants.
// Fails with ErrNotSquareMatrix.
func (m *Matrix[T]) CofactorMatrix() (*Matrix[T], error) {
	return m.derive(internalcpu.Cofactor(m.backend, m.mode, m.a))
}
