// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndarray/backend/cpu"
	internalcpu "github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Tensor is a dense N-dimensional array of T with an explicit execution
// mode on every operation.
//
// Example:
//
//	x, _ := tensor.Zeros[float32](tensor.Shape{2, 3})
//	y, _ := tensor.Ones[float32](tensor.Shape{2, 3})
//	z, err := x.Add(y, tensor.Parallel)
type Tensor[T Numeric] struct {
	a       *tensor.Array[T]
	backend *cpu.Backend
}

// Option configures a Tensor at construction.
type Option func(*options)

type options struct {
	backend *cpu.Backend
}

// WithBackend runs the tensor's operations on b instead of cpu.Default().
// Panics on nil.
func WithBackend(b *cpu.Backend) Option {
	if b == nil {
		panic("tensor: WithBackend(nil)")
	}
	return func(o *options) {
		o.backend = b
	}
}

func wrap[T Numeric](a *tensor.Array[T], err error, opts []Option) (*Tensor[T], error) {
	if err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = cpu.Default()
	}
	return &Tensor[T]{a: a, backend: o.backend}, nil
}

// derive wraps a result computed from t, keeping t's backend.
func (t *Tensor[T]) derive(a *tensor.Array[T], err error) (*Tensor[T], error) {
	if err != nil {
		return nil, err
	}
	return &Tensor[T]{a: a, backend: t.backend}, nil
}

// Creation functions

// New creates a tensor from data laid out in row-major order.
// The slice is copied. Fails with ErrDimensionMismatch if len(data) does not
// match the shape.
//
// Example:
//
//	x, err := tensor.New([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func New[T Numeric](data []T, shape Shape, opts ...Option) (*Tensor[T], error) {
	a, err := tensor.FromSlice(shape, data)
	return wrap(a, err, opts)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T Numeric](shape Shape, opts ...Option) (*Tensor[T], error) {
	a, err := tensor.Zeros[T](shape)
	return wrap(a, err, opts)
}

// Ones creates a tensor filled with ones.
func Ones[T Numeric](shape Shape, opts ...Option) (*Tensor[T], error) {
	a, err := tensor.Ones[T](shape)
	return wrap(a, err, opts)
}

// Full creates a tensor filled with value.
func Full[T Numeric](shape Shape, value T, opts ...Option) (*Tensor[T], error) {
	a, err := tensor.Full(shape, value)
	return wrap(a, err, opts)
}

// Rand creates a tensor of reproducible pseudo-random values: floats in
// [0, 1), integers in [0, 10).
func Rand[T Numeric](shape Shape, seed uint64, opts ...Option) (*Tensor[T], error) {
	a, err := tensor.Rand[T](shape, seed)
	return wrap(a, err, opts)
}

// Identity creates an n×n identity tensor. Fails with ErrInvalidDimensions
// if n < 1.
func Identity[T Numeric](n int, opts ...Option) (*Tensor[T], error) {
	a, err := tensor.Identity[T](n)
	return wrap(a, err, opts)
}

// Accessors

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape { return t.a.Shape() }

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int { return t.a.Rank() }

// Size returns the number of elements.
func (t *Tensor[T]) Size() int { return t.a.Size() }

// IsEmpty reports whether the tensor holds no elements.
func (t *Tensor[T]) IsEmpty() bool { return t.a.IsEmpty() }

// IsSquare reports whether the tensor is a square rank-2 tensor.
func (t *Tensor[T]) IsSquare() bool { return t.a.IsSquare() }

// DType returns the element type.
func (t *Tensor[T]) DType() DataType { return tensor.DataTypeOf[T]() }

// Backend returns the backend the tensor's operations run on.
func (t *Tensor[T]) Backend() *cpu.Backend { return t.backend }

// At returns the element at indices. Fails with ErrIndexOutOfBounds.
func (t *Tensor[T]) At(indices ...int) (T, error) {
	return t.a.At(indices...)
}

// Set stores value at indices. Fails with ErrIndexOutOfBounds.
func (t *Tensor[T]) Set(value T, indices ...int) error {
	return t.a.Set(value, indices...)
}

// Values returns a copy of the elements in row-major order.
func (t *Tensor[T]) Values() []T { return t.a.Values() }

// Clone returns a deep copy.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{a: t.a.Clone(), backend: t.backend}
}

// Reshape returns a copy with a new shape of the same size.
func (t *Tensor[T]) Reshape(shape Shape) (*Tensor[T], error) {
	return t.derive(t.a.Reshape(shape))
}

// Equal reports whether shapes match and elements are equal: exactly for
// integers, within 1e-6 for floats.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	return t.a.Equal(other.a)
}

// Element-wise operations

// Add returns t + other. Fails with ErrShapeMismatch.
func (t *Tensor[T]) Add(other *Tensor[T], mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Add(t.backend, mode, t.a, other.a))
}

// Sub returns t - other. Fails with ErrShapeMismatch.
func (t *Tensor[T]) Sub(other *Tensor[T], mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Sub(t.backend, mode, t.a, other.a))
}

// Mul returns the element-wise (Hadamard) product. Fails with ErrShapeMismatch.
func (t *Tensor[T]) Mul(other *Tensor[T], mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Hadamard(t.backend, mode, t.a, other.a))
}

// Div returns the element-wise quotient. Fails with ErrShapeMismatch, or
// ErrDivisionByZero if any element of other is zero.
func (t *Tensor[T]) Div(other *Tensor[T], mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Div(t.backend, mode, t.a, other.a))
}

// Scale returns t * s.
func (t *Tensor[T]) Scale(s T, mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Scale(t.backend, mode, t.a, s))
}

// DivScalar returns t / s. Fails with ErrDivisionByZero if s is zero.
func (t *Tensor[T]) DivScalar(s T, mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.DivScalar(t.backend, mode, t.a, s))
}

// Neg returns -t.
func (t *Tensor[T]) Neg(mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Neg(t.backend, mode, t.a))
}

// Sum returns the sum of all elements.
func (t *Tensor[T]) Sum(mode Mode) (T, error) {
	return internalcpu.Sum(t.backend, mode, t.a)
}

// Linear algebra

// MatMul multiplies t by other, dispatching on their ranks (see package
// documentation). Other rank combinations fail with ErrMatrixMultiplication;
// mismatched inner dimensions fail with ErrShapeMismatch, which also
// matches ErrMatrixMultiplication.
func (t *Tensor[T]) MatMul(other *Tensor[T], mode Mode) (*Tensor[T], error) {
	switch {
	case t.Rank() == 2 && other.Rank() == 2:
		return t.derive(internalcpu.MatMul(t.backend, mode, t.a, other.a))
	case t.Rank() == 2 && other.Rank() == 1:
		return t.derive(internalcpu.MatVec(t.backend, mode, t.a, other.a))
	case t.Rank() == 1 && other.Rank() == 1:
		d, err := internalcpu.Dot(t.backend, mode, t.a, other.a)
		if err != nil {
			return nil, err
		}
		return t.derive(tensor.Wrap(Shape{1}, []T{d}), nil)
	case t.Rank() == 1 && other.Rank() == 2:
		return t.derive(internalcpu.VecMat(t.backend, mode, t.a, other.a))
	default:
		return nil, &Error{
			Kind:   KindMatrixMultiplication,
			Op:     tensor.OpMatMul,
			Shapes: []Shape{t.Shape(), other.Shape()},
			Msg:    "unsupported operand ranks",
		}
	}
}

// Transpose swaps the two axes of a rank-2 tensor.
// Fails with ErrInvalidOperation for other ranks.
func (t *Tensor[T]) Transpose(mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Transpose(t.backend, mode, t.a))
}

// Trace returns the sum of the diagonal. Fails with ErrDimensionError if
// the tensor is not square.
func (t *Tensor[T]) Trace() (T, error) {
	return internalcpu.Trace(t.a)
}

// Determinant returns the determinant. Fails with ErrDimensionError if the
// tensor is not square.
func (t *Tensor[T]) Determinant() (T, error) {
	return internalcpu.Determinant(t.a)
}

// Minor returns a copy without the given row and column.
// Fails with ErrIndexOutOfBounds.
func (t *Tensor[T]) Minor(row, col int) (*Tensor[T], error) {
	return t.derive(internalcpu.Minor(t.a, row, col))
}

// Cofactor returns the cofactor matrix. Fails with ErrDimensionError if the
// tensor is not square.
func (t *Tensor[T]) Cofactor(mode Mode) (*Tensor[T], error) {
	return t.derive(internalcpu.Cofactor(t.backend, mode, t.a))
}
