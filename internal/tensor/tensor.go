package tensor

import "math"

// DefaultTolerance is the absolute tolerance used by Equal for float elements.
const DefaultTolerance = 1e-6

// Array is the dense, row-major storage shared by the matrix and tensor forms.
//
// The buffer is exclusively owned: len(data) == shape.NumElements() always
// holds, and no accessor hands out the live buffer except Data, which exists
// for kernels in this module.
type Array[T Numeric] struct {
	shape  Shape // dimensions
	stride []int // row-major strides
	data   []T   // flat backing storage
}

// newArray allocates a zero-filled array after validating the shape.
func newArray[T Numeric](shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Array[T]{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]T, shape.NumElements()),
	}, nil
}

// Wrap builds an array around a freshly allocated buffer, taking ownership.
// Kernels use it for results they have just materialized.
// Panics if the buffer length does not match the shape.
func Wrap[T Numeric](shape Shape, data []T) *Array[T] {
	if len(data) != shape.NumElements() {
		panic("tensor: Wrap buffer length does not match shape " + shape.String())
	}
	return &Array[T]{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   data,
	}
}

// Shape returns a copy of the array's shape.
func (a *Array[T]) Shape() Shape {
	return a.shape.Clone()
}

// Rank returns the number of dimensions.
func (a *Array[T]) Rank() int {
	return len(a.shape)
}

// Dim returns the size of dimension i.
func (a *Array[T]) Dim(i int) int {
	return a.shape[i]
}

// Size returns the total number of elements.
func (a *Array[T]) Size() int {
	return len(a.data)
}

// IsEmpty reports whether the array holds no elements.
func (a *Array[T]) IsEmpty() bool {
	return len(a.data) == 0
}

// IsSquare reports whether the array is a rank-2 array with equal dimensions.
func (a *Array[T]) IsSquare() bool {
	return len(a.shape) == 2 && a.shape[0] == a.shape[1]
}

// Data returns the live backing buffer.
//
// WARNING: kernels only. Writes through the returned slice bypass bounds checks.
func (a *Array[T]) Data() []T {
	return a.data
}

// Values returns a copy of the elements in row-major order.
func (a *Array[T]) Values() []T {
	out := make([]T, len(a.data))
	copy(out, a.data)
	return out
}

// Offset converts indices into a flat buffer offset.
func (a *Array[T]) Offset(op string, indices ...int) (int, error) {
	if len(indices) != len(a.shape) {
		return 0, &Error{
			Kind:   KindDimensionMismatch,
			Op:     op,
			Shapes: []Shape{a.shape.Clone()},
			Index:  append([]int(nil), indices...),
			Msg:    "wrong number of indices",
		}
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			return 0, IndexError(op, indices, a.shape)
		}
		offset += idx * a.stride[i]
	}
	return offset, nil
}

// At returns the element at the given indices.
func (a *Array[T]) At(indices ...int) (T, error) {
	off, err := a.Offset("at", indices...)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// Set assigns value at the given indices.
func (a *Array[T]) Set(value T, indices ...int) error {
	off, err := a.Offset("set", indices...)
	if err != nil {
		return err
	}
	a.data[off] = value
	return nil
}

// Row copies row i of a rank-2 array.
func (a *Array[T]) Row(i int) ([]T, error) {
	if len(a.shape) != 2 {
		return nil, ShapeError(KindInvalidOperation, "row", a.shape)
	}
	rows, cols := a.shape[0], a.shape[1]
	if i < 0 || i >= rows {
		return nil, IndexError("row", []int{i}, a.shape)
	}
	out := make([]T, cols)
	copy(out, a.data[i*cols:(i+1)*cols])
	return out, nil
}

// Col copies column j of a rank-2 array.
func (a *Array[T]) Col(j int) ([]T, error) {
	if len(a.shape) != 2 {
		return nil, ShapeError(KindInvalidOperation, "col", a.shape)
	}
	rows, cols := a.shape[0], a.shape[1]
	if j < 0 || j >= cols {
		return nil, IndexError("col", []int{j}, a.shape)
	}
	out := make([]T, rows)
	for i := range out {
		out[i] = a.data[i*cols+j]
	}
	return out, nil
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		shape:  a.shape.Clone(),
		stride: append([]int(nil), a.stride...),
		data:   a.Values(),
	}
}

// Reshape returns a copy with a new shape holding the same number of elements.
func (a *Array[T]) Reshape(shape Shape) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(a.data) {
		return nil, ShapeError(KindDimensionMismatch, "reshape", a.shape, shape)
	}
	return Wrap(shape, a.Values()), nil
}

// Equal compares shape and elements: exactly for integers, within
// DefaultTolerance for floats.
func (a *Array[T]) Equal(other *Array[T]) bool {
	if IsFloat[T]() {
		return a.ApproxEqual(other, DefaultTolerance)
	}
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i := range a.data {
		if a.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// ApproxEqual compares shape and elements within an absolute tolerance.
func (a *Array[T]) ApproxEqual(other *Array[T], tol float64) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i := range a.data {
		// Negated comparison so a NaN difference counts as unequal.
		if !(math.Abs(float64(a.data[i])-float64(other.data[i])) <= tol) {
			return false
		}
	}
	return true
}
