package cpu

import (
	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/simd"
	"github.com/born-ml/ndarray/internal/tensor"
)

// binaryOp identifies an element-wise operation on two equally shaped arrays.
type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "hadamard"
	default:
		return "div"
	}
}

// unaryOp identifies an operation applied per element with an optional scalar.
type unaryOp int

const (
	opScale unaryOp = iota
	opDivScalar
	opNeg
)

func (op unaryOp) String() string {
	switch op {
	case opScale:
		return "scale"
	case opDivScalar:
		return "div_scalar"
	default:
		return "neg"
	}
}

// Add returns x + y. Shapes must be identical.
func Add[T tensor.Numeric](b *Backend, mode tensor.Mode, x, y *tensor.Array[T]) (*tensor.Array[T], error) {
	return binary(b, mode, opAdd, x, y)
}

// Sub returns x - y. Shapes must be identical.
func Sub[T tensor.Numeric](b *Backend, mode tensor.Mode, x, y *tensor.Array[T]) (*tensor.Array[T], error) {
	return binary(b, mode, opSub, x, y)
}

// Hadamard returns the element-wise product of x and y.
func Hadamard[T tensor.Numeric](b *Backend, mode tensor.Mode, x, y *tensor.Array[T]) (*tensor.Array[T], error) {
	return binary(b, mode, opMul, x, y)
}

// Div returns the element-wise quotient x / y.
// Fails with ErrDivisionByZero if any element of y is zero.
func Div[T tensor.Numeric](b *Backend, mode tensor.Mode, x, y *tensor.Array[T]) (*tensor.Array[T], error) {
	return binary(b, mode, opDiv, x, y)
}

// Scale returns x * s.
func Scale[T tensor.Numeric](b *Backend, mode tensor.Mode, x *tensor.Array[T], s T) (*tensor.Array[T], error) {
	return unary(b, mode, opScale, x, s)
}

// DivScalar returns x / s. Fails with ErrDivisionByZero if s is zero.
func DivScalar[T tensor.Numeric](b *Backend, mode tensor.Mode, x *tensor.Array[T], s T) (*tensor.Array[T], error) {
	if s == 0 {
		return nil, tensor.Errorf(tensor.KindDivisionByZero, opDivScalar.String(), "scalar divisor is zero")
	}
	return unary(b, mode, opDivScalar, x, s)
}

// Neg returns -x.
func Neg[T tensor.Numeric](b *Backend, mode tensor.Mode, x *tensor.Array[T]) (*tensor.Array[T], error) {
	return unary(b, mode, opNeg, x, 0)
}

func binary[T tensor.Numeric](b *Backend, mode tensor.Mode, op binaryOp, x, y *tensor.Array[T]) (*tensor.Array[T], error) {
	name := op.String()
	shape := x.Shape()
	if !shape.Equal(y.Shape()) {
		return nil, tensor.ShapeError(tensor.KindIncompatibleDimensions, name, shape, y.Shape())
	}
	if op == opDiv {
		for i, v := range y.Data() {
			if v == 0 {
				return nil, tensor.Errorf(tensor.KindDivisionByZero, name, "divisor element %d is zero", i)
			}
		}
	}
	p, err := planFor[T](b, name, mode, shape)
	if err != nil {
		return nil, err
	}

	out := make([]T, x.Size())
	xd, yd := x.Data(), y.Data()
	err = p.run(len(out), func(r parallel.Range) error {
		dst, a, c := out[r.Lo:r.Hi], xd[r.Lo:r.Hi], yd[r.Lo:r.Hi]
		if !p.lanes || !laneBinary(op, dst, a, c) {
			scalarBinary(op, dst, a, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tensor.Wrap(shape, out), nil
}

func unary[T tensor.Numeric](b *Backend, mode tensor.Mode, op unaryOp, x *tensor.Array[T], s T) (*tensor.Array[T], error) {
	shape := x.Shape()
	p, err := planFor[T](b, op.String(), mode, shape)
	if err != nil {
		return nil, err
	}

	out := make([]T, x.Size())
	xd := x.Data()
	err = p.run(len(out), func(r parallel.Range) error {
		dst, a := out[r.Lo:r.Hi], xd[r.Lo:r.Hi]
		if !p.lanes || !laneUnary(op, dst, a, s) {
			scalarUnary(op, dst, a, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tensor.Wrap(shape, out), nil
}

// Sum returns the sum of all elements. Parallel modes reduce one partial
// sum per range and combine them in range order.
func Sum[T tensor.Numeric](b *Backend, mode tensor.Mode, x *tensor.Array[T]) (T, error) {
	p, err := planFor[T](b, "sum", mode, x.Shape())
	if err != nil {
		return 0, err
	}

	data := x.Data()
	ranges := p.partition(len(data))
	partials := make([]T, len(ranges))
	err = p.runRanges(ranges, func(w int, r parallel.Range) error {
		partials[w] = sumKernel(p.lanes, data[r.Lo:r.Hi])
		return nil
	})
	if err != nil {
		return 0, err
	}

	var total T
	for _, v := range partials {
		total += v
	}
	return total, nil
}

func sumKernel[T tensor.Numeric](lanes bool, a []T) T {
	if lanes {
		switch v := any(a).(type) {
		case []float32:
			return any(simd.Sum(v)).(T)
		case []float64:
			return any(simd.Sum(v)).(T)
		}
	}
	var s T
	for _, v := range a {
		s += v
	}
	return s
}

func scalarBinary[T tensor.Numeric](op binaryOp, dst, a, b []T) {
	switch op {
	case opAdd:
		for i := range dst {
			dst[i] = a[i] + b[i]
		}
	case opSub:
		for i := range dst {
			dst[i] = a[i] - b[i]
		}
	case opMul:
		for i := range dst {
			dst[i] = a[i] * b[i]
		}
	case opDiv:
		for i := range dst {
			dst[i] = a[i] / b[i]
		}
	}
}

func scalarUnary[T tensor.Numeric](op unaryOp, dst, a []T, s T) {
	switch op {
	case opScale:
		for i := range dst {
			dst[i] = a[i] * s
		}
	case opDivScalar:
		for i := range dst {
			dst[i] = a[i] / s
		}
	case opNeg:
		for i := range dst {
			dst[i] = -a[i]
		}
	}
}

// laneBinary runs the lane kernel when T is float32 or float64 and reports
// whether it did. Named float types take the scalar path.
func laneBinary[T tensor.Numeric](op binaryOp, dst, a, b []T) bool {
	switch d := any(dst).(type) {
	case []float32:
		laneBinaryFloat(op, d, any(a).([]float32), any(b).([]float32))
	case []float64:
		laneBinaryFloat(op, d, any(a).([]float64), any(b).([]float64))
	default:
		return false
	}
	return true
}

func laneBinaryFloat[F simd.Float](op binaryOp, dst, a, b []F) {
	switch op {
	case opAdd:
		simd.Add(dst, a, b)
	case opSub:
		simd.Sub(dst, a, b)
	case opMul:
		simd.Mul(dst, a, b)
	case opDiv:
		simd.Div(dst, a, b)
	}
}

func laneUnary[T tensor.Numeric](op unaryOp, dst, a []T, s T) bool {
	switch d := any(dst).(type) {
	case []float32:
		laneUnaryFloat(op, d, any(a).([]float32), any(s).(float32))
	case []float64:
		laneUnaryFloat(op, d, any(a).([]float64), any(s).(float64))
	default:
		return false
	}
	return true
}

func laneUnaryFloat[F simd.Float](op unaryOp, dst, a []F, s F) {
	switch op {
	case opScale:
		simd.Scale(dst, a, s)
	case opDivScalar:
		simd.DivScalar(dst, a, s)
	case opNeg:
		simd.Neg(dst, a)
	}
}
