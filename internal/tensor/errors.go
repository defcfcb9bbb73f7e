package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// Every message is prefixed with "ndarray: ..." so log lines are easy to grep.
// Callers match failures with errors.Is against the sentinels below and
// recover the context (operand shapes, offending index) with errors.As.

var (
	// ErrInvalidDimensions is returned when a requested shape is structurally
	// invalid for the operation (negative dimension, zero-sized identity).
	ErrInvalidDimensions = errors.New("ndarray: invalid dimensions")

	// ErrIndexOutOfBounds indicates that an index exceeds its dimension bound.
	ErrIndexOutOfBounds = errors.New("ndarray: index out of bounds")

	// ErrDimensionMismatch indicates that supplied data does not fit a shape
	// (construction from a slice, reshape, wrong number of indices).
	ErrDimensionMismatch = errors.New("ndarray: dimension mismatch")

	// ErrIncompatibleDimensions indicates operands whose shapes cannot be
	// combined, e.g. Add on different shapes or MatMul where a.Cols != b.Rows.
	ErrIncompatibleDimensions = errors.New("ndarray: incompatible dimensions")

	// ErrNotSquareMatrix signals that a square matrix was required.
	ErrNotSquareMatrix = errors.New("ndarray: matrix is not square")

	// ErrDivisionByZero is returned when a divisor equals the additive identity.
	ErrDivisionByZero = errors.New("ndarray: division by zero")

	// ErrInvalidOperation marks an operation undefined for the operand's rank.
	ErrInvalidOperation = errors.New("ndarray: invalid operation")

	// ErrMatrixMultiplication marks an operand combination that matrix
	// multiplication cannot accept.
	ErrMatrixMultiplication = errors.New("ndarray: matrix multiplication error")
)

// ErrShapeMismatch is the tensor-form name of ErrIncompatibleDimensions.
var ErrShapeMismatch = ErrIncompatibleDimensions

// ErrDimensionError is the tensor-form name of ErrNotSquareMatrix.
var ErrDimensionError = ErrNotSquareMatrix

// Kind enumerates the closed set of failure kinds.
type Kind int

// Failure kinds.
const (
	KindInvalidDimensions Kind = iota + 1
	KindIndexOutOfBounds
	KindDimensionMismatch
	KindIncompatibleDimensions
	KindNotSquareMatrix
	KindDivisionByZero
	KindInvalidOperation
	KindMatrixMultiplication
)

// Sentinel returns the package-level error matching the kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindInvalidDimensions:
		return ErrInvalidDimensions
	case KindIndexOutOfBounds:
		return ErrIndexOutOfBounds
	case KindDimensionMismatch:
		return ErrDimensionMismatch
	case KindIncompatibleDimensions:
		return ErrIncompatibleDimensions
	case KindNotSquareMatrix:
		return ErrNotSquareMatrix
	case KindDivisionByZero:
		return ErrDivisionByZero
	case KindInvalidOperation:
		return ErrInvalidOperation
	case KindMatrixMultiplication:
		return ErrMatrixMultiplication
	default:
		return nil
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidDimensions:
		return "InvalidDimensions"
	case KindIndexOutOfBounds:
		return "IndexOutOfBounds"
	case KindDimensionMismatch:
		return "DimensionMismatch"
	case KindIncompatibleDimensions:
		return "IncompatibleDimensions"
	case KindNotSquareMatrix:
		return "NotSquareMatrix"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindInvalidOperation:
		return "InvalidOperation"
	case KindMatrixMultiplication:
		return "MatrixMultiplication"
	default:
		return "Unknown"
	}
}

// OpMatMul is the operation tag used by every matrix product entry point.
const OpMatMul = "matmul"

// Error carries a failure kind plus the context needed to diagnose it.
type Error struct {
	Kind   Kind    // failure kind
	Op     string  // operation tag, e.g. "add", "at", "matmul"
	Shapes []Shape // operand shapes involved, in argument order
	Index  []int   // offending index, for IndexOutOfBounds
	Msg    string  // optional detail
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if sentinel := e.Kind.Sentinel(); sentinel != nil {
		b.WriteString(sentinel.Error())
	} else {
		b.WriteString("ndarray: error")
	}
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Index != nil {
		fmt.Fprintf(&b, ": index %v", e.Index)
	}
	if len(e.Shapes) > 0 {
		parts := make([]string, len(e.Shapes))
		for i, s := range e.Shapes {
			parts[i] = s.String()
		}
		b.WriteString(" [")
		b.WriteString(strings.Join(parts, " vs "))
		b.WriteString("]")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Unwrap exposes the kind's sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind.Sentinel()
}

// Is lets an inner-dimension mismatch in a matrix product also match
// ErrMatrixMultiplication.
func (e *Error) Is(target error) bool {
	return target == ErrMatrixMultiplication &&
		e.Op == OpMatMul && e.Kind == KindIncompatibleDimensions
}

// KindOf returns the failure kind of err, or 0 if err is not from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IndexError reports index outside shape for operation op.
func IndexError(op string, index []int, shape Shape) *Error {
	return &Error{
		Kind:   KindIndexOutOfBounds,
		Op:     op,
		Shapes: []Shape{shape.Clone()},
		Index:  append([]int(nil), index...),
	}
}

// ShapeError reports a shape-related failure between the given operands.
func ShapeError(kind Kind, op string, shapes ...Shape) *Error {
	cloned := make([]Shape, len(shapes))
	for i, s := range shapes {
		cloned[i] = s.Clone()
	}
	return &Error{Kind: kind, Op: op, Shapes: cloned}
}

// Errorf builds an Error of the given kind with a formatted detail message.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}
