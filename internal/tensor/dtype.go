// Package tensor provides the flat storage layer shared by the matrix and
// tensor forms: shapes, element constraints, the error taxonomy and the
// execution modes understood by the dispatcher.
package tensor

import "unsafe"

// Numeric is the element constraint for arrays.
// Unsigned integers are excluded: negation and cofactor signs need a signed domain.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Float is the subset of Numeric eligible for SIMD kernels.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int
	Int8
	Int16
	Int32
	Int64
)

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int:
		return "int"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// DataTypeOf infers the DataType of T.
// Named types are classified by their underlying kind.
func DataTypeOf[T Numeric]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int:
		return Int
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	}
	return underlyingDataType(dummy)
}

// underlyingDataType classifies named numeric types (type Celsius float64),
// which a type switch cannot see through, by width and integer division.
func underlyingDataType[T Numeric](dummy T) DataType {
	var half T = 1
	half /= 2
	size := unsafe.Sizeof(dummy)
	if half != 0 {
		if size == 4 {
			return Float32
		}
		return Float64
	}
	switch size {
	case 1:
		return Int8
	case 2:
		return Int16
	case 4:
		return Int32
	default:
		return Int64
	}
}

// IsFloat reports whether T is a floating-point element type.
func IsFloat[T Numeric]() bool {
	return DataTypeOf[T]().IsFloat()
}
