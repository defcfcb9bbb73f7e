package simd

import (
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
)

// Float is the element constraint for lane kernels.
type Float interface {
	~float32 | ~float64
}

// maxLanes bounds the accumulator arrays of the portable reductions: one
// 512-bit register of float32.
const maxLanes = 16

// The element-wise kernels below assume len(a) and len(b) are at least
// len(dst); the re-slices turn a violation into a panic before any write.
// dst must not overlap a or b.
//
// On a non-generic ISA, float32 and float64 slices go through gonum's
// assembly kernels. Named float types and the Generic ISA take the portable
// kernels in portable.go.

func accelerated() bool {
	return activeISA != Generic
}

func vec32(x []float32) blas32.Vector {
	return blas32.Vector{N: len(x), Data: x, Inc: 1}
}

func vec64(x []float64) blas64.Vector {
	return blas64.Vector{N: len(x), Data: x, Inc: 1}
}

// Add computes dst[i] = a[i] + b[i].
func Add[T Float](dst, a, b []T) {
	n := len(dst)
	a, b = a[:n], b[:n]
	if accelerated() {
		switch d := any(dst).(type) {
		case []float32:
			// b + 1*a rounds exactly like a + b.
			copy(d, any(b).([]float32))
			blas32.Axpy(1, vec32(any(a).([]float32)), vec32(d))
			return
		case []float64:
			floats.AddTo(d, any(a).([]float64), any(b).([]float64))
			return
		}
	}
	addPortable(dst, a, b)
}

// Sub computes dst[i] = a[i] - b[i].
func Sub[T Float](dst, a, b []T) {
	n := len(dst)
	a, b = a[:n], b[:n]
	if accelerated() {
		switch d := any(dst).(type) {
		case []float32:
			copy(d, any(a).([]float32))
			blas32.Axpy(-1, vec32(any(b).([]float32)), vec32(d))
			return
		case []float64:
			floats.SubTo(d, any(a).([]float64), any(b).([]float64))
			return
		}
	}
	subPortable(dst, a, b)
}

// Mul computes the Hadamard product dst[i] = a[i] * b[i].
func Mul[T Float](dst, a, b []T) {
	n := len(dst)
	a, b = a[:n], b[:n]
	if accelerated() {
		if d, ok := any(dst).([]float64); ok {
			floats.MulTo(d, any(a).([]float64), any(b).([]float64))
			return
		}
	}
	mulPortable(dst, a, b)
}

// Div computes dst[i] = a[i] / b[i]. Callers reject zero divisors first.
func Div[T Float](dst, a, b []T) {
	n := len(dst)
	a, b = a[:n], b[:n]
	if accelerated() {
		if d, ok := any(dst).([]float64); ok {
			floats.DivTo(d, any(a).([]float64), any(b).([]float64))
			return
		}
	}
	divPortable(dst, a, b)
}

// Scale computes dst[i] = a[i] * s.
func Scale[T Float](dst, a []T, s T) {
	n := len(dst)
	a = a[:n]
	if accelerated() {
		switch d := any(dst).(type) {
		case []float32:
			copy(d, any(a).([]float32))
			blas32.Scal(any(s).(float32), vec32(d))
			return
		case []float64:
			floats.ScaleTo(d, any(s).(float64), any(a).([]float64))
			return
		}
	}
	scalePortable(dst, a, s)
}

// DivScalar computes dst[i] = a[i] / s.
// Division is kept per element (no reciprocal multiply) to round like the
// scalar path, so there is no BLAS form.
func DivScalar[T Float](dst, a []T, s T) {
	n := len(dst)
	a = a[:n]
	for i := range dst {
		dst[i] = a[i] / s
	}
}

// Neg computes dst[i] = -a[i].
func Neg[T Float](dst, a []T) {
	n := len(dst)
	a = a[:n]
	if accelerated() {
		switch d := any(dst).(type) {
		case []float32:
			copy(d, any(a).([]float32))
			blas32.Scal(-1, vec32(d))
			return
		case []float64:
			floats.ScaleTo(d, -1, any(a).([]float64))
			return
		}
	}
	negPortable(dst, a)
}

// Dot returns the dot product of a and b[:len(a)].
func Dot[T Float](a, b []T) T {
	b = b[:len(a)]
	if accelerated() {
		switch x := any(a).(type) {
		case []float32:
			return any(blas32.Dot(vec32(x), vec32(any(b).([]float32)))).(T)
		case []float64:
			return any(blas64.Dot(vec64(x), vec64(any(b).([]float64)))).(T)
		}
	}
	return dotPortable(a, b)
}

// Sum returns the sum of all elements.
func Sum[T Float](a []T) T {
	if accelerated() {
		if x, ok := any(a).([]float64); ok {
			return any(floats.Sum(x)).(T)
		}
	}
	return sumPortable(a)
}
