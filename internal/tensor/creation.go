package tensor

import "math/rand/v2"

// Zeros creates an array filled with the additive identity.
//
// Example:
//
//	a, err := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T Numeric](shape Shape) (*Array[T], error) {
	// Data is already zero-initialized by make()
	return newArray[T](shape)
}

// Ones creates an array filled with the multiplicative identity.
func Ones[T Numeric](shape Shape) (*Array[T], error) {
	return Full[T](shape, 1)
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	a, err := tensor.Full[float64](Shape{3, 3}, 3.14)
func Full[T Numeric](shape Shape, value T) (*Array[T], error) {
	a, err := newArray[T](shape)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = value
	}
	return a, nil
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice[T Numeric](shape Shape, data []T) (*Array[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, &Error{
			Kind:   KindDimensionMismatch,
			Op:     "from_slice",
			Shapes: []Shape{shape.Clone()},
			Msg:    "data length does not match shape",
		}
	}
	buf := make([]T, len(data))
	copy(buf, data)
	return Wrap(shape, buf), nil
}

// Rand creates an array of pseudo-random values from a seeded PCG source.
// Floats are uniform in [0, 1); integers are uniform in [0, 10).
// The same seed always yields the same array.
func Rand[T Numeric](shape Shape, seed uint64) (*Array[T], error) {
	a, err := newArray[T](shape)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // G404: reproducible fills, not security
	float := IsFloat[T]()
	for i := range a.data {
		if float {
			a.data[i] = T(rng.Float64())
		} else {
			a.data[i] = T(rng.IntN(10))
		}
	}
	return a, nil
}

// Identity creates an n×n identity matrix.
// n must be positive.
func Identity[T Numeric](n int) (*Array[T], error) {
	if n <= 0 {
		return nil, Errorf(KindInvalidDimensions, "identity", "size %d (must be > 0)", n)
	}
	a, err := newArray[T](Shape{n, n})
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		a.data[i*n+i] = 1
	}
	return a, nil
}
