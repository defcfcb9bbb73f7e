package simd

// Portable kernels. Element-wise loops are plain range loops the compiler
// can bounds-check-eliminate. Reductions keep one accumulator per lane of
// the active ISA and combine them left to right before adding the tail.

// blockWidth returns the number of T lanes in one register of the active
// ISA, clamped to [1, maxLanes]. Generic yields 1: a left-to-right sum.
func blockWidth[T Float]() int {
	return min(max(Lanes[T](activeISA), 1), maxLanes)
}

func addPortable[T Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subPortable[T Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulPortable[T Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divPortable[T Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

func scalePortable[T Float](dst, a []T, s T) {
	for i := range dst {
		dst[i] = a[i] * s
	}
}

func negPortable[T Float](dst, a []T) {
	for i := range dst {
		dst[i] = -a[i]
	}
}

func dotPortable[T Float](a, b []T) T {
	w := blockWidth[T]()
	n := len(a)
	var acc [maxLanes]T
	i := 0
	for ; i <= n-w; i += w {
		x := a[i : i+w : i+w]
		y := b[i : i+w : i+w]
		for l := range x {
			acc[l] += x[l] * y[l]
		}
	}
	var tail T
	for ; i < n; i++ {
		tail += a[i] * b[i]
	}
	return horizontal(acc[:w]) + tail
}

func sumPortable[T Float](a []T) T {
	w := blockWidth[T]()
	n := len(a)
	var acc [maxLanes]T
	i := 0
	for ; i <= n-w; i += w {
		x := a[i : i+w : i+w]
		for l := range x {
			acc[l] += x[l]
		}
	}
	var tail T
	for ; i < n; i++ {
		tail += a[i]
	}
	return horizontal(acc[:w]) + tail
}

// horizontal reduces the lane accumulators left to right.
func horizontal[T Float](acc []T) T {
	var total T
	for _, v := range acc {
		total += v
	}
	return total
}
