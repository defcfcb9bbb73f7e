// Package simd provides vector kernels for float32 and float64 slices.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2, SSE2
//   - ARM64: NEON
//
// Runtime CPU feature detection selects the active ISA, which fixes the
// reported lane width. Set NDARRAY_SIMD to force an ISA (e.g. "generic").
//
// # Kernels
//
//   - Element-wise: Add, Sub, Mul, Div, Scale, DivScalar, Neg
//   - Reductions: Dot, Sum
//
// On a non-generic ISA, float32 and float64 slices run on gonum's assembly
// routines (blas32, blas64 and floats). The Generic ISA and named float
// types use portable Go kernels whose reductions keep one accumulator per
// lane of the active ISA.
//
// Element-wise kernels round exactly like a scalar loop. Dot and Sum
// reassociate, so their results may differ from a left-to-right scalar sum
// in the last bits.
package simd
