package tensor

import "strings"

// Mode selects the kernel strategy for one operation.
// It never changes the mathematically defined result.
type Mode int

// Execution modes.
const (
	Sequential Mode = iota
	Parallel
	SIMD
	ParallelSIMD
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "Sequential"
	case Parallel:
		return "Parallel"
	case SIMD:
		return "SIMD"
	case ParallelSIMD:
		return "ParallelSIMD"
	default:
		return "Unknown"
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq":
		return Sequential, true
	case "parallel", "par":
		return Parallel, true
	case "simd":
		return SIMD, true
	case "parallelsimd", "parallel-simd", "parsimd":
		return ParallelSIMD, true
	default:
		return Sequential, false
	}
}

// Valid reports whether m is one of the four defined modes.
func (m Mode) Valid() bool {
	return m >= Sequential && m <= ParallelSIMD
}

// IsParallel reports whether the mode spreads work across workers.
func (m Mode) IsParallel() bool {
	return m == Parallel || m == ParallelSIMD
}

// IsSIMD reports whether the mode requests lane kernels.
func (m Mode) IsSIMD() bool {
	return m == SIMD || m == ParallelSIMD
}

// WithParallel returns the mode of the same SIMD class with parallelism
// switched on or off. It backs the matrix form's concurrency flag.
func (m Mode) WithParallel(on bool) Mode {
	switch {
	case on && m.IsSIMD():
		return ParallelSIMD
	case on:
		return Parallel
	case m.IsSIMD():
		return SIMD
	default:
		return Sequential
	}
}

// Modes lists every execution mode in declaration order.
func Modes() []Mode {
	return []Mode{Sequential, Parallel, SIMD, ParallelSIMD}
}
