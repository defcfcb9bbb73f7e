package simd

import (
	"os"
	"runtime"
	"strings"
	"unsafe"
)

// EnvISA forces a specific ISA when set to one of the ParseISA names.
const EnvISA = "NDARRAY_SIMD"

// ISA represents a SIMD instruction set architecture.
type ISA uint8

const (
	// Generic represents pure scalar code (no SIMD).
	Generic ISA = iota
	// SSE represents x86-64 SSE2 (128-bit).
	SSE
	// AVX2 represents x86-64 AVX2 (256-bit).
	AVX2
	// AVX512 represents x86-64 AVX-512 Foundation (512-bit).
	AVX512
	// NEON represents ARM64 Advanced SIMD (128-bit).
	NEON
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case SSE:
		return "sse"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// VectorBits returns the register width of the ISA in bits.
func (i ISA) VectorBits() int {
	switch i {
	case SSE, NEON:
		return 128
	case AVX2:
		return 256
	case AVX512:
		return 512
	default:
		return 0
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic", "none", "off":
		return Generic, true
	case "sse", "sse2":
		return SSE, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	case "neon", "asimd":
		return NEON, true
	default:
		return Generic, false
	}
}

// Package-level state - initialized once at package init.
var (
	// activeISA is the selected implementation.
	activeISA ISA

	// hasOverride is true if NDARRAY_SIMD named an available ISA.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasSSE2    bool
	hasAVX2    bool
	hasAVX512F bool
	hasASIMD   bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	activeISA = resolveISA(os.Getenv(EnvISA))
}

// resolveISA honors an available override and otherwise auto-selects.
func resolveISA(override string) ISA {
	hasOverride = false
	if override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			hasOverride = true
			return isa
		}
		// Invalid or unavailable override - fall through to auto-detection
	}
	return selectBestISA()
}

// isISAAvailable checks if an ISA is supported on this CPU.
func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case SSE:
		return hasSSE2
	case AVX2:
		return hasAVX2
	case AVX512:
		return hasAVX512F
	case NEON:
		return hasASIMD
	default:
		return false
	}
}

// selectBestISA chooses the widest ISA for the current platform.
func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "amd64":
		switch {
		case hasAVX512F:
			return AVX512
		case hasAVX2:
			return AVX2
		case hasSSE2:
			return SSE
		}
	case "arm64":
		if hasASIMD {
			return NEON
		}
	}
	return Generic
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if NDARRAY_SIMD selected the active ISA.
func IsOverridden() bool {
	return hasOverride
}

// Lanes returns how many T values fit in one register of isa.
// Generic reports 1.
func Lanes[T Float](isa ISA) int {
	var dummy T
	bits := isa.VectorBits()
	if bits == 0 {
		return 1
	}
	return bits / (8 * int(unsafe.Sizeof(dummy)))
}
