package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "Sequential", Sequential.String())
	assert.Equal(t, "Parallel", Parallel.String())
	assert.Equal(t, "SIMD", SIMD.String())
	assert.Equal(t, "ParallelSIMD", ParallelSIMD.String())
	assert.Equal(t, "Unknown", Mode(9).String())
}

func TestMode_Classes(t *testing.T) {
	tests := []struct {
		mode     Mode
		parallel bool
		simd     bool
	}{
		{Sequential, false, false},
		{Parallel, true, false},
		{SIMD, false, true},
		{ParallelSIMD, true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.parallel, tt.mode.IsParallel(), tt.mode.String())
		assert.Equal(t, tt.simd, tt.mode.IsSIMD(), tt.mode.String())
		assert.True(t, tt.mode.Valid())
	}
	assert.False(t, Mode(-1).Valid())
}

func TestMode_WithParallel(t *testing.T) {
	assert.Equal(t, Parallel, Sequential.WithParallel(true))
	assert.Equal(t, Sequential, Parallel.WithParallel(false))
	assert.Equal(t, ParallelSIMD, SIMD.WithParallel(true))
	assert.Equal(t, SIMD, ParallelSIMD.WithParallel(false))
	assert.Equal(t, Parallel, Parallel.WithParallel(true))
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	got, ok := ParseMode(" par ")
	assert.True(t, ok)
	assert.Equal(t, Parallel, got)

	_, ok = ParseMode("gpu")
	assert.False(t, ok)
}
