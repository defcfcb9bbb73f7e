package cpu

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/simd"
	"github.com/born-ml/ndarray/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend returns a backend that fans out even on tiny inputs, so
// parallel modes really run several workers.
func newTestBackend(opts ...Option) *Backend {
	return New(append([]Option{WithWorkers(4), WithMinChunkSize(1)}, opts...)...)
}

func mustFromSlice[T tensor.Numeric](t testing.TB, shape tensor.Shape, data []T) *tensor.Array[T] {
	t.Helper()
	a, err := tensor.FromSlice(shape, data)
	require.NoError(t, err)
	return a
}

func mustRand[T tensor.Numeric](t testing.TB, shape tensor.Shape, seed uint64) *tensor.Array[T] {
	t.Helper()
	a, err := tensor.Rand[T](shape, seed)
	require.NoError(t, err)
	return a
}

func TestBackend_New(t *testing.T) {
	b := New()
	require.NotNil(t, b)
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, simd.ActiveISA(), b.ISA())
	assert.Positive(t, b.Config().NumWorkers)
}

func TestBackend_Options(t *testing.T) {
	b := New(WithWorkers(3), WithMinChunkSize(7), WithSIMD(false))
	assert.Equal(t, 3, b.Config().NumWorkers)
	assert.Equal(t, 7, b.Config().MinChunkSize)
	assert.True(t, b.Config().Enabled)
	assert.Equal(t, simd.Generic, b.ISA())

	b = New(WithWorkers(8), WithParallel(false))
	assert.False(t, b.Config().Enabled)

	b = New(WithWorkers(1))
	assert.False(t, b.Config().Enabled)
}

func TestBackend_InvalidOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { WithWorkers(0) })
	assert.Panics(t, func() { WithMinChunkSize(-1) })
	assert.Panics(t, func() { WithLogger(nil) })
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestPlan_KernelChoice(t *testing.T) {
	lanesAvailable := simd.ActiveISA() != simd.Generic

	b := newTestBackend()
	shape := tensor.Shape{4}

	p, err := planFor[float32](b, "add", tensor.SIMD, shape)
	require.NoError(t, err)
	assert.Equal(t, lanesAvailable, p.lanes)
	assert.False(t, p.cfg.Enabled)

	p, err = planFor[float64](b, "add", tensor.ParallelSIMD, shape)
	require.NoError(t, err)
	assert.Equal(t, lanesAvailable, p.lanes)
	assert.True(t, p.cfg.Enabled)

	p, err = planFor[int32](b, "add", tensor.ParallelSIMD, shape)
	require.NoError(t, err)
	assert.False(t, p.lanes, "integers always take scalar kernels")

	p, err = planFor[float32](b, "add", tensor.Parallel, shape)
	require.NoError(t, err)
	assert.False(t, p.lanes)
	assert.True(t, p.cfg.Enabled)

	p, err = planFor[float32](New(WithSIMD(false)), "add", tensor.SIMD, shape)
	require.NoError(t, err)
	assert.False(t, p.lanes)
}

func TestPlan_RowsWeightedByCost(t *testing.T) {
	t.Setenv(parallel.EnvMinChunk, "")
	b := New(WithWorkers(4))
	require.Equal(t, 64, b.Config().MinChunkSize)

	p, err := planFor[float64](b, tensor.OpMatMul, tensor.Parallel, tensor.Shape{100, 1000})
	require.NoError(t, err)

	// 100 output rows of a (100x1000)(1000x1000) product.
	assert.Len(t, p.partition(100), 1)
	assert.Len(t, p.partitionCost(100, rowCost(1000, 1000)), 4)
}

func TestRowCost(t *testing.T) {
	assert.Equal(t, 1, rowCost())
	assert.Equal(t, 1, rowCost(0, 1))
	assert.Equal(t, 12, rowCost(3, 4))
	assert.Equal(t, math.MaxInt, rowCost(math.MaxInt, 2))
}

func TestPlan_InvalidMode(t *testing.T) {
	_, err := planFor[float32](newTestBackend(), "add", tensor.Mode(42), tensor.Shape{1})
	require.ErrorIs(t, err, tensor.ErrInvalidOperation)
}

func TestDispatch_LogsDecision(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := newTestBackend(WithLogger(logger), WithSIMD(false))

	x := mustFromSlice(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	_, err := Add(b, tensor.Parallel, x, x)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=dispatch")
	assert.Contains(t, out, "op=add")
	assert.Contains(t, out, "mode=Parallel")
	assert.Contains(t, out, "kernel=scalar")
	assert.Contains(t, out, "shape=2x2")
	assert.Contains(t, out, "dtype=float32")
	assert.Contains(t, out, "workers=4")
}
