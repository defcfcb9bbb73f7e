package cpu

import (
	"fmt"
	"testing"

	"github.com/born-ml/ndarray/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// denseOf copies a rank-2 array into a gonum matrix for use as an oracle.
func denseOf(a *tensor.Array[float64]) *mat.Dense {
	return mat.NewDense(a.Dim(0), a.Dim(1), a.Values())
}

func TestMatMul_2x2_AllModes(t *testing.T) {
	b := newTestBackend()

	t.Run("float32", func(t *testing.T) {
		x := mustFromSlice(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
		y := mustFromSlice(t, tensor.Shape{2, 2}, []float32{5, 6, 7, 8})
		for _, mode := range tensor.Modes() {
			got, err := MatMul(b, mode, x, y)
			require.NoError(t, err)
			assert.Equal(t, []float32{19, 22, 43, 50}, got.Values(), mode.String())
		}
	})

	t.Run("int", func(t *testing.T) {
		x := mustFromSlice(t, tensor.Shape{2, 2}, []int{1, 2, 3, 4})
		y := mustFromSlice(t, tensor.Shape{2, 2}, []int{5, 6, 7, 8})
		for _, mode := range tensor.Modes() {
			got, err := MatMul(b, mode, x, y)
			require.NoError(t, err)
			assert.Equal(t, []int{19, 22, 43, 50}, got.Values(), mode.String())
		}
	})
}

func TestMatMul_InnerDimensionMismatch(t *testing.T) {
	b := newTestBackend()
	x := mustFromSlice(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	y := mustFromSlice(t, tensor.Shape{2, 2}, []float64{1, 2, 3, 4})

	for _, mode := range tensor.Modes() {
		_, err := MatMul(b, mode, x, y)
		require.ErrorIs(t, err, tensor.ErrIncompatibleDimensions, mode.String())
		require.ErrorIs(t, err, tensor.ErrMatrixMultiplication, mode.String())
		assert.Equal(t, tensor.KindIncompatibleDimensions, tensor.KindOf(err))
	}
}

func TestMatMul_RankMismatch(t *testing.T) {
	b := newTestBackend()
	x := mustFromSlice(t, tensor.Shape{2, 2, 1}, []float64{1, 2, 3, 4})
	y := mustFromSlice(t, tensor.Shape{2, 2}, []float64{1, 2, 3, 4})

	_, err := MatMul(b, tensor.Sequential, x, y)
	require.ErrorIs(t, err, tensor.ErrMatrixMultiplication)
	assert.NotErrorIs(t, err, tensor.ErrIncompatibleDimensions)
}

func TestMatMul_AgainstGonum(t *testing.T) {
	b := newTestBackend()
	shapes := []struct{ m, k, n int }{
		{1, 1, 1},
		{3, 5, 2},
		{17, 23, 9},
		{8, 16, 8},
		{31, 7, 1}, // matrix-vector
		{1, 12, 19},
	}

	for _, s := range shapes {
		x := mustRand[float64](t, tensor.Shape{s.m, s.k}, uint64(s.m*100+s.k))
		y := mustRand[float64](t, tensor.Shape{s.k, s.n}, uint64(s.k*100+s.n))

		var want mat.Dense
		want.Mul(denseOf(x), denseOf(y))

		for _, mode := range tensor.Modes() {
			t.Run(fmt.Sprintf("%dx%dx%d/%s", s.m, s.k, s.n, mode), func(t *testing.T) {
				got, err := MatMul(b, mode, x, y)
				require.NoError(t, err)
				require.Equal(t, tensor.Shape{s.m, s.n}, got.Shape())
				assert.True(t, mat.EqualApprox(&want, denseOf(got), 1e-12))
			})
		}
	}
}

func TestMatMul_ModesAgree(t *testing.T) {
	b := newTestBackend()
	x := mustRand[float32](t, tensor.Shape{13, 40}, 11)
	y := mustRand[float32](t, tensor.Shape{40, 6}, 12)

	ref, err := MatMul(b, tensor.Sequential, x, y)
	require.NoError(t, err)

	par, err := MatMul(b, tensor.Parallel, x, y)
	require.NoError(t, err)
	assert.Equal(t, ref.Values(), par.Values(), "parallel shares the sequential row kernel")

	for _, mode := range []tensor.Mode{tensor.SIMD, tensor.ParallelSIMD} {
		got, err := MatMul(b, mode, x, y)
		require.NoError(t, err)
		assert.True(t, ref.ApproxEqual(got, 1e-4), mode.String())
	}
}

func TestMatMul_SelfProduct(t *testing.T) {
	b := newTestBackend()
	x := mustFromSlice(t, tensor.Shape{2, 2}, []int64{1, 1, 1, 0})
	before := x.Values()

	for _, mode := range tensor.Modes() {
		got, err := MatMul(b, mode, x, x)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1, 1, 1}, got.Values())
	}
	assert.Equal(t, before, x.Values())
}

func TestMatMul_EmptyOperands(t *testing.T) {
	b := newTestBackend()

	x, err := tensor.Zeros[float64](tensor.Shape{0, 3})
	require.NoError(t, err)
	y, err := tensor.Ones[float64](tensor.Shape{3, 2})
	require.NoError(t, err)
	got, err := MatMul(b, tensor.ParallelSIMD, x, y)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{0, 2}, got.Shape())

	// An empty inner dimension yields zeros.
	x, err = tensor.Zeros[float64](tensor.Shape{2, 0})
	require.NoError(t, err)
	y, err = tensor.Zeros[float64](tensor.Shape{0, 3})
	require.NoError(t, err)
	got, err = MatMul(b, tensor.SIMD, x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, got.Values())
}

func TestMatVec(t *testing.T) {
	b := newTestBackend()
	x := mustFromSlice(t, tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	v := mustFromSlice(t, tensor.Shape{3}, []float64{1, 0, -1})

	for _, mode := range tensor.Modes() {
		got, err := MatVec(b, mode, x, v)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{2}, got.Shape())
		assert.Equal(t, []float64{-2, -2}, got.Values())
	}

	short := mustFromSlice(t, tensor.Shape{2}, []float64{1, 2})
	_, err := MatVec(b, tensor.Sequential, x, short)
	require.ErrorIs(t, err, tensor.ErrMatrixMultiplication)
}

func TestVecMat(t *testing.T) {
	b := newTestBackend()
	v := mustFromSlice(t, tensor.Shape{2}, []int{1, 2})
	y := mustFromSlice(t, tensor.Shape{2, 3}, []int{1, 2, 3, 4, 5, 6})

	for _, mode := range tensor.Modes() {
		got, err := VecMat(b, mode, v, y)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{3}, got.Shape())
		assert.Equal(t, []int{9, 12, 15}, got.Values())
	}
}

func TestVecMat_MatchesRowProduct(t *testing.T) {
	b := newTestBackend()
	v := mustRand[float64](t, tensor.Shape{17}, 5)
	y := mustRand[float64](t, tensor.Shape{17, 23}, 6)
	before := v.Values()

	row, err := v.Reshape(tensor.Shape{1, 17})
	require.NoError(t, err)
	want, err := MatMul(b, tensor.Sequential, row, y)
	require.NoError(t, err)

	for _, mode := range tensor.Modes() {
		got, err := VecMat(b, mode, v, y)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{23}, got.Shape())
		assert.InDeltaSlice(t, want.Values(), got.Values(), 1e-9, mode.String())
		assert.Equal(t, before, v.Values(), "vector modified in %s", mode)
	}

	_, err = VecMat(b, tensor.Sequential, mustRand[float64](t, tensor.Shape{3}, 1), y)
	require.ErrorIs(t, err, tensor.ErrIncompatibleDimensions)
}

func TestDot(t *testing.T) {
	b := newTestBackend()
	x := mustFromSlice(t, tensor.Shape{4}, []float32{1, 2, 3, 4})
	y := mustFromSlice(t, tensor.Shape{4}, []float32{4, 3, 2, 1})

	for _, mode := range tensor.Modes() {
		got, err := Dot(b, mode, x, y)
		require.NoError(t, err)
		assert.Equal(t, float32(20), got, mode.String())
	}

	z := mustFromSlice(t, tensor.Shape{3}, []float32{1, 2, 3})
	_, err := Dot(b, tensor.Sequential, x, z)
	require.ErrorIs(t, err, tensor.ErrMatrixMultiplication)
}

func BenchmarkMatMul(b *testing.B) {
	for _, size := range []int{64, 256} {
		x, _ := tensor.Rand[float32](tensor.Shape{size, size}, 1)
		y, _ := tensor.Rand[float32](tensor.Shape{size, size}, 2)
		backend := New()

		for _, mode := range tensor.Modes() {
			b.Run(fmt.Sprintf("%d/%s", size, mode), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					_, _ = MatMul(backend, mode, x, y)
				}
			})
		}
	}
}

func BenchmarkMatVec(b *testing.B) {
	x, _ := tensor.Rand[float32](tensor.Shape{1024, 1024}, 1)
	v, _ := tensor.Rand[float32](tensor.Shape{1024}, 2)
	backend := New()

	for _, mode := range tensor.Modes() {
		b.Run(mode.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = MatVec(backend, mode, x, v)
			}
		})
	}
}
