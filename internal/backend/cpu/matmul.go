package cpu

import (
	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/simd"
	"github.com/born-ml/ndarray/internal/tensor"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Output rows are partitioned across workers in parallel modes, each row
// weighted by its k*n multiply-adds. Lane kernels transpose the right
// operand once so every output element is one BLAS dot product of two
// contiguous rows. A right operand with one column takes the matrix-vector
// kernel.
func MatMul[T tensor.Numeric](b *Backend, mode tensor.Mode, x, y *tensor.Array[T]) (*tensor.Array[T], error) {
	if x.Rank() != 2 || y.Rank() != 2 {
		return nil, &tensor.Error{
			Kind:   tensor.KindMatrixMultiplication,
			Op:     tensor.OpMatMul,
			Shapes: []tensor.Shape{x.Shape(), y.Shape()},
			Msg:    "operands must be rank 2",
		}
	}
	m, k := x.Dim(0), x.Dim(1)
	k2, n := y.Dim(0), y.Dim(1)
	if k != k2 {
		return nil, tensor.ShapeError(tensor.KindIncompatibleDimensions, tensor.OpMatMul, x.Shape(), y.Shape())
	}

	outShape := tensor.Shape{m, n}
	p, err := planFor[T](b, tensor.OpMatMul, mode, outShape)
	if err != nil {
		return nil, err
	}

	if n == 1 {
		out, err := matVec(p, x.Data(), y.Data(), m, k)
		if err != nil {
			return nil, err
		}
		return tensor.Wrap(outShape, out), nil
	}

	out := make([]T, m*n)
	a, bd := x.Data(), y.Data()
	if p.lanes {
		// One transpose per call; each worker then reads B^T row-wise.
		bt := make([]T, n*k)
		transposeRows(bt, bd, k, n, 0, n)
		err = p.runCost(m, rowCost(k, n), func(r parallel.Range) error {
			for i := r.Lo; i < r.Hi; i++ {
				row := a[i*k : (i+1)*k]
				for j := 0; j < n; j++ {
					out[i*n+j] = dotKernel(true, row, bt[j*k:(j+1)*k])
				}
			}
			return nil
		})
	} else {
		err = p.runCost(m, rowCost(k, n), func(r parallel.Range) error {
			matmulRows(out, a, bd, k, n, r.Lo, r.Hi)
			return nil
		})
	}
	if err != nil {
		return nil, err
	}
	return tensor.Wrap(outShape, out), nil
}

// MatVec multiplies an (M, K) matrix by a length-K vector, returning a
// length-M vector.
func MatVec[T tensor.Numeric](b *Backend, mode tensor.Mode, x, v *tensor.Array[T]) (*tensor.Array[T], error) {
	if x.Rank() != 2 || v.Rank() != 1 {
		return nil, &tensor.Error{
			Kind:   tensor.KindMatrixMultiplication,
			Op:     tensor.OpMatMul,
			Shapes: []tensor.Shape{x.Shape(), v.Shape()},
			Msg:    "expected a rank-2 matrix and a rank-1 vector",
		}
	}
	m, k := x.Dim(0), x.Dim(1)
	if v.Dim(0) != k {
		return nil, tensor.ShapeError(tensor.KindIncompatibleDimensions, tensor.OpMatMul, x.Shape(), v.Shape())
	}
	p, err := planFor[T](b, tensor.OpMatMul, mode, tensor.Shape{m})
	if err != nil {
		return nil, err
	}
	out, err := matVec(p, x.Data(), v.Data(), m, k)
	if err != nil {
		return nil, err
	}
	return tensor.Wrap(tensor.Shape{m}, out), nil
}

// VecMat multiplies a length-K vector by a (K, N) matrix, returning a
// length-N vector. Output columns are partitioned across workers.
func VecMat[T tensor.Numeric](b *Backend, mode tensor.Mode, v, y *tensor.Array[T]) (*tensor.Array[T], error) {
	if v.Rank() != 1 || y.Rank() != 2 {
		return nil, &tensor.Error{
			Kind:   tensor.KindMatrixMultiplication,
			Op:     tensor.OpMatMul,
			Shapes: []tensor.Shape{v.Shape(), y.Shape()},
			Msg:    "expected a rank-1 vector and a rank-2 matrix",
		}
	}
	k, n := y.Dim(0), y.Dim(1)
	if v.Dim(0) != k {
		return nil, tensor.ShapeError(tensor.KindIncompatibleDimensions, tensor.OpMatMul, v.Shape(), y.Shape())
	}
	p, err := planFor[T](b, tensor.OpMatMul, mode, tensor.Shape{n})
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	vd, bd := v.Data(), y.Data()
	if p.lanes {
		bt := make([]T, n*k)
		transposeRows(bt, bd, k, n, 0, n)
		err = p.runCost(n, k, func(r parallel.Range) error {
			for j := r.Lo; j < r.Hi; j++ {
				out[j] = dotKernel(true, vd, bt[j*k:(j+1)*k])
			}
			return nil
		})
	} else {
		err = p.runCost(n, k, func(r parallel.Range) error {
			vecMatCols(out, vd, bd, k, n, r.Lo, r.Hi)
			return nil
		})
	}
	if err != nil {
		return nil, err
	}
	return tensor.Wrap(tensor.Shape{n}, out), nil
}

// Dot returns the inner product of two equal-length vectors.
func Dot[T tensor.Numeric](b *Backend, mode tensor.Mode, x, y *tensor.Array[T]) (T, error) {
	if x.Rank() != 1 || y.Rank() != 1 {
		return 0, &tensor.Error{
			Kind:   tensor.KindMatrixMultiplication,
			Op:     tensor.OpMatMul,
			Shapes: []tensor.Shape{x.Shape(), y.Shape()},
			Msg:    "dot requires rank-1 operands",
		}
	}
	if x.Dim(0) != y.Dim(0) {
		return 0, tensor.ShapeError(tensor.KindIncompatibleDimensions, tensor.OpMatMul, x.Shape(), y.Shape())
	}
	p, err := planFor[T](b, "dot", mode, x.Shape())
	if err != nil {
		return 0, err
	}

	a, c := x.Data(), y.Data()
	ranges := p.partition(len(a))
	partials := make([]T, len(ranges))
	err = p.runRanges(ranges, func(w int, r parallel.Range) error {
		partials[w] = dotKernel(p.lanes, a[r.Lo:r.Hi], c[r.Lo:r.Hi])
		return nil
	})
	if err != nil {
		return 0, err
	}

	var total T
	for _, v := range partials {
		total += v
	}
	return total, nil
}

// matVec computes out[i] = <a_i, v> with rows partitioned across workers.
// v is contiguous, so no transpose is needed for the lane kernel.
func matVec[T tensor.Numeric](p plan, a, v []T, m, k int) ([]T, error) {
	out := make([]T, m)
	err := p.runCost(m, k, func(r parallel.Range) error {
		for i := r.Lo; i < r.Hi; i++ {
			out[i] = dotKernel(p.lanes, a[i*k:(i+1)*k], v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// matmulRows computes rows [lo, hi) of C = A @ B in i-k-j order, so each
// C element accumulates its products in ascending k.
func matmulRows[T tensor.Numeric](c, a, b []T, k, n, lo, hi int) {
	for i := lo; i < hi; i++ {
		crow := c[i*n : (i+1)*n]
		for kk := 0; kk < k; kk++ {
			aik := a[i*k+kk]
			brow := b[kk*n : (kk+1)*n]
			for j := range crow {
				crow[j] += aik * brow[j]
			}
		}
	}
}

// vecMatCols computes columns [lo, hi) of v @ B, accumulating in ascending
// k like matmulRows.
func vecMatCols[T tensor.Numeric](out, v, b []T, k, n, lo, hi int) {
	dst := out[lo:hi]
	for kk := 0; kk < k; kk++ {
		vk := v[kk]
		brow := b[kk*n+lo : kk*n+hi]
		for j := range dst {
			dst[j] += vk * brow[j]
		}
	}
}

// dotKernel returns the inner product of a and b[:len(a)].
func dotKernel[T tensor.Numeric](lanes bool, a, b []T) T {
	if lanes {
		switch x := any(a).(type) {
		case []float32:
			return any(simd.Dot(x, any(b).([]float32))).(T)
		case []float64:
			return any(simd.Dot(x, any(b).([]float64))).(T)
		}
	}
	var s T
	for i, v := range a {
		s += v * b[i]
	}
	return s
}
