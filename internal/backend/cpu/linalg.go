package cpu

import (
	"math"
	"math/big"

	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/tensor"
)

// expansionLimit is the largest order solved by cofactor expansion.
// Larger matrices use elimination.
const expansionLimit = 3

// Transpose returns the (C, R) transpose of an (R, C) array.
// Destination rows, each R elements long, are spread across workers in
// parallel modes.
func Transpose[T tensor.Numeric](b *Backend, mode tensor.Mode, x *tensor.Array[T]) (*tensor.Array[T], error) {
	if err := requireRank2("transpose", x); err != nil {
		return nil, err
	}
	rows, cols := x.Dim(0), x.Dim(1)
	p, err := planFor[T](b, "transpose", mode, x.Shape())
	if err != nil {
		return nil, err
	}

	out := make([]T, rows*cols)
	src := x.Data()
	parallel.For(cols, func(j int) {
		transposeRows(out, src, rows, cols, j, j+1)
	}, p.cfg.WithItemCost(rows))
	return tensor.Wrap(tensor.Shape{cols, rows}, out), nil
}

// transposeRows fills destination rows [lo, hi) of dst, the transpose of
// the rows×cols matrix src.
func transposeRows[T tensor.Numeric](dst, src []T, rows, cols, lo, hi int) {
	for j := lo; j < hi; j++ {
		drow := dst[j*rows : (j+1)*rows]
		for i := range drow {
			drow[i] = src[i*cols+j]
		}
	}
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace[T tensor.Numeric](x *tensor.Array[T]) (T, error) {
	if err := requireSquare("trace", x); err != nil {
		return 0, err
	}
	n := x.Dim(0)
	data := x.Data()
	var sum T
	for i := 0; i < n; i++ {
		sum += data[i*n+i]
	}
	return sum, nil
}

// Determinant returns the determinant of a square matrix.
//
// Orders up to 3 use cofactor expansion along the first row. Larger integer
// matrices use fraction-free Bareiss elimination on arbitrary-precision
// intermediates, which stays exact; larger float matrices use Gaussian
// elimination with partial pivoting.
func Determinant[T tensor.Numeric](x *tensor.Array[T]) (T, error) {
	if err := requireSquare("determinant", x); err != nil {
		return 0, err
	}
	return det(x.Data(), x.Dim(0)), nil
}

// Minor returns a copy of x without row and column col.
func Minor[T tensor.Numeric](x *tensor.Array[T], row, col int) (*tensor.Array[T], error) {
	if err := requireRank2("minor", x); err != nil {
		return nil, err
	}
	rows, cols := x.Dim(0), x.Dim(1)
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return nil, tensor.IndexError("minor", []int{row, col}, x.Shape())
	}
	out := make([]T, (rows-1)*(cols-1))
	minorInto(out, x.Data(), rows, cols, row, col)
	return tensor.Wrap(tensor.Shape{rows - 1, cols - 1}, out), nil
}

// Cofactor returns the cofactor matrix: entry (i, j) is (-1)^(i+j) times
// the determinant of the minor without row i and column j.
// Output rows are partitioned across workers in parallel modes.
func Cofactor[T tensor.Numeric](b *Backend, mode tensor.Mode, x *tensor.Array[T]) (*tensor.Array[T], error) {
	if err := requireSquare("cofactor", x); err != nil {
		return nil, err
	}
	n := x.Dim(0)
	p, err := planFor[T](b, "cofactor", mode, x.Shape())
	if err != nil {
		return nil, err
	}

	out := make([]T, n*n)
	if n == 1 {
		out[0] = 1
		return tensor.Wrap(x.Shape(), out), nil
	}

	src := x.Data()
	// Each output row takes n minors of order n-1.
	err = p.runCost(n, rowCost(n, n-1, n-1), func(r parallel.Range) error {
		minor := make([]T, (n-1)*(n-1))
		for i := r.Lo; i < r.Hi; i++ {
			for j := 0; j < n; j++ {
				minorInto(minor, src, n, n, i, j)
				d := det(minor, n-1)
				if (i+j)%2 == 1 {
					d = -d
				}
				out[i*n+j] = d
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tensor.Wrap(x.Shape(), out), nil
}

func requireRank2[T tensor.Numeric](op string, x *tensor.Array[T]) error {
	if x.Rank() != 2 {
		e := tensor.ShapeError(tensor.KindInvalidOperation, op, x.Shape())
		e.Msg = "requires a rank-2 array"
		return e
	}
	return nil
}

func requireSquare[T tensor.Numeric](op string, x *tensor.Array[T]) error {
	if err := requireRank2(op, x); err != nil {
		return err
	}
	if !x.IsSquare() {
		return tensor.ShapeError(tensor.KindNotSquareMatrix, op, x.Shape())
	}
	return nil
}

// minorInto writes src (rows×cols) without row r and column c into dst.
func minorInto[T tensor.Numeric](dst, src []T, rows, cols, r, c int) {
	k := 0
	for i := 0; i < rows; i++ {
		if i == r {
			continue
		}
		for j := 0; j < cols; j++ {
			if j == c {
				continue
			}
			dst[k] = src[i*cols+j]
			k++
		}
	}
}

// det returns the determinant of the n×n row-major matrix a without
// modifying it.
func det[T tensor.Numeric](a []T, n int) T {
	switch {
	case n == 0:
		return 1
	case n == 1:
		return a[0]
	case n <= expansionLimit:
		return detExpand(a, n)
	case tensor.IsFloat[T]():
		return T(detGauss(a, n))
	default:
		return T(detBareiss(a, n))
	}
}

// detExpand expands along the first row.
func detExpand[T tensor.Numeric](a []T, n int) T {
	if n == 2 {
		return a[0]*a[3] - a[1]*a[2]
	}
	minor := make([]T, (n-1)*(n-1))
	var sum T
	for j := 0; j < n; j++ {
		minorInto(minor, a, n, n, 0, j)
		term := a[j] * det(minor, n-1)
		if j%2 == 1 {
			sum -= term
		} else {
			sum += term
		}
	}
	return sum
}

// detGauss uses Gaussian elimination with partial pivoting in float64.
// The pivot is the largest magnitude in the column; ties go to the lowest
// row. A column with no non-zero pivot yields exactly 0.
func detGauss[T tensor.Numeric](a []T, n int) float64 {
	m := make([]float64, len(a))
	for i, v := range a {
		m[i] = float64(v)
	}

	sign := 1.0
	for k := 0; k < n; k++ {
		p := k
		best := math.Abs(m[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(m[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best == 0 {
			return 0
		}
		if p != k {
			swapRows(m, n, p, k)
			sign = -sign
		}
		pivot := m[k*n+k]
		for i := k + 1; i < n; i++ {
			f := m[i*n+k] / pivot
			if f == 0 {
				continue
			}
			for j := k; j < n; j++ {
				m[i*n+j] -= f * m[k*n+j]
			}
		}
	}

	d := sign
	for k := 0; k < n; k++ {
		d *= m[k*n+k]
	}
	return d
}

// detBareiss uses fraction-free elimination on big.Int intermediates, so
// every division is exact and no product can overflow. The result is
// reduced modulo 2^64 like T's own wrapping arithmetic; it equals the true
// determinant whenever that fits in int64.
func detBareiss[T tensor.Numeric](a []T, n int) int64 {
	m := make([]*big.Int, len(a))
	for i, v := range a {
		m[i] = big.NewInt(int64(v))
	}

	negate := false
	prev := big.NewInt(1)
	var t1, t2 big.Int
	for k := 0; k < n-1; k++ {
		if m[k*n+k].Sign() == 0 {
			p := -1
			for i := k + 1; i < n; i++ {
				if m[i*n+k].Sign() != 0 {
					p = i
					break
				}
			}
			if p < 0 {
				return 0
			}
			swapRows(m, n, p, k)
			negate = !negate
		}
		pivot := m[k*n+k]
		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				t1.Mul(m[i*n+j], pivot)
				t2.Mul(m[i*n+k], m[k*n+j])
				t1.Sub(&t1, &t2)
				m[i*n+j] = new(big.Int).Quo(&t1, prev)
			}
			m[i*n+k] = new(big.Int)
		}
		prev = pivot
	}

	d := m[n*n-1]
	if negate {
		d.Neg(d)
	}
	// Two's-complement low word: And treats negative values as infinitely
	// sign-extended.
	return int64(new(big.Int).And(d, maxUint64).Uint64())
}

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

func swapRows[E any](m []E, n, i, j int) {
	ri, rj := m[i*n:(i+1)*n], m[j*n:(j+1)*n]
	for c := range ri {
		ri[c], rj[c] = rj[c], ri[c]
	}
}
