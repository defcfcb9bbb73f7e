// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix_test

import (
	"fmt"

	"github.com/born-ml/ndarray/matrix"
)

func ExampleMatrix_Mul() {
	a, _ := matrix.FromSlice(2, 2, []float64{1, 2, 3, 4})
	b, _ := matrix.FromSlice(2, 2, []float64{5, 6, 7, 8})

	c, err := a.Mul(b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Values())
	// Output: [19 22 43 50]
}

func ExampleMatrix_Determinant() {
	m, _ := matrix.FromSlice(2, 2, []float64{1, 2, 3, 4})
	d, _ := m.Determinant()
	fmt.Println(d)
	// Output: -2
}

func ExampleMatrix_At() {
	m, _ := matrix.Zeros[int](3, 3)
	_, err := m.At(5, 0)
	fmt.Println(err)
	// Output: ndarray: index out of bounds: at: index [5 0] [3x3]
}
