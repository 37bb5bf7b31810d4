// SPDX-License-Identifier: MIT

// Package matrix - interop with gonum.org/v1/gonum/mat.
//
// Purpose:
//   - Let gonum matrices flow into this package (FromGonum) and Matrix values
//     flow into gonum kernels (ToGonum) with a single row-major copy.
//
// Notes:
//   - gonum rejects zero-sized dense matrices at construction; ToGonum
//     reports ErrBadShape for them instead of letting gonum panic.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// ToGonum copies m into a new *mat.Dense.
// *Dense inputs are copied from the flat buffer; other inputs go through At.
//
// Errors:
//   - ErrNilMatrix for nil input.
//   - ErrBadShape when m has a zero dimension (gonum has no empty dense matrix).
//   - any error returned by m.At.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows == 0 || cols == 0 {
		return nil, matrixErrorf(opToGonum, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	if d, ok := m.(*Dense); ok {
		return mat.NewDense(rows, cols, d.RawData()), nil
	}

	buf := make([]float64, rows*cols)
	var (
		i, j int
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if buf[i*cols+j], err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToGonum, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
		}
	}

	return mat.NewDense(rows, cols, buf), nil
}

// FromGonum copies any gonum matrix into a new *Dense.
// An empty gonum matrix (zero-value *mat.Dense) yields a 0×0 Dense.
//
// Errors:
//   - ErrNilMatrix for nil input.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	if e, ok := g.(interface{ IsEmpty() bool }); ok && e.IsEmpty() {
		return newDenseZeroOK(0, 0)
	}
	rows, cols := g.Dims()
	out, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			out.data[i*cols+j] = g.At(i, j)
		}
	}

	return out, nil
}
