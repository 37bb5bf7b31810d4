// SPDX-License-Identifier: MIT

// Package sparse defines the sparse-matrix family consumed by linop.
//
// The sparse package provides:
//
//   - Matrix, the family interface: dims, dtype, nnz and the three products
//     an iterative solver needs (A·x, Aᴴ·x, A·V).
//   - CSR, validated compressed-sparse-row storage with deterministic kernels.
//   - Diagonal, a main-diagonal-only matrix (Jacobi scaling).
//   - COO, a triplet builder that sorts and sums duplicates into CSR.
//
// Storage and kernels come from github.com/james-bowman/sparse; this package
// adds validation, sentinel errors, dtype tags and the matrix.Matrix bridge.
//
// Sparse values are best when nnz ≪ rows*cols; use matrix.Dense otherwise.
package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
)

var (
	// ErrShape is returned for negative dimensions.
	ErrShape = errors.New("sparse: invalid shape")

	// ErrIndex is returned for a row or column index outside the matrix.
	ErrIndex = errors.New("sparse: index out of range")

	// ErrStructure is returned when CSR arrays are inconsistent.
	ErrStructure = errors.New("sparse: malformed structure")

	// ErrDimensionMismatch is returned when an operand does not conform.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNaNInf is returned when a non-finite value is added to a builder.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")
)

// Matrix is the sparse-matrix family. Membership is what the operator
// normalizer keys on, ahead of any capability-style method matching.
type Matrix interface {
	// Dims returns (rows, cols).
	Dims() (int, int)

	// DType returns the element-type tag.
	DType() dtype.DType

	// NNZ returns the number of stored entries.
	NNZ() int

	// MulVec returns A·x for len(x) == cols.
	MulVec(x []float64) ([]float64, error)

	// MulVecH returns Aᴴ·x for len(x) == rows.
	MulVecH(x []float64) ([]float64, error)

	// MulDense returns A·V for a dense V with cols rows.
	MulDense(v matrix.Matrix) (matrix.Matrix, error)
}

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// vecMulTo is the kernel surface shared by the backing CSR and DIA types.
// MulVecTo accumulates into dst (dst += A·x, or Aᵀ·x when trans is set).
type vecMulTo interface {
	Dims() (int, int)
	MulVecTo(dst []float64, trans bool, x []float64)
}

// mulVec returns A·x, or Aᵀ·x when trans is set, into a fresh vector.
// Lengths are checked first so the backing kernel never panics.
func mulVec(a vecMulTo, trans bool, x []float64) ([]float64, error) {
	r, c := a.Dims()
	in, out := c, r
	if trans {
		in, out = r, c
	}
	if len(x) != in {
		return nil, fmt.Errorf("len(x)=%d want %d: %w", len(x), in, ErrDimensionMismatch)
	}
	y := make([]float64, out)
	if in == 0 || out == 0 {
		return y, nil
	}
	a.MulVecTo(y, trans, x)

	return y, nil
}

// mulDense returns A·V one column at a time through mulVec, so every
// column of the result equals the matching matrix-vector product.
func mulDense(a vecMulTo, v matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(v); err != nil {
		return nil, err
	}
	r, c := a.Dims()
	if v.Rows() != c {
		return nil, fmt.Errorf("V has %d rows want %d: %w", v.Rows(), c, ErrDimensionMismatch)
	}

	cols := make([][]float64, v.Cols())
	for j := range cols {
		x, err := matrix.ColOf(v, j)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", j, err)
		}
		if cols[j], err = mulVec(a, false, x); err != nil {
			return nil, err
		}
	}

	return matrix.FromColumns(r, cols)
}
