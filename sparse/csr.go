// SPDX-License-Identifier: MIT

// Package sparse - compressed sparse row (CSR) matrices.
//
// Purpose:
//   - Validate raw CSR arrays: row i occupies indices[indptr[i]:indptr[i+1]]
//     (column ids, strictly increasing) and the matching data entries.
//   - Hand validated storage to github.com/james-bowman/sparse and serve the
//     three products an operator needs (A·x, Aᴴ·x, A·V) from its kernels.
//
// Determinism:
//   - Products run MulVecTo, which walks rows in increasing order and each
//     row's entries in increasing column order.
//
// Complexity quicksheet:
//   - At: O(nnz_row); MulVec/MulVecH: O(nnz); MulDense: O(nnz*k).

package sparse

import (
	"fmt"

	sparsemat "github.com/james-bowman/sparse"
	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
)

// Operation tags for error wrapping.
const (
	opNewCSR   = "NewCSR"
	opAt       = "CSR.At"
	opMulVec   = "CSR.MulVec"
	opMulVecH  = "CSR.MulVecH"
	opMulDense = "CSR.MulDense"
)

// CSR is an immutable compressed-sparse-row matrix backed by a
// *sparsemat.CSR.
type CSR struct {
	m  *sparsemat.CSR
	dt dtype.DType
}

var _ Matrix = (*CSR)(nil)

// NewCSR validates and copies raw CSR arrays.
//
// Implementation:
//   - Stage 1: validate dims and array lengths.
//   - Stage 2: validate indptr monotonicity and per-row column ordering/bounds.
//   - Stage 3: copy inputs so the result is independent of the caller.
//
// Errors:
//   - ErrShape for negative dims.
//   - ErrStructure for inconsistent indptr/indices/data.
//   - ErrIndex for a column id outside [0, cols).
//
// Complexity:
//   - Time O(r + nnz), Space O(r + nnz).
func NewCSR(rows, cols int, indptr, indices []int, data []float64) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opNewCSR, fmt.Errorf("%dx%d: %w", rows, cols, ErrShape))
	}
	if len(indptr) != rows+1 {
		return nil, sparseErrorf(opNewCSR, fmt.Errorf("len(indptr)=%d want %d: %w", len(indptr), rows+1, ErrStructure))
	}
	if len(indices) != len(data) {
		return nil, sparseErrorf(opNewCSR, fmt.Errorf("len(indices)=%d len(data)=%d: %w", len(indices), len(data), ErrStructure))
	}
	if indptr[0] != 0 || indptr[rows] != len(data) {
		return nil, sparseErrorf(opNewCSR, fmt.Errorf("indptr bounds [%d,%d] want [0,%d]: %w", indptr[0], indptr[rows], len(data), ErrStructure))
	}

	var i, p int
	// Monotonic indptr bounds every row window inside [0, nnz].
	for i = 0; i < rows; i++ {
		if indptr[i] > indptr[i+1] {
			return nil, sparseErrorf(opNewCSR, fmt.Errorf("indptr decreases at row %d: %w", i, ErrStructure))
		}
	}
	for i = 0; i < rows; i++ {
		for p = indptr[i]; p < indptr[i+1]; p++ {
			if indices[p] < 0 || indices[p] >= cols {
				return nil, sparseErrorf(opNewCSR, fmt.Errorf("row %d column %d: %w", i, indices[p], ErrIndex))
			}
			if p > indptr[i] && indices[p] <= indices[p-1] {
				return nil, sparseErrorf(opNewCSR, fmt.Errorf("row %d columns not strictly increasing: %w", i, ErrStructure))
			}
		}
	}

	// sparsemat.NewCSR keeps the slices it is given.
	m := sparsemat.NewCSR(rows, cols,
		append([]int(nil), indptr...),
		append([]int(nil), indices...),
		append([]float64(nil), data...),
	)

	return &CSR{m: m, dt: dtype.Float64}, nil
}

// WithDType returns a shallow copy tagged with d. Storage stays float64.
func (m *CSR) WithDType(d dtype.DType) *CSR {
	cp := *m
	cp.dt = d

	return &cp
}

// Dims returns (rows, cols).
func (m *CSR) Dims() (int, int) { return m.m.Dims() }

// DType returns the element-type tag (Float64 unless re-tagged).
func (m *CSR) DType() dtype.DType { return m.dt }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return m.m.NNZ() }

// At returns the (i, j) entry; absent entries read as zero.
func (m *CSR) At(i, j int) (float64, error) {
	r, c := m.m.Dims()
	if i < 0 || i >= r || j < 0 || j >= c {
		return 0, sparseErrorf(opAt, fmt.Errorf("(%d,%d): %w", i, j, ErrIndex))
	}

	return m.m.At(i, j), nil
}

// MulVec computes y = A·x.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != cols.
//
// Complexity:
//   - Time O(r + nnz), Space O(r).
func (m *CSR) MulVec(x []float64) ([]float64, error) {
	y, err := mulVec(m.m, false, x)
	if err != nil {
		return nil, sparseErrorf(opMulVec, err)
	}

	return y, nil
}

// MulVecH computes y = Aᴴ·x. Entries are real, so Aᴴ == Aᵀ; the transposed
// kernel scatters each row into y instead of materializing the transpose.
//
// Errors:
//   - ErrDimensionMismatch when len(x) != rows.
//
// Complexity:
//   - Time O(r + nnz), Space O(c).
func (m *CSR) MulVecH(x []float64) ([]float64, error) {
	y, err := mulVec(m.m, true, x)
	if err != nil {
		return nil, sparseErrorf(opMulVecH, err)
	}

	return y, nil
}

// MulDense computes A·V for a dense right operand, returning a new *matrix.Dense.
// Column j of the result is MulVec of column j of V, bit for bit.
//
// Errors:
//   - matrix.ErrNilMatrix for nil V; ErrDimensionMismatch for a row mismatch;
//     any error from V.At.
//
// Complexity:
//   - Time O(nnz*k + c*k), Space O(r*k + c).
func (m *CSR) MulDense(v matrix.Matrix) (matrix.Matrix, error) {
	out, err := mulDense(m.m, v)
	if err != nil {
		return nil, sparseErrorf(opMulDense, err)
	}

	return out, nil
}

// ToDense materializes the matrix as a *matrix.Dense.
// Complexity: Time O(r*c + nnz), Space O(r*c).
func (m *CSR) ToDense() (*matrix.Dense, error) {
	r, c := m.m.Dims()
	if r == 0 || c == 0 {
		// gonum has no empty Dense
		return matrix.NewDenseFrom(r, c, nil)
	}

	return matrix.FromGonum(m.m.ToDense())
}

// String summarizes the matrix, e.g. "3x3 CSR (nnz=4, dtype=float64)".
func (m *CSR) String() string {
	r, c := m.m.Dims()
	return fmt.Sprintf("%dx%d CSR (nnz=%d, dtype=%s)", r, c, m.m.NNZ(), m.dt)
}
