// SPDX-License-Identifier: MIT

package sparse

import (
	sparsemat "github.com/james-bowman/sparse"
	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
)

const (
	opDiagMulVec   = "Diagonal.MulVec"
	opDiagMulVecH  = "Diagonal.MulVecH"
	opDiagMulDense = "Diagonal.MulDense"
)

// Diagonal is an n×n matrix with stored entries only on the main diagonal,
// backed by a *sparsemat.DIA.
// Common as a preconditioner (Jacobi) and as a scaling operator.
type Diagonal struct {
	m  *sparsemat.DIA
	dt dtype.DType
}

var _ Matrix = (*Diagonal)(nil)

// NewDiagonal returns diag(d) over a copy of d.
func NewDiagonal(d []float64) *Diagonal {
	n := len(d)
	return &Diagonal{m: sparsemat.NewDIA(n, n, append([]float64(nil), d...)), dt: dtype.Float64}
}

// Dims returns (n, n).
func (m *Diagonal) Dims() (int, int) { return m.m.Dims() }

// DType returns the element-type tag.
func (m *Diagonal) DType() dtype.DType { return m.dt }

// NNZ returns n.
func (m *Diagonal) NNZ() int { return m.m.NNZ() }

// MulVec returns d ⊙ x.
func (m *Diagonal) MulVec(x []float64) ([]float64, error) {
	y, err := mulVec(m.m, false, x)
	if err != nil {
		return nil, sparseErrorf(opDiagMulVec, err)
	}

	return y, nil
}

// MulVecH equals MulVec: a real diagonal is its own Hermitian transpose.
func (m *Diagonal) MulVecH(x []float64) ([]float64, error) {
	y, err := mulVec(m.m, true, x)
	if err != nil {
		return nil, sparseErrorf(opDiagMulVecH, err)
	}

	return y, nil
}

// MulDense scales row i of V by d[i].
func (m *Diagonal) MulDense(v matrix.Matrix) (matrix.Matrix, error) {
	out, err := mulDense(m.m, v)
	if err != nil {
		return nil, sparseErrorf(opDiagMulDense, err)
	}

	return out, nil
}
