// SPDX-License-Identifier: MIT

package linop

import (
	"fmt"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
)

// VecFunc applies an operator (or its Hermitian transpose) to one vector.
type VecFunc func(x []float64) ([]float64, error)

// MatFunc applies an operator to every column of a matrix at once.
type MatFunc func(v matrix.Matrix) (matrix.Matrix, error)

// Operator is an immutable M×N linear operator defined by its actions.
//
// All three behaviors are always present: absent optional behaviors are
// replaced at construction by a failing Hermitian action and a column-wise
// matmat synthesized from matvec. An Operator holds no mutable state and is
// safe for concurrent use whenever the wrapped functions are.
type Operator struct {
	shape   Shape
	matvec  VecFunc
	rmatvec VecFunc
	matmat  MatFunc

	dt       dtype.DType
	hasDType bool

	// diagnostics: whether the optional behaviors were supplied
	suppliedRMatVec bool
	suppliedMatMat  bool
}

// New builds an operator of the given shape from its vector action.
//
// Implementation:
//   - Stage 1: validate shape (ErrInvalidShape) and matvec (ErrNilFunc).
//   - Stage 2: resolve options; normalize the dtype tag when one is given.
//   - Stage 3: install the stored fallbacks for absent rmatvec / matmat.
//
// Errors:
//   - ErrInvalidShape, ErrNilFunc, dtype.ErrUnknown (all wrapped with "New").
//
// Complexity:
//   - Time O(k) for k options, Space O(1).
func New(shape []int, matvec VecFunc, opts ...Option) (*Operator, error) {
	s, err := ValidateShape(shape)
	if err != nil {
		return nil, linopErrorf(opNew, err)
	}
	if matvec == nil {
		return nil, linopErrorf(opNew, ErrNilFunc)
	}
	o := gatherOptions(opts...)

	op := &Operator{shape: s, matvec: matvec}

	if o.dtypeSet {
		d, err := dtype.Parse(o.dtype)
		if err != nil {
			return nil, linopErrorf(opNew, err)
		}
		op.dt, op.hasDType = d, true
	}

	if o.rmatvec != nil {
		op.rmatvec, op.suppliedRMatVec = o.rmatvec, true
	} else {
		op.rmatvec = hermitianUndefined
	}

	if o.matmat != nil {
		op.matmat, op.suppliedMatMat = o.matmat, true
	} else {
		op.matmat = columnwise(s.Rows, matvec)
	}

	return op, nil
}

// hermitianUndefined is the stored stand-in for an absent Hermitian action.
func hermitianUndefined([]float64) ([]float64, error) {
	return nil, errHermitianUndefined
}

// columnwise synthesizes matmat from matvec: each column of V, left to
// right, goes through exactly one matvec call and the results are
// concatenated in the same order. rows is used only when V has no columns.
//
// Errors:
//   - matrix.ErrNilMatrix for nil V; errors from matvec unchanged;
//     matrix.ErrDimensionMismatch when matvec results differ in length.
func columnwise(rows int, matvec VecFunc) MatFunc {
	return func(v matrix.Matrix) (matrix.Matrix, error) {
		if err := matrix.ValidateNotNil(v); err != nil {
			return nil, err
		}
		k := v.Cols()
		cols := make([][]float64, k)
		for j := 0; j < k; j++ {
			col, err := matrix.ColOf(v, j)
			if err != nil {
				return nil, err
			}
			if cols[j], err = matvec(col); err != nil {
				return nil, err
			}
		}
		out := rows
		if k > 0 {
			out = len(cols[0])
		}

		return matrix.FromColumns(out, cols)
	}
}

// Shape returns the (M, N) pair.
func (op *Operator) Shape() Shape { return op.shape }

// Rows returns M.
func (op *Operator) Rows() int { return op.shape.Rows }

// Cols returns N.
func (op *Operator) Cols() int { return op.shape.Cols }

// DType returns the scalar tag and whether one was set.
// ok=false means "unspecified", which is distinct from any tag value.
func (op *Operator) DType() (d dtype.DType, ok bool) { return op.dt, op.hasDType }

// HasRMatVec reports whether a real Hermitian action was supplied.
func (op *Operator) HasRMatVec() bool { return op.suppliedRMatVec }

// HasMatMat reports whether matmat was supplied rather than synthesized.
func (op *Operator) HasMatMat() bool { return op.suppliedMatMat }

// MatVec returns A·x. No shape checks happen here; the wrapped function
// reports its own errors, which are returned unchanged.
func (op *Operator) MatVec(x []float64) ([]float64, error) { return op.matvec(x) }

// RMatVec returns Aᴴ·v, or an error matching ErrUnsupportedOperation when
// no Hermitian action was supplied.
func (op *Operator) RMatVec(v []float64) ([]float64, error) { return op.rmatvec(v) }

// MatMat returns A·V using the supplied or synthesized behavior.
func (op *Operator) MatMat(v matrix.Matrix) (matrix.Matrix, error) { return op.matmat(v) }

// String describes the operator, e.g. "2x3 operator with dtype=int32" or
// "2x2 operator with unspecified dtype".
func (op *Operator) String() string {
	if op.hasDType {
		return fmt.Sprintf("%s operator with dtype=%s", op.shape, op.dt)
	}

	return fmt.Sprintf("%s operator with unspecified dtype", op.shape)
}
