// SPDX-License-Identifier: MIT

package linop

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
	"github.com/katalvlaran/linop/ndarray"
	"github.com/katalvlaran/linop/sparse"
	"gonum.org/v1/gonum/mat"
)

// AsOperator returns v as an *Operator.
//
// Dispatch follows Classify:
//   - *Operator: returned as is (same pointer, no copy).
//   - dense (*ndarray.Array, matrix.Matrix, gonum mat.Matrix, nested float64
//     slices): rank must be <= 2; the value is coerced to 2-D (rank 0 → 1×1,
//     rank 1 → 1×n) and all three actions use the dense kernels directly.
//   - sparse.Matrix: actions delegate to the value's own MulVec, MulVecH and
//     MulDense; dtype is copied.
//   - Capability: MatVec is used directly; RMatVec and DType are used when
//     the value implements RMatVecer / DTyper; matmat is always synthesized.
//
// Errors:
//   - ErrInvalidRank for dense values of rank > 2.
//   - ErrInvalidShape for a capability reporting a bad shape.
//   - ErrUnsupportedType for anything else (including nil).
//   - matrix.ErrDimensionMismatch for ragged [][]float64 input.
func AsOperator(v any) (*Operator, error) {
	switch Classify(v) {
	case KindOperator:
		return v.(*Operator), nil
	case KindDense:
		return fromDense(v)
	case KindSparse:
		return fromSparse(v.(sparse.Matrix))
	case KindCapability:
		return fromCapability(v.(Capability))
	}

	return nil, linopErrorf(opAsOperator, fmt.Errorf("%w: %T", ErrUnsupportedType, v))
}

// fromDense coerces a dense value to 2-D and wraps it.
func fromDense(v any) (*Operator, error) {
	switch x := v.(type) {
	case *ndarray.Array:
		if x.Rank() > 2 {
			return nil, linopErrorf(opAsOperator, fmt.Errorf("%w (%w): shape %v", ErrInvalidRank, ndarray.ErrRank, x.Dims()))
		}
		a, err := x.AtLeast2D()
		if err != nil {
			return nil, linopErrorf(opAsOperator, err)
		}
		return denseOperator(a, x.DType())
	case matrix.Matrix:
		return denseOperator(x, dtype.Float64)
	case mat.Matrix:
		return gonumOperator(x)
	}

	rows, err := floatRows(v)
	if err != nil {
		return nil, linopErrorf(opAsOperator, err)
	}
	a, err := matrix.FromRows(rows)
	if err != nil {
		return nil, linopErrorf(opAsOperator, err)
	}

	return denseOperator(a, dtype.Float64)
}

// floatRows converts a rank-1 or rank-2 float64 slice (named types
// included) into row literals. Rank 1 becomes a single row.
func floatRows(v any) ([][]float64, error) {
	switch x := v.(type) {
	case []float64:
		return [][]float64{x}, nil
	case [][]float64:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	switch rank := sliceRank(rv.Type()); rank {
	case 1:
		return [][]float64{toFloats(rv)}, nil
	case 2:
		rows := make([][]float64, rv.Len())
		for i := range rows {
			rows[i] = toFloats(rv.Index(i))
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("%w: %T has rank %d", ErrInvalidRank, v, rank)
	}
}

// toFloats copies a float64-kind slice value into a []float64.
func toFloats(rv reflect.Value) []float64 {
	out := make([]float64, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Float()
	}

	return out
}

// denseOperator wraps a 2-D matrix; no action is synthesized.
func denseOperator(a matrix.Matrix, dt dtype.DType) (*Operator, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, linopErrorf(opAsOperator, err)
	}

	return New([]int{a.Rows(), a.Cols()},
		func(x []float64) ([]float64, error) { return matrix.MatVec(a, x) },
		WithRMatVec(func(x []float64) ([]float64, error) { return matrix.MatTVec(a, x) }),
		WithMatMat(func(v matrix.Matrix) (matrix.Matrix, error) { return matrix.Mul(a, v) }),
		WithDType(dt),
	)
}

// gonumOperator wraps a gonum matrix, keeping gonum's own kernels.
func gonumOperator(a mat.Matrix) (*Operator, error) {
	r, c := a.Dims()
	apply := func(m mat.Matrix, outLen int, x []float64) ([]float64, error) {
		out := make([]float64, outLen)
		err := maybe(func() {
			mat.NewVecDense(outLen, out).MulVec(m, mat.NewVecDense(len(x), x))
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	return New([]int{r, c},
		func(x []float64) ([]float64, error) { return apply(a, r, x) },
		WithRMatVec(func(x []float64) ([]float64, error) { return apply(a.T(), c, x) }),
		WithMatMat(func(v matrix.Matrix) (matrix.Matrix, error) {
			g, err := matrix.ToGonum(v)
			if err != nil {
				return nil, err
			}
			var out mat.Dense
			if err = maybe(func() { out.Mul(a, g) }); err != nil {
				return nil, err
			}
			return matrix.FromGonum(&out)
		}),
		WithDType(dtype.Float64),
	)
}

// maybe runs fn and returns the mat.Error it panicked with, if any.
// gonum signals shape errors by panicking; mat.Maybe recovers them into a
// mat.ErrorStack, which does not unwrap, so the bare mat.Error is returned
// and errors.Is(err, mat.ErrShape) holds for callers.
func maybe(fn func()) error {
	err := mat.Maybe(fn)
	var es mat.ErrorStack
	if errors.As(err, &es) {
		return es.Err
	}

	return err
}

// fromSparse delegates every action to the sparse value itself.
func fromSparse(s sparse.Matrix) (*Operator, error) {
	r, c := s.Dims()
	opts := []Option{WithRMatVec(s.MulVecH), WithMatMat(s.MulDense)}
	if dt := s.DType(); dt != dtype.Unknown {
		opts = append(opts, WithDType(dt))
	}
	op, err := New([]int{r, c}, s.MulVec, opts...)
	if err != nil {
		return nil, linopErrorf(opAsOperator, err)
	}

	return op, nil
}

// fromCapability wraps a custom value by the methods it exposes.
func fromCapability(c Capability) (*Operator, error) {
	opts := make([]Option, 0, 2)
	if h, ok := c.(RMatVecer); ok {
		opts = append(opts, WithRMatVec(h.RMatVec))
	}
	if d, ok := c.(DTyper); ok {
		if dt := d.DType(); dt != dtype.Unknown {
			opts = append(opts, WithDType(dt))
		}
	}
	op, err := New(c.Dims(), c.MatVec, opts...)
	if err != nil {
		return nil, linopErrorf(opAsOperator, err)
	}

	return op, nil
}
