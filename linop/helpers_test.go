package linop_test

import (
	"testing"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
	"github.com/stretchr/testify/require"
)

// diag23 is the running example: A = [[2,0],[0,3]].
func diag23(x []float64) ([]float64, error) {
	return []float64{2 * x[0], 3 * x[1]}, nil
}

// rows reads any Matrix into row literals.
func rows(tb testing.TB, m matrix.Matrix) [][]float64 {
	tb.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(tb, err)
			out[i][j] = v
		}
	}

	return out
}

// mustRows builds a *matrix.Dense or fails the test.
func mustRows(tb testing.TB, r [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.FromRows(r)
	require.NoError(tb, err)

	return m
}

// hide masks the concrete type of a Matrix.
type hide struct{ matrix.Matrix }

// scaler is a minimal capability object: y = k*x on R^n.
type scaler struct {
	n int
	k float64
}

func (s scaler) Dims() []int { return []int{s.n, s.n} }

func (s scaler) MatVec(x []float64) ([]float64, error) {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = s.k * v
	}
	return y, nil
}

// fullScaler adds the optional Hermitian action and dtype.
type fullScaler struct {
	scaler
	dt dtype.DType
}

func (s fullScaler) RMatVec(x []float64) ([]float64, error) { return s.MatVec(x) }

func (s fullScaler) DType() dtype.DType { return s.dt }

// badShape reports an invalid shape.
type badShape struct{ scaler }

func (badShape) Dims() []int { return []int{3} }

// countingSparse is a sparse.Matrix that records which method served a call.
type countingSparse struct {
	calls map[string]int
}

func newCountingSparse() *countingSparse { return &countingSparse{calls: map[string]int{}} }

func (c *countingSparse) Dims() (int, int)   { return 2, 2 }
func (c *countingSparse) DType() dtype.DType { return dtype.Float32 }
func (c *countingSparse) NNZ() int           { return 2 }
func (c *countingSparse) MulVec(x []float64) ([]float64, error) {
	c.calls["MulVec"]++
	return diag23(x)
}
func (c *countingSparse) MulVecH(x []float64) ([]float64, error) {
	c.calls["MulVecH"]++
	return diag23(x)
}
func (c *countingSparse) MulDense(v matrix.Matrix) (matrix.Matrix, error) {
	c.calls["MulDense"]++
	return v.Clone(), nil
}

// MatVec must never be picked over MulVec.
func (c *countingSparse) MatVec(x []float64) ([]float64, error) {
	c.calls["MatVec"]++
	return x, nil
}
