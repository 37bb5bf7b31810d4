package linop_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/linop"
	"github.com/katalvlaran/linop/matrix"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidShape(t *testing.T) {
	cases := map[string][]int{
		"nil":          nil,
		"rank1":        {2},
		"rank3":        {2, 2, 2},
		"negative row": {-1, 2},
		"negative col": {2, -1},
	}
	for name, shape := range cases {
		t.Run(name, func(t *testing.T) {
			op, err := linop.New(shape, diag23)
			require.ErrorIs(t, err, linop.ErrInvalidShape)
			require.Nil(t, op)
		})
	}
}

func TestNew_ZeroExtentsAreLegal(t *testing.T) {
	op, err := linop.New([]int{0, 3}, func([]float64) ([]float64, error) { return []float64{}, nil })
	require.NoError(t, err)
	require.Equal(t, linop.Shape{Rows: 0, Cols: 3}, op.Shape())
	require.Equal(t, "0x3 operator with unspecified dtype", op.String())
}

func TestNew_NilMatVec(t *testing.T) {
	_, err := linop.New([]int{2, 2}, nil)
	require.ErrorIs(t, err, linop.ErrNilFunc)
}

func TestNew_UnknownDTypeFailsFast(t *testing.T) {
	_, err := linop.New([]int{2, 2}, diag23, linop.WithDType("quaternion"))
	require.ErrorIs(t, err, dtype.ErrUnknown)
}

func TestNew_DType(t *testing.T) {
	op, err := linop.New([]int{2, 2}, diag23)
	require.NoError(t, err)
	_, ok := op.DType()
	require.False(t, ok)
	require.Equal(t, "2x2 operator with unspecified dtype", op.String())

	for _, tag := range []any{"int32", "<i4", dtype.Int32, int32(7)} {
		op, err = linop.New([]int{2, 3}, diag23, linop.WithDType(tag))
		require.NoError(t, err)
		d, ok := op.DType()
		require.True(t, ok)
		require.Equal(t, dtype.Int32, d)
		require.Equal(t, "2x3 operator with dtype=int32", op.String())
	}

	// nil tag is the same as no tag
	op, err = linop.New([]int{2, 2}, diag23, linop.WithDType(nil))
	require.NoError(t, err)
	_, ok = op.DType()
	require.False(t, ok)
}

func TestOperator_Accessors(t *testing.T) {
	op, err := linop.New([]int{2, 5}, diag23)
	require.NoError(t, err)
	require.Equal(t, 2, op.Rows())
	require.Equal(t, 5, op.Cols())
	require.Equal(t, []int{2, 5}, op.Shape().Dims())
	require.False(t, op.HasRMatVec())
	require.False(t, op.HasMatMat())
}

func TestOperator_MatVec(t *testing.T) {
	op, err := linop.New([]int{2, 2}, diag23)
	require.NoError(t, err)

	y, err := op.MatVec([]float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, y)
}

func TestOperator_WrappedErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	fail := func([]float64) ([]float64, error) { return nil, boom }

	op, err := linop.New([]int{2, 2}, fail, linop.WithRMatVec(fail))
	require.NoError(t, err)

	_, err = op.MatVec([]float64{1, 1})
	require.True(t, err == boom, "matvec error must be returned unchanged, got %v", err)
	_, err = op.RMatVec([]float64{1, 1})
	require.True(t, err == boom, "rmatvec error must be returned unchanged, got %v", err)

	// the synthesized matmat forwards the first failure as is
	v := mustRows(t, [][]float64{{1, 0}, {0, 1}})
	_, err = op.MatMat(v)
	require.True(t, err == boom, "matmat error must be returned unchanged, got %v", err)
}

func TestOperator_RMatVecUnsupported(t *testing.T) {
	op, err := linop.New([]int{2, 2}, diag23)
	require.NoError(t, err)

	// lazily raised, and raised every time
	for i := 0; i < 2; i++ {
		y, err := op.RMatVec([]float64{1, 1})
		require.Nil(t, y)
		require.ErrorIs(t, err, linop.ErrUnsupportedOperation)
		require.Contains(t, err.Error(), "Hermitian-transpose action is not defined")
	}
}

func TestOperator_RMatVecSupplied(t *testing.T) {
	var got []float64
	op, err := linop.New([]int{2, 3}, diag23, linop.WithRMatVec(func(v []float64) ([]float64, error) {
		got = v
		return []float64{v[0], v[1], 0}, nil
	}))
	require.NoError(t, err)
	require.True(t, op.HasRMatVec())

	y, err := op.RMatVec([]float64{4, 5})
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 0}, y)
	require.Equal(t, []float64{4, 5}, got)
}

func TestOperator_SynthesizedMatMat(t *testing.T) {
	var seen [][]float64
	record := func(x []float64) ([]float64, error) {
		seen = append(seen, append([]float64(nil), x...))
		return diag23(x)
	}
	op, err := linop.New([]int{2, 2}, record)
	require.NoError(t, err)

	v := mustRows(t, [][]float64{
		{1, 0, 5},
		{0, 1, 7},
	})
	out, err := op.MatMat(v)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{2, 0, 10}, {0, 3, 21}}, rows(t, out))

	// one call per column, left to right
	require.Equal(t, [][]float64{{1, 0}, {0, 1}, {5, 7}}, seen)
}

func TestOperator_SynthesizedMatMatMatchesMatVec(t *testing.T) {
	a := mustRows(t, [][]float64{
		{0.1, 0.2, 0.3},
		{1.5, -2.5, 3.25},
	})
	op, err := linop.New([]int{2, 3}, func(x []float64) ([]float64, error) { return matrix.MatVec(a, x) })
	require.NoError(t, err)

	v := mustRows(t, [][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	})
	out, err := op.MatMat(v)
	require.NoError(t, err)

	for j := 0; j < v.Cols(); j++ {
		col, err := v.Col(j)
		require.NoError(t, err)
		want, err := op.MatVec(col)
		require.NoError(t, err)
		got, err := matrix.ColOf(out, j)
		require.NoError(t, err)
		require.Equal(t, want, got, "column %d must be bit-identical to matvec", j)
	}
}

func TestOperator_SynthesizedMatMatGenericMatrix(t *testing.T) {
	op, err := linop.New([]int{2, 2}, diag23)
	require.NoError(t, err)

	out, err := op.MatMat(hide{mustRows(t, [][]float64{{1}, {1}})})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{2}, {3}}, rows(t, out))
}

func TestOperator_SynthesizedMatMatZeroColumns(t *testing.T) {
	calls := 0
	op, err := linop.New([]int{3, 2}, func(x []float64) ([]float64, error) {
		calls++
		return []float64{0, 0, 0}, nil
	})
	require.NoError(t, err)

	v, err := matrix.FromColumns(2, nil)
	require.NoError(t, err)
	out, err := op.MatMat(v)
	require.NoError(t, err)
	require.Equal(t, 3, out.Rows())
	require.Equal(t, 0, out.Cols())
	require.Zero(t, calls)
}

func TestOperator_SynthesizedMatMatErrors(t *testing.T) {
	op, err := linop.New([]int{2, 2}, func(x []float64) ([]float64, error) {
		return make([]float64, int(x[0])), nil // length depends on the input
	})
	require.NoError(t, err)

	_, err = op.MatMat(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = op.MatMat(mustRows(t, [][]float64{{1, 2}, {0, 0}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestOperator_SuppliedMatMat(t *testing.T) {
	matvecCalls := 0
	op, err := linop.New([]int{2, 2},
		func(x []float64) ([]float64, error) { matvecCalls++; return diag23(x) },
		linop.WithMatMat(func(v matrix.Matrix) (matrix.Matrix, error) { return v.Clone(), nil }),
	)
	require.NoError(t, err)
	require.True(t, op.HasMatMat())

	v := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	out, err := op.MatMat(v)
	require.NoError(t, err)
	require.Equal(t, rows(t, v), rows(t, out))
	require.Zero(t, matvecCalls)
}

func TestOptions_LastWriterWins(t *testing.T) {
	op, err := linop.New([]int{1, 1}, diag23,
		linop.WithDType("float32"),
		nil,
		linop.WithDType("complex128"),
	)
	require.NoError(t, err)
	d, ok := op.DType()
	require.True(t, ok)
	require.Equal(t, dtype.Complex128, d)
}

func TestShape(t *testing.T) {
	require.True(t, linop.IsShape([]int{0, 0}))
	require.False(t, linop.IsShape([]int{1}))

	s, err := linop.ValidateShape([]int{4, 7})
	require.NoError(t, err)
	require.Equal(t, "4x7", s.String())

	_, err = linop.ValidateShape([]int{4, -7})
	require.ErrorIs(t, err, linop.ErrInvalidShape)
}
