package matrix_test

import (
	"testing"

	"github.com/katalvlaran/linop/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestGonumRoundTrip moves a matrix through gonum and back.
func TestGonumRoundTrip(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	g, err := matrix.ToGonum(a)
	require.NoError(t, err)
	require.True(t, mat.Equal(g, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))

	g2, err := matrix.ToGonum(hide{a})
	require.NoError(t, err)
	require.True(t, mat.Equal(g, g2))

	back, err := matrix.FromGonum(g.T())
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, toRows(t, back))
}

// TestGonumEdgeCases covers nil and empty inputs on both sides.
func TestGonumEdgeCases(t *testing.T) {
	_, err := matrix.ToGonum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	empty, err := matrix.FromColumns(2, nil)
	require.NoError(t, err)
	_, err = matrix.ToGonum(empty)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.FromGonum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	z, err := matrix.FromGonum(&mat.Dense{})
	require.NoError(t, err)
	require.Equal(t, 0, z.Rows())
}
