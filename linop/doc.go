// Package linop defines a uniform abstraction for things that can be
// multiplied by a vector or a matrix.
//
// Iterative solvers (conjugate gradient, GMRES and friends) only ever need
// the products A·x, Aᴴ·x and A·V, never the entries of A. An Operator
// captures exactly that: a fixed (M, N) shape plus three behaviors.
//
//	MatVec(x)  A·x,  len(x) == N
//	RMatVec(v) Aᴴ·v, len(v) == M
//	MatMat(V)  A·V,  V is N×K
//
// Build one directly from a vector action:
//
//	op, err := linop.New([]int{2, 2}, func(x []float64) ([]float64, error) {
//		return []float64{2 * x[0], 3 * x[1]}, nil
//	})
//
// or normalize an existing value with AsOperator, which accepts an
// *Operator (returned unchanged), dense values (ndarray, matrix.Matrix,
// gonum mat.Matrix, float64 slices), sparse.Matrix values, and any type
// implementing Capability.
//
// Absent optional behaviors are filled in once, at construction: MatMat
// falls back to one MatVec per column, and RMatVec fails with
// ErrUnsupportedOperation. Errors from wrapped behaviors are returned
// unchanged.
package linop
