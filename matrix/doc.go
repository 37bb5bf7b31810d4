// Package matrix offers the dense linear-algebra collaborator used by linop.
//
// The matrix package provides:
//
//   - Matrix, a small bounds-checked interface over 2-D float64 storage.
//   - Dense, a row-major implementation with row and column constructors.
//   - Kernels Mul, MatVec and MatTVec with *Dense fast-paths.
//   - Conversions to and from gonum.org/v1/gonum/mat.
//
// All public functions return sentinel errors (see errors.go) instead of
// panicking; match them with errors.Is.
package matrix
