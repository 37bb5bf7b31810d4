// Package linop is a small toolkit for treating anything that can multiply
// a vector as a linear operator.
//
// What is inside?
//
//	A pure-Go, immutable abstraction that iterative solvers can consume:
//		• linop/    Operator (shape, MatVec, RMatVec, MatMat, dtype) and
//		            AsOperator, which normalizes dense, sparse and custom values
//		• matrix/   row-major Dense matrix and the kernels behind the dense
//		            branch (MatVec, MatTVec, Mul) + gonum bridges
//		• sparse/   CSR and Diagonal matrices plus a COO builder
//		• ndarray/  immutable N-d arrays, used for rank checks and 2-D coercion
//		• dtype/    scalar element-type tags and their textual aliases
//
// Quick example:
//
//	A = [[2, 0],     x = [1, 1]   ⇒   A·x = [2, 3]
//	     [0, 3]]
//
//	import "github.com/katalvlaran/linop/linop"
//
//	op, _ := linop.AsOperator([][]float64{{2, 0}, {0, 3}})
//	y, _ := op.MatVec([]float64{1, 1})
//
// The linop command (cmd/linop) loads a TOML problem file and prints the
// requested products:
//
//	go run github.com/katalvlaran/linop/cmd/linop -problem problem.toml
package linop
