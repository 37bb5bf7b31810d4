package linop_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/linop/linop"
	"github.com/katalvlaran/linop/matrix"
)

func benchDense(b *testing.B, n int) (*matrix.Dense, []float64) {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()
	}
	a, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		b.Fatal(err)
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}

	return a, x
}

// BenchmarkOperatorMatVec measures dispatch overhead over the raw kernel.
func BenchmarkOperatorMatVec(b *testing.B) {
	a, x := benchDense(b, 128)
	op, err := linop.AsOperator(a)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = op.MatVec(x)
	}
}

// BenchmarkSynthesizedMatMat runs one matvec per column of a 128×16 block.
func BenchmarkSynthesizedMatMat(b *testing.B) {
	a, _ := benchDense(b, 128)
	op, err := linop.New([]int{128, 128}, func(x []float64) ([]float64, error) { return matrix.MatVec(a, x) })
	if err != nil {
		b.Fatal(err)
	}
	v, err := matrix.NewDenseFrom(128, 16, make([]float64, 128*16))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = op.MatMat(v)
	}
}
