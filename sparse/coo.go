// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"sort"

	sparsemat "github.com/james-bowman/sparse"
	"github.com/katalvlaran/linop/dtype"
)

const (
	opNewCOO = "NewCOO"
	opAdd    = "COO.Add"
)

// triplet is one (row, col, value) entry.
type triplet struct {
	i, j int
	v    float64
}

// COO accumulates (row, col, value) triplets and compresses them into CSR.
// Duplicates are summed on compression. A COO is a builder: it is not safe
// for concurrent use and is not itself a member of the Matrix family.
type COO struct {
	r, c    int
	entries []triplet
	dt      dtype.DType
}

// NewCOO returns an empty rows×cols builder.
// Errors: ErrShape for negative dimensions.
func NewCOO(rows, cols int) (*COO, error) {
	if rows < 0 || cols < 0 {
		return nil, sparseErrorf(opNewCOO, fmt.Errorf("%dx%d: %w", rows, cols, ErrShape))
	}

	return &COO{r: rows, c: cols, dt: dtype.Float64}, nil
}

// SetDType sets the tag carried into the compressed matrix.
func (b *COO) SetDType(d dtype.DType) { b.dt = d }

// Add appends v at (i, j). Zero values are kept so that explicit zeros
// survive into the structure, as they would in a hand-built CSR.
//
// Errors:
//   - ErrIndex for out-of-range coordinates; ErrNaNInf for non-finite v.
func (b *COO) Add(i, j int, v float64) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return sparseErrorf(opAdd, fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, b.r, b.c, ErrIndex))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sparseErrorf(opAdd, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
	}
	b.entries = append(b.entries, triplet{i: i, j: j, v: v})

	return nil
}

// Len returns the number of triplets added so far (before duplicate summation).
func (b *COO) Len() int { return len(b.entries) }

// ToCSR compresses the triplets: stable sort by (row, col), sum runs of
// equal coordinates in insertion order, then let the backing COO build the
// row pointers.
//
// Complexity:
//   - Time O(nnz log nnz + r), Space O(nnz + r).
func (b *COO) ToCSR() *CSR {
	sorted := append([]triplet(nil), b.entries...)
	sort.SliceStable(sorted, func(x, y int) bool {
		if sorted[x].i != sorted[y].i {
			return sorted[x].i < sorted[y].i
		}
		return sorted[x].j < sorted[y].j
	})

	rows := make([]int, 0, len(sorted))
	cols := make([]int, 0, len(sorted))
	data := make([]float64, 0, len(sorted))
	for k, e := range sorted {
		n := len(data)
		if k > 0 && rows[n-1] == e.i && cols[n-1] == e.j {
			data[n-1] += e.v // duplicate coordinate
			continue
		}
		rows = append(rows, e.i)
		cols = append(cols, e.j)
		data = append(data, e.v)
	}

	return &CSR{m: sparsemat.NewCOO(b.r, b.c, rows, cols, data).ToCSR(), dt: b.dt}
}
