// SPDX-License-Identifier: MIT

// Package problem decodes TOML problem files for the linop CLI.
//
// A problem names one operator source (a dense matrix, a sparse matrix in
// coordinate form, or an N-d array) and a list of products to apply to it:
//
//	dtype = "float64"
//
//	[sparse]
//	shape   = [2, 2]
//	entries = [[0, 0, 2.0], [1, 1, 3.0]]
//
//	[[apply]]
//	op = "matvec"
//	x  = [1, 1]
package problem

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/katalvlaran/linop/dtype"
	"github.com/katalvlaran/linop/matrix"
	"github.com/katalvlaran/linop/ndarray"
	"github.com/katalvlaran/linop/sparse"
)

// Product names accepted in [[apply]] tables.
const (
	OpMatVec  = "matvec"
	OpRMatVec = "rmatvec"
	OpMatMat  = "matmat"
)

var (
	// ErrNoSource is returned when none of [dense], [sparse] or [array] is present.
	ErrNoSource = errors.New("problem: no operator source")

	// ErrManySources is returned when more than one source table is present.
	ErrManySources = errors.New("problem: more than one operator source")

	// ErrEntry is returned for a sparse entry that is not an (i, j, value) triple
	// of integral indices.
	ErrEntry = errors.New("problem: malformed sparse entry")

	// ErrApply is returned for an [[apply]] table with an unknown op or a
	// missing operand.
	ErrApply = errors.New("problem: malformed apply")
)

// Problem is a decoded problem file.
type Problem struct {
	// Source is a *matrix.Dense, *ndarray.Array or *sparse.CSR, ready for
	// linop.AsOperator.
	Source any
	// DType is dtype.Unknown when the file does not set one.
	DType dtype.DType
	// Applies run in file order.
	Applies []Apply
}

// Apply is one requested product.
type Apply struct {
	Op string
	X  []float64     // operand of matvec / rmatvec
	V  *matrix.Dense // operand of matmat
}

type fileProblem struct {
	DType  string         `toml:"dtype"`
	Dense  denseSection   `toml:"dense"`
	Sparse sparseSection  `toml:"sparse"`
	Array  arraySection   `toml:"array"`
	Apply  []applySection `toml:"apply"`
}

type denseSection struct {
	Rows [][]float64 `toml:"rows"`
}

type sparseSection struct {
	Shape   []int       `toml:"shape"`
	Entries [][]float64 `toml:"entries"`
}

type arraySection struct {
	Shape []int     `toml:"shape"`
	Data  []float64 `toml:"data"`
}

type applySection struct {
	Op string      `toml:"op"`
	X  []float64   `toml:"x"`
	V  [][]float64 `toml:"v"`
}

// Load decodes the problem file at path.
func Load(path string) (*Problem, error) {
	var raw fileProblem
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}
	return build(raw, meta)
}

// Decode reads a problem from r.
func Decode(r io.Reader) (*Problem, error) {
	var raw fileProblem
	meta, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("decode problem: %w", err)
	}
	return build(raw, meta)
}

func build(raw fileProblem, meta toml.MetaData) (*Problem, error) {
	p := &Problem{}

	if meta.IsDefined("dtype") {
		d, err := dtype.Parse(raw.DType)
		if err != nil {
			return nil, fmt.Errorf("parse dtype: %w", err)
		}
		p.DType = d
	}

	var sources []string
	for _, key := range []string{"dense", "sparse", "array"} {
		if meta.IsDefined(key) {
			sources = append(sources, key)
		}
	}
	switch len(sources) {
	case 0:
		return nil, ErrNoSource
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrManySources, strings.Join(sources, ", "))
	}

	var err error
	switch sources[0] {
	case "dense":
		p.Source, err = buildDense(raw.Dense, p.DType)
	case "sparse":
		p.Source, err = buildSparse(raw.Sparse, p.DType)
	case "array":
		p.Source, err = ndarray.New(raw.Array.Shape, raw.Array.Data, p.DType)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", sources[0], err)
	}

	p.Applies = make([]Apply, 0, len(raw.Apply))
	for i, a := range raw.Apply {
		ap, err := buildApply(a)
		if err != nil {
			return nil, fmt.Errorf("apply #%d: %w", i+1, err)
		}
		p.Applies = append(p.Applies, ap)
	}

	return p, nil
}

// buildDense returns a *matrix.Dense, or a rank-2 *ndarray.Array when the
// file tags the values with a dtype.
func buildDense(d denseSection, dt dtype.DType) (any, error) {
	m, err := matrix.FromRows(d.Rows)
	if err != nil {
		return nil, err
	}
	if dt == dtype.Unknown {
		return m, nil
	}

	return ndarray.New([]int{m.Rows(), m.Cols()}, m.RawData(), dt)
}

// buildSparse assembles a CSR matrix through the COO builder; duplicate
// coordinates are summed.
func buildSparse(s sparseSection, dt dtype.DType) (*sparse.CSR, error) {
	if len(s.Shape) != 2 {
		return nil, fmt.Errorf("shape %v: %w", s.Shape, sparse.ErrShape)
	}
	b, err := sparse.NewCOO(s.Shape[0], s.Shape[1])
	if err != nil {
		return nil, err
	}
	if dt != dtype.Unknown {
		b.SetDType(dt)
	}
	for k, e := range s.Entries {
		if len(e) != 3 || e[0] != float64(int(e[0])) || e[1] != float64(int(e[1])) {
			return nil, fmt.Errorf("entry #%d %v: %w", k+1, e, ErrEntry)
		}
		if err = b.Add(int(e[0]), int(e[1]), e[2]); err != nil {
			return nil, fmt.Errorf("entry #%d: %w", k+1, err)
		}
	}

	return b.ToCSR(), nil
}

func buildApply(a applySection) (Apply, error) {
	op := strings.ToLower(strings.TrimSpace(a.Op))
	switch op {
	case OpMatVec, OpRMatVec:
		if a.X == nil {
			return Apply{}, fmt.Errorf("%w: %s needs x", ErrApply, op)
		}
		return Apply{Op: op, X: a.X}, nil
	case OpMatMat:
		if a.V == nil {
			return Apply{}, fmt.Errorf("%w: %s needs v", ErrApply, op)
		}
		v, err := matrix.FromRows(a.V)
		if err != nil {
			return Apply{}, err
		}
		return Apply{Op: op, V: v}, nil
	}

	return Apply{}, fmt.Errorf("%w: unknown op %q", ErrApply, a.Op)
}
