// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"

	"github.com/katalvlaran/linop/linop"
	"github.com/katalvlaran/linop/matrix"
)

// Result holds the output of one Apply: Vec for matvec / rmatvec, Mat for matmat.
type Result struct {
	Op  string
	Vec []float64
	Mat matrix.Matrix
}

// Operator normalizes the problem source.
func (p *Problem) Operator() (*linop.Operator, error) {
	op, err := linop.AsOperator(p.Source)
	if err != nil {
		return nil, fmt.Errorf("normalize %T: %w", p.Source, err)
	}
	return op, nil
}

// Run applies the requested product to op. Errors from op are returned unchanged.
func (a Apply) Run(op *linop.Operator) (Result, error) {
	res := Result{Op: a.Op}
	var err error
	switch a.Op {
	case OpMatVec:
		res.Vec, err = op.MatVec(a.X)
	case OpRMatVec:
		res.Vec, err = op.RMatVec(a.X)
	case OpMatMat:
		res.Mat, err = op.MatMat(a.V)
	default:
		err = fmt.Errorf("%w: unknown op %q", ErrApply, a.Op)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
