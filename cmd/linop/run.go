// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/katalvlaran/linop/internal/config"
	"github.com/katalvlaran/linop/internal/problem"
	"github.com/katalvlaran/linop/linop"
)

// Run loads cfg.ProblemFile, prints the operator description and one block
// per requested product to out. Progress goes to log.
func Run(ctx context.Context, cfg config.Config, out io.Writer, log *slog.Logger) error {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := problem.Load(cfg.ProblemFile)
	if err != nil {
		return err
	}
	log.Debug("problem loaded", "file", cfg.ProblemFile, "source", fmt.Sprintf("%T", p.Source), "applies", len(p.Applies))

	op, err := p.Operator()
	if err != nil {
		return err
	}
	log.Info("operator ready", "shape", op.Shape().String(), "kind", linop.Classify(p.Source).String(),
		"rmatvec", op.HasRMatVec(), "matmat", op.HasMatMat())
	fmt.Fprintln(out, op)

	for i, a := range p.Applies {
		if err = ctx.Err(); err != nil {
			return err
		}
		res, err := a.Run(op)
		if err != nil {
			return fmt.Errorf("apply #%d (%s): %w", i+1, a.Op, err)
		}
		log.Debug("applied", "index", i+1, "op", a.Op)
		if err = writeResult(out, res, cfg.Precision); err != nil {
			return err
		}
	}

	return nil
}

// writeResult prints "<op>: [v0 v1 ...]" for vectors and one bracketed row
// per line for matrices.
func writeResult(w io.Writer, res problem.Result, prec int) error {
	if res.Mat == nil {
		_, err := fmt.Fprintf(w, "%s: %s\n", res.Op, formatVec(res.Vec, prec))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s:\n", res.Op); err != nil {
		return err
	}
	row := make([]float64, res.Mat.Cols())
	for i := 0; i < res.Mat.Rows(); i++ {
		for j := range row {
			v, err := res.Mat.At(i, j)
			if err != nil {
				return err
			}
			row[j] = v
		}
		if _, err := fmt.Fprintf(w, "  %s\n", formatVec(row, prec)); err != nil {
			return err
		}
	}

	return nil
}

func formatVec(v []float64, prec int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', prec, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
