package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/linop/internal/config"
	"github.com/katalvlaran/linop/linop"
	"github.com/stretchr/testify/require"
)

func writeProblem(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.toml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRun_Dense(t *testing.T) {
	path := writeProblem(t, `
[dense]
rows = [[2, 0], [0, 3]]

[[apply]]
op = "matvec"
x = [1, 1]

[[apply]]
op = "rmatvec"
x = [0.5, 1]

[[apply]]
op = "matmat"
v = [[1, 0], [0, 1]]
`)
	var out, logs bytes.Buffer
	log, err := config.NewLogger(&logs, config.Config{LogLevel: "debug", NoColor: true})
	require.NoError(t, err)

	err = Run(context.Background(), config.Config{ProblemFile: path, Precision: 6}, &out, log)
	require.NoError(t, err)
	require.Equal(t, "2x2 operator with dtype=float64\n"+
		"matvec: [2 3]\n"+
		"rmatvec: [1 3]\n"+
		"matmat:\n"+
		"  [2 0]\n"+
		"  [0 3]\n", out.String())
	require.Contains(t, logs.String(), "operator ready")
	require.Contains(t, logs.String(), "kind=dense")
}

func TestRun_Precision(t *testing.T) {
	path := writeProblem(t, `
[dense]
rows = [[1, 0], [0, 3]]

[[apply]]
op = "matvec"
x = [0.123456789, 0.333333333]
`)
	var out bytes.Buffer
	err := Run(context.Background(), config.Config{ProblemFile: path, Precision: 3}, &out, nil)
	require.NoError(t, err)
	require.Contains(t, out.String(), "matvec: [0.123 1]")
}

func TestRun_Rank3ArrayFails(t *testing.T) {
	path := writeProblem(t, `
[array]
shape = [2, 2, 1]
data = [1, 2, 3, 4]
`)
	err := Run(context.Background(), config.Config{ProblemFile: path, Precision: 6}, nil, nil)
	require.ErrorIs(t, err, linop.ErrInvalidRank)
}

func TestRun_Errors(t *testing.T) {
	err := Run(context.Background(), config.Config{}, nil, nil)
	require.ErrorIs(t, err, config.ErrNoProblem)

	err = Run(context.Background(), config.Config{ProblemFile: filepath.Join(t.TempDir(), "none.toml")}, nil, nil)
	require.ErrorContains(t, err, "load problem")

	path := writeProblem(t, `
[dense]
rows = [[1, 2]]

[[apply]]
op = "matvec"
x = [1]
`)
	err = Run(context.Background(), config.Config{ProblemFile: path, Precision: 6}, nil, nil)
	require.ErrorContains(t, err, "apply #1 (matvec)")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Run(ctx, config.Config{ProblemFile: path, Precision: 6}, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}
