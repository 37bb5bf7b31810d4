// Command linop loads a TOML problem file, normalizes its operator source
// and prints the requested products.
//
// Usage:
//
//	linop -problem problem.toml [-precision 6] [-log-level info] [-no-color]
//
// Every flag also reads a LINOP_* environment variable; flags win.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/linop/internal/config"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	log, err := config.NewLogger(os.Stderr, cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, os.Stdout, log); err != nil {
		log.Error("linop failed", "err", err)
		stop()
		os.Exit(1)
	}
}
