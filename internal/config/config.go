// SPDX-License-Identifier: MIT

// Package config loads the linop CLI settings: environment first, then
// command-line flags on top.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MaxPrecision is the largest number of significant digits worth printing
// for a float64.
const MaxPrecision = 17

var (
	// ErrNoProblem is returned when no problem file was configured.
	ErrNoProblem = errors.New("config: problem file is required")

	// ErrPrecision is returned for a precision outside [0, MaxPrecision].
	ErrPrecision = errors.New("config: precision out of range")

	// ErrLogLevel is returned for an unrecognized log level name.
	ErrLogLevel = errors.New("config: unknown log level")
)

// Config holds the CLI configuration.
type Config struct {
	ProblemFile string `env:"LINOP_PROBLEM_FILE"`
	LogLevel    string `env:"LINOP_LOG_LEVEL"    envDefault:"info"`
	NoColor     bool   `env:"LINOP_NO_COLOR"`
	Precision   int    `env:"LINOP_PRECISION"    envDefault:"6"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig reads the environment, then lets flags in args override it.
// The result is validated.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ProblemFile, "problem", cfg.ProblemFile, "path to a TOML problem file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored log output")
	fs.IntVar(&cfg.Precision, "precision", cfg.Precision, "significant digits in printed results")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	// a bare positional argument is taken as the problem file
	if cfg.ProblemFile == "" && fs.NArg() > 0 {
		cfg.ProblemFile = fs.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ProblemFile) == "" {
		return ErrNoProblem
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return fmt.Errorf("%w: %d", ErrPrecision, c.Precision)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name ("debug", "INFO", "warn+2", ...) to a slog.Level.
// An empty name means info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrLogLevel, s)
	}
	return l, nil
}
