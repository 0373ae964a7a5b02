// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// options.go - functional options shared by the ZAIC builders.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//   • Builders never panic.

package zaic

import (
	"io"
	"log/slog"
	"math"
)

// DefaultTolerance is the maximum deviation a sample may have from the
// running line of a piece.
const DefaultTolerance = 0.001

// Option customizes a ZAIC builder.
type Option func(*config)

type config struct {
	tol    float64
	logger *slog.Logger
}

// WithTolerance sets the compressor tolerance. Panics on negative or NaN.
func WithTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic("zaic: WithTolerance(negative or NaN)")
	}
	return func(c *config) { c.tol = tol }
}

// WithLogger routes warnings to l at Warn level. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("zaic: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

func newConfig(opts ...Option) config {
	c := config{
		tol:    DefaultTolerance,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
