// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// options.go - functional options for New.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.

package reflector

import (
	"io"
	"log/slog"
)

const (
	// DefaultQueueLevels sizes the error queue used by smart refinement.
	DefaultQueueLevels = 8
	// MaxQueueLevels bounds WithQueueLevels.
	MaxQueueLevels = 10
)

// Option customizes a Reflector.
type Option func(*config)

type config struct {
	strict bool
	degree int
	levels int
	logger *slog.Logger
}

// WithStrictRange keeps every fitted piece within the range of the values
// sampled for it (default true).
func WithStrictRange(v bool) Option {
	return func(c *config) { c.strict = v }
}

// WithDegree selects constant (0) or linear (1, default) pieces.
// Panics on other degrees.
func WithDegree(degree int) Option {
	if degree != 0 && degree != 1 {
		panic("reflector: WithDegree must be 0 or 1")
	}
	return func(c *config) { c.degree = degree }
}

// WithQueueLevels sizes the smart-refinement queue to 2^levels-1 entries.
// Panics outside [1, MaxQueueLevels].
func WithQueueLevels(levels int) Option {
	if levels < 1 || levels > MaxQueueLevels {
		panic("reflector: WithQueueLevels out of range")
	}
	return func(c *config) { c.levels = levels }
}

// WithLogger routes stage summaries (Debug) and warnings (Warn) to l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("reflector: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

func newConfig(opts ...Option) config {
	c := config{
		strict: true,
		degree: 1,
		levels: DefaultQueueLevels,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
