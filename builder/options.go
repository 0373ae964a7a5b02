// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// options.go - functional options for Build and BuildFunction.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//   • Later options override earlier ones.

package builder

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/ivpbuild/reflector"
)

// BuilderOption customizes a build by mutating a builderConfig.
type BuilderOption func(*builderConfig)

// WithLogger routes build events to l and hands it to the zaic and
// reflector builders. Panics on nil.
func WithLogger(l *slog.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(c *builderConfig) { c.logger = l }
}

// WithTolerance sets the ZAIC compressor tolerance. Panics on negative or
// NaN.
func WithTolerance(tol float64) BuilderOption {
	if tol < 0 || math.IsNaN(tol) {
		panic("builder: WithTolerance(negative or NaN)")
	}
	return func(c *builderConfig) { c.tolerance = tol }
}

// WithQueueLevels sizes the reflectors' smart-refinement queues.
// Panics outside [1, reflector.MaxQueueLevels].
func WithQueueLevels(levels int) BuilderOption {
	if levels < 1 || levels > reflector.MaxQueueLevels {
		panic("builder: WithQueueLevels out of range")
	}
	return func(c *builderConfig) { c.queueLevels = levels }
}

// WithSeed seeds the samplers used when a spec asks for a rating.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.seed = seed }
}
