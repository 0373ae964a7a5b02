// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   • logger      = discard
//   • tolerance   = zaic.DefaultTolerance
//   • queueLevels = reflector.DefaultQueueLevels
//   • seed        = 1

package builder

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/ivpbuild/reflector"
	"github.com/katalvlaran/ivpbuild/zaic"
)

const defaultSeed = int64(1)

// builderConfig aggregates the knobs every constructor sees. It is passed
// by value.
type builderConfig struct {
	logger      *slog.Logger
	tolerance   float64
	queueLevels int
	seed        int64
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		tolerance:   zaic.DefaultTolerance,
		queueLevels: reflector.DefaultQueueLevels,
		seed:        defaultSeed,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c builderConfig) zaicOptions() []zaic.Option {
	return []zaic.Option{zaic.WithTolerance(c.tolerance), zaic.WithLogger(c.logger)}
}

func (c builderConfig) reflectorOptions() []reflector.Option {
	return []reflector.Option{reflector.WithLogger(c.logger), reflector.WithQueueLevels(c.queueLevels)}
}
