// SPDX-License-Identifier: MIT
// Package: ivpbuild/archive
//
// options.go - functional options for Open.

package archive

import (
	"io"
	"log/slog"
	"time"
)

// DefaultBusyTimeout is how long a writer waits on a locked database.
const DefaultBusyTimeout = 5 * time.Second

// Option customizes a Store.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	busyTimeout time.Duration
}

// WithLogger routes store events to l (Info for writes, Debug for reads).
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("archive: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithBusyTimeout sets the SQLite busy timeout. Panics on negative values.
func WithBusyTimeout(d time.Duration) Option {
	if d < 0 {
		panic("archive: WithBusyTimeout negative")
	}
	return func(c *config) { c.busyTimeout = d }
}

func newConfig(opts ...Option) config {
	c := config{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		busyTimeout: DefaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
