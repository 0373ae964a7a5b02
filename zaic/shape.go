// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// shape.go - state shared by the builders and the final build step.

package zaic

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// shape holds the state every builder shares: the one-variable sub-domain,
// the ok bit and the warnings.
type shape struct {
	cfg      config
	dom      domain.Domain
	varName  string
	ok       bool
	warnings []string

	low, high, delta float64
	pts              int
}

func newShape(dom domain.Domain, varName string, opts []Option) shape {
	s := shape{cfg: newConfig(opts...), varName: varName, ok: true}
	sub, err := dom.Sub(varName)
	if err != nil {
		s.ok = false
		s.warn("variable %q not in domain", varName)
		return s
	}
	s.dom = sub
	s.low, s.high = sub.Low(0), sub.High(0)
	s.delta, s.pts = sub.Delta(0), sub.Points(0)
	return s
}

func (s *shape) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	s.cfg.logger.Warn("zaic: "+msg, "var", s.varName)
}

// OK reports whether the builder can extract a function.
func (s *shape) OK() bool { return s.ok }

// Warnings returns the accumulated warnings in order.
func (s *shape) Warnings() []string { return append([]string(nil), s.warnings...) }

// Domain returns the single-variable sub-domain.
func (s *shape) Domain() domain.Domain { return s.dom }

func (s *shape) val(ix int) float64 { return s.low + float64(ix)*s.delta }

// build compresses vals into a function over the sub-domain.
func (s *shape) build(vals []float64) (*core.Function, error) {
	if !s.ok {
		return nil, ErrNotOK
	}
	if s.dom.Size() != 1 {
		return nil, fmt.Errorf("%s: %w", s.varName, ErrUnknownVar)
	}
	pm := core.NewPDMap(s.dom, 1, compress(vals, s.cfg.tol)...)
	pm.UpdateGrid()
	s.cfg.logger.Debug("zaic: built", "var", s.varName, "points", len(vals), "pieces", pm.Size())
	return core.NewFunction(pm), nil
}
