// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// evaluator.go - the objective the reflector samples.

package reflector

import "github.com/katalvlaran/ivpbuild/domain"

// Evaluator is a continuous objective over a domain. EvalPoint receives
// native values in domain order. *aof.AOF satisfies it.
type Evaluator interface {
	Domain() domain.Domain
	EvalPoint(vals []float64) float64
}

// EvalFunc adapts a plain function to Evaluator.
type EvalFunc struct {
	Dom domain.Domain
	Fn  func(vals []float64) float64
}

// Domain returns e.Dom.
func (e EvalFunc) Domain() domain.Domain { return e.Dom }

// EvalPoint calls e.Fn.
func (e EvalFunc) EvalPoint(vals []float64) float64 { return e.Fn(vals) }
