// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// function.go - the IvP function: a piece map with priority and context.

package core

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/domain"
)

// DefaultPWT is the priority weight of a new Function.
const DefaultPWT = 10.0

// Function is an IvP objective function: a PDMap, a priority weight and a
// context tag naming its producer.
type Function struct {
	pdmap   *PDMap
	pwt     float64
	context string
}

// NewFunction wraps pm with the default priority weight.
func NewFunction(pm *PDMap) *Function {
	return &Function{pdmap: pm, pwt: DefaultPWT}
}

// PDMap returns the underlying piece map (nil once released).
func (f *Function) PDMap() *PDMap { return f.pdmap }

// PWT returns the priority weight.
func (f *Function) PWT() float64 { return f.pwt }

// SetPWT sets the priority weight; negative values are ignored.
func (f *Function) SetPWT(w float64) {
	if w >= 0 {
		f.pwt = w
	}
}

// Context returns the context tag.
func (f *Function) Context() string { return f.context }

// SetContext sets the context tag.
func (f *Function) SetContext(s string) { f.context = s }

// Released reports whether f is nil or its piece map was handed off.
func (f *Function) Released() bool { return f == nil || f.pdmap == nil }

// Release drops the piece map. A consumer taking ownership of f calls it so
// the caller's value can no longer be evaluated or reused.
func (f *Function) Release() {
	if f != nil {
		f.pdmap = nil
	}
}

// Dim returns the number of domain variables (0 once released).
func (f *Function) Dim() int {
	if f.Released() {
		return 0
	}
	return f.pdmap.Dim()
}

// Domain returns the function's domain (empty once released).
func (f *Function) Domain() domain.Domain {
	if f.Released() {
		return domain.Domain{}
	}
	return f.pdmap.Domain()
}

// VarName returns the name of variable i.
func (f *Function) VarName(i int) string { return f.Domain().VarName(i) }

// Size returns the number of pieces (0 once released).
func (f *Function) Size() int {
	if f.Released() {
		return 0
	}
	return f.pdmap.Size()
}

// TransDomain re-expresses f over dom, matching variables by name. It fails
// when f has more variables than dom or one of its variables is missing.
func (f *Function) TransDomain(dom domain.Domain) error {
	if f.Released() {
		return ErrNilFunction
	}
	own := f.Domain()
	if own.Size() > dom.Size() {
		return fmt.Errorf("TransDomain: %d vars into %d: %w", own.Size(), dom.Size(), ErrDimMismatch)
	}
	placement := make([]int, own.Size())
	for i := 0; i < own.Size(); i++ {
		j := dom.Index(own.VarName(i))
		if j < 0 {
			return fmt.Errorf("TransDomain(%q): %w", own.VarName(i), ErrUnknownVar)
		}
		placement[i] = j
	}
	return f.pdmap.TransDomain(dom, placement)
}

// Eval evaluates f at grid indices idx.
func (f *Function) Eval(idx ...int) (float64, bool) {
	if f.Released() {
		return 0, false
	}
	return f.pdmap.Eval(idx...)
}

// EvalNative evaluates f at native values, snapping each to its nearest grid point.
func (f *Function) EvalNative(vals ...float64) (float64, bool) {
	if f.Released() || len(vals) != f.Dim() {
		return 0, false
	}
	dom := f.Domain()
	idx := make([]int, len(vals))
	for i, v := range vals {
		idx[i] = dom.DiscreteVal(i, v, domain.SnapNearest)
	}
	return f.pdmap.Eval(idx...)
}

// FreeOfNaN reports whether no piece carries a NaN weight.
func (f *Function) FreeOfNaN() bool {
	return !f.Released() && f.pdmap.FreeOfNaN()
}

// Clone returns a deep copy of f.
func (f *Function) Clone() *Function {
	if f == nil {
		return nil
	}
	c := &Function{pwt: f.pwt, context: f.context}
	if f.pdmap != nil {
		c.pdmap = f.pdmap.Clone()
	}
	return c
}
