// SPDX-License-Identifier: MIT
// Package: ivpbuild/domain
//
// domain.go - the Domain value type and its discretization helpers.
//
// Contract:
//   • Variable order is insertion order and is significant: box dimension d
//     of any function built over the domain refers to variable d.
//   • points >= 1 and low <= high hold for every variable.
//   • Derived domains are fresh copies.

package domain

import (
	"fmt"
	"math"
	"strings"
)

// Snap selects how DiscreteVal settles values falling between grid points.
type Snap int

const (
	// SnapFloor truncates toward the lower grid point.
	SnapFloor Snap = iota
	// SnapCeil rounds up to the next grid point.
	SnapCeil
	// SnapNearest picks the closest grid point; exact midpoints go down.
	SnapNearest
)

// Var is one discretized decision variable.
type Var struct {
	Name   string
	Low    float64
	High   float64
	Points int
}

// Delta returns the spacing between adjacent grid points (0 for one point).
func (v Var) Delta() float64 {
	if v.Points <= 1 {
		return 0
	}
	return (v.High - v.Low) / float64(v.Points-1)
}

// Domain is an ordered set of uniquely named variables.
// The zero value is an empty, usable domain.
type Domain struct {
	vars []Var
}

// New builds a Domain from the given variables, validating each one in order.
func New(vars ...Var) (Domain, error) {
	var d Domain
	for _, v := range vars {
		if err := d.AddVar(v.Name, v.Low, v.High, v.Points); err != nil {
			return Domain{}, err
		}
	}
	return d, nil
}

// AddVar appends a variable to the domain.
// Fails on a duplicate or empty name, low > high, points < 1, or a single
// point whose low and high differ.
// Complexity: O(n) for the duplicate check.
func (d *Domain) AddVar(name string, low, high float64, points int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if d.Index(name) >= 0 {
		return fmt.Errorf("AddVar(%q): %w", name, ErrDuplicateVar)
	}
	if low > high {
		return fmt.Errorf("AddVar(%q): %w", name, ErrBadRange)
	}
	if points < 1 || (points == 1 && high != low) {
		return fmt.Errorf("AddVar(%q, points=%d): %w", name, points, ErrBadPoints)
	}
	d.vars = append(d.vars, Var{Name: name, Low: low, High: high, Points: points})
	return nil
}

// Size returns the number of variables.
func (d Domain) Size() int { return len(d.vars) }

// Index returns the position of the named variable, or -1.
func (d Domain) Index(name string) int {
	for i := range d.vars {
		if d.vars[i].Name == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named variable is present.
func (d Domain) Has(name string) bool { return d.Index(name) >= 0 }

// Var returns variable i. Panics when i is out of range, like a slice index.
func (d Domain) Var(i int) Var { return d.vars[i] }

// Vars returns a copy of the variable list.
func (d Domain) Vars() []Var {
	out := make([]Var, len(d.vars))
	copy(out, d.vars)
	return out
}

// VarName returns the name of variable i, or "" when out of range.
func (d Domain) VarName(i int) string {
	if i < 0 || i >= len(d.vars) {
		return ""
	}
	return d.vars[i].Name
}

// Low returns the low value of variable i (0 when out of range).
func (d Domain) Low(i int) float64 {
	if i < 0 || i >= len(d.vars) {
		return 0
	}
	return d.vars[i].Low
}

// High returns the high value of variable i (0 when out of range).
func (d Domain) High(i int) float64 {
	if i < 0 || i >= len(d.vars) {
		return 0
	}
	return d.vars[i].High
}

// Points returns the number of grid points of variable i (0 when out of range).
func (d Domain) Points(i int) int {
	if i < 0 || i >= len(d.vars) {
		return 0
	}
	return d.vars[i].Points
}

// Delta returns the grid spacing of variable i (0 when out of range).
func (d Domain) Delta(i int) float64 {
	if i < 0 || i >= len(d.vars) {
		return 0
	}
	return d.vars[i].Delta()
}

// TotalPoints returns the product of all point counts (0 for an empty domain).
func (d Domain) TotalPoints() int {
	if len(d.vars) == 0 {
		return 0
	}
	total := 1
	for _, v := range d.vars {
		total *= v.Points
	}
	return total
}

// Val converts grid index j of variable i into its native value.
func (d Domain) Val(i, j int) (float64, bool) {
	if i < 0 || i >= len(d.vars) {
		return 0, false
	}
	v := d.vars[i]
	if j < 0 || j >= v.Points {
		return 0, false
	}
	return v.Low + float64(j)*v.Delta(), true
}

// DiscreteVal converts a native value of variable i into a grid index.
// Values at or below low map to 0; values at or above high map to points-1.
// A value within snapEpsilon of a grid point maps to that point under every
// policy, so a bound given as a grid value always includes it.
// Returns 0 when i is out of range or snap is unknown.
// Complexity: O(1).
func (d Domain) DiscreteVal(i int, val float64, snap Snap) int {
	if i < 0 || i >= len(d.vars) || snap < SnapFloor || snap > SnapNearest {
		return 0
	}
	v := d.vars[i]
	if val <= v.Low {
		return 0
	}
	if val >= v.High {
		return v.Points - 1
	}
	dval := (val - v.Low) / v.Delta()
	if r, ok := onGrid(dval); ok {
		return r
	}
	switch snap {
	case SnapFloor:
		return int(dval)
	case SnapCeil:
		return int(math.Ceil(dval))
	}
	// Halfway ties go to the lower point.
	half := dval - 0.5
	if r, ok := onGrid(half); ok {
		return r
	}
	return int(math.Ceil(half))
}

// snapEpsilon is the distance, in grid steps, under which a fractional
// index counts as a whole one.
const snapEpsilon = 1e-9

func onGrid(x float64) (int, bool) {
	r := math.Round(x)
	if math.Abs(x-r) < snapEpsilon {
		return int(r), true
	}
	return 0, false
}

// Sub returns a new domain holding only the named variables, in the order
// given. Fails with ErrUnknownVar if any name is missing.
func (d Domain) Sub(names ...string) (Domain, error) {
	var out Domain
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		i := d.Index(name)
		if i < 0 {
			return Domain{}, fmt.Errorf("Sub(%q): %w", name, ErrUnknownVar)
		}
		v := d.vars[i]
		if err := out.AddVar(v.Name, v.Low, v.High, v.Points); err != nil {
			return Domain{}, err
		}
	}
	return out, nil
}

// SubString is Sub over a comma-separated list of names, e.g. "course,speed".
func (d Domain) SubString(names string) (Domain, error) {
	return d.Sub(strings.Split(names, ",")...)
}

// Union returns a's variables followed by b's variables not present in a.
func Union(a, b Domain) Domain {
	out := Domain{vars: make([]Var, 0, len(a.vars)+len(b.vars))}
	out.vars = append(out.vars, a.vars...)
	for _, v := range b.vars {
		if !a.Has(v.Name) {
			out.vars = append(out.vars, v)
		}
	}
	return out
}

// Intersects reports whether a and b share at least one variable name.
func Intersects(a, b Domain) bool {
	for _, v := range a.vars {
		if b.Has(v.Name) {
			return true
		}
	}
	return false
}

// Equal reports whether a and b hold identical variables in the same order.
func Equal(a, b Domain) bool {
	if len(a.vars) != len(b.vars) {
		return false
	}
	for i := range a.vars {
		if a.vars[i] != b.vars[i] {
			return false
		}
	}
	return true
}
