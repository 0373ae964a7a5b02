// SPDX-License-Identifier: MIT
// Package: ivpbuild/coupler
//
// coupler.go - the Coupler and its three coupling operations.
//
// Contract:
//   • Inputs are released in every case, success or failure.
//   • The result lives over domain.Union(a, b): a's variables first.
//   • Every result piece is the intersection of one piece of each input,
//     weighted by the sum of both.

package coupler

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

const (
	// DefaultNormalMin and DefaultNormalMax bound the coupled function.
	DefaultNormalMin = 0.0
	DefaultNormalMax = 100.0

	// DefaultWeight is the weight Couple gives each input.
	DefaultWeight = 50.0
)

// Coupler holds the normalization applied to weighted couplings.
type Coupler struct {
	normalize bool
	normalMin float64
	normalMax float64
}

// New returns a Coupler normalizing to [0, 100].
func New() *Coupler {
	return &Coupler{normalize: true, normalMin: DefaultNormalMin, normalMax: DefaultNormalMax}
}

// DisableNormalize leaves weighted couplings unscaled.
func (c *Coupler) DisableNormalize() { c.normalize = false }

// EnableNormalize rescales weighted couplings to [lo, hi]. Calls with
// lo >= hi are ignored.
func (c *Coupler) EnableNormalize(lo, hi float64) {
	if lo < hi {
		c.normalize, c.normalMin, c.normalMax = true, lo, hi
	}
}

// Normalizing reports the current normalization and its range.
func (c *Coupler) Normalizing() (on bool, lo, hi float64) {
	return c.normalize, c.normalMin, c.normalMax
}

// Couple couples a and b with equal weights.
func (c *Coupler) Couple(a, b *core.Function) (*core.Function, error) {
	return c.CoupleWeighted(a, b, DefaultWeight, DefaultWeight)
}

// CoupleWeighted rescales a to [0, wa] and b to [0, wb], sums them with
// CoupleRaw and rescales the result to the Coupler's range when enabled.
func (c *Coupler) CoupleWeighted(a, b *core.Function, wa, wb float64) (*core.Function, error) {
	if a.Released() || b.Released() {
		a.Release()
		b.Release()
		return nil, ErrNilFunction
	}
	if wa <= 0 || wb <= 0 {
		a.Release()
		b.Release()
		return nil, fmt.Errorf("CoupleWeighted(%v, %v): %w", wa, wb, ErrBadWeight)
	}
	a.PDMap().Normalize(0, wa)
	b.PDMap().Normalize(0, wb)

	f, err := CoupleRaw(a, b)
	if err != nil {
		return nil, err
	}
	if c.normalize {
		f.PDMap().Normalize(c.normalMin, c.normalMax)
	}
	return f, nil
}

// CoupleRaw sums a and b without rescaling.
// Complexity: O(|a| * |b| * dim).
func CoupleRaw(a, b *core.Function) (*core.Function, error) {
	defer a.Release()
	defer b.Release()
	if a.Released() || b.Released() {
		return nil, ErrNilFunction
	}
	pa, pb := a.PDMap(), b.PDMap()
	if pa.Degree() != pb.Degree() {
		return nil, fmt.Errorf("CoupleRaw(degree %d, %d): %w", pa.Degree(), pb.Degree(), ErrDegreeMismatch)
	}
	da, db := pa.Domain(), pb.Domain()
	if domain.Intersects(da, db) {
		return nil, fmt.Errorf("CoupleRaw(%s | %s): %w", da, db, ErrSharedVariables)
	}

	joint := domain.Union(da, db)
	if err := a.TransDomain(joint); err != nil {
		return nil, fmt.Errorf("CoupleRaw: %w", err)
	}
	if err := b.TransDomain(joint); err != nil {
		return nil, fmt.Errorf("CoupleRaw: %w", err)
	}

	var pieces []*core.Box
	for _, pi := range pa.Boxes() {
		for _, pj := range pb.Boxes() {
			if nb, ok := pi.Intersection(pj); ok {
				pieces = append(pieces, nb)
			}
		}
	}
	pm := core.NewPDMap(joint, pa.Degree(), pieces...)
	pm.UpdateGrid()
	return core.NewFunction(pm), nil
}
