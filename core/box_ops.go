// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// box_ops.go - region utilities used by the refinement stages.
//
// Contract:
//   • Splitting helpers mutate the given box in place and return the piece
//     split off; they return nil when the requested edge cannot be split.
//   • Weights are copied verbatim; callers re-fit them afterwards.
//   • Edges created by a split are inclusive on both sides.

package core

import (
	"math/rand"

	"github.com/katalvlaran/ivpbuild/domain"
)

// UniverseBox returns a box covering every grid point of dom: [0, points-1]
// on each dimension. An empty domain yields the null box.
func UniverseBox(dom domain.Domain, degree int) *Box {
	b := NewBox(dom.Size(), degree)
	for d := 0; d < dom.Size(); d++ {
		b.SetPts(d, 0, dom.Points(d)-1)
	}
	return b
}

// CutBox halves b on dimension d. b keeps the lower half
// [lo, lo+(len+1)/2-1]; the returned box holds the rest.
// Returns nil when the edge spans a single point.
// Complexity: O(dim).
func CutBox(b *Box, d int) *Box {
	n := b.Len(d)
	if n <= 1 {
		return nil
	}
	nb := b.Clone()
	newLo := b.Lo(d) + (n+1)/2
	b.SetPt(d, 1, newLo-1)
	nb.SetPt(d, 0, newLo)
	b.SetBd(d, 1, true)
	nb.SetBd(d, 0, true)
	return nb
}

// QuarterBox splits b unevenly on dimension d. With splitHigh the lower
// piece (kept in b) holds three quarters of the edge, otherwise one quarter,
// and at least one point. An edge of two points splits into two singletons.
// Returns nil when the edge spans a single point.
//
//	len  splitHigh  lower   upper        len  !splitHigh  lower  upper
//	 4      yes     5-7     8-8           4      no       5-5    6-8
//	 6      yes     5-8     9-10          8      no       5-6    7-12
func QuarterBox(b *Box, d int, splitHigh bool) *Box {
	n := b.Len(d)
	if n <= 1 {
		return nil
	}
	nb := b.Clone()
	if n == 2 {
		b.SetPt(d, 1, b.Lo(d))
		nb.SetPt(d, 0, nb.Hi(d))
	} else {
		frac := 0.25
		if splitHigh {
			frac = 0.75
		}
		delta := int(float64(n) * frac)
		if delta == 0 {
			delta = 1
		}
		b.SetPt(d, 1, b.Lo(d)+delta-1)
		nb.SetPt(d, 0, b.Hi(d)+1)
	}
	b.SetBd(d, 1, true)
	nb.SetBd(d, 0, true)
	return nb
}

// SubtractBox returns boxes covering exactly the points of orig that are not
// in sub. Mismatched dimensions or orig fully inside sub yield an empty
// result; disjoint boxes yield a copy of orig. Otherwise at most 2*dim
// remnants are peeled off, one slab per uncovered side.
// Complexity: O(dim^2).
func SubtractBox(orig, sub *Box) []*Box {
	if orig.Dim() != sub.Dim() || orig.ContainedWithin(sub) {
		return nil
	}
	if !orig.Intersects(sub) {
		return []*Box{orig.Clone()}
	}
	src := orig.Clone()
	var out []*Box
	for d := 0; d < src.Dim(); d++ {
		if sub.Hi(d) < src.Hi(d) {
			nb := src.Clone()
			nb.SetPt(d, 0, sub.Hi(d)+1)
			src.SetPt(d, 1, sub.Hi(d))
			out = append(out, nb)
		}
		if sub.Lo(d) > src.Lo(d) {
			nb := src.Clone()
			nb.SetPt(d, 1, sub.Lo(d)-1)
			src.SetPt(d, 0, sub.Lo(d))
			out = append(out, nb)
		}
	}
	return out
}

// LongestDim returns the dimension with the most grid points (first wins ties).
func LongestDim(b *Box) int {
	best, bestLen := 0, -1
	for d := 0; d < b.Dim(); d++ {
		if l := b.Len(d); l > bestLen {
			best, bestLen = d, l
		}
	}
	return best
}

// RandPointBox returns a uniformly random point box of dom drawn from rng.
func RandPointBox(dom domain.Domain, rng *rand.Rand) *Box {
	b := NewBox(dom.Size(), 0)
	for d := 0; d < dom.Size(); d++ {
		v := rng.Intn(dom.Points(d))
		b.SetPts(d, v, v)
	}
	return b
}
