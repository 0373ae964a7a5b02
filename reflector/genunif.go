// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// genunif.go - uniform piece sizing and tiling.

package reflector

import (
	"math"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// GenUnifBox returns the box [0, edge-1] per dimension such that tiling dom
// with it yields at most maxAmount pieces. Dimensions are split greedily,
// always the one with the most points per piece (first wins ties), which
// keeps the aspect ratio low until a dimension can no longer grow.
// The null box is returned for maxAmount <= 0 or an empty domain.
// Complexity: O(dim * splits).
func GenUnifBox(dom domain.Domain, maxAmount int) *core.Box {
	dim := dom.Size()
	if maxAmount <= 0 || dim == 0 {
		return core.NewBox(0, 0)
	}
	pts := make([]float64, dim)
	pcs := make([]float64, dim)
	maxed := make([]bool, dim)
	for d := range pts {
		pts[d] = float64(dom.Points(d))
		pcs[d] = 1
		maxed[d] = pts[d] <= 1
	}

	for {
		aug, best := -1, 0.0
		for d := 0; d < dim; d++ {
			if !maxed[d] && pts[d]/pcs[d] > best {
				aug, best = d, pts[d]/pcs[d]
			}
		}
		if aug < 0 {
			break
		}
		pcs[aug]++
		total := 1.0
		for _, p := range pcs {
			total *= p
		}
		if total > float64(maxAmount) {
			pcs[aug]--
			maxed[aug] = true
		}
		if pcs[aug] >= pts[aug] {
			maxed[aug] = true
		}
	}

	b := core.NewBox(dim, 0)
	for d := 0; d < dim; d++ {
		b.SetPts(d, 0, int(math.Ceil(pts[d]/pcs[d]))-1)
	}
	return b
}

// MakeUniformDistro tiles outer with boxes of unif's edge lengths, clipping
// the last box of each row at outer's high edge. The first dimension
// advances fastest. Boxes carry the given degree with zero weights.
// Complexity: O(pieces * dim).
func MakeUniformDistro(outer, unif *core.Box, degree int) []*core.Box {
	dim := outer.Dim()
	if outer.Null() || unif.Null() || unif.Dim() != dim {
		return nil
	}
	edge := make([]int, dim)
	lo := make([]int, dim)
	for d := 0; d < dim; d++ {
		edge[d] = unif.Hi(d) - unif.Lo(d) + 1
		if edge[d] < 1 || outer.Lo(d) > outer.Hi(d) {
			return nil
		}
		lo[d] = outer.Lo(d)
	}

	var out []*core.Box
	for {
		b := core.NewBox(dim, degree)
		for d := 0; d < dim; d++ {
			b.SetPts(d, lo[d], min(lo[d]+edge[d]-1, outer.Hi(d)))
		}
		out = append(out, b)

		d := 0
		for ; d < dim; d++ {
			lo[d] += edge[d]
			if lo[d] <= outer.Hi(d) {
				break
			}
			lo[d] = outer.Lo(d)
		}
		if d == dim {
			return out
		}
	}
}
