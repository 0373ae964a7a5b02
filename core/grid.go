// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// grid.go - bucket index over the pieces of a PDMap.
//
// Design:
//   • The domain grid is divided into grid elements (gels) of the gel box
//     size; each gel lists the pieces intersecting it.
//   • Each gel also keeps an upper bound: the largest MaxVal of its pieces.
//   • Cells are addressed row-major with dimension 0 varying fastest.

package core

import "github.com/katalvlaran/ivpbuild/domain"

// Grid buckets piece indices by grid element.
type Grid struct {
	dim        int
	ptsPerGel  []int
	gelsPerDim []int
	dimWt      []int
	cells      [][]int
	upper      []float64
	fresh      []bool
}

// newGrid sizes the grid from the gel box: each gel spans gel.Hi(d)+1
// points, clamped to [2, points] per dimension.
func newGrid(dom domain.Domain, gel *Box) *Grid {
	dim := dom.Size()
	g := &Grid{
		dim:        dim,
		ptsPerGel:  make([]int, dim),
		gelsPerDim: make([]int, dim),
		dimWt:      make([]int, dim),
	}
	total := 1
	for d := 0; d < dim; d++ {
		per := gel.Hi(d) + 1
		if per < 2 {
			per = 2
		}
		if pts := dom.Points(d); per > pts {
			per = pts
		}
		g.ptsPerGel[d] = per
		g.gelsPerDim[d] = (dom.Points(d) + per - 1) / per
		g.dimWt[d] = total
		total *= g.gelsPerDim[d]
	}
	g.cells = make([][]int, total)
	g.upper = make([]float64, total)
	g.fresh = make([]bool, total)
	for i := range g.fresh {
		g.fresh[i] = true
	}
	return g
}

// Cells returns the number of grid elements.
func (g *Grid) Cells() int { return len(g.cells) }

// forEachCell calls fn with the address of every gel intersecting b.
func (g *Grid) forEachCell(b *Box, fn func(ix int)) {
	lo := make([]int, g.dim)
	hi := make([]int, g.dim)
	for d := 0; d < g.dim; d++ {
		lo[d] = g.clampGel(d, b.Lo(d)/g.ptsPerGel[d])
		hi[d] = g.clampGel(d, b.Hi(d)/g.ptsPerGel[d])
	}
	cur := make([]int, g.dim)
	copy(cur, lo)
	for {
		ix := 0
		for d := g.dim - 1; d >= 0; d-- {
			ix += cur[d] * g.dimWt[d]
		}
		fn(ix)
		d := 0
		for ; d < g.dim; d++ {
			cur[d]++
			if cur[d] <= hi[d] {
				break
			}
			cur[d] = lo[d]
		}
		if d == g.dim {
			return
		}
	}
}

func (g *Grid) clampGel(d, v int) int {
	if v < 0 {
		return 0
	}
	if v >= g.gelsPerDim[d] {
		return g.gelsPerDim[d] - 1
	}
	return v
}

// add registers piece i in every gel it touches and raises their bounds.
func (g *Grid) add(i int, b *Box) {
	mv := b.MaxVal()
	g.forEachCell(b, func(ix int) {
		g.cells[ix] = append(g.cells[ix], i)
		if g.fresh[ix] || mv > g.upper[ix] {
			g.upper[ix] = mv
			g.fresh[ix] = false
		}
	})
}

// rebuildBounds recomputes every gel bound after piece weights changed.
func (g *Grid) rebuildBounds(boxes []*Box) {
	for ix, members := range g.cells {
		g.fresh[ix] = true
		for _, i := range members {
			mv := boxes[i].MaxVal()
			if g.fresh[ix] || mv > g.upper[ix] {
				g.upper[ix] = mv
				g.fresh[ix] = false
			}
		}
	}
}

// candidates returns the distinct piece indices registered in the gels
// touched by b, in ascending order of first appearance.
func (g *Grid) candidates(b *Box) []int {
	var out []int
	seen := make(map[int]struct{})
	g.forEachCell(b, func(ix int) {
		for _, i := range g.cells[ix] {
			if _, ok := seen[i]; !ok {
				seen[i] = struct{}{}
				out = append(out, i)
			}
		}
	})
	return out
}

// UpperBound returns the largest piece value over the gels touched by b, and
// false when none of those gels holds a piece.
func (g *Grid) UpperBound(b *Box) (float64, bool) {
	var best float64
	found := false
	g.forEachCell(b, func(ix int) {
		if g.fresh[ix] {
			return
		}
		if !found || g.upper[ix] > best {
			best, found = g.upper[ix], true
		}
	})
	return best, found
}
