// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// box.go - the Box type: bounds, bound flags and interior weights.
//
// Contract:
//   • pts/bds hold two entries per dimension: index 2d is the low edge,
//     index 2d+1 the high edge.
//   • Degree 0 boxes have one weight; degree 1 boxes have dim+1 weights, the
//     last one being the intercept.
//   • lo <= hi on every dimension is the caller's responsibility; the
//     splitting utilities in box_ops.go maintain it.

package core

import (
	"math"
	"strconv"
	"strings"
)

// Box is an axis-aligned region of the integer grid with an interior
// function of degree 0 (constant) or 1 (linear).
type Box struct {
	dim    int
	degree int
	pts    []int
	bds    []bool
	wts    []float64
}

// NewBox returns a box of the given dimension and degree with all bounds at
// zero, all edges inclusive and all weights zero. Degrees outside {0,1} are
// treated as 1. A dim <= 0 yields the null box.
func NewBox(dim, degree int) *Box {
	if dim < 0 {
		dim = 0
	}
	if degree != 0 {
		degree = 1
	}
	b := &Box{
		dim:    dim,
		degree: degree,
		pts:    make([]int, 2*dim),
		bds:    make([]bool, 2*dim),
		wts:    make([]float64, degree*dim+1),
	}
	for i := range b.bds {
		b.bds[i] = true
	}
	return b
}

// NewPointBox returns an inclusive degree-0 point box at the given indices.
func NewPointBox(idx ...int) *Box {
	b := NewBox(len(idx), 0)
	for d, v := range idx {
		b.SetPts(d, v, v)
	}
	return b
}

// Dim returns the number of dimensions.
func (b *Box) Dim() int { return b.dim }

// Degree returns the degree of the interior function (0 or 1).
func (b *Box) Degree() int { return b.degree }

// Null reports whether b is the null box (nil or zero dimensions).
func (b *Box) Null() bool { return b == nil || b.dim == 0 }

// Lo returns the low bound of dimension d.
func (b *Box) Lo(d int) int { return b.pts[2*d] }

// Hi returns the high bound of dimension d.
func (b *Box) Hi(d int) int { return b.pts[2*d+1] }

// Pt returns the low (e == 0) or high (e == 1) bound of dimension d.
func (b *Box) Pt(d, e int) int { return b.pts[2*d+e] }

// SetPt sets the low (e == 0) or high (e == 1) bound of dimension d.
func (b *Box) SetPt(d, e, v int) { b.pts[2*d+e] = v }

// SetPts sets both bounds of dimension d.
func (b *Box) SetPts(d, lo, hi int) {
	b.pts[2*d] = lo
	b.pts[2*d+1] = hi
}

// Len returns the number of grid points spanned on dimension d.
func (b *Box) Len(d int) int { return b.pts[2*d+1] - b.pts[2*d] + 1 }

// Bd reports whether the low (e == 0) or high (e == 1) edge of dimension d is inclusive.
func (b *Box) Bd(d, e int) bool { return b.bds[2*d+e] }

// SetBd sets the inclusive flag of one edge.
func (b *Box) SetBd(d, e int, inclusive bool) { b.bds[2*d+e] = inclusive }

// SetBds sets both inclusive flags of dimension d.
func (b *Box) SetBds(d int, lo, hi bool) {
	b.bds[2*d] = lo
	b.bds[2*d+1] = hi
}

// Wtc returns the number of interior weights.
func (b *Box) Wtc() int { return len(b.wts) }

// Wt returns weight i.
func (b *Box) Wt(i int) float64 { return b.wts[i] }

// SetWt sets weight i.
func (b *Box) SetWt(i int, v float64) { b.wts[i] = v }

// Weights returns a copy of the weight vector.
func (b *Box) Weights() []float64 {
	out := make([]float64, len(b.wts))
	copy(out, b.wts)
	return out
}

// Intercept returns the constant term of the interior function.
func (b *Box) Intercept() float64 { return b.wts[len(b.wts)-1] }

// SetConstant zeroes every slope and sets the intercept to v.
func (b *Box) SetConstant(v float64) {
	for i := range b.wts {
		b.wts[i] = 0
	}
	b.wts[len(b.wts)-1] = v
}

// ScaleWT multiplies every weight by f.
func (b *Box) ScaleWT(f float64) {
	for i := range b.wts {
		b.wts[i] *= f
	}
}

// MoveIntercept adds v to the intercept.
func (b *Box) MoveIntercept(v float64) { b.wts[len(b.wts)-1] += v }

// MaxVal returns the largest value of the interior function over the box.
// For degree 1 each slope contributes at the bound favoring its sign.
func (b *Box) MaxVal() float64 {
	if b.degree == 0 {
		return b.wts[0]
	}
	val := b.wts[b.dim]
	for d := 0; d < b.dim; d++ {
		if b.wts[d] > 0 {
			val += b.wts[d] * float64(b.Hi(d))
		} else {
			val += b.wts[d] * float64(b.Lo(d))
		}
	}
	return val
}

// MinVal returns the smallest value of the interior function over the box.
func (b *Box) MinVal() float64 {
	if b.degree == 0 {
		return b.wts[0]
	}
	val := b.wts[b.dim]
	for d := 0; d < b.dim; d++ {
		if b.wts[d] > 0 {
			val += b.wts[d] * float64(b.Lo(d))
		} else {
			val += b.wts[d] * float64(b.Hi(d))
		}
	}
	return val
}

// PtVal evaluates the interior function at the low corner of the point box p.
func (b *Box) PtVal(p *Box) float64 {
	if b.degree == 0 {
		return b.wts[0]
	}
	val := b.wts[b.dim]
	for d := 0; d < b.dim && d < p.dim; d++ {
		val += b.wts[d] * float64(p.Lo(d))
	}
	return val
}

// ValAt evaluates the interior function at grid indices idx.
func (b *Box) ValAt(idx []int) float64 {
	if b.degree == 0 {
		return b.wts[0]
	}
	val := b.wts[b.dim]
	for d := 0; d < b.dim && d < len(idx); d++ {
		val += b.wts[d] * float64(idx[d])
	}
	return val
}

// MaxPt returns an inclusive point box at which the interior function is
// maximal. Degree 0 boxes report their midpoint.
func (b *Box) MaxPt() *Box {
	p := NewBox(b.dim, 0)
	for d := 0; d < b.dim; d++ {
		var v int
		switch {
		case b.degree == 0:
			v = (b.Hi(d)-b.Lo(d))/2 + b.Lo(d)
		case b.wts[d] < 0:
			v = b.Lo(d)
		default:
			v = b.Hi(d)
		}
		p.SetPts(d, v, v)
	}
	return p
}

// Intersects reports whether b and g share at least one grid point,
// honoring exclusive edges where the boxes touch.
func (b *Box) Intersects(g *Box) bool {
	if b.dim != g.dim {
		return false
	}
	for d := 0; d < b.dim; d++ {
		if b.Lo(d) > g.Hi(d) || b.Hi(d) < g.Lo(d) {
			return false
		}
	}
	for d := 0; d < b.dim; d++ {
		if b.Lo(d) == g.Hi(d) && (!b.Bd(d, 0) || !g.Bd(d, 1)) {
			return false
		}
		if b.Hi(d) == g.Lo(d) && (!b.Bd(d, 1) || !g.Bd(d, 0)) {
			return false
		}
	}
	return true
}

// Intersection returns the region common to b and g with summed weights.
// Where both boxes share an edge value the result edge is inclusive only if
// both edges are. Returns (nil, false) when the boxes do not intersect or
// differ in degree.
func (b *Box) Intersection(g *Box) (*Box, bool) {
	if b.degree != g.degree || !b.Intersects(g) {
		return nil, false
	}
	r := NewBox(b.dim, b.degree)
	for d := 0; d < b.dim; d++ {
		switch {
		case b.Lo(d) > g.Lo(d):
			r.pts[2*d], r.bds[2*d] = b.Lo(d), b.Bd(d, 0)
		case b.Lo(d) < g.Lo(d):
			r.pts[2*d], r.bds[2*d] = g.Lo(d), g.Bd(d, 0)
		default:
			r.pts[2*d], r.bds[2*d] = g.Lo(d), b.Bd(d, 0) && g.Bd(d, 0)
		}
		switch {
		case b.Hi(d) < g.Hi(d):
			r.pts[2*d+1], r.bds[2*d+1] = b.Hi(d), b.Bd(d, 1)
		case b.Hi(d) > g.Hi(d):
			r.pts[2*d+1], r.bds[2*d+1] = g.Hi(d), g.Bd(d, 1)
		default:
			r.pts[2*d+1], r.bds[2*d+1] = g.Hi(d), b.Bd(d, 1) && g.Bd(d, 1)
		}
	}
	for i := range r.wts {
		r.wts[i] = b.wts[i] + g.wts[i]
	}
	return r, true
}

// ContainedWithin reports whether every grid point of b lies inside g.
func (b *Box) ContainedWithin(g *Box) bool {
	if b.dim != g.dim {
		return false
	}
	for d := 0; d < b.dim; d++ {
		if b.Lo(d) < g.Lo(d) || b.Hi(d) > g.Hi(d) {
			return false
		}
		if b.Lo(d) == g.Lo(d) && !g.Bd(d, 0) && b.Bd(d, 0) {
			return false
		}
		if b.Hi(d) == g.Hi(d) && !g.Bd(d, 1) && b.Bd(d, 1) {
			return false
		}
	}
	return true
}

// IsPtBox reports whether b denotes a single grid point: per dimension
// either [X,X] with both edges inclusive or (X-1,X) with both exclusive.
// The null box is not a point box.
func (b *Box) IsPtBox() bool {
	if b.Null() {
		return false
	}
	for d := 0; d < b.dim; d++ {
		lo, hi := b.Lo(d), b.Hi(d)
		if lo != hi {
			if hi-lo != 1 || b.Bd(d, 0) || b.Bd(d, 1) {
				return false
			}
			continue
		}
		if !b.Bd(d, 0) || !b.Bd(d, 1) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b.
func (b *Box) Clone() *Box {
	c := &Box{
		dim:    b.dim,
		degree: b.degree,
		pts:    make([]int, len(b.pts)),
		bds:    make([]bool, len(b.bds)),
		wts:    make([]float64, len(b.wts)),
	}
	copy(c.pts, b.pts)
	copy(c.bds, b.bds)
	copy(c.wts, b.wts)
	return c
}

// CopyBounds returns a copy of b's region with a fresh weight vector of the given degree.
func (b *Box) CopyBounds(degree int) *Box {
	c := NewBox(b.dim, degree)
	copy(c.pts, b.pts)
	copy(c.bds, b.bds)
	return c
}

// Equal reports whether b and g have identical bounds, flags and weights.
func (b *Box) Equal(g *Box) bool {
	if b.dim != g.dim || b.degree != g.degree {
		return false
	}
	for i := range b.pts {
		if b.pts[i] != g.pts[i] || b.bds[i] != g.bds[i] {
			return false
		}
	}
	for i := range b.wts {
		if b.wts[i] != g.wts[i] {
			return false
		}
	}
	return true
}

// TransDomain grows b by newEdges dimensions and moves old dimension i to
// edgeMap[i]. New dimensions start at [0,0] inclusive with zero slope; the
// caller widens them afterwards. edgeMap must have b.Dim() entries.
// Complexity: O(dim + newEdges).
func (b *Box) TransDomain(newEdges int, edgeMap []int) {
	if newEdges < 0 || len(edgeMap) != b.dim {
		return
	}
	newDim := b.dim + newEdges
	pts := make([]int, 2*newDim)
	bds := make([]bool, 2*newDim)
	for i := range bds {
		bds[i] = true
	}
	for i := 0; i < b.dim; i++ {
		pts[2*edgeMap[i]] = b.pts[2*i]
		pts[2*edgeMap[i]+1] = b.pts[2*i+1]
		bds[2*edgeMap[i]] = b.bds[2*i]
		bds[2*edgeMap[i]+1] = b.bds[2*i+1]
	}
	if b.degree != 0 {
		wts := make([]float64, newDim+1)
		for i := 0; i < b.dim; i++ {
			wts[edgeMap[i]] = b.wts[i]
		}
		wts[newDim] = b.wts[b.dim]
		b.wts = wts
	}
	b.dim, b.pts, b.bds = newDim, pts, bds
}

// HasNaN reports whether any weight is NaN.
func (b *Box) HasNaN() bool {
	for _, w := range b.wts {
		if math.IsNaN(w) {
			return true
		}
	}
	return false
}

// String renders the box as "[0,3](2,5] w=(1,0,-2)"; the null box prints "null_box".
func (b *Box) String() string {
	if b.Null() {
		return "null_box"
	}
	var sb strings.Builder
	for d := 0; d < b.dim; d++ {
		if b.Bd(d, 0) {
			sb.WriteByte('[')
		} else {
			sb.WriteByte('(')
		}
		sb.WriteString(strconv.Itoa(b.Lo(d)))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(b.Hi(d)))
		if b.Bd(d, 1) {
			sb.WriteByte(']')
		} else {
			sb.WriteByte(')')
		}
	}
	sb.WriteString(" w=(")
	for i, w := range b.wts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
	}
	sb.WriteByte(')')
	return sb.String()
}
