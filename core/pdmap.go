// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// pdmap.go - the piece map: an ordered set of boxes partitioning a domain.
//
// Contract:
//   • Boxes share the map's dimension and degree.
//   • Boxes do not overlap and cover every grid point (CheckPartition
//     verifies this exhaustively).
//   • The grid index is a cache over box positions; any structural change
//     (Append, RemoveNil, TransDomain) drops it.

package core

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivpbuild/domain"
)

// maxDefaultGels caps the number of grid elements chosen by DefaultGelBox.
const maxDefaultGels = 40000

// PDMap is a piecewise-defined map over a Domain.
type PDMap struct {
	dom    domain.Domain
	degree int
	boxes  []*Box
	gelbox *Box
	grid   *Grid
}

// NewPDMap returns a piece map over dom holding the given boxes.
// Degrees outside {0,1} are treated as 1.
func NewPDMap(dom domain.Domain, degree int, boxes ...*Box) *PDMap {
	if degree != 0 {
		degree = 1
	}
	pm := &PDMap{dom: dom, degree: degree}
	pm.boxes = append(pm.boxes, boxes...)
	return pm
}

// Size returns the number of pieces.
func (pm *PDMap) Size() int { return len(pm.boxes) }

// Box returns piece i.
func (pm *PDMap) Box(i int) *Box { return pm.boxes[i] }

// SetBox replaces piece i. The grid index is dropped.
func (pm *PDMap) SetBox(i int, b *Box) {
	pm.boxes[i] = b
	pm.grid = nil
}

// Boxes returns the piece slice. The slice is shared; do not retain it
// across structural changes.
func (pm *PDMap) Boxes() []*Box { return pm.boxes }

// Append adds pieces to the map and drops the grid index.
func (pm *PDMap) Append(boxes ...*Box) {
	pm.boxes = append(pm.boxes, boxes...)
	pm.grid = nil
}

// Domain returns the map's domain.
func (pm *PDMap) Domain() domain.Domain { return pm.dom }

// Degree returns the degree of every piece.
func (pm *PDMap) Degree() int { return pm.degree }

// Dim returns the number of domain variables.
func (pm *PDMap) Dim() int { return pm.dom.Size() }

// ApplyWeight multiplies every piece by w.
func (pm *PDMap) ApplyWeight(w float64) {
	for _, b := range pm.boxes {
		b.ScaleWT(w)
	}
	if pm.grid != nil {
		pm.grid.rebuildBounds(pm.boxes)
	}
}

// ApplyScalar adds v to every piece.
func (pm *PDMap) ApplyScalar(v float64) {
	for _, b := range pm.boxes {
		b.MoveIntercept(v)
	}
	if pm.grid != nil {
		pm.grid.rebuildBounds(pm.boxes)
	}
}

// MinWT returns the smallest value reached by any piece (0 when empty).
func (pm *PDMap) MinWT() float64 {
	if len(pm.boxes) == 0 {
		return 0
	}
	low := pm.boxes[0].MinVal()
	for _, b := range pm.boxes[1:] {
		low = math.Min(low, b.MinVal())
	}
	return low
}

// MaxWT returns the largest value reached by any piece (0 when empty).
func (pm *PDMap) MaxWT() float64 {
	if len(pm.boxes) == 0 {
		return 0
	}
	high := pm.boxes[0].MaxVal()
	for _, b := range pm.boxes[1:] {
		high = math.Max(high, b.MaxVal())
	}
	return high
}

// Normalize linearly maps the value range [MinWT, MaxWT] onto
// [base, base+rng]. Maps with a flat (or empty) value range, and calls with
// rng < 0, are left untouched.
// Steps:
//  1. shift so the minimum sits at 0;
//  2. scale by rng / (max-min);
//  3. shift by base.
//
// Complexity: O(pieces*dim).
func (pm *PDMap) Normalize(base, rng float64) {
	if len(pm.boxes) == 0 || rng < 0 {
		return
	}
	low, high := pm.MinWT(), pm.MaxWT()
	span := high - low
	if span <= 0 {
		return
	}
	pm.ApplyScalar(-low)
	pm.ApplyWeight(rng / span)
	pm.ApplyScalar(base)
}

// EvalPoint returns the value of the piece containing the point box pt and
// whether such a piece exists. Non-point queries evaluate to (0, false).
func (pm *PDMap) EvalPoint(pt *Box) (float64, bool) {
	if len(pm.boxes) == 0 || !pt.IsPtBox() {
		return 0, false
	}
	if pm.grid != nil {
		for _, i := range pm.grid.candidates(pt) {
			if pt.Intersects(pm.boxes[i]) {
				return pm.boxes[i].PtVal(pt), true
			}
		}
		return 0, false
	}
	for _, b := range pm.boxes {
		if pt.Intersects(b) {
			return b.PtVal(pt), true
		}
	}
	return 0, false
}

// Eval evaluates the map at grid indices idx (one per dimension).
func (pm *PDMap) Eval(idx ...int) (float64, bool) {
	if len(idx) != pm.Dim() {
		return 0, false
	}
	return pm.EvalPoint(NewPointBox(idx...))
}

// GelBox returns the grid element box (nil when unset).
func (pm *PDMap) GelBox() *Box { return pm.gelbox }

// SetGelBox sets the grid element box: one dimension per domain variable with
// 0 <= lo <= hi < points. Invalid boxes are rejected with ErrDimMismatch or
// ErrBoxRange.
func (pm *PDMap) SetGelBox(b *Box) error {
	if b.Null() || b.Dim() != pm.Dim() {
		return fmt.Errorf("SetGelBox: %w", ErrDimMismatch)
	}
	for d := 0; d < b.Dim(); d++ {
		if b.Lo(d) > b.Hi(d) || b.Lo(d) < 0 || b.Hi(d) > pm.dom.Points(d)-1 {
			return fmt.Errorf("SetGelBox: dim %d: %w", d, ErrBoxRange)
		}
	}
	pm.gelbox = b.CopyBounds(0)
	return nil
}

// DefaultGelBox picks a grid element aiming at roughly one element per four
// pieces, at least 2^dim and at most maxDefaultGels elements.
func (pm *PDMap) DefaultGelBox() *Box {
	dim := pm.Dim()
	if dim < 1 {
		return NewBox(0, 0)
	}
	maxGels := len(pm.boxes) / 4
	if floor := 1 << uint(dim); maxGels < floor {
		maxGels = floor
	}
	if maxGels > maxDefaultGels {
		maxGels = maxDefaultGels
	}
	perEdge := 1
	for gels := 1.0; gels <= float64(maxGels); {
		perEdge++
		gels = math.Pow(float64(perEdge), float64(dim))
	}
	gel := NewBox(dim, 0)
	for d := 0; d < dim; d++ {
		pts := pm.dom.Points(d)
		size := pts / perEdge
		if pts%perEdge != 0 {
			size++
		}
		if size < 1 {
			size = 1
		}
		gel.SetPts(d, 0, size-1)
	}
	return gel
}

// UpdateGrid (re)builds the grid index from the gel box, choosing a default
// gel box first when none is set.
// Complexity: O(pieces * cells touched per piece).
func (pm *PDMap) UpdateGrid() {
	if pm.Dim() == 0 {
		return
	}
	if pm.gelbox == nil {
		pm.gelbox = pm.DefaultGelBox()
	}
	g := newGrid(pm.dom, pm.gelbox)
	for i, b := range pm.boxes {
		g.add(i, b)
	}
	pm.grid = g
}

// Grid returns the grid index, or nil when not built.
func (pm *PDMap) Grid() *Grid { return pm.grid }

// TransDomain re-expresses the map over the larger domain dom. placement[i]
// is the index in dom of the map's variable i. Dimensions of dom not named
// by placement span their full range in every piece and in the gel box.
// Complexity: O(pieces*newDim).
func (pm *PDMap) TransDomain(dom domain.Domain, placement []int) error {
	oldDim, newDim := pm.Dim(), dom.Size()
	if len(placement) != oldDim || newDim < oldDim {
		return fmt.Errorf("TransDomain: %w", ErrDimMismatch)
	}
	placed := make([]bool, newDim)
	for _, p := range placement {
		if p < 0 || p >= newDim || placed[p] {
			return fmt.Errorf("TransDomain: placement %v: %w", placement, ErrBadPlacement)
		}
		placed[p] = true
	}
	extra := newDim - oldDim
	for _, b := range pm.boxes {
		b.TransDomain(extra, placement)
	}
	if pm.gelbox != nil {
		pm.gelbox.TransDomain(extra, placement)
	}
	for d := 0; d < newDim; d++ {
		if placed[d] {
			continue
		}
		high := dom.Points(d) - 1
		for _, b := range pm.boxes {
			b.SetPts(d, 0, high)
			b.SetBds(d, true, true)
		}
		if pm.gelbox != nil {
			pm.gelbox.SetPts(d, 0, high)
		}
	}
	pm.dom = dom
	pm.grid = nil
	return nil
}

// RemoveNil drops nil and null pieces, keeping order.
func (pm *PDMap) RemoveNil() {
	kept := pm.boxes[:0]
	for _, b := range pm.boxes {
		if !b.Null() {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(pm.boxes); i++ {
		pm.boxes[i] = nil
	}
	pm.boxes = kept
	pm.grid = nil
}

// FreeOfNaN reports whether no piece carries a NaN weight.
func (pm *PDMap) FreeOfNaN() bool {
	for _, b := range pm.boxes {
		if b.HasNaN() {
			return false
		}
	}
	return true
}

// CheckPartition verifies that every grid point of the domain is covered by
// exactly one piece. Intended for tests and diagnostics.
// Complexity: O(totalPoints*pieces) worst case.
func (pm *PDMap) CheckPartition() error {
	dim := pm.Dim()
	if dim == 0 {
		return nil
	}
	idx := make([]int, dim)
	pt := NewBox(dim, 0)
	for {
		for d := 0; d < dim; d++ {
			pt.SetPts(d, idx[d], idx[d])
		}
		hits := 0
		for _, b := range pm.boxes {
			if pt.Intersects(b) {
				hits++
			}
		}
		if hits != 1 {
			return fmt.Errorf("CheckPartition: point %v covered %d times: %w", idx, hits, ErrNotPartition)
		}
		d := 0
		for ; d < dim; d++ {
			idx[d]++
			if idx[d] < pm.dom.Points(d) {
				break
			}
			idx[d] = 0
		}
		if d == dim {
			return nil
		}
	}
}

// Clone returns a deep copy of the map without its grid index.
func (pm *PDMap) Clone() *PDMap {
	c := &PDMap{dom: pm.dom, degree: pm.degree, boxes: make([]*Box, len(pm.boxes))}
	for i, b := range pm.boxes {
		c.boxes[i] = b.Clone()
	}
	if pm.gelbox != nil {
		c.gelbox = pm.gelbox.Clone()
	}
	return c
}
