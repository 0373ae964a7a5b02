// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// stages.go - the four piece-generation stages run by Create.
//
// Contract:
//   • Every stage takes a partition and leaves a partition.
//   • A queue entry's key is the index of its piece in the current map.
//     Stages that reorder pieces remap the queue.

package reflector

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/core"
)

// stageUniform tiles the domain with pieces shaped like unif. The gel box of
// the grid index is gel when given, else unif.
func (r *Reflector) stageUniform(unif, gel *core.Box, q *PQueue) (*core.PDMap, error) {
	universe := core.UniverseBox(r.dom, r.cfg.degree)
	boxes := MakeUniformDistro(universe, unif, r.cfg.degree)
	if len(boxes) == 0 {
		return nil, ErrNoPieces
	}
	pm := core.NewPDMap(r.dom, r.cfg.degree, boxes...)
	if gel.Null() {
		gel = unif
	}
	if err := pm.SetGelBox(gel); err != nil {
		r.warn(fmt.Sprintf("uniform_grid ignored: %v", err))
	}
	for i, b := range boxes {
		if q.Null() {
			r.reg.SetWeight(b, false)
			continue
		}
		q.Insert(i, r.reg.SetWeight(b, true))
	}
	pm.UpdateGrid()
	return pm, nil
}

// checkRegion verifies that region lies in the domain and that piece fits
// inside it on every dimension.
func (r *Reflector) checkRegion(region, piece *core.Box) error {
	dim := r.dom.Size()
	if region.Dim() != dim || piece.Dim() != dim {
		return fmt.Errorf("dimension %d/%d of %d: %w", region.Dim(), piece.Dim(), dim, ErrRegion)
	}
	for d := 0; d < dim; d++ {
		if region.Lo(d) < 0 || region.Hi(d) >= r.dom.Points(d) || region.Lo(d) > region.Hi(d) {
			return fmt.Errorf("region %s: %w", region, ErrRegion)
		}
		if piece.Hi(d)-piece.Lo(d) > region.Hi(d)-region.Lo(d) {
			return fmt.Errorf("piece %s larger than region %s: %w", piece, region, ErrRegion)
		}
	}
	return nil
}

// stageDirected rebuilds pm with region tiled by pieces shaped like piece.
// Pieces clear of the region keep their order at the front of the new map;
// pieces crossing it are replaced by their remnants outside it.
// Complexity: O(pieces * dim^2) plus one fit per new piece.
func (r *Reflector) stageDirected(pm *core.PDMap, region, piece *core.Box, q *PQueue) (*core.PDMap, error) {
	if err := r.checkRegion(region, piece); err != nil {
		return nil, err
	}

	var keep, fresh []*core.Box
	idxMap := make([]int, pm.Size())
	for i, b := range pm.Boxes() {
		if region.Intersects(b) {
			idxMap[i] = -1
			fresh = append(fresh, core.SubtractBox(b, region)...)
			continue
		}
		idxMap[i] = len(keep)
		keep = append(keep, b)
	}
	q.Remap(idxMap)
	fresh = append(fresh, MakeUniformDistro(region, piece, r.cfg.degree)...)

	out := core.NewPDMap(r.dom, r.cfg.degree, keep...)
	if gel := pm.GelBox(); gel != nil {
		_ = out.SetGelBox(gel)
	}
	for _, b := range fresh {
		if q.Null() {
			r.reg.SetWeight(b, false)
		} else {
			q.Insert(out.Size(), r.reg.SetWeight(b, true))
		}
		out.Append(b)
	}
	return out, nil
}

// stageSmart splits the worst-fitting piece on its longest dimension until
// amount splits are made, the queue empties, or the worst error is no
// longer above thresh. Split pieces that are not single points go back in
// the queue.
// Complexity: O(amount * (log q + fit)).
func (r *Reflector) stageSmart(pm *core.PDMap, q *PQueue, amount int, thresh float64) {
	if q.Null() || amount < 1 {
		return
	}
	for amount > 0 {
		ix, worst, ok := q.PopBest()
		if !ok || worst <= thresh {
			return
		}
		cut := pm.Box(ix)
		nb := core.CutBox(cut, core.LongestDim(cut))
		if nb == nil {
			continue
		}
		err1 := r.reg.SetWeight(cut, true)
		err2 := r.reg.SetWeight(nb, true)
		newIx := pm.Size()
		pm.Append(nb)
		if !cut.IsPtBox() {
			q.Insert(ix, err1)
		}
		if !nb.IsPtBox() {
			q.Insert(newIx, err2)
		}
		amount--
	}
}

// stageAutoPeak repeatedly splits the piece with the highest maximum until
// that piece is a single point, isolating the peak of the function. Linear
// pieces are split unevenly toward their rising side. maxMore < 0 means no
// limit on the pieces added.
// Complexity: O(added * (log q + fit)).
func (r *Reflector) stageAutoPeak(pm *core.PDMap, maxMore int) int {
	q := NewPQueue(DefaultQueueLevels)
	for i, b := range pm.Boxes() {
		q.Insert(i, b.MaxVal())
	}
	added := 0
	for maxMore < 0 || added < maxMore {
		ix, _, ok := q.PopBest()
		if !ok {
			break
		}
		cut := pm.Box(ix)
		if cut.IsPtBox() {
			break
		}
		d := core.LongestDim(cut)
		var nb *core.Box
		if r.cfg.degree == 1 {
			nb = core.QuarterBox(cut, d, cut.Wt(d) >= 1)
		} else {
			nb = core.CutBox(cut, d)
		}
		if nb == nil {
			break
		}
		r.reg.SetWeight(cut, false)
		r.reg.SetWeight(nb, false)
		q.Insert(ix, cut.MaxVal())
		q.Insert(pm.Size(), nb.MaxVal())
		pm.Append(nb)
		added++
	}
	return added
}
