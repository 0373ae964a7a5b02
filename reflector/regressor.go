// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// regressor.go - fits a piece's interior function from sampled points.
//
// Design:
//   • Samples are the 2^dim corners of the box plus its center when some
//     edge spans more than two points. Corners on a zero-length edge borrow
//     the value of the corner with that bit cleared instead of re-sampling.
//   • Slope on d: the average rise between corner pairs differing only in
//     bit d, divided by the edge run.
//   • Intercept: the average over samples of (value - plane); with strict
//     range it is clamped so the plane stays within [low, high] of the
//     samples at every sample point.

package reflector

import (
	"math"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// Regressor sets piece weights from an Evaluator.
type Regressor struct {
	eval   Evaluator
	dom    domain.Domain
	degree int
	strict bool

	dim     int
	corners int
	cpts    [][]int
	cvals   []float64
	center  []int
	native  []float64
}

// NewRegressor returns a regressor of degree 0 or 1 (other values mean 1).
func NewRegressor(eval Evaluator, degree int, strict bool) *Regressor {
	if degree != 0 {
		degree = 1
	}
	dom := eval.Domain()
	dim := dom.Size()
	r := &Regressor{
		eval:    eval,
		dom:     dom,
		degree:  degree,
		strict:  strict,
		dim:     dim,
		corners: 1 << uint(dim),
		center:  make([]int, dim),
		native:  make([]float64, dim),
	}
	r.cpts = make([][]int, r.corners)
	for i := range r.cpts {
		r.cpts[i] = make([]int, dim)
	}
	r.cvals = make([]float64, r.corners)
	return r
}

// Degree returns the fitted degree.
func (r *Regressor) Degree() int { return r.degree }

// SetStrictRange toggles intercept clamping.
func (r *Regressor) SetStrictRange(v bool) { r.strict = v }

// StrictRange reports whether intercepts are clamped.
func (r *Regressor) StrictRange() bool { return r.strict }

// evalIdx samples the evaluator at grid indices.
func (r *Regressor) evalIdx(idx []int) float64 {
	for d, j := range idx {
		r.native[d], _ = r.dom.Val(d, j)
	}
	return r.eval.EvalPoint(r.native)
}

func (r *Regressor) setCorners(b *core.Box) {
	emask := 0
	for d := 0; d < r.dim; d++ {
		if b.Lo(d) == b.Hi(d) {
			emask |= 1 << uint(d)
		}
	}
	for i := 0; i < r.corners; i++ {
		for d := 0; d < r.dim; d++ {
			if i&(1<<uint(d)) != 0 {
				r.cpts[i][d] = b.Hi(d)
			} else {
				r.cpts[i][d] = b.Lo(d)
			}
		}
		if i&emask != 0 {
			r.cvals[i] = r.cvals[i&^emask]
		} else {
			r.cvals[i] = r.evalIdx(r.cpts[i])
		}
	}
}

// setCenter fills r.center and reports whether any edge spans more than one
// step, i.e. whether the center is a new sample.
func (r *Regressor) setCenter(b *core.Box) bool {
	valid := false
	for d := 0; d < r.dim; d++ {
		diff := b.Hi(d) - b.Lo(d)
		if diff > 1 {
			valid = true
		}
		r.center[d] = b.Lo(d) + diff/2
	}
	return valid
}

// SetWeight fits b and, with feedback, returns the fit error
// sqrt(Σ residual²)/samples. Without feedback it returns 0. Boxes of
// another dimension or degree are left untouched.
// Complexity: O(2^dim * dim) plus 2^dim+1 evaluations.
func (r *Regressor) SetWeight(b *core.Box, feedback bool) float64 {
	if b.Null() || b.Dim() != r.dim || b.Degree() != r.degree {
		return 0
	}
	r.setCorners(b)
	hasCenter := r.setCenter(b)
	var cval float64
	if hasCenter {
		cval = r.evalIdx(r.center)
	}
	if r.degree == 0 {
		return r.fitConstant(b, hasCenter, cval, feedback)
	}
	return r.fitLinear(b, hasCenter, cval, feedback)
}

func (r *Regressor) fitConstant(b *core.Box, hasCenter bool, cval float64, feedback bool) float64 {
	sum, n := 0.0, float64(r.corners)
	for _, v := range r.cvals {
		sum += v
	}
	if hasCenter {
		sum += cval
		n++
	}
	avg := sum / n
	b.SetConstant(avg)
	if !feedback {
		return 0
	}
	sq := 0.0
	for _, v := range r.cvals {
		sq += (v - avg) * (v - avg)
	}
	if hasCenter {
		sq += (cval - avg) * (cval - avg)
	}
	return math.Sqrt(sq) / n
}

func (r *Regressor) fitLinear(b *core.Box, hasCenter bool, cval float64, feedback bool) float64 {
	high, low := r.cvals[0], r.cvals[0]
	for _, v := range r.cvals[1:] {
		high, low = math.Max(high, v), math.Min(low, v)
	}
	if hasCenter {
		high, low = math.Max(high, cval), math.Min(low, cval)
	}

	slopes := make([]float64, r.dim)
	half := float64(r.corners) / 2
	for d := 0; d < r.dim; d++ {
		run := float64(b.Hi(d) - b.Lo(d))
		if run == 0 {
			continue
		}
		bit := 1 << uint(d)
		rise := 0.0
		for i := 0; i < r.corners; i++ {
			if i&bit != 0 {
				rise += r.cvals[i] - r.cvals[i^bit]
			}
		}
		slopes[d] = rise / half / run
	}

	plane := func(idx []int) float64 {
		v := 0.0
		for d, s := range slopes {
			v += s * float64(idx[d])
		}
		return v
	}

	total := 0.0
	maxI, minI := math.Inf(1), math.Inf(-1)
	visit := func(idx []int, val float64) {
		p := plane(idx)
		total += val - p
		maxI = math.Min(maxI, high-p)
		minI = math.Max(minI, low-p)
	}
	for i := 0; i < r.corners; i++ {
		visit(r.cpts[i], r.cvals[i])
	}
	n := float64(r.corners)
	if hasCenter {
		visit(r.center, cval)
		n++
	}
	icpt := total / n
	if r.strict {
		if icpt > maxI {
			icpt = maxI
		}
		if icpt < minI {
			icpt = minI
		}
	}

	for d, s := range slopes {
		b.SetWt(d, s)
	}
	b.SetWt(r.dim, icpt)
	if !feedback {
		return 0
	}

	sq := 0.0
	for i := 0; i < r.corners; i++ {
		e := plane(r.cpts[i]) + icpt - r.cvals[i]
		sq += e * e
	}
	if hasCenter {
		e := plane(r.center) + icpt - cval
		sq += e * e
	}
	return math.Sqrt(sq) / n
}
