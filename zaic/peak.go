// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// peak.go - the multi-summit Peak builder.
//
// Contract:
//   • Every summit has summit, peakwidth, basewidth, summitdelta, minutil
//     and maxutil. Defaults: 0, 0, 0, 0, 0, 100.
//   • Point value: within peakwidth of the summit the value drops linearly
//     by at most summitdelta; within a further basewidth it falls linearly
//     to minutil; beyond it is minutil. Values are clamped above at maxutil
//     only.
//   • Summits combine by max or by sum.

package zaic

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

const defaultMaxUtil = 100.0

type summit struct {
	at, peakWidth, baseWidth, delta, minUtil, maxUtil float64
}

// Peak builds a function with one or more peaks over a single variable.
type Peak struct {
	shape
	summits []summit
	wrap    bool
	insist  bool
}

// NewPeak returns a Peak over varName with one default summit. A missing
// variable leaves the builder not-ok.
func NewPeak(dom domain.Domain, varName string, opts ...Option) *Peak {
	return &Peak{
		shape:   newShape(dom, varName, opts),
		summits: []summit{{maxUtil: defaultMaxUtil}},
		insist:  true,
	}
}

// AddSummit appends a default summit and returns its index.
func (z *Peak) AddSummit() int {
	z.summits = append(z.summits, summit{maxUtil: defaultMaxUtil})
	return len(z.summits) - 1
}

// Summits returns the number of summits.
func (z *Peak) Summits() int { return len(z.summits) }

// SetValueWrap selects wraparound distance, for circular variables.
func (z *Peak) SetValueWrap(v bool) { z.wrap = v }

// SetSummitInsist controls whether a summit that touches no grid point
// still gets maxutil at its nearest point.
func (z *Peak) SetSummitInsist(v bool) { z.insist = v }

// SetParams sets every parameter of summit idx, applying the min/max
// utility before the delta so the delta clamps against the new range.
// It returns the first error encountered.
func (z *Peak) SetParams(summitAt, peakWidth, baseWidth, delta, minUtil, maxUtil float64, idx int) error {
	errs := []error{
		z.SetSummit(summitAt, idx),
		z.SetBaseWidth(baseWidth, idx),
		z.SetPeakWidth(peakWidth, idx),
		z.SetMinMaxUtil(minUtil, maxUtil, idx),
		z.SetSummitDelta(delta, idx),
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (z *Peak) at(op string, idx int) (*summit, error) {
	if idx < 0 || idx >= len(z.summits) {
		z.ok = false
		z.warn("%s: index %d out of range", op, idx)
		return nil, fmt.Errorf("%s(%d): %w", op, idx, ErrIndex)
	}
	return &z.summits[idx], nil
}

// SetSummit sets the summit location of summit idx.
func (z *Peak) SetSummit(v float64, idx int) error {
	s, err := z.at("SetSummit", idx)
	if err != nil {
		return err
	}
	s.at = v
	return nil
}

// SetBaseWidth sets the base width; negatives clamp to 0 with a warning.
func (z *Peak) SetBaseWidth(v float64, idx int) error {
	s, err := z.at("SetBaseWidth", idx)
	if err != nil {
		return err
	}
	if v < 0 {
		z.warn("SetBaseWidth: value %v less than zero", v)
		v = 0
	}
	s.baseWidth = v
	return nil
}

// SetPeakWidth sets the peak width; negatives clamp to 0 with a warning.
func (z *Peak) SetPeakWidth(v float64, idx int) error {
	s, err := z.at("SetPeakWidth", idx)
	if err != nil {
		return err
	}
	if v < 0 {
		z.warn("SetPeakWidth: value %v less than zero", v)
		v = 0
	}
	s.peakWidth = v
	return nil
}

// SetSummitDelta sets the drop across the peak width, clamped into
// [0, maxutil-minutil] with a warning.
func (z *Peak) SetSummitDelta(v float64, idx int) error {
	s, err := z.at("SetSummitDelta", idx)
	if err != nil {
		return err
	}
	if v < 0 {
		z.warn("SetSummitDelta: value %v less than zero", v)
		v = 0
	}
	if rng := s.maxUtil - s.minUtil; v > rng {
		z.warn("SetSummitDelta: delta %v greater than util range %v", v, rng)
		v = rng
	}
	s.delta = v
	return nil
}

// SetMinMaxUtil sets the utility range of summit idx. min >= max is fatal.
func (z *Peak) SetMinMaxUtil(minUtil, maxUtil float64, idx int) error {
	s, err := z.at("SetMinMaxUtil", idx)
	if err != nil {
		return err
	}
	if minUtil >= maxUtil {
		z.ok = false
		z.warn("SetMinMaxUtil: min %v >= max %v", minUtil, maxUtil)
		return fmt.Errorf("SetMinMaxUtil(%v, %v): %w", minUtil, maxUtil, ErrMinMax)
	}
	s.minUtil, s.maxUtil = minUtil, maxUtil
	if s.delta > maxUtil-minUtil {
		s.delta = maxUtil - minUtil
	}
	return nil
}

// Param returns a summit parameter by name (summit, peakwidth, basewidth,
// summitdelta, minutil, maxutil), or 0 for unknown names and indices.
func (z *Peak) Param(name string, idx int) float64 {
	if idx < 0 || idx >= len(z.summits) {
		return 0
	}
	s := z.summits[idx]
	switch strings.ToLower(name) {
	case "summit":
		return s.at
	case "peakwidth":
		return s.peakWidth
	case "basewidth":
		return s.baseWidth
	case "summitdelta", "summit_delta":
		return s.delta
	case "minutil":
		return s.minUtil
	case "maxutil":
		return s.maxUtil
	}
	return 0
}

// EvalPoint evaluates grid point ix, combining summits by max when maxval
// is true and by sum otherwise.
func (z *Peak) EvalPoint(ix int, maxval bool) float64 {
	best, total := 0.0, 0.0
	for sx := range z.summits {
		v := z.evalSummit(sx, ix)
		if sx == 0 || v > best {
			best = v
		}
		total += v
	}
	if maxval {
		return best
	}
	return total
}

// distance from x to the summit, the shorter way around when wrapping. The
// wrap path includes one delta for the step from high back to low.
func (z *Peak) distance(summitAt, x float64) float64 {
	if !z.wrap {
		return math.Abs(summitAt - x)
	}
	var left, right float64
	if summitAt > x {
		right = summitAt - x
		left = (x - z.low) + (z.high - summitAt) + z.delta
	} else {
		left = x - summitAt
		right = (z.high - x) + (summitAt - z.low) + z.delta
	}
	return math.Min(left, right)
}

func (z *Peak) evalSummit(sx, ix int) float64 {
	s := z.summits[sx]
	if ix < 0 || ix >= z.pts {
		return s.minUtil
	}
	delta := s.delta
	if s.peakWidth <= 0 {
		delta = 0
	}
	dist := z.distance(s.at, z.val(ix))

	var v float64
	switch {
	case dist <= s.peakWidth:
		v = s.maxUtil
		if delta > 0 {
			v -= delta / s.peakWidth * dist
		}
	case dist <= s.peakWidth+s.baseWidth:
		edge := s.maxUtil - delta
		v = edge - (edge-s.minUtil)/s.baseWidth*(dist-s.peakWidth)
	default:
		v = s.minUtil
	}
	return math.Min(v, s.maxUtil)
}

// insistSummit gives maxutil to the grid point nearest summit sx (or the
// nearer end point when it lies outside the domain) when every sample still
// equals that summit's minutil.
func (z *Peak) insistSummit(vals []float64, sx int) {
	s := z.summits[sx]
	for _, v := range vals {
		if v != s.minUtil {
			return
		}
	}
	switch {
	case s.at < z.low:
		vals[0] = s.maxUtil
	case s.at > z.high:
		vals[len(vals)-1] = s.maxUtil
	default:
		best, bestIx := 0.0, 0
		for i := range vals {
			d := math.Abs(z.val(i) - s.at)
			if i == 0 || d < best {
				best, bestIx = d, i
			}
		}
		vals[bestIx] = s.maxUtil
	}
}

// Samples evaluates every grid point, applying summit insistence.
func (z *Peak) Samples(maxval bool) []float64 {
	vals := make([]float64, z.pts)
	for i := range vals {
		vals[i] = z.EvalPoint(i, maxval)
	}
	if z.insist && z.pts > 0 {
		for sx := range z.summits {
			z.insistSummit(vals, sx)
		}
	}
	return vals
}

// ExtractFunction builds the compressed function over the variable.
// Complexity: O(points * summits).
func (z *Peak) ExtractFunction(maxval bool) (*core.Function, error) {
	if !z.ok {
		return nil, fmt.Errorf("Peak.ExtractFunction(%s): %w", z.varName, ErrNotOK)
	}
	return z.build(z.Samples(maxval))
}
