// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// hleq.go - threshold builders: LEQ (low is good) and HEQ (high is good).
//
// Contract:
//   • LEQ: maxutil at or below the summit, a linear fall to minutil over
//     basewidth above it, minutil beyond. HEQ mirrors the shape.
//   • summit_delta lowers the plateau by delta; the grid point nearest the
//     summit keeps maxutil. Utilities never rise above maxutil, so the
//     summit stands out by lowering its neighbours rather than raising it.
//   • break_ties tilts both flat parts by that much utility per grid step,
//     falling away from the threshold, so equal utilities on the plateau and
//     the tail are ordered by closeness to the ramp. The tail may then drop
//     below minutil.

package zaic

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// Threshold builds LEQ or HEQ shapes.
type Threshold struct {
	shape
	mirror      bool
	summit      float64
	summitDelta float64
	breakTies   float64
	baseWidth   float64
	minUtil     float64
	maxUtil     float64
}

// NewLEQ returns a builder preferring values at or below the summit.
func NewLEQ(dom domain.Domain, varName string, opts ...Option) *Threshold {
	return newThreshold(dom, varName, false, opts)
}

// NewHEQ returns a builder preferring values at or above the summit.
func NewHEQ(dom domain.Domain, varName string, opts ...Option) *Threshold {
	return newThreshold(dom, varName, true, opts)
}

func newThreshold(dom domain.Domain, varName string, mirror bool, opts []Option) *Threshold {
	return &Threshold{shape: newShape(dom, varName, opts), mirror: mirror, maxUtil: defaultMaxUtil}
}

// SetSummit sets the threshold; a summit outside the domain is kept with a
// warning.
func (z *Threshold) SetSummit(v float64) {
	if v < z.low || v > z.high {
		z.warn("summit %v outside domain [%v, %v]", v, z.low, z.high)
	}
	z.summit = v
}

// SetSummitDelta sets the plateau drop; negatives become 0.
func (z *Threshold) SetSummitDelta(v float64) {
	if v < 0 {
		v = 0
	}
	z.summitDelta = v
}

// SetBreakTies sets the per-step tilt of the flat parts; negatives become 0.
func (z *Threshold) SetBreakTies(v float64) {
	if v < 0 {
		v = 0
	}
	z.breakTies = v
}

// SetBaseWidth sets the falloff width. Negative widths are fatal.
func (z *Threshold) SetBaseWidth(v float64) error {
	if v < 0 {
		z.ok = false
		z.warn("SetBaseWidth: value %v less than zero", v)
		return fmt.Errorf("SetBaseWidth(%v): %w", v, ErrBadWidth)
	}
	z.baseWidth = v
	return nil
}

// SetMinMaxUtil sets the utility range. min >= max is fatal.
func (z *Threshold) SetMinMaxUtil(minUtil, maxUtil float64) error {
	if minUtil >= maxUtil {
		z.ok = false
		z.warn("SetMinMaxUtil: min %v >= max %v", minUtil, maxUtil)
		return fmt.Errorf("SetMinMaxUtil(%v, %v): %w", minUtil, maxUtil, ErrMinMax)
	}
	z.minUtil, z.maxUtil = minUtil, maxUtil
	return nil
}

// EvalPoint evaluates grid point ix before compression.
func (z *Threshold) EvalPoint(ix int) float64 {
	if ix < 0 || ix >= z.pts {
		return z.minUtil
	}
	if z.summitDelta > 0 && ix == z.summitIndex() {
		return z.maxUtil
	}
	over := z.val(ix) - z.summit
	if z.mirror {
		over = -over
	}
	plateau := z.maxUtil - z.summitDelta
	if plateau < z.minUtil {
		plateau = z.minUtil
	}
	switch {
	case over <= 0:
		return plateau - z.tilt(-over)
	case over <= z.baseWidth:
		return plateau - (plateau-z.minUtil)*over/z.baseWidth
	}
	return z.minUtil - z.tilt(over-z.baseWidth)
}

// tilt is the break_ties drop over dist native units.
func (z *Threshold) tilt(dist float64) float64 {
	if z.breakTies == 0 || z.delta == 0 {
		return 0
	}
	return z.breakTies * dist / z.delta
}

// summitIndex is the grid point nearest the summit, or -1 outside the domain.
func (z *Threshold) summitIndex() int {
	if z.summit < z.low || z.summit > z.high {
		return -1
	}
	return z.dom.DiscreteVal(0, z.summit, domain.SnapNearest)
}

// ExtractFunction builds the compressed function over the variable.
func (z *Threshold) ExtractFunction() (*core.Function, error) {
	if !z.ok {
		return nil, fmt.Errorf("Threshold.ExtractFunction(%s): %w", z.varName, ErrNotOK)
	}
	vals := make([]float64, z.pts)
	for i := range vals {
		vals[i] = z.EvalPoint(i)
	}
	return z.build(vals)
}
