// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// vector.go - utility through explicit (domain value, utility) pairs.
//
// Contract:
//   • Domain values must be strictly increasing; both vectors equally long
//     and non-empty.
//   • Between pairs the utility is interpolated linearly; outside the first
//     and last pair it is held flat.

package zaic

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// Vector builds a piecewise-linear function through given pairs.
type Vector struct {
	shape
	xs, us []float64

	rescale          bool
	minUtil, maxUtil float64
}

// NewVector returns an empty Vector builder over varName.
func NewVector(dom domain.Domain, varName string, opts ...Option) *Vector {
	return &Vector{shape: newShape(dom, varName, opts)}
}

// SetValues sets the domain values and their utilities.
func (z *Vector) SetValues(xs, us []float64) error {
	if len(xs) == 0 || len(xs) != len(us) {
		return fmt.Errorf("SetValues(len %d, %d): %w", len(xs), len(us), ErrBadVector)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("SetValues: value %v not above %v: %w", xs[i], xs[i-1], ErrBadVector)
		}
	}
	if xs[0] < z.low || xs[len(xs)-1] > z.high {
		z.warn("some domain values outside [%v, %v]", z.low, z.high)
	}
	z.xs, z.us = slices.Clone(xs), slices.Clone(us)
	return nil
}

// SetMinMaxUtil rescales the utilities so their extremes map onto
// [minUtil, maxUtil]. min >= max is fatal.
func (z *Vector) SetMinMaxUtil(minUtil, maxUtil float64) error {
	if minUtil >= maxUtil {
		z.ok = false
		z.warn("SetMinMaxUtil: min %v >= max %v", minUtil, maxUtil)
		return fmt.Errorf("SetMinMaxUtil(%v, %v): %w", minUtil, maxUtil, ErrMinMax)
	}
	z.rescale, z.minUtil, z.maxUtil = true, minUtil, maxUtil
	return nil
}

// utilities returns us, rescaled when requested. Flat vectors rescale to
// maxUtil.
func (z *Vector) utilities() []float64 {
	if !z.rescale {
		return z.us
	}
	lo, hi := slices.Min(z.us), slices.Max(z.us)
	out := make([]float64, len(z.us))
	for i, u := range z.us {
		if hi > lo {
			out[i] = z.minUtil + (u-lo)/(hi-lo)*(z.maxUtil-z.minUtil)
		} else {
			out[i] = z.maxUtil
		}
	}
	return out
}

// EvalValue interpolates the utility at native value x.
func (z *Vector) EvalValue(x float64) float64 {
	return interpolate(z.xs, z.utilities(), x)
}

func interpolate(xs, us []float64, x float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	if x <= xs[0] {
		return us[0]
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return us[last]
	}
	i, _ := slices.BinarySearch(xs, x)
	if xs[i] == x {
		return us[i]
	}
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return us[i-1] + t*(us[i]-us[i-1])
}

// ExtractFunction builds the compressed function over the variable.
func (z *Vector) ExtractFunction() (*core.Function, error) {
	if !z.ok {
		return nil, fmt.Errorf("Vector.ExtractFunction(%s): %w", z.varName, ErrNotOK)
	}
	if len(z.xs) == 0 {
		return nil, fmt.Errorf("Vector.ExtractFunction(%s): no values: %w", z.varName, ErrBadVector)
	}
	us := z.utilities()
	vals := make([]float64, z.pts)
	for i := range vals {
		vals[i] = interpolate(z.xs, us, z.val(i))
	}
	return z.build(vals)
}
