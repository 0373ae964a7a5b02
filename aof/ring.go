// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// ring.go - a ring of utility around a location in index space.
//
// Contract:
//   • Distances are Euclidean over grid indices, not native values.
//   • peak=true puts base+range on the ring and base far away; peak=false
//     inverts the shape.

package aof

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/ivpbuild/domain"
)

// GradientType selects how the ring value decays away from the ring.
type GradientType int

const (
	// GradientLinear decays linearly to zero at gradient_dist, raised to exp.
	GradientLinear GradientType = iota
	// GradientSigmoid is a Gaussian falloff with standard deviation exp.
	GradientSigmoid
	// GradientExponential is a two-part quadratic/root falloff.
	GradientExponential
)

const (
	defaultRingExp   = 10.0
	defaultRingRange = 200.0
	defaultRingBase  = -100.0
)

type ringParams struct {
	location []float64
	radius   float64
	exp      float64
	rng      float64
	base     float64
	plateau  float64
	gradDist float64
	gradType GradientType
	peak     bool
}

// newRingParams sets the defaults; gradient_dist defaults to the sum of
// the domain's point counts.
func newRingParams(dom domain.Domain) ringParams {
	rp := ringParams{
		exp:  defaultRingExp,
		rng:  defaultRingRange,
		base: defaultRingBase,
		peak: true,
	}
	for d := 0; d < dom.Size(); d++ {
		rp.gradDist += float64(dom.Points(d))
	}
	return rp
}

func setRingNum(a *AOF, name string, v float64) ParamOutcome {
	r := &a.ring
	switch name {
	case "base":
		r.base = v
	case "range":
		r.rng = math.Round(v)
	case "radius":
		if v < 0 {
			return ParamInvalid
		}
		r.radius = v
	case "exp":
		r.exp = v
	case "plateau":
		if v < 0 {
			return ParamInvalid
		}
		r.plateau = v
	case "gradient_dist":
		if v <= 0 {
			return ParamInvalid
		}
		r.gradDist = v
	default:
		return ParamNotMine
	}
	return ParamOK
}

func setRingStr(a *AOF, name, v string) ParamOutcome {
	r := &a.ring
	switch name {
	case "location":
		fields := strings.Split(v, ",")
		if len(fields) != a.dom.Size() {
			return ParamInvalid
		}
		loc := make([]float64, len(fields))
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return ParamInvalid
			}
			loc[i] = float64(n)
		}
		r.location = loc
	case "peak":
		switch strings.ToLower(v) {
		case "true":
			r.peak = true
		case "false":
			r.peak = false
		default:
			return ParamInvalid
		}
	case "gradient_type":
		switch strings.ToLower(v) {
		case "linear":
			r.gradType = GradientLinear
		case "sigmoid":
			r.gradType = GradientSigmoid
		case "exponential":
			r.gradType = GradientExponential
		default:
			return ParamInvalid
		}
	default:
		return ParamNotMine
	}
	return ParamOK
}

func (a *AOF) initRing() error {
	if a.dom.Size() == 0 {
		return fmt.Errorf("empty domain: %w", ErrNotReady)
	}
	if len(a.ring.location) != a.dom.Size() {
		return fmt.Errorf("location: %w", ErrNotReady)
	}
	if a.ring.gradType == GradientLinear && a.ring.gradDist <= a.ring.radius {
		return fmt.Errorf("gradient_dist=%v <= radius=%v: %w", a.ring.gradDist, a.ring.radius, ErrInvalidParam)
	}
	return nil
}

// evalRing evaluates at fractional grid indices.
func (a *AOF) evalRing(idx []float64) float64 {
	r := &a.ring
	d2 := 0.0
	for i, c := range r.location {
		diff := idx[i] - c
		d2 += diff * diff
	}
	dist := math.Abs(math.Sqrt(d2) - r.radius)

	ratio := 0.0
	switch r.gradType {
	case GradientLinear:
		if dist <= r.plateau {
			ratio = 1
		} else {
			ratio = math.Pow(math.Max(1-dist/(r.gradDist-r.radius), 0), r.exp)
		}
	case GradientSigmoid:
		if r.exp != 0 {
			ratio = math.Exp(-(dist * dist) / (2 * r.exp * r.exp))
		} else if dist == 0 {
			ratio = 1
		}
	case GradientExponential:
		ratio = expGradient(dist, r.gradDist)
	}

	if r.peak {
		return r.base + ratio*r.rng
	}
	return r.base + r.rng - ratio*r.rng
}

// expGradient falls off quadratically over the first half of gd and with a
// square root over the second half, reaching 0 at gd.
func expGradient(dist, gd float64) float64 {
	fudge := math.Sqrt(0.5) - 0.25
	x := dist / gd
	var r float64
	switch {
	case dist < gd/2:
		r = 1 - x*x
	case dist < gd:
		r = (1 - math.Sqrt(x)) + fudge
	default:
		return 0
	}
	return (r - fudge) / (1 - fudge)
}
