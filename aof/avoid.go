// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// avoid.go - AvoidCollision, a CPA-distance utility with no rate-of-closure
// term.
//
// Contract:
//   • Shares the kinematics handler of the CPA kinds; patience is accepted
//     and ignored.
//   • CPA below collision_distance scores 0, above all_clear_distance 100,
//     and 25..100 linearly in between.

package aof

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/cpa"
)

const (
	avoidFloor = 25.0
	avoidSpan  = 75.0
)

// avoidParams holds the AvoidCollision distance band.
type avoidParams struct {
	collision, allClear       float64
	collisionSet, allClearSet bool
}

func setAvoid(a *AOF, name string, v float64) ParamOutcome {
	switch name {
	case "collision_distance":
		if v < 0 {
			return ParamInvalid
		}
		a.avoid.collision, a.avoid.collisionSet = v, true
	case "all_clear_distance":
		if v < 0 {
			return ParamInvalid
		}
		a.avoid.allClear, a.avoid.allClearSet = v, true
	default:
		return ParamNotMine
	}
	return ParamOK
}

func (a *AOF) initAvoid() error {
	if err := a.kin.check(); err != nil {
		return err
	}
	if !a.avoid.collisionSet || !a.avoid.allClearSet {
		return fmt.Errorf("collision band: %w", ErrNotReady)
	}
	if a.avoid.collision >= a.avoid.allClear {
		return fmt.Errorf("collision_distance=%v >= all_clear_distance=%v: %w",
			a.avoid.collision, a.avoid.allClear, ErrInvalidParam)
	}
	k := &a.kin
	k.engine = cpa.New(k.cnLat, k.cnLon, k.cnCrs, k.cnSpd, k.osLat, k.osLon)
	return nil
}

func (a *AOF) avoidMetric(dist float64) float64 {
	lo, hi := a.avoid.collision, a.avoid.allClear
	switch {
	case dist < lo:
		return 0
	case dist > hi:
		return 100
	}
	return avoidFloor + avoidSpan*(dist-lo)/(hi-lo)
}

func (a *AOF) evalAvoid(vals []float64) float64 {
	dist, _ := a.kin.engine.EvalCPA(vals[a.kin.crsIx], vals[a.kin.spdIx], a.kin.tol)
	return a.avoidMetric(dist)
}
