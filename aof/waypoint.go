// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// waypoint.go - Waypoint, a course/speed utility for reaching a fixed point.
//
// Contract:
//   • Needs "course" and "speed" in the domain, the ownship position
//     (osx/osy), the point (ptx/pty) and desired_speed.
//   • The value is 0.8·rate-of-closure score + 0.2·rate-of-detour score.
//     Closing faster than desired_speed costs half as much as closing
//     slower.

package aof

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ivpbuild/cpa"
	"github.com/katalvlaran/ivpbuild/domain"
)

const (
	waypointROCWeight = 0.8
	waypointRODWeight = 0.2
	// share of the penalty for closing faster than desired.
	waypointOverPenalty = 0.5
)

const (
	setWptOSX uint8 = 1 << iota
	setWptOSY
	setWptPTX
	setWptPTY
	setWptSpeed

	setAllWaypoint = setWptOSX | setWptOSY | setWptPTX | setWptPTY | setWptSpeed
)

// waypointParams holds the Waypoint state.
type waypointParams struct {
	osx, osy     float64
	ptx, pty     float64
	desiredSpeed float64
	set          uint8

	crsIx, spdIx int

	angleToPoint float64
	maxSpeed     float64
}

func newWaypointParams(dom domain.Domain) waypointParams {
	return waypointParams{crsIx: dom.Index("course"), spdIx: dom.Index("speed")}
}

// setWaypoint claims the waypoint names; oslon/oslat are aliases of osx/osy.
func setWaypoint(a *AOF, name string, v float64) ParamOutcome {
	w := &a.wpt
	switch name {
	case "osx", "oslon":
		w.osx, w.set = v, w.set|setWptOSX
	case "osy", "oslat":
		w.osy, w.set = v, w.set|setWptOSY
	case "ptx":
		w.ptx, w.set = v, w.set|setWptPTX
	case "pty":
		w.pty, w.set = v, w.set|setWptPTY
	case "desired_speed":
		if v < 0 {
			return ParamInvalid
		}
		w.desiredSpeed, w.set = v, w.set|setWptSpeed
	default:
		return ParamNotMine
	}
	return ParamOK
}

func (a *AOF) initWaypoint() error {
	w := &a.wpt
	if w.crsIx < 0 || w.spdIx < 0 {
		return fmt.Errorf("course and speed variables: %w", ErrNotReady)
	}
	if w.set&setAllWaypoint != setAllWaypoint {
		return fmt.Errorf("waypoint 0x%02x of 0x%02x: %w", w.set, setAllWaypoint, ErrNotReady)
	}
	w.maxSpeed = a.dom.High(w.spdIx)
	if w.maxSpeed <= 0 {
		return fmt.Errorf("top speed %v: %w", w.maxSpeed, ErrDegenerate)
	}
	w.angleToPoint = cpa.RelAng(w.osx, w.osy, w.ptx, w.pty)
	return nil
}

func (a *AOF) evalWaypoint(vals []float64) float64 {
	w := &a.wpt
	crs, spd := vals[w.crsIx], math.Max(vals[w.spdIx], 0)
	off := cpa.Angle360(crs - w.angleToPoint)

	roc := math.Cos(off*math.Pi/180) * spd
	rocRange := 2 * w.maxSpeed
	miss := w.desiredSpeed - roc
	if miss < 0 {
		miss *= -waypointOverPenalty
	}
	miss = math.Min(miss, rocRange)
	rocScore := (1 - miss/rocRange) * 100

	detour := math.Abs(cpa.Angle180(off)) * spd
	rodScore := (1 - detour/(w.maxSpeed*180)) * 100

	return waypointROCWeight*rocScore + waypointRODWeight*rodScore
}
