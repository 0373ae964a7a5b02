// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// cpa_kinds.go - AttractorCPA and CutRangeCPA.
//
// Contract:
//   • Both kinds need "course" and "speed" in the domain.
//   • The value is a blend of the normalized rate of closure (nroc) and a
//     CPA metric: (1-p)·nroc + p·metric with p = patience/100.

package aof

import (
	"fmt"

	"github.com/katalvlaran/ivpbuild/cpa"
	"github.com/katalvlaran/ivpbuild/domain"
)

const (
	defaultAttractorPatience = 0.0
	defaultCutRangePatience  = 100.0

	// ownship speed used by AttractorCPA's roc sweep.
	attractorSweepSpeed = 5.0
	// headings sampled by the roc sweep.
	sweepClicks = 360
)

// bits of kinematics.set
const (
	setOSLat uint8 = 1 << iota
	setOSLon
	setCNLat
	setCNLon
	setCNCrs
	setCNSpd
	setTol

	setAllKinematics = setOSLat | setOSLon | setCNLat | setCNLon | setCNCrs | setCNSpd | setTol
)

// kinematics is the state shared by the CPA kinds.
type kinematics struct {
	osLat, osLon float64
	cnLat, cnLon float64
	cnCrs, cnSpd float64
	tol          float64
	patience     float64
	set          uint8

	crsIx, spdIx int

	engine         *cpa.Engine
	minROC, rngROC float64
}

func newKinematics(dom domain.Domain, patience float64) kinematics {
	return kinematics{
		patience: patience,
		crsIx:    dom.Index("course"),
		spdIx:    dom.Index("speed"),
	}
}

// setKinematic claims the position, contact and horizon parameters. The
// x/y spellings are accepted as aliases of lon/lat.
func setKinematic(a *AOF, name string, v float64) ParamOutcome {
	k := &a.kin
	switch name {
	case "oslat", "osy":
		k.osLat, k.set = v, k.set|setOSLat
	case "oslon", "osx":
		k.osLon, k.set = v, k.set|setOSLon
	case "cnlat", "cny":
		k.cnLat, k.set = v, k.set|setCNLat
	case "cnlon", "cnx":
		k.cnLon, k.set = v, k.set|setCNLon
	case "cncrs", "cnh":
		k.cnCrs, k.set = v, k.set|setCNCrs
	case "cnspd", "cnv":
		k.cnSpd, k.set = v, k.set|setCNSpd
	case "tol":
		k.tol, k.set = v, k.set|setTol
	case "patience":
		if v < 0 || v > 100 {
			return ParamInvalid
		}
		k.patience = v
	default:
		return ParamNotMine
	}
	return ParamOK
}

// check verifies the preconditions shared by the CPA kinds.
func (k *kinematics) check() error {
	if k.crsIx < 0 || k.spdIx < 0 {
		return fmt.Errorf("course and speed variables: %w", ErrNotReady)
	}
	if k.set&setAllKinematics != setAllKinematics {
		return fmt.Errorf("kinematics 0x%02x of 0x%02x: %w", k.set, setAllKinematics, ErrNotReady)
	}
	if k.tol < 1 {
		return fmt.Errorf("tol=%v below 1: %w", k.tol, ErrInvalidParam)
	}
	return nil
}

func (k *kinematics) sweep(speed float64) {
	k.engine = cpa.New(k.cnLat, k.cnLon, k.cnCrs, k.cnSpd, k.osLat, k.osLon)
	minROC, maxROC, _ := k.engine.MinMaxROC(speed, sweepClicks)
	k.minROC, k.rngROC = minROC, maxROC-minROC
}

// blend evaluates CPA at (crs, spd) and mixes nroc with metric(cpa).
func (k *kinematics) blend(crs, spd float64, metric func(float64) float64) float64 {
	dist, roc := k.engine.EvalCPA(crs, spd, k.tol)
	nroc := 0.0
	if k.rngROC > 0 {
		nroc = (roc - k.minROC) / k.rngROC * 100
	}
	pct := k.patience / 100
	return (1-pct)*nroc + pct*metric(dist)
}

// Patience returns the roc/metric blend factor in [0, 100].
func (a *AOF) Patience() float64 { return a.kin.patience }

// Engine returns the CPA engine built by Initialize, or nil.
func (a *AOF) Engine() *cpa.Engine { return a.kin.engine }

// attractorParams holds the CPA distance band of AttractorCPA.
type attractorParams struct {
	minUtilDist, maxUtilDist float64
	minSet, maxSet           bool
}

func setAttractor(a *AOF, name string, v float64) ParamOutcome {
	switch name {
	case "min_util_cpa_dist":
		a.attr.minUtilDist, a.attr.minSet = v, true
	case "max_util_cpa_dist":
		a.attr.maxUtilDist, a.attr.maxSet = v, true
	default:
		return ParamNotMine
	}
	return ParamOK
}

// initAttractor requires min_util_cpa_dist (the far edge, utility 0) to
// exceed max_util_cpa_dist (the near edge, utility 100).
func (a *AOF) initAttractor() error {
	if err := a.kin.check(); err != nil {
		return err
	}
	if !a.attr.minSet || !a.attr.maxSet {
		return fmt.Errorf("cpa distance band: %w", ErrNotReady)
	}
	if a.attr.minUtilDist <= a.attr.maxUtilDist {
		return fmt.Errorf("min_util_cpa_dist=%v <= max_util_cpa_dist=%v: %w",
			a.attr.minUtilDist, a.attr.maxUtilDist, ErrInvalidParam)
	}
	a.kin.sweep(attractorSweepSpeed)
	return nil
}

func (a *AOF) attractorMetric(dist float64) float64 {
	near, far := a.attr.maxUtilDist, a.attr.minUtilDist
	switch {
	case near >= far:
		return 0
	case dist < near:
		return 100
	case dist > far:
		return 0
	}
	return 100 - (dist-near)/(far-near)*100
}

func (a *AOF) evalAttractor(vals []float64) float64 {
	return a.kin.blend(vals[a.kin.crsIx], vals[a.kin.spdIx], a.attractorMetric)
}

// cutRangeParams holds the CutRangeCPA state.
type cutRangeParams struct {
	rangeNow float64

	discourage  bool
	lowSpdLimit float64
	lowSpdValue float64
}

// setCutRange accepts the distance-band names of AttractorCPA without
// effect so shared configurations keep loading.
func setCutRange(a *AOF, name string, v float64) ParamOutcome {
	switch name {
	case "min_util_cpa_dist", "max_util_cpa_dist":
		return ParamOK
	}
	return ParamNotMine
}

func (a *AOF) initCutRange() error {
	if err := a.kin.check(); err != nil {
		return err
	}
	k := &a.kin
	a.cut.rangeNow = cpa.Dist(k.osLon, k.osLat, k.cnLon, k.cnLat)
	if a.cut.rangeNow <= 0 {
		return fmt.Errorf("ownship on contact: %w", ErrDegenerate)
	}
	k.sweep(a.dom.High(k.spdIx))
	return nil
}

func (a *AOF) cutRangeMetric(dist float64) float64 {
	switch {
	case dist < 0:
		return 100
	case a.cut.rangeNow <= 0, dist > a.cut.rangeNow:
		return 0
	}
	return 100 - dist/a.cut.rangeNow*100
}

func (a *AOF) evalCutRange(vals []float64) float64 {
	spd := vals[a.kin.spdIx]
	if a.cut.discourage && spd <= a.cut.lowSpdLimit {
		return a.cut.lowSpdValue
	}
	return a.kin.blend(vals[a.kin.crsIx], spd, a.cutRangeMetric)
}

// DiscourageLowSpeeds makes CutRangeCPA return value for every speed at or
// below thresh, regardless of the CPA. Other kinds ignore the call.
func (a *AOF) DiscourageLowSpeeds(thresh, value float64) {
	if a.kind != CutRangeCPA {
		return
	}
	a.cut.discourage, a.cut.lowSpdLimit, a.cut.lowSpdValue = true, thresh, value
}

// OKLowSpeeds switches the low-speed override off.
func (a *AOF) OKLowSpeeds() {
	a.cut.discourage, a.cut.lowSpdLimit, a.cut.lowSpdValue = false, 0, 0
}

// RangeNow returns the ownship-contact range computed by Initialize for
// CutRangeCPA, or the engine range for AttractorCPA.
func (a *AOF) RangeNow() float64 {
	if a.kind == CutRangeCPA {
		return a.cut.rangeNow
	}
	if a.kin.engine != nil {
		return a.kin.engine.Range()
	}
	return 0
}
