// SPDX-License-Identifier: MIT

// Package aof holds the abstract objective functions (AOFs) that the
// reflector turns into piecewise-linear IvP functions.
//
// An AOF is a continuous utility over a domain. The family is closed:
//
//	AttractorCPA    rewards closing on a contact, blending rate of closure
//	                with a CPA distance band.
//	CutRangeCPA     rewards reducing the range to a contact, blending rate
//	                of closure with the CPA relative to the present range.
//	MGaussian       a base plus a sum of Gaussian bumps in native units.
//	Ring            a ring (or disc) of utility in index space with a
//	                linear, sigmoid or exponential gradient.
//	AvoidCollision  scores the CPA to a contact against a collision and an
//	                all-clear distance.
//	Waypoint        rewards closing on a fixed point at a desired speed
//	                with little detour.
//
// Every kind is configured the same way:
//
//	a, _ := aof.New(aof.CutRangeCPA, dom)
//	_ = a.SetParam("oslat", 0)
//	...
//	if err := a.Initialize(); err != nil { ... }
//	v := a.EvalPoint([]float64{course, speed})
//
// Parameter names are routed through an ordered chain of handlers. The CPA
// kinds (AttractorCPA, CutRangeCPA, AvoidCollision) share a kinematics
// handler (oslat, oslon, cnlat, cnlon, cncrs, cnspd, tol) that runs before
// the kind's own handler. A name no handler claims is reported as
// ErrUnknownParam; a claimed name with a value out of range is
// ErrInvalidParam.
//
// Setting any parameter clears the initialized state, so Initialize must be
// called again before evaluation. Until then every evaluation returns 0.
//
// An initialized AOF is read-only during evaluation and may be shared by
// concurrent readers.
package aof
