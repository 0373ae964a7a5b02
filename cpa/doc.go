// SPDX-License-Identifier: MIT

// Package cpa computes closest-point-of-approach (CPA) geometry between an
// ownship and a contact travelling at constant course and speed.
//
// Conventions:
//
//	x is longitude (east), y is latitude (north), both in meters.
//	Headings are degrees clockwise from north: 0 is +y, 90 is +x.
//	Speeds are meters per second, times are seconds.
//
// The squared range between the two vessels after t seconds is a quadratic
//
//	r²(t) = k2·t² + k1·t + k0
//
// whose contact-only terms are fixed when the Engine is built. EvalCPA adds
// the ownship terms for a candidate course and speed, then minimizes the
// quadratic over [0, tol]. The rate of closure is -k1, the negated slope of
// r² at t = 0.
//
// Besides CPA the Engine answers relative-geometry questions used by
// collision-avoidance objectives: whether a maneuver crosses the contact's
// bow or stern, passes the contact, and where ownship sits relative to the
// contact's heading (fore, aft, port, starboard).
//
// An Engine is immutable after New and safe for concurrent use.
package cpa
