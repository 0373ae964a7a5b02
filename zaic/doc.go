// SPDX-License-Identifier: MIT

// Package zaic builds single-variable IvP functions from a handful of shape
// parameters, without sampling an objective function.
//
// Builders:
//
//	Peak    one or more summits, each with a flat peak of peakwidth on both
//	        sides, a linear falloff over basewidth and minutil beyond.
//	        Optional wraparound distance for circular variables (course).
//	LEQ     maxutil at or below a threshold, falling to minutil above it.
//	HEQ     the mirror of LEQ.
//	Vector  linear interpolation through explicit (value, utility) pairs.
//
// Every builder evaluates all points of its variable and then compresses the
// samples into linear pieces: a run continues while the samples stay within
// the tolerance (default 0.001) of the line through the first two samples of
// the run and the slope keeps its sign.
//
// Builders record non-fatal warnings (clamped widths, deltas) and a sticky
// not-ok state for fatal configuration errors; ExtractFunction refuses to
// build in that state.
package zaic
