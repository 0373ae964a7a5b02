// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// compress.go - turns evenly spaced samples into linear pieces.
//
// Design:
//   • A run starts at first; its trend is the line through first and the
//     next sample. A sample breaks the run when it deviates from the trend by
//     more than tol, or when the local slope changes sign against the trend.
//   • On a break the run [first, i-1] is closed and i starts the next run.
//     A break at the last sample leaves it as a one-point piece.

package zaic

import (
	"math"

	"github.com/katalvlaran/ivpbuild/core"
)

// compress returns degree-1 boxes partitioning [0, len(vals)-1].
// Complexity: O(n).
func compress(vals []float64, tol float64) []*core.Box {
	n := len(vals)
	if n == 0 {
		return nil
	}
	if n == 1 {
		b := core.NewBox(1, 1)
		b.SetConstant(vals[0])
		return []*core.Box{b}
	}

	var pieces []*core.Box
	first := 0
	trend := false
	var m, c float64
	for i := 1; i < n; i++ {
		if !trend {
			trend = true
			m = (vals[i] - vals[first]) / float64(i-first)
			c = vals[i] - m*float64(i)
		}
		brk := math.Abs(m*float64(i)+c-vals[i]) > tol
		loc := vals[i] - vals[i-1]
		if (loc < 0 && m > 0) || (loc > 0 && m < 0) {
			brk = true
		}
		switch {
		case brk:
			pieces = append(pieces, linePiece(vals, first, i-1))
			if i == n-1 {
				pieces = append(pieces, linePiece(vals, i, i))
			}
			first, trend = i, false
		case i == n-1:
			pieces = append(pieces, linePiece(vals, first, i))
		}
	}
	return pieces
}

// linePiece is the box [lo, hi] through (lo, vals[lo]) and (hi, vals[hi]).
func linePiece(vals []float64, lo, hi int) *core.Box {
	b := core.NewBox(1, 1)
	b.SetPts(0, lo, hi)
	if lo == hi {
		b.SetConstant(vals[lo])
		return b
	}
	slope := (vals[hi] - vals[lo]) / float64(hi-lo)
	b.SetWt(0, slope)
	b.SetWt(1, vals[lo]-slope*float64(lo))
	return b
}
