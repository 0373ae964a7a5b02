// SPDX-License-Identifier: MIT

// Package core provides the piecewise-defined representation of an IvP
// function: boxes, the piece map that partitions a domain into boxes, and the
// Function wrapper carrying a priority weight and a context tag.
//
// Box
//
//	A Box is an axis-aligned hyper-rectangle over the integer grid of a
//	domain. Every dimension d has bounds [lo, hi] with per-edge inclusive
//	flags (inclusive by default). A box of degree 1 carries dim+1 weights
//	forming a linear interior function:
//
//	  value(p) = wt[0]*p0 + ... + wt[dim-1]*p(dim-1) + wt[dim]
//
//	A box of degree 0 carries a single constant weight. A box with dim == 0
//	is the null box.
//
// PDMap
//
//	A PDMap is an ordered slice of non-overlapping boxes that together cover
//	every grid point of its domain exactly once. Evaluation finds the box
//	containing a point box. An optional grid index (UpdateGrid) buckets
//	boxes by grid element so lookups only scan nearby pieces.
//
// Function
//
//	A Function owns a PDMap plus a priority weight (default 10) and a free
//	form context string. Consumers that take ownership of a Function
//	(the coupler, for one) call Release so the value cannot be reused.
//
// Box strings
//
//	ParsePointBox and ParseRegionBox read human-entered locations such as
//	"native @ x:12.85, y:7.4" or "discrete @ x:2:5, y:all".
//
// Complexity:
//
//   - Box operations are O(dim).
//   - PDMap.EvalPoint is O(pieces) without a grid, O(pieces per cell) with one.
//   - Normalize, ApplyWeight, ApplyScalar are O(pieces*dim).
//
// Concurrency:
//
//	Values in this package are not safe for concurrent mutation. A fully
//	built Function may be read from several goroutines.
package core
