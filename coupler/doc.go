// SPDX-License-Identifier: MIT

// Package coupler merges two IvP functions over disjoint variables into one
// function over the union of their domains.
//
// The joint function's value at a point is the sum of the inputs' values at
// the projections of that point. CoupleRaw sums as is; Couple and
// CoupleWeighted first rescale each input to [0, weight] so the weights set
// the relative influence, then rescale the sum to the Coupler's range.
//
// Coupling consumes both inputs: they are released whether or not the call
// succeeds, and the caller must not reuse them.
package coupler
