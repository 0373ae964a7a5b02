// SPDX-License-Identifier: MIT

// Package reflector turns a continuous objective (an Evaluator, typically an
// *aof.AOF) into a piecewise-linear IvP function.
//
// Create runs up to four stages over the evaluator's domain:
//
//  1. Uniform: tile the domain with equal boxes, either an explicit
//     uniform_piece or the largest box keeping the count within
//     uniform_amount (GenUnifBox).
//  2. Directed: for every refine_region/refine_piece pair, carve the region
//     out of the current pieces and re-tile it with the finer piece. Each
//     refine_point becomes a piece of its own.
//  3. Smart: repeatedly split the piece with the worst fit error on its
//     longest dimension, up to smart_amount pieces (or smart_percent of
//     the current count) or until the worst error drops to smart_thresh.
//  4. AutoPeak: split the piece holding the highest value until the
//     maximum is isolated in a single-point piece.
//
// Every piece gets its interior function from the Regressor, a fit through
// the box corners (and center) rather than a full least-squares solve.
//
// Parameters are strings, set one at a time with SetParam or together with
// SetParams("uniform_amount=100 # smart_amount=20"). Rejected parameters
// are reported both as errors and as warnings joined by " # ".
//
// A Reflector is not safe for concurrent use.
package reflector
