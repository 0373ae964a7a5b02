// SPDX-License-Identifier: MIT

// Package ivpbuild builds interval programming (IvP) functions: piecewise
// linear utility functions over small discrete decision domains, as used by
// multi-objective behavior arbitration in marine autonomy.
//
// 🚀 What is in the box?
//
//	A pure-Go toolkit that brings together:
//		• Domains: named, uniformly discretized decision variables
//		• Pieces: boxes over grid indices carrying linear weights
//		• Functions: partitions of a domain into pieces, with a priority weight
//		• Shape builders: single-variable peaks, thresholds and vectors (ZAIC)
//		• Objective functions: CPA attractors, range cutters, Gaussians, rings
//		• Reflection: adaptive piecewise approximation of any objective
//		• Coupling: additive combination over disjoint variables
//		• Encoding: a compact text form, packets and an SQLite archive
//
// Under the hood the work is split over these packages:
//
//	domain/    decision variables and their grids
//	core/      Box, PDMap and Function
//	cpa/       closest-point-of-approach kinematics
//	aof/       the objective-function family
//	zaic/      single-variable shape builders
//	reflector/ piecewise approximation of objective functions
//	coupler/   coupling of functions over disjoint variables
//	encoder/   MK text encoding, packets and reassembly
//	archive/   SQLite store of encoded functions
//	builder/   YAML jobs compiled into coupled functions
//	cmd/       the ivpbuild command
//
// Quick example, a heading preference coupled with a speed threshold:
//
//	course  0 ······ 45 ······ 90 ······ 135 ······ 180 ······ 359
//	util    0 ······ 50 ······ 100 ····· 50 ······· 0 ········ 0
//
//	speed   0 ··· 1 ··· 2 ··· 3 ··· 4
//	util    0 ··· 0 ··· 50 ·· 100 · 100
//
// The builder turns both shapes into functions, couples them, and hands the
// result to the encoder:
//
//	go run ./cmd/ivpbuild -job transit.yaml -encode
package ivpbuild
