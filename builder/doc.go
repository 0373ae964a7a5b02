// SPDX-License-Identifier: MIT

// Package builder turns a declarative job description into one coupled IvP
// function.
//
// A job is a YAML document naming a domain, a context, a priority weight
// and a list of function specs. Each spec compiles to a Constructor:
//
//   - zaic_peak, zaic_leq, zaic_heq and zaic_vector build single-variable
//     shapes through package zaic;
//   - aof builds an objective function (package aof) and approximates it
//     with a Reflector, driven by the spec's reflector parameter string and
//     piece budget.
//
// BuildFunction runs the constructors in coupling order and folds their
// results left to right with a Coupler, each function contributing its
// coupling weight. The result is re-expressed over the job domain, its
// context is set, and its priority weight becomes pwt * relevance.
//
// A minimal job:
//
//	context: transit
//	domain: "course,0,359,360:speed,0,4,5"
//	pwt: 100
//	functions:
//	  - name: heading
//	    kind: zaic_peak
//	    var: course
//	    value_wrap: true
//	    summits:
//	      - {summit: 90, base_width: 90}
//	  - name: pace
//	    kind: zaic_heq
//	    var: speed
//	    summit: 3
//	    base_width: 2
//
// Options (BuilderOption) resolve into a builderConfig once per build:
// logger, compressor tolerance, reflector queue levels and the seed used
// to rate reflected functions. Option constructors panic on meaningless
// values; builds never panic.
package builder
