// SPDX-License-Identifier: MIT

// Package domain describes the decision space of an IvP function: an ordered
// list of named variables, each discretized into a fixed number of evenly
// spaced points between a low and a high value.
//
// A Domain is a small value type. Every derivation (Sub, Union) returns a new
// Domain and never mutates its source, so domains may be shared freely between
// builders, functions and goroutines once constructed.
//
// String form (used by configuration files and the MK wire format):
//
//	course,0,359,360:speed,0,5,26
//
// Each variable is "name,low,high,points"; variables are separated by ':'.
//
// Discretization:
//
//	delta(i) = (high-low)/(points-1)       (0 when points == 1)
//	Val(i,j) = low + j*delta(i)
//
// DiscreteVal inverts Val with one of three snap policies (floor, ceil,
// nearest). For x:0:20:41 the value 2.1 maps to 4 (floor), 5 (ceil) and 4
// (nearest).
package domain
