// SPDX-License-Identifier: MIT
// Package: ivpbuild/coupler
//
// errors.go - sentinel errors for the coupler package.

package coupler

import "errors"

// ErrNilFunction indicates a nil or already released input.
var ErrNilFunction = errors.New("coupler: nil or released function")

// ErrDegreeMismatch indicates inputs with different piece degrees.
var ErrDegreeMismatch = errors.New("coupler: piece degrees differ")

// ErrSharedVariables indicates inputs that share a domain variable.
var ErrSharedVariables = errors.New("coupler: domains share a variable")

// ErrBadWeight indicates a non-positive coupling weight.
var ErrBadWeight = errors.New("coupler: weights must be positive")
