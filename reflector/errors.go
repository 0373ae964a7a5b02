// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// errors.go - sentinel errors for the reflector package.
//
// Error policy:
//   • Parameter errors wrap ErrParam with the same text that is recorded as
//     a warning.
//   • Stage failures that only skip a refinement are warnings, not errors.

package reflector

import "errors"

// ErrNilEvaluator indicates New without an evaluator, or over an empty domain.
var ErrNilEvaluator = errors.New("reflector: nil evaluator or empty domain")

// ErrParam indicates a rejected parameter name or value.
var ErrParam = errors.New("reflector: bad parameter")

// ErrNoPieces indicates that the uniform stage produced no pieces.
var ErrNoPieces = errors.New("reflector: no uniform pieces")

// ErrNotCreated indicates ExtractFunction without a successful Create.
var ErrNotCreated = errors.New("reflector: nothing created")

// ErrRegion indicates a refine region or piece that does not fit the domain.
var ErrRegion = errors.New("reflector: refine region out of domain")

// ErrNoSamples indicates a rating request without samples or without a map.
var ErrNoSamples = errors.New("reflector: nothing to rate")
