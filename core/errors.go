// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// errors.go - sentinel errors for the core package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers use errors.Is.
//   • Context is attached with %w at the failing method.
//   • Methods never panic on bad data; index accessors behave like slices.

package core

import "errors"

// ErrNilFunction indicates a nil or released *Function where a live one is required.
var ErrNilFunction = errors.New("core: nil or released function")

// ErrDimMismatch indicates boxes, domains or placements of different dimension.
var ErrDimMismatch = errors.New("core: dimension mismatch")

// ErrUnknownVar indicates a variable of the function that is missing from a target domain.
// Typical origins: Function.TransDomain.
var ErrUnknownVar = errors.New("core: variable not in target domain")

// ErrBadPlacement indicates an invalid or duplicated placement map.
var ErrBadPlacement = errors.New("core: invalid placement map")

// ErrBoxSyntax indicates a malformed point or region box string.
var ErrBoxSyntax = errors.New("core: malformed box string")

// ErrBoxRange indicates a box string whose values fall outside the domain.
var ErrBoxRange = errors.New("core: box string outside domain")

// ErrNotPartition indicates a PDMap whose boxes leave a grid point uncovered
// or cover one more than once.
// Typical origins: PDMap.CheckPartition.
var ErrNotPartition = errors.New("core: pieces do not partition the domain")
