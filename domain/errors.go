// SPDX-License-Identifier: MIT
// Package: ivpbuild/domain
//
// errors.go - sentinel errors for the domain package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Context (variable names, offending strings) is attached with %w.

package domain

import "errors"

// ErrDuplicateVar indicates that a variable name is already present.
// Usage: if errors.Is(err, ErrDuplicateVar) { /* rename or skip */ }.
var ErrDuplicateVar = errors.New("domain: duplicate variable")

// ErrBadRange indicates low > high for a variable.
var ErrBadRange = errors.New("domain: low exceeds high")

// ErrBadPoints indicates points < 1, or a single point with low != high.
var ErrBadPoints = errors.New("domain: invalid number of points")

// ErrEmptyName indicates a variable with an empty (or blank) name.
var ErrEmptyName = errors.New("domain: empty variable name")

// ErrUnknownVar indicates that a requested variable name is absent.
// Typical origins: Sub, SubString.
var ErrUnknownVar = errors.New("domain: unknown variable")

// ErrSyntax indicates a malformed domain string.
// Typical origins: Parse.
var ErrSyntax = errors.New("domain: malformed domain string")
