// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// errors.go - sentinel errors for the AOF family.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • The offending parameter name and value are attached with %w.

package aof

import "errors"

// ErrUnknownKind indicates a kind outside the closed AOF family.
var ErrUnknownKind = errors.New("aof: unknown kind")

// ErrUnknownParam indicates that no handler of the kind claims the name.
var ErrUnknownParam = errors.New("aof: unknown parameter")

// ErrInvalidParam indicates a claimed parameter with an unacceptable value,
// or a numeric invariant violated at Initialize.
var ErrInvalidParam = errors.New("aof: invalid parameter value")

// ErrNotReady indicates that a mandatory parameter or domain variable is
// missing at Initialize.
var ErrNotReady = errors.New("aof: mandatory parameter missing")

// ErrDegenerate indicates geometry that makes the objective meaningless,
// e.g. ownship already on top of the contact.
var ErrDegenerate = errors.New("aof: degenerate configuration")
