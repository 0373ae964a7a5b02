// SPDX-License-Identifier: MIT
// Package: ivpbuild/zaic
//
// errors.go - sentinel errors for the ZAIC builders.
//
// Error policy:
//   • Setters return sentinels wrapped with the offending value.
//   • Fatal setter errors also flip the builder into the not-ok state that
//     ExtractFunction reports as ErrNotOK.

package zaic

import "errors"

// ErrUnknownVar indicates the variable is not in the given domain.
var ErrUnknownVar = errors.New("zaic: variable not in domain")

// ErrIndex indicates a summit index out of range.
var ErrIndex = errors.New("zaic: summit index out of range")

// ErrMinMax indicates minutil >= maxutil.
var ErrMinMax = errors.New("zaic: minutil must be below maxutil")

// ErrBadWidth indicates a negative base width where it is fatal (LEQ/HEQ).
var ErrBadWidth = errors.New("zaic: negative width")

// ErrBadVector indicates mismatched, empty or unordered vectors.
var ErrBadVector = errors.New("zaic: invalid value vectors")

// ErrNotOK indicates ExtractFunction on a builder in the not-ok state.
var ErrNotOK = errors.New("zaic: builder not in ok state")
