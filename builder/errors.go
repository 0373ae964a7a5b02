// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with
//     errors.Is.
//   • Errors from zaic, aof, reflector and coupler pass through wrapped with
//     the method and function name, so their sentinels stay visible too.
//   • Builds never panic; option constructors do.

package builder

import (
	"errors"
	"fmt"
)

// ErrJob indicates a job document that is malformed or inconsistent:
// unknown keys, missing fields, negative weights, duplicate names.
var ErrJob = errors.New("builder: invalid job")

// ErrUnknownKind indicates a function spec whose kind is not one of the
// Kind* constants.
var ErrUnknownKind = errors.New("builder: unknown function kind")

// ErrUnknownFunction indicates a coupling order naming a function the job
// does not define.
var ErrUnknownFunction = errors.New("builder: unknown function")

// ErrConstructFailed indicates a constructor that produced no function
// without a more specific cause.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes a formatted message with the method name. Use %w
// in format to keep a sentinel matchable.
func builderErrorf(method, format string, args ...any) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}
