// SPDX-License-Identifier: MIT
// Package: ivpbuild/archive
//
// errors.go - sentinel errors for the archive package.

package archive

import "errors"

// ErrNotFound indicates an id with no stored function.
var ErrNotFound = errors.New("archive: function not found")

// ErrClosed indicates use of a closed store.
var ErrClosed = errors.New("archive: store closed")
