// SPDX-License-Identifier: MIT
// Package: ivpbuild/encoder
//
// errors.go - sentinel errors for the encoder package.

package encoder

import "errors"

// ErrNonFinite indicates a function carrying a NaN or infinite weight.
var ErrNonFinite = errors.New("encoder: non-finite weight")

// ErrFormat indicates a malformed encoded function.
var ErrFormat = errors.New("encoder: malformed function string")

// ErrPacketSize indicates a packet size leaving no room for a body.
var ErrPacketSize = errors.New("encoder: packet size too small")

// ErrPacket indicates a malformed packet.
var ErrPacket = errors.New("encoder: malformed packet")

// ErrIncomplete indicates a packet set that is missing, repeating or mixing
// packets.
var ErrIncomplete = errors.New("encoder: incomplete packet set")
