// SPDX-License-Identifier: MIT
// Package: ivpbuild/encoder
//
// packet.go - splitting encoded functions into packets and joining them.
//
// Contract:
//   • Packetize reserves len(id)+50 bytes of every packet for its header,
//     so a body holds packetSize-len(id)-50 bytes.
//   • It always emits len(whole)/body + 1 packets; the last one may carry
//     an empty chunk.
//   • No function spans more than MaxPackets packets; headers claiming more
//     are malformed.

package encoder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	packetPrefix = "P,"
	headerSlack  = 50
)

// MaxPackets bounds the packet count of one function.
const MaxPackets = 1 << 16

// NewFunctionID returns a fresh identifier for the packets of one function.
func NewFunctionID() string { return uuid.New().String() }

// Packetize splits whole into packets no longer than packetSize.
func Packetize(whole, id string, packetSize int) ([]string, error) {
	if id == "" || strings.Contains(id, ",") {
		return nil, fmt.Errorf("Packetize(id %q): %w", id, ErrPacket)
	}
	body := packetSize - (len(id) + headerSlack)
	if body <= 0 {
		return nil, fmt.Errorf("Packetize(size %d, id %q): %w", packetSize, id, ErrPacketSize)
	}
	n := len(whole)/body + 1
	if n > MaxPackets {
		return nil, fmt.Errorf("Packetize(size %d): %d packets exceed %d: %w", packetSize, n, MaxPackets, ErrPacketSize)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lo := min(i*body, len(whole))
		hi := min(lo+body, len(whole))
		out = append(out, packetPrefix+id+","+strconv.Itoa(n)+","+strconv.Itoa(i+1)+","+whole[lo:hi])
	}
	return out, nil
}

// Packet is one parsed packet.
type Packet struct {
	ID    string
	Total int
	Index int // 1-based
	Chunk string
}

// ParsePacket splits a packet into its fields.
func ParsePacket(s string) (Packet, error) {
	if !strings.HasPrefix(s, packetPrefix) {
		return Packet{}, fmt.Errorf("ParsePacket: missing prefix: %w", ErrPacket)
	}
	f := strings.SplitN(s[len(packetPrefix):], ",", 4)
	if len(f) != 4 || f[0] == "" {
		return Packet{}, fmt.Errorf("ParsePacket: %d fields: %w", len(f), ErrPacket)
	}
	total, err1 := strconv.Atoi(f[1])
	index, err2 := strconv.Atoi(f[2])
	if err1 != nil || err2 != nil || total < 1 || total > MaxPackets || index < 1 || index > total {
		return Packet{}, fmt.Errorf("ParsePacket(%s): index %q of %q: %w", f[0], f[2], f[1], ErrPacket)
	}
	return Packet{ID: f[0], Total: total, Index: index, Chunk: f[3]}, nil
}

// Reassemble joins the packets of one function in index order. The packets
// may arrive in any order but must share one id and total, and cover every
// index exactly once.
func Reassemble(packets []string) (string, error) {
	if len(packets) == 0 {
		return "", fmt.Errorf("Reassemble: no packets: %w", ErrIncomplete)
	}
	parsed := make([]Packet, 0, len(packets))
	for _, s := range packets {
		p, err := ParsePacket(s)
		if err != nil {
			return "", fmt.Errorf("Reassemble: %w", err)
		}
		parsed = append(parsed, p)
	}
	first := parsed[0]
	if len(parsed) != first.Total {
		return "", fmt.Errorf("Reassemble(%s): %d of %d packets: %w", first.ID, len(parsed), first.Total, ErrIncomplete)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Index < parsed[j].Index })
	var sb strings.Builder
	for i, p := range parsed {
		if p.ID != first.ID || p.Total != first.Total || p.Index != i+1 {
			return "", fmt.Errorf("Reassemble(%s): packet %s/%d/%d: %w", first.ID, p.ID, p.Index, p.Total, ErrIncomplete)
		}
		sb.WriteString(p.Chunk)
	}
	return sb.String(), nil
}
