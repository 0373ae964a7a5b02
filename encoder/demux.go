// SPDX-License-Identifier: MIT
// Package: ivpbuild/encoder
//
// demux.go - collects interleaved packets of many functions.
//
// Design:
//   • One unit per function id, created by its first packet and keeping
//     that packet's time and source.
//   • A unit whose packets are all present moves to the ready queue in
//     arrival order of its completing packet.
//   • Safe for concurrent use.

package encoder

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Demuxed is one reassembled function string.
type Demuxed struct {
	ID     string
	Body   string
	Source string
	At     time.Time // time of the unit's first packet
}

type demuxUnit struct {
	total  int
	chunks []string
	have   []bool
	count  int
	source string
	at     time.Time
}

// Demuxer sorts packets by function id and releases complete functions.
type Demuxer struct {
	mu    sync.Mutex
	units map[string]*demuxUnit
	ready []Demuxed
}

// NewDemuxer returns an empty Demuxer.
func NewDemuxer() *Demuxer {
	return &Demuxer{units: make(map[string]*demuxUnit)}
}

// Add files one packet. A repeated index replaces the earlier chunk; a
// total differing from the unit's first packet is rejected.
func (dm *Demuxer) Add(packet string, at time.Time, source string) error {
	p, err := ParsePacket(packet)
	if err != nil {
		return fmt.Errorf("Demuxer.Add: %w", err)
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()

	u, ok := dm.units[p.ID]
	if !ok {
		u = &demuxUnit{
			total:  p.Total,
			chunks: make([]string, p.Total),
			have:   make([]bool, p.Total),
			source: source,
			at:     at,
		}
		dm.units[p.ID] = u
	}
	if p.Total != u.total {
		return fmt.Errorf("Demuxer.Add(%s): total %d, unit holds %d: %w", p.ID, p.Total, u.total, ErrIncomplete)
	}
	ix := p.Index - 1
	if !u.have[ix] {
		u.have[ix] = true
		u.count++
	}
	u.chunks[ix] = p.Chunk
	if u.count == u.total {
		dm.ready = append(dm.ready, Demuxed{ID: p.ID, Body: strings.Join(u.chunks, ""), Source: u.source, At: u.at})
		delete(dm.units, p.ID)
	}
	return nil
}

// Next pops the oldest complete function.
func (dm *Demuxer) Next() (Demuxed, bool) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if len(dm.ready) == 0 {
		return Demuxed{}, false
	}
	d := dm.ready[0]
	dm.ready = dm.ready[1:]
	return d, true
}

// Pending returns the number of incomplete units.
func (dm *Demuxer) Pending() int {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	return len(dm.units)
}

// RemoveStale drops incomplete units whose first packet is older than
// maxAge at now, and returns how many were dropped. Units added with a zero
// time never go stale.
func (dm *Demuxer) RemoveStale(now time.Time, maxAge time.Duration) int {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	n := 0
	for id, u := range dm.units {
		if !u.at.IsZero() && now.Sub(u.at) > maxAge {
			delete(dm.units, id)
			n++
		}
	}
	return n
}
