// SPDX-License-Identifier: MIT
// Package: ivpbuild/core
//
// boxstr.go - point and region boxes from human-entered strings.
//
// Grammar:
//
//	box    := [preface "@"] entry ("," entry)*
//	entry  := name ":" value | name ":" low ":" high | name ":" "all"
//
// Prefaces are "discrete" or "native" ("float" is accepted as a synonym of
// native). Names and keywords are case insensitive. Every domain variable
// must appear; unknown names are ignored.

package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/ivpbuild/domain"
)

const (
	prefaceDiscrete = "discrete"
	prefaceNative   = "native"
	prefaceFloat    = "float"
	keywordAll      = "all"
)

// splitPreface separates "preface @ body". A missing preface returns "".
func splitPreface(s string) (preface, body string, err error) {
	parts := strings.Split(s, "@")
	switch len(parts) {
	case 1:
		return "", strings.TrimSpace(parts[0]), nil
	case 2:
		p := strings.ToLower(strings.TrimSpace(parts[0]))
		if p == prefaceFloat {
			p = prefaceNative
		}
		if p != prefaceDiscrete && p != prefaceNative {
			return "", "", fmt.Errorf("preface %q: %w", p, ErrBoxSyntax)
		}
		return p, strings.TrimSpace(parts[1]), nil
	default:
		return "", "", fmt.Errorf("%q: %w", s, ErrBoxSyntax)
	}
}

// boxEntries maps lowercased variable names to their value fields.
func boxEntries(body string) map[string][]string {
	out := make(map[string][]string)
	for _, item := range strings.Split(body, ",") {
		fields := strings.Split(strings.TrimSpace(item), ":")
		for i := range fields {
			fields[i] = strings.ToLower(strings.TrimSpace(fields[i]))
		}
		if len(fields) >= 2 && fields[0] != "" {
			out[fields[0]] = fields[1:]
		}
	}
	return out
}

// ParsePointBox reads a point box over dom.
//
//	"discrete @ x:4, y:3"     extents: index = extent-1, clipped to points
//	"native @ x:12.85, y:7.4" nearest grid point of each value
//	"x:12.85, y:all"          no preface means native; all is the high value
//
// Discrete extents must be positive.
func ParsePointBox(s string, dom domain.Domain) (*Box, error) {
	preface, body, err := splitPreface(s)
	if err != nil {
		return nil, fmt.Errorf("ParsePointBox: %w", err)
	}
	if body == "" || dom.Size() == 0 {
		return nil, fmt.Errorf("ParsePointBox(%q): empty: %w", s, ErrBoxSyntax)
	}
	entries := boxEntries(body)
	b := NewBox(dom.Size(), 0)
	for d := 0; d < dom.Size(); d++ {
		name := strings.ToLower(dom.VarName(d))
		fields, ok := entries[name]
		if !ok || len(fields) != 1 {
			return nil, fmt.Errorf("ParsePointBox(%q): variable %q: %w", s, name, ErrBoxSyntax)
		}
		var idx int
		if preface == prefaceDiscrete {
			extent, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("ParsePointBox(%q): %q: %w", s, fields[0], ErrBoxSyntax)
			}
			if extent <= 0 {
				return nil, fmt.Errorf("ParsePointBox(%q): extent %d: %w", s, extent, ErrBoxRange)
			}
			if pts := dom.Points(d); extent > pts {
				extent = pts
			}
			idx = extent - 1
		} else {
			val := dom.High(d)
			if fields[0] != keywordAll {
				val, err = strconv.ParseFloat(fields[0], 64)
				if err != nil {
					return nil, fmt.Errorf("ParsePointBox(%q): %q: %w", s, fields[0], ErrBoxSyntax)
				}
			}
			idx = dom.DiscreteVal(d, val, domain.SnapNearest)
		}
		b.SetPts(d, idx, idx)
	}
	return b, nil
}

// ParseRegionBox reads a region box over dom; the preface is required.
//
//	"discrete @ x:2:5, y:all"    index bounds, clipped to the domain
//	"native @ x:10:12.5, y:all"  grid points inside [10, 12.5]
//
// Bounds must satisfy low <= high and overlap the variable's range.
func ParseRegionBox(s string, dom domain.Domain) (*Box, error) {
	preface, body, err := splitPreface(s)
	if err != nil {
		return nil, fmt.Errorf("ParseRegionBox: %w", err)
	}
	if preface == "" {
		return nil, fmt.Errorf("ParseRegionBox(%q): preface required: %w", s, ErrBoxSyntax)
	}
	if body == "" || dom.Size() == 0 {
		return nil, fmt.Errorf("ParseRegionBox(%q): empty: %w", s, ErrBoxSyntax)
	}
	entries := boxEntries(body)
	b := NewBox(dom.Size(), 0)
	for d := 0; d < dom.Size(); d++ {
		name := strings.ToLower(dom.VarName(d))
		fields, ok := entries[name]
		if !ok {
			return nil, fmt.Errorf("ParseRegionBox(%q): variable %q missing: %w", s, name, ErrBoxSyntax)
		}
		if len(fields) == 1 && fields[0] == keywordAll {
			b.SetPts(d, 0, dom.Points(d)-1)
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("ParseRegionBox(%q): variable %q: %w", s, name, ErrBoxSyntax)
		}
		lo, hi, err := regionBounds(preface, fields, dom, d)
		if err != nil {
			return nil, fmt.Errorf("ParseRegionBox(%q): variable %q: %w", s, name, err)
		}
		b.SetPts(d, lo, hi)
	}
	return b, nil
}

func regionBounds(preface string, fields []string, dom domain.Domain, d int) (int, int, error) {
	if preface == prefaceDiscrete {
		lo, err1 := strconv.Atoi(fields[0])
		hi, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return 0, 0, ErrBoxSyntax
		}
		top := dom.Points(d) - 1
		if lo > hi || hi < 0 || lo > top {
			return 0, 0, ErrBoxRange
		}
		if lo < 0 {
			lo = 0
		}
		if hi > top {
			hi = top
		}
		return lo, hi, nil
	}
	lval, err1 := strconv.ParseFloat(fields[0], 64)
	hval, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, ErrBoxSyntax
	}
	if lval > hval || lval > dom.High(d) || hval < dom.Low(d) {
		return 0, 0, ErrBoxRange
	}
	lo := dom.DiscreteVal(d, lval, domain.SnapCeil)
	hi := dom.DiscreteVal(d, hval, domain.SnapFloor)
	if lo > hi {
		return 0, 0, ErrBoxRange
	}
	return lo, hi, nil
}
