// SPDX-License-Identifier: MIT
// Package: ivpbuild/domain
//
// parse.go - textual form of a Domain.
//
// Grammar:
//
//	domain := var (":" var)*
//	var    := name "," low "," high "," points
//
// Numbers are written in the shortest form that round-trips ("0", "2.5").

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a Domain from "name,low,high,points:name,low,high,points".
// An empty (blank) string yields an empty domain.
func Parse(s string) (Domain, error) {
	var d Domain
	s = strings.TrimSpace(s)
	if s == "" {
		return d, nil
	}
	for _, chunk := range strings.Split(s, ":") {
		fields := strings.Split(chunk, ",")
		if len(fields) != 4 {
			return Domain{}, fmt.Errorf("Parse(%q): want 4 fields, got %d: %w", chunk, len(fields), ErrSyntax)
		}
		low, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return Domain{}, fmt.Errorf("Parse(%q): low: %w", chunk, ErrSyntax)
		}
		high, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return Domain{}, fmt.Errorf("Parse(%q): high: %w", chunk, ErrSyntax)
		}
		pts, err := strconv.Atoi(strings.TrimSpace(fields[3]))
		if err != nil {
			return Domain{}, fmt.Errorf("Parse(%q): points: %w", chunk, ErrSyntax)
		}
		if err := d.AddVar(fields[0], low, high, pts); err != nil {
			return Domain{}, err
		}
	}
	return d, nil
}

// MustParse is Parse that panics on error. Intended for tests and examples.
func MustParse(s string) Domain {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the domain in the Parse format.
func (d Domain) String() string {
	return d.Format(",", ":")
}

// Format renders the domain with custom field and variable separators.
// The MK wire format uses Format(";", ":").
func (d Domain) Format(fieldSep, varSep string) string {
	var sb strings.Builder
	for i, v := range d.vars {
		if i > 0 {
			sb.WriteString(varSep)
		}
		sb.WriteString(v.Name)
		sb.WriteString(fieldSep)
		sb.WriteString(CompactFloat(v.Low))
		sb.WriteString(fieldSep)
		sb.WriteString(CompactFloat(v.High))
		sb.WriteString(fieldSep)
		sb.WriteString(strconv.Itoa(v.Points))
	}
	return sb.String()
}

// CompactFloat formats f without trailing zeros ("2", "2.5", "-0.125").
func CompactFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
