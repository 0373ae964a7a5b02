// SPDX-License-Identifier: MIT
// Package: ivpbuild/encoder
//
// mk.go - MK encoding and decoding of whole functions.
//
// Contract:
//   • Decode(Encode(f)) reproduces f's domain, context, priority weight,
//     gel box, piece bounds and edge inclusivity exactly, and its weights
//     to four decimals.
//   • Weights round half away from zero at the fourth decimal; a weight
//     rounding to zero is written "0".

package encoder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

const (
	weightScale = 10000
	exclusive   = 'X'
)

// FormatWeight renders w with at most four decimals and no trailing zeros.
func FormatWeight(w float64) string {
	neg := w < 0
	if neg {
		w = -w
	}
	iv := int64(w*weightScale + 0.5)
	if iv == 0 {
		return "0"
	}
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatInt(iv/weightScale, 10))
	if lower := iv % weightScale; lower != 0 {
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(fmt.Sprintf("%04d", lower), "0"))
	}
	return sb.String()
}

func writeBound(sb *strings.Builder, v int, inclusive bool) {
	if !inclusive {
		sb.WriteByte(exclusive)
	}
	sb.WriteString(strconv.Itoa(v))
	sb.WriteByte(',')
}

// Encode renders f in the MK format.
// Complexity: O(pieces * (dim + weights)).
func Encode(f *core.Function) (string, error) {
	if f.Released() {
		return "", fmt.Errorf("Encode: %w", core.ErrNilFunction)
	}
	pm := f.PDMap()
	for _, b := range pm.Boxes() {
		for _, w := range b.Weights() {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return "", fmt.Errorf("Encode(%s): %w", f.Context(), ErrNonFinite)
			}
		}
	}
	dim, deg := pm.Dim(), pm.Degree()
	ctx := f.Context()

	var sb strings.Builder
	sb.Grow(64 + len(ctx) + pm.Size()*(2*dim+deg*dim+1)*8)
	fmt.Fprintf(&sb, "H,%d,%s,%d,%d,%d,%s,D,%s,G,",
		len(ctx), ctx, dim, pm.Size(), deg,
		domain.CompactFloat(f.PWT()), pm.Domain().Format(";", ":"))

	gel := pm.GelBox()
	if gel == nil {
		gel = pm.DefaultGelBox()
	}
	for d := 0; d < dim; d++ {
		sb.WriteString(strconv.Itoa(gel.Hi(d)))
		sb.WriteByte(',')
	}

	sb.WriteString("F,")
	for i, b := range pm.Boxes() {
		if i > 0 {
			sb.WriteByte(',')
		}
		for d := 0; d < dim; d++ {
			writeBound(&sb, b.Lo(d), b.Bd(d, 0))
			writeBound(&sb, b.Hi(d), b.Bd(d, 1))
		}
		for j := 0; j < b.Wtc(); j++ {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(FormatWeight(b.Wt(j)))
		}
	}
	return sb.String(), nil
}

// header holds the fields ahead of the piece list.
type header struct {
	ctx           string
	dim, pcs, deg int
	pwt           float64
	dom           domain.Domain
	gel           *core.Box
}

func formatErr(what string, args ...any) error {
	return fmt.Errorf("Decode: %s: %w", fmt.Sprintf(what, args...), ErrFormat)
}

// splitContext peels "H,<len>,<ctx>," and returns the context and the rest.
// The length prefix lets the context hold commas.
func splitContext(s string) (string, string, error) {
	if !strings.HasPrefix(s, "H,") {
		return "", "", formatErr("missing H header")
	}
	rest := s[2:]
	i := strings.IndexByte(rest, ',')
	if i < 0 {
		return "", "", formatErr("context length")
	}
	n, err := strconv.Atoi(rest[:i])
	if err != nil || n < 0 {
		return "", "", formatErr("context length %q", rest[:i])
	}
	rest = rest[i+1:]
	if len(rest) < n+1 || rest[n] != ',' {
		return "", "", formatErr("context of length %d", n)
	}
	return rest[:n], rest[n+1:], nil
}

func parseHeader(ctx string, toks []string) (header, []string, error) {
	h := header{ctx: ctx}
	if len(toks) < 7 {
		return h, nil, formatErr("short header")
	}
	var err error
	for i, dst := range []*int{&h.dim, &h.pcs, &h.deg} {
		if *dst, err = strconv.Atoi(toks[i]); err != nil || *dst < 0 {
			return h, nil, formatErr("header field %d %q", i+1, toks[i])
		}
	}
	if h.deg > 1 {
		return h, nil, formatErr("degree %d", h.deg)
	}
	if h.pwt, err = strconv.ParseFloat(toks[3], 64); err != nil {
		return h, nil, formatErr("priority weight %q", toks[3])
	}
	if toks[4] != "D" {
		return h, nil, formatErr("missing D section")
	}
	if h.dom, err = domain.Parse(strings.ReplaceAll(toks[5], ";", ",")); err != nil {
		return h, nil, fmt.Errorf("Decode: %w: %w", err, ErrFormat)
	}
	if h.dom.Size() != h.dim {
		return h, nil, formatErr("domain of %d variables for dim %d", h.dom.Size(), h.dim)
	}
	if toks[6] != "G" || len(toks) < 8+h.dim {
		return h, nil, formatErr("missing G section")
	}
	h.gel = core.NewBox(h.dim, 0)
	for d := 0; d < h.dim; d++ {
		v, err := strconv.Atoi(toks[7+d])
		if err != nil {
			return h, nil, formatErr("gel %q", toks[7+d])
		}
		h.gel.SetPts(d, 0, v)
	}
	if toks[7+h.dim] != "F" {
		return h, nil, formatErr("missing F section")
	}
	return h, toks[8+h.dim:], nil
}

func parseBound(tok string) (int, bool, error) {
	inclusive := true
	if strings.HasPrefix(tok, string(exclusive)) {
		inclusive = false
		tok = tok[1:]
	}
	v, err := strconv.Atoi(tok)
	return v, inclusive, err
}

// Decode parses an MK string back into a Function.
// Complexity: O(len(s)).
func Decode(s string) (*core.Function, error) {
	ctx, rest, err := splitContext(s)
	if err != nil {
		return nil, err
	}
	h, body, err := parseHeader(ctx, strings.Split(rest, ","))
	if err != nil {
		return nil, err
	}
	if h.pcs == 0 && len(body) == 1 && body[0] == "" {
		body = nil
	}
	wtc := h.deg*h.dim + 1
	stride := 2*h.dim + wtc
	if len(body) != h.pcs*stride {
		return nil, formatErr("%d piece fields for %d pieces of %d", len(body), h.pcs, stride)
	}

	boxes := make([]*core.Box, 0, h.pcs)
	for p := 0; p < h.pcs; p++ {
		toks := body[p*stride : (p+1)*stride]
		b := core.NewBox(h.dim, h.deg)
		for d := 0; d < h.dim; d++ {
			lo, loIn, err1 := parseBound(toks[2*d])
			hi, hiIn, err2 := parseBound(toks[2*d+1])
			if err1 != nil || err2 != nil || lo > hi || lo < 0 || hi >= h.dom.Points(d) {
				return nil, formatErr("piece %d bounds %q,%q", p, toks[2*d], toks[2*d+1])
			}
			b.SetPts(d, lo, hi)
			b.SetBds(d, loIn, hiIn)
		}
		for j := 0; j < wtc; j++ {
			w, err := strconv.ParseFloat(toks[2*h.dim+j], 64)
			if err != nil {
				return nil, formatErr("piece %d weight %q", p, toks[2*h.dim+j])
			}
			b.SetWt(j, w)
		}
		boxes = append(boxes, b)
	}

	pm := core.NewPDMap(h.dom, h.deg, boxes...)
	if err := pm.SetGelBox(h.gel); err != nil {
		return nil, fmt.Errorf("Decode: %w: %w", err, ErrFormat)
	}
	pm.UpdateGrid()
	f := core.NewFunction(pm)
	f.SetPWT(h.pwt)
	f.SetContext(h.ctx)
	return f, nil
}
