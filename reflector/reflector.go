// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// reflector.go - the Reflector: parameters, Create and extraction.
//
// Contract:
//   • Parameters are strings, set one at a time with SetParam or as a
//     "name=value#name=value" list with SetParams. Names and values are
//     case insensitive.
//   • refine_region and refine_piece must alternate, region first. A bad
//     refine_piece also drops the region it was paired with.
//   • Every rejected parameter is recorded as a warning and returned as an
//     error wrapping ErrParam.
//   • ExtractFunction hands the piece map over to the returned Function;
//     the Reflector is left empty until the next Create.

package reflector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

const (
	defaultUniformAmount  = 1
	defaultAutoPeakMaxPcs = -1

	warningSep = " # "
)

// Reflector approximates an Evaluator with a piecewise linear function.
type Reflector struct {
	cfg  config
	eval Evaluator
	dom  domain.Domain
	reg  *Regressor
	pm   *core.PDMap

	uniformAmount  int
	uniformPiece   *core.Box
	uniformGrid    *core.Box
	refineRegions  []*core.Box
	refinePieces   []*core.Box
	refinePoints   []*core.Box
	smartAmount    int
	smartPercent   int
	smartThresh    float64
	autoPeak       bool
	autoPeakMaxPcs int

	pieceStr string
	warnings []string
}

// New returns a Reflector sampling eval.
func New(eval Evaluator, opts ...Option) (*Reflector, error) {
	if eval == nil || eval.Domain().Size() == 0 {
		return nil, ErrNilEvaluator
	}
	cfg := newConfig(opts...)
	return &Reflector{
		cfg:            cfg,
		eval:           eval,
		dom:            eval.Domain(),
		reg:            NewRegressor(eval, cfg.degree, cfg.strict),
		uniformAmount:  defaultUniformAmount,
		autoPeakMaxPcs: defaultAutoPeakMaxPcs,
	}, nil
}

// Domain returns the domain of the evaluator.
func (r *Reflector) Domain() domain.Domain { return r.dom }

// Regressor returns the regressor used to fit pieces.
func (r *Reflector) Regressor() *Regressor { return r.reg }

// PDMap returns the map built by the last Create, or nil.
func (r *Reflector) PDMap() *core.PDMap { return r.pm }

// Warnings returns every warning recorded so far joined by " # ".
func (r *Reflector) Warnings() string { return strings.Join(r.warnings, warningSep) }

// UniformPieceString describes the last Create:
// "count:N, x:len, ..., dref_pcs:D, sref_pcs:S".
func (r *Reflector) UniformPieceString() string { return r.pieceStr }

func (r *Reflector) warn(msg string) {
	r.warnings = append(r.warnings, msg)
	r.cfg.logger.Warn("reflector", "warning", msg)
}

func (r *Reflector) reject(msg string) error {
	r.warn(msg)
	return fmt.Errorf("%s: %w", msg, ErrParam)
}

// edgeBox turns a parsed point box into the cell [0, idx] per dimension.
func edgeBox(pt *core.Box) *core.Box {
	b := core.NewBox(pt.Dim(), 0)
	for d := 0; d < pt.Dim(); d++ {
		b.SetPts(d, 0, pt.Hi(d))
	}
	return b
}

func parseBool(v string) (bool, bool) {
	switch v {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseCount reads a number and truncates it toward zero.
func parseCount(v string) (int, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// SetParam sets one parameter.
//
//	strict_range                  true|false
//	uniform_amount, uniform_amt   pieces for the uniform stage, >= 1
//	uniform_piece, uniform_box    uniform cell as a point box of extents
//	uniform_grid                  gel box of the grid index, same form
//	refine_region, focus_region   region box, paired with the next piece
//	refine_piece, focus_box       cell used inside the last region
//	refine_clear                  drop every region and piece
//	refine_point                  isolate a single grid point
//	smart_amount, priority_amt    smart splits, >= 0
//	smart_percent                 smart splits as percent of pieces, >= 0
//	smart_thresh, priority_thresh stop splitting at this error, >= 0
//	auto_peak                     true|false
//	auto_peak_max_pcs             bound on autopeak splits, > 0
func (r *Reflector) SetParam(name, value string) error {
	param := strings.ToLower(strings.TrimSpace(name))
	value = strings.ToLower(strings.TrimSpace(value))

	switch param {
	case "strict_range":
		v, ok := parseBool(value)
		if !ok {
			return r.reject("strict_range value must be true/false")
		}
		r.reg.SetStrictRange(v)

	case "uniform_amount", "uniform_amt":
		n, ok := parseCount(value)
		if !ok {
			return r.reject(param + " value must be numerical")
		}
		if n < 1 {
			return r.reject(param + " value must be >= 1")
		}
		r.uniformAmount = n

	case "uniform_piece", "uniform_box", "uniform_grid":
		b, err := core.ParsePointBox(value, r.dom)
		if err != nil {
			return r.reject(param + " value is ill-defined")
		}
		if param == "uniform_grid" {
			r.uniformGrid = edgeBox(b)
		} else {
			r.uniformPiece = edgeBox(b)
		}

	case "refine_region", "focus_region":
		if len(r.refineRegions) != len(r.refinePieces) {
			return r.reject(param + " and refine_piece must be added in pairs")
		}
		b, err := core.ParseRegionBox(value, r.dom)
		if err != nil {
			return r.reject(param + " value is ill-defined")
		}
		r.refineRegions = append(r.refineRegions, b)

	case "refine_piece", "focus_box":
		if len(r.refineRegions)-len(r.refinePieces) != 1 {
			return r.reject(param + " and refine_region must be added in pairs")
		}
		b, err := core.ParsePointBox(value, r.dom)
		if err != nil {
			r.refineRegions = r.refineRegions[:len(r.refineRegions)-1]
			return r.reject(param + " value is ill-defined")
		}
		r.refinePieces = append(r.refinePieces, edgeBox(b))

	case "refine_clear":
		r.refineRegions, r.refinePieces = nil, nil

	case "refine_point":
		b, err := core.ParsePointBox(value, r.dom)
		if err != nil || !b.IsPtBox() {
			return r.reject(param + " value is ill-defined")
		}
		r.refinePoints = append(r.refinePoints, b)

	case "smart_amount", "priority_amt":
		n, ok := parseCount(value)
		if !ok {
			return r.reject(param + " value must be numerical")
		}
		if n < 0 {
			return r.reject(param + " value must be >= 0")
		}
		r.smartAmount = n

	case "smart_percent":
		n, ok := parseCount(value)
		if !ok {
			return r.reject(param + " value must be numerical")
		}
		if n < 0 {
			return r.reject(param + " value must be >= 0")
		}
		r.smartPercent = n

	case "smart_thresh", "priority_thresh":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return r.reject(param + " value must be numerical")
		}
		if f < 0 {
			return r.reject(param + " value must be >= 0")
		}
		r.smartThresh = f

	case "auto_peak":
		v, ok := parseBool(value)
		if !ok {
			return r.reject("auto_peak value must be true/false")
		}
		r.autoPeak = v

	case "auto_peak_max_pcs":
		n, ok := parseCount(value)
		if !ok {
			return r.reject(param + " value must be numerical")
		}
		if n <= 0 {
			return r.reject(param + " value must be > 0")
		}
		r.autoPeakMaxPcs = n

	default:
		return r.reject(param + ": undefined parameter")
	}
	return nil
}

// SetParams applies a "name=value#name=value" list. Every pair is applied;
// the returned error joins the failures.
func (r *Reflector) SetParams(list string) error {
	list = strings.TrimSpace(list)
	if list == "" {
		return r.reject("empty list of param/value pairs")
	}
	var errs []error
	for _, pair := range strings.Split(list, "#") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			errs = append(errs, r.reject(fmt.Sprintf("%q is not a param=value pair", pair)))
			continue
		}
		errs = append(errs, r.SetParam(kv[0], kv[1]))
	}
	return errors.Join(errs...)
}

// Create builds the piece map and returns its size. Negative arguments keep
// the values set by parameters.
//
// Steps:
//  1. uniform: tile the domain with uniform_piece, or with the cell
//     GenUnifBox picks for uniform_amount;
//  2. directed: retile each refine region with its piece, and isolate each
//     refine point;
//  3. smart: split the worst fitting pieces;
//  4. autopeak: isolate the peak when auto_peak is set.
//
// A failed directed refinement is a warning; the stage is skipped.
func (r *Reflector) Create(unif, smart int, thresh float64) (int, error) {
	r.pm, r.pieceStr = nil, ""
	if unif >= 0 {
		r.uniformAmount = unif
	}
	if smart >= 0 {
		r.smartAmount = smart
	}
	if thresh >= 0 {
		r.smartThresh = thresh
	}

	levels := 0
	if r.smartAmount > 0 || r.smartPercent > 0 {
		levels = r.cfg.levels
	}
	q := NewPQueue(levels)

	piece := r.uniformPiece
	if piece.Null() {
		piece = GenUnifBox(r.dom, r.uniformAmount)
	}
	if piece.Null() {
		r.pieceStr = "count:0"
		return 0, fmt.Errorf("Create(uniform_amount=%d): %w", r.uniformAmount, ErrNoPieces)
	}

	// 1. uniform
	pm, err := r.stageUniform(piece, r.uniformGrid, q)
	if err != nil {
		r.pieceStr = "count:0"
		return 0, fmt.Errorf("Create: %w", err)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "count:%d", pm.Size())
	for d := 0; d < r.dom.Size(); d++ {
		fmt.Fprintf(&sb, ", %s:%d", r.dom.VarName(d), piece.Hi(d)+1)
	}

	// 2. directed
	before := pm.Size()
	n := min(len(r.refineRegions), len(r.refinePieces))
	for i := 0; i < n; i++ {
		next, err := r.stageDirected(pm, r.refineRegions[i], r.refinePieces[i], q)
		if err != nil {
			r.warn(fmt.Sprintf("refine_region %d skipped: %v", i, err))
			continue
		}
		pm = next
	}
	for _, pt := range r.refinePoints {
		next, err := r.stageDirected(pm, pt, core.NewPointBox(make([]int, pt.Dim())...), q)
		if err != nil {
			r.warn(fmt.Sprintf("refine_point %s skipped: %v", pt, err))
			continue
		}
		pm = next
	}
	fmt.Fprintf(&sb, ", dref_pcs:%d", pm.Size()-before)

	// 3. smart
	before = pm.Size()
	amount := r.smartAmount
	if pct := pm.Size() * r.smartPercent / 100; pct > amount {
		amount = pct
	}
	r.stageSmart(pm, q, amount, r.smartThresh)
	fmt.Fprintf(&sb, ", sref_pcs:%d", pm.Size()-before)

	// 4. autopeak
	if r.autoPeak {
		r.stageAutoPeak(pm, r.autoPeakMaxPcs)
	}

	pm.UpdateGrid()
	r.pm, r.pieceStr = pm, sb.String()
	r.cfg.logger.Debug("reflector created",
		"pieces", pm.Size(), "uniform", r.pieceStr, "auto_peak", r.autoPeak)
	return pm.Size(), nil
}

// ExtractFunction wraps the piece map in a Function, normalized to
// [0, 100] when normalize is set, and clears the Reflector's map.
func (r *Reflector) ExtractFunction(normalize bool) (*core.Function, error) {
	if r.pm == nil {
		return nil, ErrNotCreated
	}
	pm := r.pm
	r.pm = nil
	if normalize {
		pm.Normalize(0, 100)
	}
	return core.NewFunction(pm), nil
}

// Clear drops a map that was created but never extracted.
func (r *Reflector) Clear() { r.pm = nil }
