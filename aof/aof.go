// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// aof.go - the AOF value, the kind enum and the parameter chain.
//
// Design:
//   • One AOF value carries its Kind and the parameter struct of that kind;
//     dispatch is a switch on the kind, never an interface hierarchy.
//   • Parameter setters are ordered handler lists returning a ParamOutcome.
//     The first handler that does not answer ParamNotMine decides.
//
// Error policy:
//   • SetParam/SetParamString wrap ErrUnknownParam or ErrInvalidParam.
//   • Initialize wraps ErrNotReady, ErrInvalidParam or ErrDegenerate.

package aof

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
)

// Kind enumerates the closed AOF family.
type Kind int

const (
	// AttractorCPA rewards closing on a contact inside a CPA band.
	AttractorCPA Kind = iota + 1
	// CutRangeCPA rewards cutting the range to a contact.
	CutRangeCPA
	// MGaussian is a base plus a sum of Gaussian components.
	MGaussian
	// Ring is a ring of utility in index space.
	Ring
	// AvoidCollision rewards keeping the CPA to a contact wide.
	AvoidCollision
	// Waypoint rewards closing on a fixed point at a desired speed.
	Waypoint
)

var kindNames = map[Kind]string{
	AttractorCPA:   "attractor_cpa",
	CutRangeCPA:    "cut_range_cpa",
	MGaussian:      "mgaussian",
	Ring:           "ring",
	AvoidCollision: "avoid_collision",
	Waypoint:       "waypoint",
}

// String returns the lower snake-case kind name used in job files.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a kind name (case and separator insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for k, name := range kindNames {
		if strings.ReplaceAll(name, "_", "") == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// ParamOutcome is the answer of one handler in a parameter chain.
type ParamOutcome int

const (
	// ParamNotMine passes the name on to the next handler.
	ParamNotMine ParamOutcome = iota
	// ParamOK accepts and stores the value.
	ParamOK
	// ParamInvalid claims the name but rejects the value.
	ParamInvalid
)

type numHandler func(a *AOF, name string, v float64) ParamOutcome

type strHandler func(a *AOF, name, v string) ParamOutcome

// AOF is one member of the objective-function family.
type AOF struct {
	kind  Kind
	dom   domain.Domain
	ready bool

	kin   kinematics
	attr  attractorParams
	cut   cutRangeParams
	gauss gaussParams
	ring  ringParams
	avoid avoidParams
	wpt   waypointParams
}

// New returns an AOF of the given kind over dom with the kind's defaults.
func New(kind Kind, dom domain.Domain) (*AOF, error) {
	a := &AOF{kind: kind, dom: dom}
	switch kind {
	case AttractorCPA:
		a.kin = newKinematics(dom, defaultAttractorPatience)
	case CutRangeCPA:
		a.kin = newKinematics(dom, defaultCutRangePatience)
	case MGaussian:
		a.gauss = gaussParams{}
	case Ring:
		a.ring = newRingParams(dom)
	case AvoidCollision:
		a.kin = newKinematics(dom, 0)
	case Waypoint:
		a.wpt = newWaypointParams(dom)
	default:
		return nil, fmt.Errorf("New(%d): %w", int(kind), ErrUnknownKind)
	}
	return a, nil
}

// Kind reports the AOF kind.
func (a *AOF) Kind() Kind { return a.kind }

// Domain returns the domain the AOF is defined over.
func (a *AOF) Domain() domain.Domain { return a.dom }

// Ready reports whether the last Initialize succeeded and no parameter has
// changed since.
func (a *AOF) Ready() bool { return a.ready }

func (a *AOF) numChain() []numHandler {
	switch a.kind {
	case AttractorCPA:
		return []numHandler{setKinematic, setAttractor}
	case CutRangeCPA:
		return []numHandler{setKinematic, setCutRange}
	case MGaussian:
		return []numHandler{setGaussNum}
	case Ring:
		return []numHandler{setRingNum}
	case AvoidCollision:
		return []numHandler{setKinematic, setAvoid}
	case Waypoint:
		return []numHandler{setWaypoint}
	}
	return nil
}

func (a *AOF) strChain() []strHandler {
	switch a.kind {
	case MGaussian:
		return []strHandler{setGaussStr}
	case Ring:
		return []strHandler{setRingStr}
	}
	return nil
}

// SetParam routes a numeric parameter through the kind's handler chain.
// Names are case insensitive.
func (a *AOF) SetParam(name string, v float64) error {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, h := range a.numChain() {
		switch h(a, key, v) {
		case ParamOK:
			a.ready = false
			return nil
		case ParamInvalid:
			return fmt.Errorf("SetParam(%s=%v): %w", key, v, ErrInvalidParam)
		}
	}
	return fmt.Errorf("SetParam(%s): %w", key, ErrUnknownParam)
}

// SetParamString routes a string parameter through the kind's string chain.
// A name no string handler claims is retried as a numeric parameter when the
// value parses as a number, so job files may give every value as text.
func (a *AOF) SetParamString(name, v string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	val := strings.TrimSpace(v)
	for _, h := range a.strChain() {
		switch h(a, key, val) {
		case ParamOK:
			a.ready = false
			return nil
		case ParamInvalid:
			return fmt.Errorf("SetParamString(%s=%q): %w", key, val, ErrInvalidParam)
		}
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return a.SetParam(key, f)
	}
	return fmt.Errorf("SetParamString(%s): %w", key, ErrUnknownParam)
}

// Initialize validates the parameters and precomputes evaluation state.
func (a *AOF) Initialize() error {
	a.ready = false
	var err error
	switch a.kind {
	case AttractorCPA:
		err = a.initAttractor()
	case CutRangeCPA:
		err = a.initCutRange()
	case MGaussian:
		err = a.initGauss()
	case Ring:
		err = a.initRing()
	case AvoidCollision:
		err = a.initAvoid()
	case Waypoint:
		err = a.initWaypoint()
	default:
		err = ErrUnknownKind
	}
	if err != nil {
		return fmt.Errorf("Initialize(%s): %w", a.kind, err)
	}
	a.ready = true
	return nil
}

// EvalPoint evaluates the objective at native values given in domain order.
// It returns 0 before a successful Initialize or for a short vector.
func (a *AOF) EvalPoint(vals []float64) float64 {
	if !a.ready || len(vals) < a.dom.Size() {
		return 0
	}
	switch a.kind {
	case AttractorCPA:
		return a.evalAttractor(vals)
	case CutRangeCPA:
		return a.evalCutRange(vals)
	case MGaussian:
		return a.evalGauss(vals)
	case Ring:
		return a.evalRing(a.indexCoords(vals))
	case AvoidCollision:
		return a.evalAvoid(vals)
	case Waypoint:
		return a.evalWaypoint(vals)
	}
	return 0
}

// EvalBox evaluates the objective at the low corner of b, converting the
// grid indices to native values.
func (a *AOF) EvalBox(b *core.Box) float64 {
	if !a.ready || b.Null() || b.Dim() != a.dom.Size() {
		return 0
	}
	if a.kind == Ring {
		idx := make([]float64, b.Dim())
		for d := range idx {
			idx[d] = float64(b.Lo(d))
		}
		return a.evalRing(idx)
	}
	vals := make([]float64, b.Dim())
	for d := range vals {
		vals[d], _ = a.dom.Val(d, b.Lo(d))
	}
	return a.EvalPoint(vals)
}

// indexCoords maps native values to fractional grid indices.
func (a *AOF) indexCoords(vals []float64) []float64 {
	idx := make([]float64, a.dom.Size())
	for d := range idx {
		if delta := a.dom.Delta(d); delta > 0 {
			idx[d] = (vals[d] - a.dom.Low(d)) / delta
		}
	}
	return idx
}
