// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// api.go - public entry points: Build, BuildFunction and the constructors.
//
// Contract:
//   • One orchestrator: BuildFunction runs the parts in order and folds them
//     left to right with the Coupler; Build wraps it for a Job.
//   • Every function handed to the Coupler is consumed; on failure the
//     partial result is released and nil is returned.
//   • Determinism: the same job, options and seed give identical functions.

package builder

import (
	"fmt"
	"time"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/coupler"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/katalvlaran/ivpbuild/reflector"
)

// Constructor builds one function over dom with the resolved config.
// Constructors validate their spec and return errors; they never panic.
type Constructor func(dom domain.Domain, cfg builderConfig) (*core.Function, FunctionReport, error)

// Part is one named, weighted constructor in a coupling order.
type Part struct {
	Name   string
	Weight float64
	Build  Constructor
}

// FunctionReport describes one built function.
type FunctionReport struct {
	Name          string
	Kind          string
	Pieces        int
	UniformPieces string            // reflected functions only
	Rating        *reflector.Rating // when the spec asked for one
	Warnings      []string
}

// Report describes a whole build.
type Report struct {
	Context   string
	Functions []FunctionReport
	Pieces    int
	PWT       float64
	Elapsed   time.Duration
}

// NewConstructor returns the constructor for fs's kind.
func NewConstructor(fs FunctionSpec) (Constructor, error) {
	switch fs.Kind {
	case KindZAICPeak:
		return ZAICPeak(fs), nil
	case KindZAICLEQ, KindZAICHEQ:
		return ZAICThreshold(fs), nil
	case KindZAICVector:
		return ZAICVector(fs), nil
	case KindAOF:
		return AOFReflect(fs), nil
	}
	return nil, builderErrorf(MethodBuild, "%q: %w", fs.Kind, ErrUnknownKind)
}

// BuildFunction runs parts in order over dom and couples their results
// with cp. A single part is normalized to cp's range when cp normalizes.
// The result is re-expressed over dom.
// Complexity: dominated by the constructors and by the pairwise
// intersections of coupling, O(|acc| * |next|) per fold.
func BuildFunction(dom domain.Domain, cp *coupler.Coupler, bopts []BuilderOption, parts ...Part) (*core.Function, Report, error) {
	cfg := newBuilderConfig(bopts...)
	start := time.Now()
	var rep Report
	if len(parts) == 0 {
		return nil, rep, builderErrorf(MethodBuildFunction, "no parts: %w", ErrJob)
	}
	if cp == nil {
		cp = coupler.New()
	}

	var acc *core.Function
	accW := 0.0
	for i, p := range parts {
		if p.Build == nil {
			acc.Release()
			return nil, rep, builderErrorf(MethodBuildFunction, "nil constructor at %d: %w", i, ErrConstructFailed)
		}
		f, fr, err := p.Build(dom, cfg)
		fr.Name = p.Name
		rep.Functions = append(rep.Functions, fr)
		if err != nil {
			acc.Release()
			return nil, rep, fmt.Errorf("%s(%s): %w", MethodBuildFunction, p.Name, err)
		}
		if f.Released() {
			acc.Release()
			return nil, rep, builderErrorf(MethodBuildFunction, "%s: %w", p.Name, ErrConstructFailed)
		}
		cfg.logger.Debug("function built", "name", p.Name, "kind", fr.Kind, "pieces", fr.Pieces)

		if acc == nil {
			acc, accW = f, p.Weight
			continue
		}
		acc, err = cp.CoupleWeighted(acc, f, accW, p.Weight)
		if err != nil {
			return nil, rep, fmt.Errorf("%s: couple %s: %w", MethodBuildFunction, p.Name, err)
		}
		accW += p.Weight
	}

	if on, lo, hi := cp.Normalizing(); on && len(parts) == 1 {
		acc.PDMap().Normalize(lo, hi)
	}
	if err := acc.TransDomain(dom); err != nil {
		acc.Release()
		return nil, rep, fmt.Errorf("%s: %w", MethodBuildFunction, err)
	}
	acc.PDMap().UpdateGrid()

	rep.Pieces = acc.Size()
	rep.PWT = acc.PWT()
	rep.Elapsed = time.Since(start)
	return acc, rep, nil
}

// Build compiles job into parts, couples them and sets the result's
// context and priority weight (pwt * relevance).
func Build(job Job, opts ...BuilderOption) (*core.Function, Report, error) {
	if err := job.Validate(); err != nil {
		return nil, Report{}, err
	}
	dom, err := job.ParsedDomain()
	if err != nil {
		return nil, Report{}, err
	}
	parts, err := job.parts()
	if err != nil {
		return nil, Report{}, err
	}

	cp := coupler.New()
	if !job.normalize() {
		cp.DisableNormalize()
	}
	f, rep, err := BuildFunction(dom, cp, opts, parts...)
	rep.Context = job.Context
	if err != nil {
		return nil, rep, fmt.Errorf("%s(%s): %w", MethodBuild, job.Context, err)
	}
	f.SetContext(job.Context)
	f.SetPWT(job.pwt() * job.relevance())
	rep.PWT = f.PWT()

	cfg := newBuilderConfig(opts...)
	cfg.logger.Info("job built", "context", job.Context, "functions", len(parts),
		"pieces", rep.Pieces, "pwt", rep.PWT, "elapsed", rep.Elapsed)
	return f, rep, nil
}

// parts orders the job's specs by its couple list, or by definition order
// when the list is empty.
func (j Job) parts() ([]Part, error) {
	byName := make(map[string]int, len(j.Functions))
	for i, fs := range j.Functions {
		byName[fs.Label(i)] = i
	}
	order := j.Couple
	if len(order) == 0 {
		order = make([]string, len(j.Functions))
		for i, fs := range j.Functions {
			order[i] = fs.Label(i)
		}
	}

	parts := make([]Part, 0, len(order))
	for _, name := range order {
		i, ok := byName[name]
		if !ok {
			return nil, builderErrorf(MethodBuild, "%q: %w", name, ErrUnknownFunction)
		}
		fs := j.Functions[i]
		con, err := NewConstructor(fs)
		if err != nil {
			return nil, err
		}
		parts = append(parts, Part{Name: name, Weight: fs.weight(), Build: con})
	}
	return parts, nil
}
