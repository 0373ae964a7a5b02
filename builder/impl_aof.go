// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// impl_aof.go - constructor for reflected objective functions.
//
// Contract:
//   • params are applied in order through AOF.SetParamString, so repeated
//     names (several gaussian components) accumulate.
//   • pieces > 0 overrides the reflector's uniform amount; the reflector
//     string may set it too.
//   • rate > 0 samples the approximation against the AOF before it is
//     normalized.

package builder

import (
	"strings"

	"github.com/katalvlaran/ivpbuild/aof"
	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/katalvlaran/ivpbuild/reflector"
)

const reflectorWarningSep = " # "

// AOFReflect returns a constructor for an aof spec.
// Complexity: O(pieces * 2^dim) evaluations of the AOF plus refinement.
func AOFReflect(fs FunctionSpec) Constructor {
	return func(dom domain.Domain, cfg builderConfig) (*core.Function, FunctionReport, error) {
		rep := FunctionReport{Kind: KindAOF}
		kind, err := aof.ParseKind(fs.AOF)
		if err != nil {
			return nil, rep, builderErrorf(MethodAOF, "%w", err)
		}
		rep.Kind = KindAOF + "/" + kind.String()

		sub := dom
		if len(fs.Vars) > 0 {
			if sub, err = dom.Sub(fs.Vars...); err != nil {
				return nil, rep, builderErrorf(MethodAOF, "%w", err)
			}
		}
		a, err := aof.New(kind, sub)
		if err != nil {
			return nil, rep, builderErrorf(MethodAOF, "%w", err)
		}
		for _, p := range fs.Params {
			name, val, _ := strings.Cut(p, "=")
			if err := a.SetParamString(name, val); err != nil {
				return nil, rep, builderErrorf(MethodAOF, "%w", err)
			}
		}
		if err := a.Initialize(); err != nil {
			return nil, rep, builderErrorf(MethodAOF, "%w", err)
		}

		r, err := reflector.New(a, cfg.reflectorOptions()...)
		if err != nil {
			return nil, rep, builderErrorf(MethodAOF, "%w", err)
		}
		if strings.TrimSpace(fs.Reflector) != "" {
			if err := r.SetParams(fs.Reflector); err != nil {
				rep.Warnings = splitWarnings(r.Warnings())
				return nil, rep, builderErrorf(MethodAOF, "%w", err)
			}
		}
		unif := -1
		if fs.Pieces > 0 {
			unif = fs.Pieces
		}
		if _, err := r.Create(unif, -1, -1); err != nil {
			rep.Warnings = splitWarnings(r.Warnings())
			return nil, rep, builderErrorf(MethodAOF, "%w", err)
		}
		rep.UniformPieces = r.UniformPieceString()
		rep.Warnings = splitWarnings(r.Warnings())

		if fs.Rate > 0 {
			rt, err := reflector.NewRater(a, cfg.seed).Rate(r.PDMap(), fs.Rate)
			if err != nil {
				return nil, rep, builderErrorf(MethodAOF, "rate: %w", err)
			}
			rep.Rating = &rt
		}

		f, err := r.ExtractFunction(!fs.Raw)
		if err != nil {
			return nil, rep, builderErrorf(MethodAOF, "%w", err)
		}
		rep.Pieces = f.Size()
		return f, rep, nil
	}
}

func splitWarnings(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, reflectorWarningSep)
}
