// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// impl_zaic.go - constructors for the single-variable ZAIC shapes.
//
// Contract:
//   • Summit i of a zaic_peak spec becomes summit i of the builder.
//   • min_util/max_util are applied only when the spec names one of them;
//     the other takes the shape default (0 or DefaultMaxUtil).
//   • Builder warnings land in the FunctionReport, not in the error.

package builder

import (
	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/katalvlaran/ivpbuild/zaic"
)

// ZAICPeak returns a constructor for a zaic_peak spec.
// Complexity: O(points * summits).
func ZAICPeak(fs FunctionSpec) Constructor {
	return func(dom domain.Domain, cfg builderConfig) (*core.Function, FunctionReport, error) {
		rep := FunctionReport{Kind: KindZAICPeak}
		if err := validateMin(MethodPeak, "summits", len(fs.Summits), MinSummits); err != nil {
			return nil, rep, err
		}
		z := zaic.NewPeak(dom, fs.Var, cfg.zaicOptions()...)
		z.SetValueWrap(fs.ValueWrap)
		z.SetSummitInsist(orTrue(fs.SummitInsist))
		for i, s := range fs.Summits {
			idx := 0
			if i > 0 {
				idx = z.AddSummit()
			}
			err := z.SetParams(s.Summit, s.PeakWidth, s.BaseWidth, s.Delta,
				s.MinUtil, orDefault(s.MaxUtil, DefaultMaxUtil), idx)
			if err != nil {
				rep.Warnings = z.Warnings()
				return nil, rep, builderErrorf(MethodPeak, "summit %d: %w", i, err)
			}
		}
		f, err := z.ExtractFunction(orTrue(fs.MaxVal))
		rep.Warnings = z.Warnings()
		if err != nil {
			return nil, rep, builderErrorf(MethodPeak, "%w", err)
		}
		rep.Pieces = f.Size()
		return f, rep, nil
	}
}

// ZAICThreshold returns a constructor for a zaic_leq or zaic_heq spec.
// Complexity: O(points).
func ZAICThreshold(fs FunctionSpec) Constructor {
	return func(dom domain.Domain, cfg builderConfig) (*core.Function, FunctionReport, error) {
		rep := FunctionReport{Kind: fs.Kind}
		var z *zaic.Threshold
		switch fs.Kind {
		case KindZAICLEQ:
			z = zaic.NewLEQ(dom, fs.Var, cfg.zaicOptions()...)
		case KindZAICHEQ:
			z = zaic.NewHEQ(dom, fs.Var, cfg.zaicOptions()...)
		default:
			return nil, rep, builderErrorf(MethodThreshold, "%q: %w", fs.Kind, ErrUnknownKind)
		}
		z.SetSummit(fs.Summit)
		z.SetSummitDelta(fs.SummitDelta)
		z.SetBreakTies(fs.BreakTies)
		if err := z.SetBaseWidth(fs.BaseWidth); err != nil {
			rep.Warnings = z.Warnings()
			return nil, rep, builderErrorf(MethodThreshold, "%w", err)
		}
		if fs.MinUtil != nil || fs.MaxUtil != nil {
			if err := z.SetMinMaxUtil(orDefault(fs.MinUtil, 0), orDefault(fs.MaxUtil, DefaultMaxUtil)); err != nil {
				rep.Warnings = z.Warnings()
				return nil, rep, builderErrorf(MethodThreshold, "%w", err)
			}
		}
		f, err := z.ExtractFunction()
		rep.Warnings = z.Warnings()
		if err != nil {
			return nil, rep, builderErrorf(MethodThreshold, "%w", err)
		}
		rep.Pieces = f.Size()
		return f, rep, nil
	}
}

// ZAICVector returns a constructor for a zaic_vector spec.
// Complexity: O(points * log(values)).
func ZAICVector(fs FunctionSpec) Constructor {
	return func(dom domain.Domain, cfg builderConfig) (*core.Function, FunctionReport, error) {
		rep := FunctionReport{Kind: KindZAICVector}
		z := zaic.NewVector(dom, fs.Var, cfg.zaicOptions()...)
		if err := z.SetValues(fs.Values, fs.Utilities); err != nil {
			return nil, rep, builderErrorf(MethodVector, "%w", err)
		}
		if fs.MinUtil != nil || fs.MaxUtil != nil {
			if err := z.SetMinMaxUtil(orDefault(fs.MinUtil, 0), orDefault(fs.MaxUtil, DefaultMaxUtil)); err != nil {
				rep.Warnings = z.Warnings()
				return nil, rep, builderErrorf(MethodVector, "%w", err)
			}
		}
		f, err := z.ExtractFunction()
		rep.Warnings = z.Warnings()
		if err != nil {
			return nil, rep, builderErrorf(MethodVector, "%w", err)
		}
		rep.Pieces = f.Size()
		return f, rep, nil
	}
}
