// SPDX-License-Identifier: MIT
// Package: ivpbuild/aof
//
// mgaussian.go - a base plus a sum of Gaussian components.
//
// Contract:
//   • value(x) = base + Σ range_k · exp(-|x - c_k|² / (2σ_k²)), with the
//     distance taken in native units over every domain variable.
//   • Components come from AddComponent or the "gaussian" string parameter
//     "x=10,y=20,sigma=5,range=50"; unnamed variables default to 0.

package aof

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Component is one Gaussian bump of an MGaussian AOF.
type Component struct {
	Center []float64
	Sigma  float64
	Range  float64
}

type gaussParams struct {
	base  float64
	comps []Component
}

func setGaussNum(a *AOF, name string, v float64) ParamOutcome {
	if name != "base" {
		return ParamNotMine
	}
	a.gauss.base = v
	return ParamOK
}

func setGaussStr(a *AOF, name, v string) ParamOutcome {
	switch name {
	case "gaussian", "component":
		c, err := a.parseComponent(v)
		if err != nil {
			return ParamInvalid
		}
		a.gauss.comps = append(a.gauss.comps, c)
		return ParamOK
	case "clear":
		a.gauss.comps = nil
		return ParamOK
	}
	return ParamNotMine
}

// parseComponent reads "name=val,...,sigma=s,range=r".
func (a *AOF) parseComponent(s string) (Component, error) {
	c := Component{Center: make([]float64, a.dom.Size()), Sigma: math.NaN()}
	for _, field := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			return c, fmt.Errorf("field %q: %w", field, ErrInvalidParam)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return c, fmt.Errorf("field %q: %w", field, ErrInvalidParam)
		}
		switch key {
		case "sigma":
			c.Sigma = f
		case "range":
			c.Range = f
		default:
			ix := a.dom.Index(key)
			if ix < 0 {
				return c, fmt.Errorf("field %q: %w", field, ErrInvalidParam)
			}
			c.Center[ix] = f
		}
	}
	if !(c.Sigma > 0) {
		return c, fmt.Errorf("sigma: %w", ErrInvalidParam)
	}
	return c, nil
}

// AddComponent appends a Gaussian bump centered at center (native values in
// domain order). Non-MGaussian kinds and mismatched centers are rejected.
func (a *AOF) AddComponent(center []float64, sigma, rng float64) error {
	if a.kind != MGaussian {
		return fmt.Errorf("AddComponent on %s: %w", a.kind, ErrUnknownParam)
	}
	if len(center) != a.dom.Size() || !(sigma > 0) {
		return fmt.Errorf("AddComponent(len=%d, sigma=%v): %w", len(center), sigma, ErrInvalidParam)
	}
	a.gauss.comps = append(a.gauss.comps, Component{
		Center: append([]float64(nil), center...),
		Sigma:  sigma,
		Range:  rng,
	})
	a.ready = false
	return nil
}

// Components returns a copy of the configured MGaussian components.
func (a *AOF) Components() []Component {
	out := make([]Component, len(a.gauss.comps))
	for i, c := range a.gauss.comps {
		out[i] = Component{Center: append([]float64(nil), c.Center...), Sigma: c.Sigma, Range: c.Range}
	}
	return out
}

func (a *AOF) initGauss() error {
	if a.dom.Size() == 0 {
		return fmt.Errorf("empty domain: %w", ErrNotReady)
	}
	if len(a.gauss.comps) == 0 {
		return fmt.Errorf("no components: %w", ErrNotReady)
	}
	for i, c := range a.gauss.comps {
		if !(c.Sigma > 0) {
			return fmt.Errorf("component %d sigma=%v: %w", i, c.Sigma, ErrInvalidParam)
		}
	}
	return nil
}

func (a *AOF) evalGauss(vals []float64) float64 {
	total := a.gauss.base
	for _, c := range a.gauss.comps {
		d2 := 0.0
		for i, cv := range c.Center {
			diff := vals[i] - cv
			d2 += diff * diff
		}
		total += c.Range * math.Exp(-d2/(2*c.Sigma*c.Sigma))
	}
	return total
}
