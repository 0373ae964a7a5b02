// SPDX-License-Identifier: MIT
// Package: ivpbuild/reflector
//
// rater.go - measures how closely a piece map follows its evaluator.

package reflector

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/ivpbuild/core"
)

// Rating summarizes the absolute errors over random sample points.
type Rating struct {
	Samples    int
	AvgErr     float64
	WorstErr   float64
	SquaredErr float64 // mean of squared errors
	SampleLow  float64 // lowest evaluator value seen
	SampleHigh float64 // highest evaluator value seen
}

// String renders the rating on one line.
func (rt Rating) String() string {
	return fmt.Sprintf("samples:%d avg:%.4f worst:%.4f squared:%.4f",
		rt.Samples, rt.AvgErr, rt.WorstErr, rt.SquaredErr)
}

// Rater samples grid points with a seeded source, so ratings repeat.
type Rater struct {
	eval Evaluator
	rng  *rand.Rand
}

// NewRater returns a rater for eval drawing points from seed.
func NewRater(eval Evaluator, seed int64) *Rater {
	return &Rater{eval: eval, rng: rand.New(rand.NewSource(seed))}
}

// Rate compares pm with the evaluator at samples random grid points.
// A point not covered by pm fails with core.ErrNotPartition.
// Complexity: O(samples * lookup).
func (rt *Rater) Rate(pm *core.PDMap, samples int) (Rating, error) {
	if pm == nil || samples <= 0 || rt.eval == nil {
		return Rating{}, ErrNoSamples
	}
	dom := rt.eval.Domain()
	if pm.Dim() != dom.Size() {
		return Rating{}, fmt.Errorf("Rate: dim %d vs %d: %w", pm.Dim(), dom.Size(), core.ErrDimMismatch)
	}

	var out Rating
	var total, squared float64
	native := make([]float64, dom.Size())
	for i := 0; i < samples; i++ {
		pt := core.RandPointBox(dom, rt.rng)
		for d := range native {
			native[d], _ = dom.Val(d, pt.Lo(d))
		}
		want := rt.eval.EvalPoint(native)
		got, ok := pm.EvalPoint(pt)
		if !ok {
			return Rating{}, fmt.Errorf("Rate: point %s: %w", pt, core.ErrNotPartition)
		}
		diff := math.Abs(want - got)
		total += diff
		squared += diff * diff
		out.WorstErr = math.Max(out.WorstErr, diff)
		if i == 0 {
			out.SampleLow, out.SampleHigh = want, want
		}
		out.SampleLow = math.Min(out.SampleLow, want)
		out.SampleHigh = math.Max(out.SampleHigh, want)
	}
	out.Samples = samples
	out.AvgErr = total / float64(samples)
	out.SquaredErr = squared / float64(samples)
	return out, nil
}
