package core_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box1(lo, hi int) *core.Box {
	b := core.NewBox(1, 1)
	b.SetPts(0, lo, hi)
	return b
}

// TestCutBox verifies the halving rule and the single-point refusal.
func TestCutBox(t *testing.T) {
	cases := []struct {
		lo, hi         int
		keptHi, newLo  int
	}{
		{0, 9, 4, 5},
		{5, 7, 6, 7},
		{3, 4, 3, 4},
	}
	for _, tc := range cases {
		b := box1(tc.lo, tc.hi)
		nb := core.CutBox(b, 0)
		require.NotNil(t, nb)
		assert.Equal(t, tc.keptHi, b.Hi(0))
		assert.Equal(t, tc.newLo, nb.Lo(0))
		assert.Equal(t, tc.hi, nb.Hi(0))
	}
	assert.Nil(t, core.CutBox(box1(4, 4), 0))
}

// TestQuarterBox checks the three-quarter and one-quarter split tables.
func TestQuarterBox(t *testing.T) {
	cases := []struct {
		name          string
		lo, hi        int
		high          bool
		keptHi, newLo int
	}{
		{"len3 high", 5, 7, true, 6, 7},
		{"len4 high", 5, 8, true, 7, 8},
		{"len6 high", 5, 10, true, 8, 9},
		{"len8 high", 5, 12, true, 10, 11},
		{"len3 low", 5, 7, false, 5, 6},
		{"len4 low", 5, 8, false, 5, 6},
		{"len8 low", 5, 12, false, 6, 7},
		{"len2", 5, 6, true, 5, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := box1(tc.lo, tc.hi)
			nb := core.QuarterBox(b, 0, tc.high)
			require.NotNil(t, nb)
			assert.Equal(t, tc.lo, b.Lo(0))
			assert.Equal(t, tc.keptHi, b.Hi(0))
			assert.Equal(t, tc.newLo, nb.Lo(0))
			assert.Equal(t, tc.hi, nb.Hi(0))
		})
	}
	assert.Nil(t, core.QuarterBox(box1(2, 2), 0, false))
}

// TestSubtractBox verifies the remnants exactly cover orig minus sub.
func TestSubtractBox(t *testing.T) {
	dom := domain.MustParse("x,0,9,10:y,0,9,10")
	orig := core.UniverseBox(dom, 1)
	sub := core.NewBox(2, 1)
	sub.SetPts(0, 3, 5)
	sub.SetPts(1, 2, 7)

	rest := core.SubtractBox(orig, sub)
	assert.Len(t, rest, 4)

	pm := core.NewPDMap(dom, 1, append(rest, sub)...)
	require.NoError(t, pm.CheckPartition(), "remnants plus sub must tile orig")

	assert.Empty(t, core.SubtractBox(sub, orig), "contained box leaves nothing")
	far := core.NewBox(2, 1)
	far.SetPts(0, 8, 9)
	far.SetPts(1, 8, 9)
	only := core.SubtractBox(sub, far)
	require.Len(t, only, 1)
	assert.True(t, only[0].Equal(sub))
	assert.Empty(t, core.SubtractBox(sub, core.NewBox(3, 1)))
}

// TestLongestDimAndRand covers LongestDim and RandPointBox.
func TestLongestDimAndRand(t *testing.T) {
	b := core.NewBox(3, 0)
	b.SetPts(0, 0, 3)
	b.SetPts(1, 0, 7)
	b.SetPts(2, 2, 9)
	assert.Equal(t, 1, core.LongestDim(b), "first dimension wins ties")

	dom := domain.MustParse("x,0,9,10:y,0,4,5")
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		p := core.RandPointBox(dom, rng)
		require.True(t, p.IsPtBox())
		assert.True(t, p.ContainedWithin(core.UniverseBox(dom, 0)))
	}
}
