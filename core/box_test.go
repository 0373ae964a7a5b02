package core_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearBox builds a degree-1 box [lo0,hi0]x[lo1,hi1] with value a*x + b*y + c.
func linearBox(lo0, hi0, lo1, hi1 int, a, b, c float64) *core.Box {
	bx := core.NewBox(2, 1)
	bx.SetPts(0, lo0, hi0)
	bx.SetPts(1, lo1, hi1)
	bx.SetWt(0, a)
	bx.SetWt(1, b)
	bx.SetWt(2, c)
	return bx
}

// TestBox_MinMaxVal verifies extremes are taken at the slope-favoring corners.
func TestBox_MinMaxVal(t *testing.T) {
	b := linearBox(0, 10, 2, 4, 2, -1, 5)
	assert.Equal(t, 2*10.0-1*2+5, b.MaxVal())
	assert.Equal(t, 2*0.0-1*4+5, b.MinVal())

	mp := b.MaxPt()
	assert.True(t, mp.IsPtBox())
	assert.Equal(t, 10, mp.Lo(0))
	assert.Equal(t, 2, mp.Lo(1))
	assert.Equal(t, b.MaxVal(), b.PtVal(mp))

	c := core.NewBox(1, 0)
	c.SetPts(0, 3, 8)
	c.SetConstant(7)
	assert.Equal(t, 7.0, c.MaxVal())
	assert.Equal(t, 7.0, c.MinVal())
	assert.Equal(t, 5, c.MaxPt().Lo(0), "degree 0 max point is the midpoint")
}

// TestBox_WeightEdits covers SetConstant, ScaleWT and MoveIntercept.
func TestBox_WeightEdits(t *testing.T) {
	b := linearBox(0, 1, 0, 1, 3, 4, 5)
	b.ScaleWT(2)
	assert.Equal(t, []float64{6, 8, 10}, b.Weights())
	b.MoveIntercept(-10)
	assert.Equal(t, 0.0, b.Intercept())
	b.SetConstant(9)
	assert.Equal(t, []float64{0, 0, 9}, b.Weights())
	assert.Equal(t, 3, b.Wtc())
}

// TestBox_Intersects checks exclusive edges at touching boundaries.
func TestBox_Intersects(t *testing.T) {
	a := linearBox(0, 5, 0, 5, 0, 0, 0)
	b := linearBox(5, 9, 0, 5, 0, 0, 0)
	assert.True(t, a.Intersects(b), "inclusive shared edge")

	b.SetBd(0, 0, false)
	assert.False(t, a.Intersects(b), "exclusive low edge of b at a's high edge")
	assert.False(t, b.Intersects(a))

	c := linearBox(6, 9, 0, 5, 0, 0, 0)
	assert.False(t, a.Intersects(c))
	assert.False(t, a.Intersects(core.NewBox(3, 1)), "dimension mismatch")
}

// TestBox_Intersection verifies bounds, flags and summed weights.
func TestBox_Intersection(t *testing.T) {
	a := linearBox(0, 6, 0, 6, 1, 0, 2)
	b := linearBox(3, 6, 2, 9, 0, 1, 3)
	b.SetBd(0, 1, false)

	r, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, 3, r.Lo(0))
	assert.Equal(t, 6, r.Hi(0))
	assert.False(t, r.Bd(0, 1), "equal high edges: exclusive wins")
	assert.Equal(t, 2, r.Lo(1))
	assert.Equal(t, 6, r.Hi(1))
	assert.Equal(t, []float64{1, 1, 5}, r.Weights())

	_, ok = a.Intersection(linearBox(7, 9, 0, 1, 0, 0, 0))
	assert.False(t, ok)
}

// TestBox_IsPtBox covers inclusive singletons, exclusive unit spans and the null box.
func TestBox_IsPtBox(t *testing.T) {
	assert.True(t, core.NewPointBox(3, 4).IsPtBox())
	assert.False(t, core.NewBox(0, 0).IsPtBox(), "null box")

	b := core.NewBox(1, 0)
	b.SetPts(0, 2, 3)
	assert.False(t, b.IsPtBox())
	b.SetBds(0, false, false)
	assert.True(t, b.IsPtBox(), "(X-1,X) exclusive form")

	c := core.NewPointBox(4)
	c.SetBd(0, 1, false)
	assert.False(t, c.IsPtBox(), "[X,X) is empty")
}

// TestBox_TransDomain verifies dimension remapping of bounds and weights.
func TestBox_TransDomain(t *testing.T) {
	b := linearBox(1, 2, 3, 4, 5, 6, 7)
	b.TransDomain(1, []int{2, 0})
	require.Equal(t, 3, b.Dim())
	assert.Equal(t, 3, b.Lo(0))
	assert.Equal(t, 4, b.Hi(0))
	assert.Equal(t, 0, b.Lo(1))
	assert.Equal(t, 1, b.Lo(2))
	assert.Equal(t, []float64{6, 0, 5, 7}, b.Weights())
}

// TestBox_CloneIndependent ensures Clone deep-copies every slice.
func TestBox_CloneIndependent(t *testing.T) {
	a := linearBox(0, 1, 0, 1, 1, 1, 1)
	c := a.Clone()
	require.True(t, a.Equal(c))
	c.SetPts(0, 0, 9)
	c.SetWt(0, 42)
	assert.Equal(t, 1, a.Hi(0))
	assert.Equal(t, 1.0, a.Wt(0))
	assert.Equal(t, "[0,1][0,1] w=(1,1,1)", a.String())
	assert.Equal(t, "null_box", core.NewBox(0, 1).String())
}
