package cpa_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/cpa"
	"github.com/stretchr/testify/assert"
)

// TestAngles verifies normalization into [0,360) and (-180,180].
func TestAngles(t *testing.T) {
	cases := []struct{ in, a360, a180 float64 }{
		{0, 0, 0},
		{360, 0, 0},
		{-90, 270, -90},
		{725, 5, 5},
		{180, 180, 180},
		{-180, 180, 180},
		{190, 190, -170},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.a360, cpa.Angle360(tc.in), 1e-9, "Angle360(%v)", tc.in)
		assert.InDelta(t, tc.a180, cpa.Angle180(tc.in), 1e-9, "Angle180(%v)", tc.in)
	}
}

// TestRelAngAndProject checks the heading convention (0 north, 90 east).
func TestRelAngAndProject(t *testing.T) {
	assert.Equal(t, 0.0, cpa.RelAng(0, 0, 0, 10))
	assert.Equal(t, 90.0, cpa.RelAng(0, 0, 10, 0))
	assert.Equal(t, 180.0, cpa.RelAng(0, 0, 0, -10))
	assert.Equal(t, 270.0, cpa.RelAng(0, 0, -10, 0))
	assert.InDelta(t, 45.0, cpa.RelAng(0, 0, 5, 5), 1e-9)
	assert.InDelta(t, 315.0, cpa.RelAng(0, 0, -5, 5), 1e-9)

	x, y := cpa.ProjectPoint(90, 10, 1, 1)
	assert.Equal(t, 11.0, x)
	assert.Equal(t, 1.0, y)
	x, y = cpa.ProjectPoint(45, 10, 0, 0)
	assert.InDelta(t, 7.0710678, x, 1e-6)
	assert.InDelta(t, 7.0710678, y, 1e-6)

	assert.InDelta(t, 90.0, cpa.RelBearing(0, 0, 0, 10, 0), 1e-9)
	assert.InDelta(t, 270.0, cpa.RelBearing(0, 0, 180, 10, 0), 1e-9)
	assert.Equal(t, 5.0, cpa.Dist(0, 0, 3, 4))
}

// TestSpeedInHeading checks velocity projection onto a reference heading.
func TestSpeedInHeading(t *testing.T) {
	assert.InDelta(t, 10.0, cpa.SpeedInHeading(30, 10, 30), 1e-9)
	assert.InDelta(t, 0.0, cpa.SpeedInHeading(90, 10, 0), 1e-9)
	assert.InDelta(t, -10.0, cpa.SpeedInHeading(180, 10, 0), 1e-9)
}

// TestLinesCross covers general, parallel and coincident lines.
func TestLinesCross(t *testing.T) {
	ix, iy, ok := cpa.LinesCross(0, 0, 10, 10, 0, 10, 10, 0)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, ix, 1e-9)
	assert.InDelta(t, 5.0, iy, 1e-9)

	_, _, ok = cpa.LinesCross(0, 0, 10, 0, 0, 1, 10, 1)
	assert.False(t, ok, "parallel distinct lines")

	ix, iy, ok = cpa.LinesCross(0, 0, 1, 1, 2, 2, 3, 3)
	assert.True(t, ok, "coincident lines")
	assert.Equal(t, 0.0, ix)
	assert.Equal(t, 0.0, iy)
}
