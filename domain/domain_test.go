package domain_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddVar_Validation verifies every rejection class of AddVar.
func TestAddVar_Validation(t *testing.T) {
	cases := []struct {
		name    string
		varName string
		low     float64
		high    float64
		pts     int
		want    error
	}{
		{"low above high", "x", 10, 0, 11, domain.ErrBadRange},
		{"zero points", "x", 0, 10, 0, domain.ErrBadPoints},
		{"single point with span", "x", 0, 10, 1, domain.ErrBadPoints},
		{"blank name", "  ", 0, 10, 11, domain.ErrEmptyName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d domain.Domain
			err := d.AddVar(tc.varName, tc.low, tc.high, tc.pts)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 0, d.Size(), "failed AddVar must not grow the domain")
		})
	}

	var d domain.Domain
	require.NoError(t, d.AddVar("depth", 5, 5, 1), "single point with low == high is valid")
	assert.ErrorIs(t, d.AddVar("depth", 0, 1, 2), domain.ErrDuplicateVar)
}

// TestDiscreteVal_SnapPolicies checks the three snap policies on x:0:20:41 and y:2:7:11.
func TestDiscreteVal_SnapPolicies(t *testing.T) {
	d := domain.MustParse("x,0,20,41:y,2,7,11")

	assert.Equal(t, 4, d.DiscreteVal(0, 2.1, domain.SnapFloor))
	assert.Equal(t, 5, d.DiscreteVal(0, 2.1, domain.SnapCeil))
	assert.Equal(t, 4, d.DiscreteVal(0, 2.1, domain.SnapNearest))

	assert.Equal(t, 0, d.DiscreteVal(1, 2.1, domain.SnapFloor))
	assert.Equal(t, 1, d.DiscreteVal(1, 2.1, domain.SnapCeil))
	assert.Equal(t, 1, d.DiscreteVal(1, 2.3, domain.SnapNearest))

	// Clamping at both ends.
	assert.Equal(t, 0, d.DiscreteVal(0, -3, domain.SnapCeil))
	assert.Equal(t, 40, d.DiscreteVal(0, 25, domain.SnapFloor))
	// Exact grid values are fixed points of every policy.
	for _, snap := range []domain.Snap{domain.SnapFloor, domain.SnapCeil, domain.SnapNearest} {
		assert.Equal(t, 6, d.DiscreteVal(0, 3.0, snap))
	}
}

// TestDiscreteVal_DecimalGrid checks that grid values with an inexact
// decimal spacing land on their own index under every policy.
func TestDiscreteVal_DecimalGrid(t *testing.T) {
	d := domain.MustParse("x,0,1,11")
	tests := []struct {
		val                  float64
		floor, ceil, nearest int
	}{
		{0.3, 3, 3, 3},
		{0.6, 6, 6, 6},
		{0.7, 7, 7, 7},
		{0.1 + 0.2, 3, 3, 3},
		{0.34, 3, 4, 3},
		{0.66, 6, 7, 7},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.floor, d.DiscreteVal(0, tc.val, domain.SnapFloor), "floor(%v)", tc.val)
		assert.Equal(t, tc.ceil, d.DiscreteVal(0, tc.val, domain.SnapCeil), "ceil(%v)", tc.val)
		assert.Equal(t, tc.nearest, d.DiscreteVal(0, tc.val, domain.SnapNearest), "nearest(%v)", tc.val)
	}
}

// TestVal_RoundTrip ensures Val and DiscreteVal are inverse on grid points.
func TestVal_RoundTrip(t *testing.T) {
	d := domain.MustParse("course,0,359,360:speed,0,5,26")
	for i := 0; i < d.Size(); i++ {
		for j := 0; j < d.Points(i); j++ {
			v, ok := d.Val(i, j)
			require.True(t, ok)
			assert.Equal(t, j, d.DiscreteVal(i, v, domain.SnapNearest), "var %d index %d", i, j)
		}
	}
	_, ok := d.Val(1, 26)
	assert.False(t, ok, "index past the last point")
	_, ok = d.Val(2, 0)
	assert.False(t, ok, "variable past the last one")
}

// TestSub_UnionIntersects covers the derivation helpers.
func TestSub_UnionIntersects(t *testing.T) {
	d := domain.MustParse("x,0,10,11:y,0,1,11:z,-5,5,3")

	sub, err := d.SubString("z, x")
	require.NoError(t, err)
	assert.Equal(t, "z,-5,5,3:x,0,10,11", sub.String())
	assert.Equal(t, 3, d.Size(), "source must be untouched")

	_, err = d.Sub("x", "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownVar)

	a := domain.MustParse("x,0,10,11")
	b := domain.MustParse("y,0,1,11:x,0,10,11")
	u := domain.Union(a, b)
	assert.Equal(t, "x,0,10,11:y,0,1,11", u.String())
	assert.True(t, domain.Intersects(a, b))
	assert.False(t, domain.Intersects(a, domain.MustParse("y,0,1,11")))
	assert.True(t, domain.Equal(u, domain.MustParse("x,0,10,11:y,0,1,11")))
	assert.False(t, domain.Equal(u, b))
	assert.Equal(t, 11*11, u.TotalPoints())
}

// TestParse_Errors verifies malformed strings are rejected with ErrSyntax.
func TestParse_Errors(t *testing.T) {
	for _, s := range []string{"x,0,10", "x,a,10,11", "x,0,b,11", "x,0,10,c"} {
		_, err := domain.Parse(s)
		assert.ErrorIs(t, err, domain.ErrSyntax, s)
	}
	_, err := domain.Parse("x,0,10,11:x,0,10,11")
	assert.ErrorIs(t, err, domain.ErrDuplicateVar)

	d, err := domain.Parse("   ")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Size())
}

// TestFormat_Compact checks the compact number rendering used on the wire.
func TestFormat_Compact(t *testing.T) {
	d := domain.MustParse("depth,0,2.5,6:speed,0.0,4.00,9")
	assert.Equal(t, "depth;0;2.5;6:speed;0;4;9", d.Format(";", ":"))
	assert.Equal(t, 0.5, d.Delta(0))
	assert.Equal(t, 0.0, d.Delta(7), "out of range delta is zero")
}
