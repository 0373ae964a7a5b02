package encoder_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/katalvlaran/ivpbuild/encoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var xDom = domain.MustParse("x,0,9,10")

// tent is 2x on [0,4] and 20-2x on [5,9], gel edge 5.
func tent(ctx string) *core.Function {
	a := core.NewBox(1, 1)
	a.SetPts(0, 0, 4)
	a.SetWt(0, 2)
	b := core.NewBox(1, 1)
	b.SetPts(0, 5, 9)
	b.SetWt(0, -2)
	b.SetWt(1, 20)
	pm := core.NewPDMap(xDom, 1, a, b)
	gel := core.NewBox(1, 0)
	gel.SetPts(0, 0, 4)
	if err := pm.SetGelBox(gel); err != nil {
		panic(err)
	}
	f := core.NewFunction(pm)
	f.SetContext(ctx)
	return f
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2, "2"},
		{-2, "-2"},
		{3.1, "3.1"},
		{0.12346, "0.1235"},
		{2.0001, "2.0001"},
		{-0.05, "-0.05"},
		{0.00004, "0"},
		{-0.00004, "0"},
		{12345.678, "12345.678"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, encoder.FormatWeight(tc.in), "%v", tc.in)
	}
}

func TestEncode_Layout(t *testing.T) {
	s, err := encoder.Encode(tent("demo"))
	require.NoError(t, err)
	assert.Equal(t, "H,4,demo,1,2,1,10,D,x;0;9;10,G,4,F,0,4,2,0,5,9,-2,20", s)
}

func TestEncode_TwoDimensional(t *testing.T) {
	dom := domain.MustParse("course,0,359,360:speed,0,4,5")
	b := core.UniverseBox(dom, 0)
	b.SetConstant(7.25)
	b.SetBd(1, 1, false)
	pm := core.NewPDMap(dom, 0, b)
	gel := core.NewBox(2, 0)
	gel.SetPts(0, 0, 9)
	gel.SetPts(1, 0, 4)
	require.NoError(t, pm.SetGelBox(gel))
	f := core.NewFunction(pm)
	f.SetPWT(2.5)

	s, err := encoder.Encode(f)
	require.NoError(t, err)
	assert.Equal(t, "H,0,,2,1,0,2.5,D,course;0;359;360:speed;0;4;5,G,9,4,F,0,359,0,X4,7.25", s)
}

func TestRoundTrip(t *testing.T) {
	f := tent("wp,alpha")
	f.PDMap().Box(1).SetBd(0, 0, false)
	f.PDMap().Box(1).SetWt(1, 20.123456)
	f.SetPWT(33.5)

	s, err := encoder.Encode(f)
	require.NoError(t, err)
	g, err := encoder.Decode(s)
	require.NoError(t, err)

	assert.Equal(t, "wp,alpha", g.Context())
	assert.Equal(t, 33.5, g.PWT())
	assert.True(t, domain.Equal(f.Domain(), g.Domain()))
	require.Equal(t, f.Size(), g.Size())
	assert.Equal(t, 4, g.PDMap().GelBox().Hi(0))
	for i := 0; i < f.Size(); i++ {
		fb, gb := f.PDMap().Box(i), g.PDMap().Box(i)
		assert.Equal(t, fb.Lo(0), gb.Lo(0))
		assert.Equal(t, fb.Hi(0), gb.Hi(0))
		assert.Equal(t, fb.Bd(0, 0), gb.Bd(0, 0))
		assert.Equal(t, fb.Bd(0, 1), gb.Bd(0, 1))
		for j := 0; j < fb.Wtc(); j++ {
			assert.InDelta(t, fb.Wt(j), gb.Wt(j), 5e-5)
		}
	}
	again, err := encoder.Encode(g)
	require.NoError(t, err)
	assert.Equal(t, s, again, "stable after one trip")
}

func TestEncode_Errors(t *testing.T) {
	_, err := encoder.Encode(nil)
	assert.ErrorIs(t, err, core.ErrNilFunction)

	f := tent("")
	f.PDMap().Box(0).SetWt(0, nan())
	_, err = encoder.Encode(f)
	assert.ErrorIs(t, err, encoder.ErrNonFinite)
}

func TestDecode_Errors(t *testing.T) {
	good := "H,4,demo,1,2,1,10,D,x;0;9;10,G,4,F,0,4,2,0,5,9,-2,20"
	_, err := encoder.Decode(good)
	require.NoError(t, err)

	bad := map[string]string{
		"no header":       "Z,4,demo",
		"short context":   "H,40,demo,1",
		"degree":          "H,0,,1,1,2,10,D,x;0;9;10,G,4,F,0,9,1,1,1",
		"dim mismatch":    "H,0,,2,1,1,10,D,x;0;9;10,G,4,4,F,0,9,1,1",
		"no D":            "H,0,,1,1,1,10,Q,x;0;9;10,G,4,F,0,9,1,1",
		"no F":            "H,0,,1,1,1,10,D,x;0;9;10,G,4,Q,0,9,1,1",
		"field count":     "H,4,demo,1,2,1,10,D,x;0;9;10,G,4,F,0,4,2,0,5,9,-2",
		"bound order":     "H,0,,1,1,1,10,D,x;0;9;10,G,4,F,5,4,1,1",
		"bound range":     "H,0,,1,1,1,10,D,x;0;9;10,G,4,F,0,10,1,1",
		"weight":          "H,0,,1,1,1,10,D,x;0;9;10,G,4,F,0,9,one,1",
		"gel out of grid": "H,0,,1,1,1,10,D,x;0;9;10,G,40,F,0,9,1,1",
	}
	for name, s := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := encoder.Decode(s)
			assert.ErrorIs(t, err, encoder.ErrFormat)
		})
	}
}

func TestDecode_NoPieces(t *testing.T) {
	f, err := encoder.Decode("H,0,,1,0,1,10,D,x;0;9;10,G,4,F,")
	require.NoError(t, err)
	assert.Equal(t, 0, f.Size())
}
