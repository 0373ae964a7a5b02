package zaic_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/zaic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreshold_Shapes(t *testing.T) {
	cases := []struct {
		name  string
		build func() *zaic.Threshold
		want  map[float64]float64
	}{
		{
			name: "leq",
			build: func() *zaic.Threshold {
				z := zaic.NewLEQ(depthDom, "depth")
				z.SetSummit(40)
				require.NoError(t, z.SetBaseWidth(20))
				return z
			},
			want: map[float64]float64{0: 100, 40: 100, 50: 50, 60: 0, 90: 0},
		},
		{
			name: "heq",
			build: func() *zaic.Threshold {
				z := zaic.NewHEQ(depthDom, "depth")
				z.SetSummit(60)
				require.NoError(t, z.SetBaseWidth(20))
				return z
			},
			want: map[float64]float64{10: 0, 40: 0, 50: 50, 60: 100, 100: 100},
		},
		{
			name: "leq summit delta",
			build: func() *zaic.Threshold {
				z := zaic.NewLEQ(depthDom, "depth")
				z.SetSummit(40)
				z.SetSummitDelta(10)
				require.NoError(t, z.SetBaseWidth(20))
				return z
			},
			want: map[float64]float64{30: 90, 40: 100, 50: 45, 60: 0},
		},
		{
			name: "leq break ties",
			build: func() *zaic.Threshold {
				z := zaic.NewLEQ(depthDom, "depth")
				z.SetSummit(40)
				z.SetBreakTies(0.5)
				require.NoError(t, z.SetBaseWidth(20))
				return z
			},
			want: map[float64]float64{0: 80, 30: 95, 40: 100, 50: 50, 60: 0, 70: -5, 100: -20},
		},
		{
			name: "heq break ties",
			build: func() *zaic.Threshold {
				z := zaic.NewHEQ(depthDom, "depth")
				z.SetSummit(60)
				z.SetBreakTies(1)
				require.NoError(t, z.SetBaseWidth(20))
				return z
			},
			want: map[float64]float64{30: -10, 40: 0, 50: 50, 60: 100, 70: 90},
		},
		{
			name: "heq step",
			build: func() *zaic.Threshold {
				z := zaic.NewHEQ(depthDom, "depth")
				z.SetSummit(50)
				require.NoError(t, z.SetMinMaxUtil(10, 20))
				return z
			},
			want: map[float64]float64{49: 10, 50: 20, 51: 20},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			z := tc.build()
			f, err := z.ExtractFunction()
			require.NoError(t, err)
			require.NoError(t, f.PDMap().CheckPartition())
			for x, want := range tc.want {
				got, ok := f.EvalNative(x)
				require.True(t, ok)
				assert.InDelta(t, want, got, 1e-6, "x=%v", x)
			}
		})
	}
}

func TestThreshold_Errors(t *testing.T) {
	z := zaic.NewLEQ(depthDom, "depth")
	assert.ErrorIs(t, z.SetBaseWidth(-1), zaic.ErrBadWidth)
	_, err := z.ExtractFunction()
	assert.ErrorIs(t, err, zaic.ErrNotOK)

	z = zaic.NewHEQ(depthDom, "depth")
	z.SetSummit(500)
	assert.Len(t, z.Warnings(), 1)
	assert.ErrorIs(t, z.SetMinMaxUtil(3, 1), zaic.ErrMinMax)

	// A negative tilt is ignored.
	z = zaic.NewLEQ(depthDom, "depth")
	z.SetSummit(40)
	z.SetBreakTies(-3)
	f, err := z.ExtractFunction()
	require.NoError(t, err)
	got, ok := f.EvalNative(0)
	require.True(t, ok)
	assert.Equal(t, 100.0, got)
}

func TestVector(t *testing.T) {
	z := zaic.NewVector(depthDom, "depth")
	require.NoError(t, z.SetValues([]float64{20, 60}, []float64{0, 100}))
	f, err := z.ExtractFunction()
	require.NoError(t, err)
	require.NoError(t, f.PDMap().CheckPartition())
	for x, want := range map[float64]float64{0: 0, 20: 0, 40: 50, 60: 100, 80: 100} {
		got, ok := f.EvalNative(x)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-6, "x=%v", x)
	}
	assert.Equal(t, 3, f.Size())

	require.NoError(t, z.SetMinMaxUtil(10, 20))
	assert.InDelta(t, 15.0, z.EvalValue(40), 1e-12)

	assert.ErrorIs(t, z.SetValues([]float64{5, 5}, []float64{1, 2}), zaic.ErrBadVector)
	assert.ErrorIs(t, z.SetValues([]float64{5}, []float64{1, 2}), zaic.ErrBadVector)

	_, err = zaic.NewVector(depthDom, "depth").ExtractFunction()
	assert.ErrorIs(t, err, zaic.ErrBadVector)
}
