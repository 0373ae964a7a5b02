package builder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/ivpbuild/aof"
	"github.com/katalvlaran/ivpbuild/builder"
	"github.com/katalvlaran/ivpbuild/coupler"
	"github.com/katalvlaran/ivpbuild/reflector"
	"github.com/katalvlaran/ivpbuild/zaic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transitJob = `
context: transit
domain: "course,0,359,360:speed,0,4,5"
pwt: 100
functions:
  - name: heading
    kind: zaic_peak
    var: course
    value_wrap: true
    summits:
      - {summit: 90, base_width: 90}
  - name: pace
    kind: zaic_heq
    var: speed
    summit: 3
    base_width: 2
`

func loadString(t *testing.T, doc string) builder.Job {
	t.Helper()
	job, err := builder.LoadJob(strings.NewReader(doc))
	require.NoError(t, err)
	return job
}

func TestBuild_Transit(t *testing.T) {
	f, rep, err := builder.Build(loadString(t, transitJob))
	require.NoError(t, err)
	require.False(t, f.Released())

	assert.Equal(t, "course,0,359,360:speed,0,4,5", f.Domain().String())
	assert.Equal(t, "transit", f.Context())
	assert.Equal(t, 100.0, f.PWT())
	require.NoError(t, f.PDMap().CheckPartition())

	cases := []struct {
		crs, spd, want float64
	}{
		{90, 4, 100},
		{90, 3, 100},
		{90, 0, 50},
		{270, 4, 50},
		{270, 0, 0},
		{45, 4, 75},
	}
	for _, tc := range cases {
		v, ok := f.EvalNative(tc.crs, tc.spd)
		require.True(t, ok)
		assert.InDelta(t, tc.want, v, 0.01, "course %v speed %v", tc.crs, tc.spd)
	}

	require.Len(t, rep.Functions, 2)
	assert.Equal(t, "heading", rep.Functions[0].Name)
	assert.Equal(t, builder.KindZAICPeak, rep.Functions[0].Kind)
	assert.Equal(t, "pace", rep.Functions[1].Name)
	assert.Positive(t, rep.Functions[0].Pieces)
	assert.Equal(t, f.Size(), rep.Pieces)
	assert.Equal(t, "transit", rep.Context)
}

func TestBuild_CoupleOrderKeepsJobDomain(t *testing.T) {
	doc := transitJob + "couple: [pace, heading]\n"
	f, rep, err := builder.Build(loadString(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "course,0,359,360:speed,0,4,5", f.Domain().String())
	assert.Equal(t, "pace", rep.Functions[0].Name)
	v, ok := f.EvalNative(90, 0)
	require.True(t, ok)
	assert.InDelta(t, 50, v, 0.01)
}

func TestBuild_WeightsAndRelevance(t *testing.T) {
	doc := `
context: weighted
domain: "course,0,359,360:speed,0,4,5"
pwt: 80
relevance: 0.5
normalize: false
functions:
  - name: heading
    kind: zaic_peak
    var: course
    weight: 30
    value_wrap: true
    summits: [{summit: 90, base_width: 90}]
  - name: pace
    kind: zaic_heq
    var: speed
    weight: 10
    summit: 3
    base_width: 2
`
	f, _, err := builder.Build(loadString(t, doc))
	require.NoError(t, err)
	assert.Equal(t, 40.0, f.PWT())
	for _, tc := range []struct{ crs, spd, want float64 }{{90, 4, 40}, {90, 0, 30}, {270, 4, 10}} {
		v, ok := f.EvalNative(tc.crs, tc.spd)
		require.True(t, ok)
		assert.InDelta(t, tc.want, v, 0.01)
	}
}

func TestBuild_ReflectedAOF(t *testing.T) {
	doc := `
context: survey
domain: "x,0,20,21:y,0,9,10"
functions:
  - name: bump
    kind: aof
    aof: mgaussian
    vars: [x]
    params:
      - base=0
      - gaussian=x=10,sigma=3,range=100
    reflector: "uniform_amount=5 # smart_amount=5"
    rate: 50
  - name: low_y
    kind: zaic_leq
    var: y
    summit: 2
    base_width: 5
    min_util: 10
`
	f, rep, err := builder.Build(loadString(t, doc), builder.WithSeed(3), builder.WithQueueLevels(6))
	require.NoError(t, err)
	assert.Equal(t, "x,0,20,21:y,0,9,10", f.Domain().String())
	assert.Equal(t, builder.DefaultPWT, f.PWT())
	assert.True(t, f.FreeOfNaN())
	require.NoError(t, f.PDMap().CheckPartition())
	assert.InDelta(t, 100, f.PDMap().MaxWT(), 1e-9)

	bump := rep.Functions[0]
	assert.Equal(t, "aof/mgaussian", bump.Kind)
	assert.True(t, strings.HasPrefix(bump.UniformPieces, "count:5, x:5"), bump.UniformPieces)
	require.NotNil(t, bump.Rating)
	assert.Equal(t, 50, bump.Rating.Samples)
	assert.Greater(t, bump.Pieces, 5)
	assert.Nil(t, rep.Functions[1].Rating)
}

func TestBuild_SingleFunctionNormalized(t *testing.T) {
	doc := `
domain: "speed,0,4,5"
functions:
  - kind: zaic_vector
    var: speed
    values: [0, 4]
    utilities: [10, 30]
`
	f, rep, err := builder.Build(loadString(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "f0", rep.Functions[0].Name)
	assert.InDelta(t, 0, f.PDMap().MinWT(), 1e-9)
	assert.InDelta(t, 100, f.PDMap().MaxWT(), 1e-9)
	v, _ := f.EvalNative(2)
	assert.InDelta(t, 50, v, 0.01)
}

func TestBuild_ThresholdBreakTies(t *testing.T) {
	doc := `
domain: "depth,0,10,11"
normalize: false
functions:
  - name: shallow
    kind: zaic_leq
    var: depth
    summit: 4
    base_width: 2
    break_ties: 1
`
	f, _, err := builder.Build(loadString(t, doc))
	require.NoError(t, err)
	for depth, want := range map[float64]float64{0: 96, 3: 99, 4: 100, 5: 50, 6: 0, 8: -2} {
		got, ok := f.EvalNative(depth)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-6, "depth=%v", depth)
	}
}

func TestBuild_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "min util above max",
			doc: `
domain: "course,0,359,360"
functions:
  - kind: zaic_peak
    var: course
    summits: [{summit: 10, base_width: 20, min_util: 90, max_util: 50}]
`,
			want: zaic.ErrMinMax,
		},
		{
			name: "unknown aof",
			doc: `
domain: "x,0,9,10"
functions:
  - {kind: aof, aof: teleport}
`,
			want: aof.ErrUnknownKind,
		},
		{
			name: "shared variable",
			doc: `
domain: "speed,0,4,5"
functions:
  - {kind: zaic_leq, var: speed, summit: 1, base_width: 1}
  - {kind: zaic_heq, var: speed, summit: 3, base_width: 1}
`,
			want: coupler.ErrSharedVariables,
		},
		{
			name: "reflector parameter",
			doc: `
domain: "x,0,9,10"
functions:
  - kind: aof
    aof: mgaussian
    params: ["gaussian=x=5,sigma=2,range=10"]
    reflector: "uniform_amount=zero"
`,
			want: reflector.ErrParam,
		},
		{
			name: "uninitializable aof",
			doc: `
domain: "x,0,9,10"
functions:
  - {kind: aof, aof: mgaussian}
`,
			want: aof.ErrNotReady,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, _, err := builder.Build(loadString(t, tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, f)
		})
	}
}

func TestBuild_ReportKeepsWarnings(t *testing.T) {
	doc := `
domain: "x,0,9,10"
functions:
  - kind: aof
    aof: mgaussian
    params: ["gaussian=x=5,sigma=2,range=10"]
    reflector: "uniform_amount=4 # bogus=1"
`
	_, rep, err := builder.Build(loadString(t, doc))
	require.ErrorIs(t, err, reflector.ErrParam)
	require.Len(t, rep.Functions, 1)
	assert.Equal(t, []string{"bogus: undefined parameter"}, rep.Functions[0].Warnings)
}

func TestLoadJob_Rejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", builder.ErrJob},
		{"unknown key", "domain: \"x,0,9,10\"\ncolour: red\nfunctions: [{kind: zaic_leq, var: x}]\n", builder.ErrJob},
		{"bad domain", "domain: \"x,9\"\nfunctions: [{kind: zaic_leq, var: x}]\n", builder.ErrJob},
		{"no functions", "domain: \"x,0,9,10\"\n", builder.ErrJob},
		{"unknown kind", "domain: \"x,0,9,10\"\nfunctions: [{kind: spline, var: x}]\n", builder.ErrUnknownKind},
		{"missing var", "domain: \"x,0,9,10\"\nfunctions: [{kind: zaic_heq, var: y}]\n", builder.ErrJob},
		{"peak without summits", "domain: \"x,0,9,10\"\nfunctions: [{kind: zaic_peak, var: x}]\n", builder.ErrJob},
		{"vector lengths", "domain: \"x,0,9,10\"\nfunctions: [{kind: zaic_vector, var: x, values: [1, 2], utilities: [3]}]\n", builder.ErrJob},
		{"negative pwt", "domain: \"x,0,9,10\"\npwt: -1\nfunctions: [{kind: zaic_leq, var: x}]\n", builder.ErrJob},
		{"zero weight", "domain: \"x,0,9,10\"\nfunctions: [{kind: zaic_leq, var: x, weight: 0}]\n", builder.ErrJob},
		{"param without value", "domain: \"x,0,9,10\"\nfunctions: [{kind: aof, aof: ring, params: [radius]}]\n", builder.ErrJob},
		{"duplicate names", "domain: \"x,0,9,10:y,0,1,2\"\nfunctions: [{name: a, kind: zaic_leq, var: x}, {name: a, kind: zaic_leq, var: y}]\n", builder.ErrJob},
		{"couple unknown", "domain: \"x,0,9,10\"\nfunctions: [{name: a, kind: zaic_leq, var: x}]\ncouple: [b]\n", builder.ErrUnknownFunction},
		{"couple repeat", "domain: \"x,0,9,10\"\nfunctions: [{name: a, kind: zaic_leq, var: x}]\ncouple: [a, a]\n", builder.ErrJob},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.LoadJob(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadJobFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(transitJob), 0o600))
	job, err := builder.LoadJobFile(path)
	require.NoError(t, err)
	assert.Equal(t, "transit", job.Context)
	assert.Len(t, job.Functions, 2)
	require.NotNil(t, job.PWT)
	assert.Equal(t, 100.0, *job.PWT)

	_, err = builder.LoadJobFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithLogger(nil) })
	assert.Panics(t, func() { builder.WithTolerance(-1) })
	assert.Panics(t, func() { builder.WithQueueLevels(0) })
	assert.Panics(t, func() { builder.WithQueueLevels(reflector.MaxQueueLevels + 1) })
}
