package core_test

import (
	"testing"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PDMapSuite exercises a two-piece linear map over x:0..9.
//
//	piece 0: [0,4]  value = 2x
//	piece 1: [5,9]  value = 20 - 2x
type PDMapSuite struct {
	suite.Suite
	dom domain.Domain
	pm  *core.PDMap
}

func (s *PDMapSuite) SetupTest() {
	s.dom = domain.MustParse("x,0,9,10")
	a := core.NewBox(1, 1)
	a.SetPts(0, 0, 4)
	a.SetWt(0, 2)
	b := core.NewBox(1, 1)
	b.SetPts(0, 5, 9)
	b.SetWt(0, -2)
	b.SetWt(1, 20)
	s.pm = core.NewPDMap(s.dom, 1, a, b)
}

// TestEval verifies lookups with and without the grid index.
func (s *PDMapSuite) TestEval() {
	for _, withGrid := range []bool{false, true} {
		if withGrid {
			s.pm.UpdateGrid()
			s.Require().NotNil(s.pm.Grid())
		}
		v, ok := s.pm.Eval(3)
		s.True(ok)
		s.Equal(6.0, v)
		v, ok = s.pm.Eval(6)
		s.True(ok)
		s.Equal(8.0, v)
		_, ok = s.pm.Eval(12)
		s.False(ok, "outside every piece")
	}
	_, ok := s.pm.EvalPoint(core.UniverseBox(s.dom, 0))
	s.False(ok, "non-point query")
}

// TestExtremesAndNormalize checks MinWT/MaxWT and the affine rescale.
func (s *PDMapSuite) TestExtremesAndNormalize() {
	s.Equal(0.0, s.pm.MinWT())
	s.Equal(10.0, s.pm.MaxWT())

	s.pm.Normalize(50, 100)
	s.InDelta(50.0, s.pm.MinWT(), 1e-9)
	s.InDelta(150.0, s.pm.MaxWT(), 1e-9)
	v, _ := s.pm.Eval(4)
	s.InDelta(50+8*10.0, v, 1e-9)
}

// TestNormalizeFlat ensures a flat map is left untouched.
func (s *PDMapSuite) TestNormalizeFlat() {
	for _, b := range s.pm.Boxes() {
		b.SetConstant(3)
	}
	s.pm.Normalize(0, 100)
	s.Equal(3.0, s.pm.MaxWT())
}

// TestTransDomain grows the map into a second variable.
func (s *PDMapSuite) TestTransDomain() {
	big := domain.MustParse("y,0,4,5:x,0,9,10")
	s.Require().NoError(s.pm.TransDomain(big, []int{1}))
	s.Equal(2, s.pm.Dim())
	s.NoError(s.pm.CheckPartition())
	v, ok := s.pm.Eval(3, 7)
	s.True(ok)
	s.Equal(6.0, v)

	s.ErrorIs(s.pm.TransDomain(big, []int{0}), core.ErrDimMismatch)
}

// TestCheckPartitionDetectsGaps verifies overlap and gap detection.
func (s *PDMapSuite) TestCheckPartitionDetectsGaps() {
	s.NoError(s.pm.CheckPartition())
	s.pm.Box(1).SetPts(0, 6, 9)
	s.ErrorIs(s.pm.CheckPartition(), core.ErrNotPartition)
	s.pm.Box(1).SetPts(0, 4, 9)
	s.ErrorIs(s.pm.CheckPartition(), core.ErrNotPartition)
}

func TestPDMapSuite(t *testing.T) {
	suite.Run(t, new(PDMapSuite))
}

// TestPDMap_GelBox covers SetGelBox validation and the default choice.
func TestPDMap_GelBox(t *testing.T) {
	dom := domain.MustParse("x,0,99,100:y,0,49,50")
	pm := core.NewPDMap(dom, 0, core.UniverseBox(dom, 0))

	bad := core.NewBox(2, 0)
	bad.SetPts(0, 0, 100)
	assert.ErrorIs(t, pm.SetGelBox(bad), core.ErrBoxRange)
	assert.ErrorIs(t, pm.SetGelBox(core.NewBox(1, 0)), core.ErrDimMismatch)

	gel := pm.DefaultGelBox()
	require.Equal(t, 2, gel.Dim())
	assert.True(t, gel.Hi(0) >= 0 && gel.Hi(0) < 100)

	pm.UpdateGrid()
	ub, ok := pm.Grid().UpperBound(core.NewPointBox(10, 10))
	assert.True(t, ok)
	assert.Equal(t, 0.0, ub)
}

// TestPDMap_RemoveNil drops null pieces in order.
func TestPDMap_RemoveNil(t *testing.T) {
	dom := domain.MustParse("x,0,9,10")
	a, b := box1(0, 4), box1(5, 9)
	pm := core.NewPDMap(dom, 1, a, nil, core.NewBox(0, 1), b)
	pm.RemoveNil()
	require.Equal(t, 2, pm.Size())
	assert.Same(t, a, pm.Box(0))
	assert.Same(t, b, pm.Box(1))
	assert.True(t, pm.FreeOfNaN())
}
