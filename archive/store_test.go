package archive_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/ivpbuild/archive"
	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ramp is a two-piece function over x,0,9,10 rising 2 per step.
func ramp(ctx string) *core.Function {
	dom := domain.MustParse("x,0,9,10")
	lo := core.NewBox(1, 1)
	lo.SetPts(0, 0, 4)
	lo.SetWt(0, 2)
	hi := core.NewBox(1, 1)
	hi.SetPts(0, 5, 9)
	hi.SetWt(0, 2)
	pm := core.NewPDMap(dom, 1, lo, hi)
	pm.UpdateGrid()
	f := core.NewFunction(pm)
	f.SetContext(ctx)
	f.SetPWT(7.5)
	return f
}

type StoreSuite struct {
	suite.Suite
	ctx context.Context
	st  *archive.Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	st, err := archive.Open(":memory:")
	s.Require().NoError(err)
	s.st = st
}

func (s *StoreSuite) TearDownTest() {
	s.NoError(s.st.Close())
}

func (s *StoreSuite) TestSaveLoad() {
	f := ramp("depth")
	rec, err := s.st.Save(s.ctx, f, "first")
	s.Require().NoError(err)
	s.Len(rec.ID, 36)
	s.Equal("depth", rec.Context)
	s.Equal(1, rec.Dim)
	s.Equal(2, rec.Pieces)
	s.Equal(1, rec.Degree)
	s.Equal(7.5, rec.PWT)
	s.Equal("x,0,9,10", rec.Domain)
	s.False(f.Released(), "Save leaves the function alone")

	got, err := s.st.Get(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.Encoded, got.Encoded)
	s.Equal("first", got.Note)
	s.True(rec.CreatedAt.Equal(got.CreatedAt))

	g, err := s.st.Load(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal("depth", g.Context())
	s.Equal(7.5, g.PWT())
	for i := 0; i < 10; i++ {
		want, _ := f.Eval(i)
		v, ok := g.Eval(i)
		s.True(ok)
		s.InDelta(want, v, 1e-9)
	}
}

func (s *StoreSuite) TestListNewestFirst() {
	var ids []string
	for _, c := range []string{"a", "b", "c"} {
		rec, err := s.st.Save(s.ctx, ramp(c), "")
		s.Require().NoError(err)
		ids = append(ids, rec.ID)
	}
	all, err := s.st.List(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})

	two, err := s.st.List(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(two, 2)
	s.Equal("c", two[0].Context)
}

func (s *StoreSuite) TestDelete() {
	rec, err := s.st.Save(s.ctx, ramp("gone"), "")
	s.Require().NoError(err)
	s.Require().NoError(s.st.Delete(s.ctx, rec.ID))
	s.ErrorIs(s.st.Delete(s.ctx, rec.ID), archive.ErrNotFound)
	_, err = s.st.Load(s.ctx, rec.ID)
	s.ErrorIs(err, archive.ErrNotFound)
}

func (s *StoreSuite) TestSaveReleased() {
	f := ramp("x")
	f.Release()
	_, err := s.st.Save(s.ctx, f, "")
	s.ErrorIs(err, core.ErrNilFunction)
	all, err := s.st.List(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(all)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestOpen_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fns.db")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	st, err := archive.Open(path, archive.WithLogger(logger))
	require.NoError(t, err)
	rec, err := st.Save(context.Background(), ramp("kept"), "")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	assert.Contains(t, logs.String(), "function archived")

	st, err = archive.Open(path)
	require.NoError(t, err)
	defer st.Close()
	f, err := st.Load(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", f.Context())
}

func TestClosedStore(t *testing.T) {
	st, err := archive.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close())
	_, err = st.List(context.Background(), 1)
	assert.ErrorIs(t, err, archive.ErrClosed)
	_, err = st.Save(context.Background(), ramp("x"), "")
	assert.ErrorIs(t, err, archive.ErrClosed)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { archive.WithLogger(nil) })
	assert.Panics(t, func() { archive.WithBusyTimeout(-1) })
}
