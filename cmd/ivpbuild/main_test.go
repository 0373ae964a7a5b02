package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/ivpbuild/archive"
	"github.com/katalvlaran/ivpbuild/encoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const job = `
context: depth
domain: "depth,0,100,11"
pwt: 20
functions:
  - kind: zaic_leq
    var: depth
    summit: 30
    base_width: 40
`

func writeJob(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(job), 0o600))
	return path
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRun_EncodeAndPackets(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{job: writeJob(t), encode: true, packet: 120}, &out, quiet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "H,5,depth,1,"))

	whole, err := encoder.Reassemble(lines[1:])
	require.NoError(t, err)
	assert.Equal(t, lines[0], whole)
}

func TestRun_Archive(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fns.db")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	require.NoError(t, run(context.Background(), options{job: writeJob(t), db: db}, io.Discard, logger))
	assert.Contains(t, logs.String(), "archived")

	st, err := archive.Open(db)
	require.NoError(t, err)
	defer st.Close()
	recs, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "depth", recs[0].Context)
	assert.Equal(t, 20.0, recs[0].PWT)
}

// packetLines builds the test job and returns its encoded line and packets.
func packetLines(t *testing.T) (string, []string) {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{job: writeJob(t), encode: true, packet: 100}, &out, quiet()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 2)
	return lines[0], lines[1:]
}

func TestRun_Reassemble(t *testing.T) {
	enc, a := packetLines(t)
	_, b := packetLines(t)

	// Interleave both functions in reverse index order, with noise in between.
	var file []string
	for i := len(a) - 1; i >= 0; i-- {
		file = append(file, a[i], b[i])
		if i == 1 {
			file = append(file, "", "not a packet", "P,huge,2000000000,1,x")
		}
	}
	path := filepath.Join(t.TempDir(), "packets.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(file, "\n")+"\n"), 0o600))
	db := filepath.Join(t.TempDir(), "fns.db")

	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	require.NoError(t, run(context.Background(), options{reassemble: path, encode: true, db: db}, &out, logger))

	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{enc, enc}, got)
	assert.Equal(t, 2, strings.Count(logs.String(), "packet skipped"))
	assert.Contains(t, logs.String(), "functions=2")

	st, err := archive.Open(db)
	require.NoError(t, err)
	defer st.Close()
	recs, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRun_ReassembleIncomplete(t *testing.T) {
	_, a := packetLines(t)
	path := filepath.Join(t.TempDir(), "packets.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(a[1:], "\n")), 0o600))

	var logs bytes.Buffer
	err := run(context.Background(), options{reassemble: path}, io.Discard, slog.New(slog.NewTextHandler(&logs, nil)))
	assert.ErrorIs(t, err, encoder.ErrIncomplete)
	assert.Contains(t, logs.String(), "incomplete functions")
}

func TestRun_Failures(t *testing.T) {
	assert.Error(t, run(context.Background(), options{}, io.Discard, quiet()))
	assert.Error(t, run(context.Background(), options{job: "a.yaml", reassemble: "p.txt"}, io.Discard, quiet()))
	assert.ErrorIs(t, run(context.Background(), options{reassemble: filepath.Join(t.TempDir(), "none.txt")}, io.Discard, quiet()), os.ErrNotExist)
	assert.ErrorIs(t, run(context.Background(), options{job: filepath.Join(t.TempDir(), "none.yaml")}, io.Discard, quiet()), os.ErrNotExist)
	assert.Error(t, run(context.Background(), options{job: writeJob(t), packet: 10}, io.Discard, quiet()))
}
