// SPDX-License-Identifier: MIT
// Package: ivpbuild/archive
//
// store.go - SQLite-backed store of encoded functions.
//
// Contract:
//   • Every saved function gets a fresh uuid and is stored in MK form; Load
//     returns what encoder.Decode makes of it.
//   • List returns records newest first.
//   • A Store holds a single connection, so ":memory:" databases survive
//     for the life of the Store.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/encoder"
)

const schema = `
CREATE TABLE IF NOT EXISTS functions (
	id         TEXT PRIMARY KEY,
	context    TEXT NOT NULL DEFAULT '',
	dim        INTEGER NOT NULL,
	pieces     INTEGER NOT NULL,
	degree     INTEGER NOT NULL,
	pwt        REAL NOT NULL,
	domain     TEXT NOT NULL,
	encoded    TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_functions_created ON functions(created_at);
`

// timeLayout is RFC3339 with a fixed-width fraction, so stored times sort
// as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record describes one stored function.
type Record struct {
	ID        string
	Context   string
	Dim       int
	Pieces    int
	Degree    int
	PWT       float64
	Domain    string
	Encoded   string
	Note      string
	CreatedAt time.Time
}

// row mirrors the functions table.
type row struct {
	ID        string  `db:"id"`
	Context   string  `db:"context"`
	Dim       int     `db:"dim"`
	Pieces    int     `db:"pieces"`
	Degree    int     `db:"degree"`
	PWT       float64 `db:"pwt"`
	Domain    string  `db:"domain"`
	Encoded   string  `db:"encoded"`
	Note      string  `db:"note"`
	CreatedAt string  `db:"created_at"`
}

func (r row) record() (Record, error) {
	at, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at of %s: %w", r.ID, err)
	}
	return Record{
		ID: r.ID, Context: r.Context, Dim: r.Dim, Pieces: r.Pieces, Degree: r.Degree,
		PWT: r.PWT, Domain: r.Domain, Encoded: r.Encoded, Note: r.Note, CreatedAt: at,
	}, nil
}

// Store is a handle on one archive database.
type Store struct {
	db  *sqlx.DB
	log *slog.Logger
	now func() time.Time
}

// Open opens or creates the archive at path and applies the schema.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := newConfig(opts...)
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	s := &Store{db: db, log: cfg.logger, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.log.Debug("archive opened", "path", path)
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) open() error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	return nil
}

// Save encodes f and stores it under a fresh id. f is left untouched.
func (s *Store) Save(ctx context.Context, f *core.Function, note string) (Record, error) {
	if err := s.open(); err != nil {
		return Record{}, fmt.Errorf("Save: %w", err)
	}
	enc, err := encoder.Encode(f)
	if err != nil {
		return Record{}, fmt.Errorf("Save: %w", err)
	}
	rec := Record{
		ID:        uuid.New().String(),
		Context:   f.Context(),
		Dim:       f.Dim(),
		Pieces:    f.Size(),
		Degree:    f.PDMap().Degree(),
		PWT:       f.PWT(),
		Domain:    f.Domain().String(),
		Encoded:   enc,
		Note:      note,
		CreatedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("Save: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO functions (id, context, dim, pieces, degree, pwt, domain, encoded, note, created_at)
		VALUES (:id, :context, :dim, :pieces, :degree, :pwt, :domain, :encoded, :note, :created_at)`,
		row{
			ID: rec.ID, Context: rec.Context, Dim: rec.Dim, Pieces: rec.Pieces, Degree: rec.Degree,
			PWT: rec.PWT, Domain: rec.Domain, Encoded: rec.Encoded, Note: rec.Note,
			CreatedAt: rec.CreatedAt.Format(timeLayout),
		})
	if err != nil {
		return Record{}, fmt.Errorf("Save: insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("Save: commit: %w", err)
	}
	s.log.Info("function archived", "id", rec.ID, "context", rec.Context, "pieces", rec.Pieces)
	return rec, nil
}

// Get returns the record stored under id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	if err := s.open(); err != nil {
		return Record{}, fmt.Errorf("Get: %w", err)
	}
	var r row
	err := s.db.GetContext(ctx, &r, `SELECT * FROM functions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("Get(%s): %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("Get(%s): %w", id, err)
	}
	s.log.Debug("function read", "id", id)
	return r.record()
}

// Load decodes the function stored under id.
func (s *Store) Load(ctx context.Context, id string) (*core.Function, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := encoder.Decode(rec.Encoded)
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", id, err)
	}
	return f, nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if err := s.open(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	if limit <= 0 {
		limit = -1
	}
	var rows []row
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM functions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Delete removes the function stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.open(); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM functions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Delete(%s): %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete(%s): %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("Delete(%s): %w", id, ErrNotFound)
	}
	s.log.Info("function deleted", "id", id)
	return nil
}
