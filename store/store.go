// SPDX-License-Identifier: MIT
// Package store persists run records in SQLite.
//
// Each run is one row of the runs table: a few indexed columns for listing
// plus the whole Record as a JSON payload. Records never change once saved,
// so Get keeps their encoded payloads in an in-process ristretto cache.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("store: run not found")

const (
	defaultCacheBytes = 64 << 20
	defaultListLimit  = 20

	// Fixed-width UTC timestamps sort lexically in time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	method     TEXT NOT NULL,
	agents     INTEGER NOT NULL,
	best_score REAL NOT NULL,
	payload    BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Store is a SQLite-backed run store. It is safe for concurrent use.
type Store struct {
	db    *sql.DB
	cache *ristretto.Cache
	path  string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("store: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     defaultCacheBytes,
		BufferItems: 64,
	})
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("store: cache: %w", err)
	}

	return &Store{db: db, cache: cache, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Save assigns rec a fresh id and, when unset, a creation time, then
// inserts it. It returns the id.
func (s *Store) Save(ctx context.Context, rec *Record) (string, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("store: encode run: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, method, agents, best_score, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(timeLayout), rec.Method, rec.Instance.Size(), rec.BestScore, payload)
	if err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	return rec.ID, nil
}

// Get loads the run with the given id. Every call decodes a fresh Record,
// so callers may modify the result.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	payload, err := s.payload(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := new(Record)
	if err = json.Unmarshal(payload, rec); err != nil {
		return nil, fmt.Errorf("store: decode run %s: %w", id, err)
	}

	return rec, nil
}

// payload returns the stored JSON of a run, cache first.
func (s *Store) payload(ctx context.Context, id string) ([]byte, error) {
	if v, ok := s.cache.Get(id); ok {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: select run: %w", err)
	}
	s.cache.Set(id, payload, int64(len(payload)))
	s.cache.Wait()

	return payload, nil
}

// List returns up to limit summaries, newest first. limit <= 0 means 20.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, method, agents, best_score FROM runs
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			created string
		)
		if err = rows.Scan(&sum.ID, &created, &sum.Method, &sum.Agents, &sum.BestScore); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("store: run %s: bad timestamp: %w", sum.ID, err)
		}
		out = append(out, sum)
	}

	return out, rows.Err()
}

// Close releases the cache and the database.
func (s *Store) Close() error {
	s.cache.Close()

	return s.db.Close()
}
