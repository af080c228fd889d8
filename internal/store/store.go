// Package store archives computed runs in a local SQLite database so they
// can be listed and replayed later. One row per run, one row per frame.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/astrogator/voyager/internal/world"
)

// ErrRunNotFound is returned when a run id is absent from the archive.
var ErrRunNotFound = errors.New("run not found")

// Run statuses recorded in the archive.
const (
	StatusSolved = "solved"
	StatusFailed = "failed"
)

// schema contains the DDL executed on first open. IF NOT EXISTS makes it
// safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    world      TEXT NOT NULL,
    k          INTEGER NOT NULL,
    status     TEXT NOT NULL,
    cost       REAL NOT NULL DEFAULT 0,
    steps      INTEGER NOT NULL DEFAULT 0,
    expanded   INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS frames (
    run_id TEXT NOT NULL REFERENCES runs(id),
    step   INTEGER NOT NULL,
    data   TEXT NOT NULL,
    PRIMARY KEY (run_id, step)
);
`

// Store is a SQLite-backed run archive.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive at dbPath, enables WAL mode and a
// busy timeout, and creates the schema if needed.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids SQLITE_BUSY
	// contention between pooled connections that each need PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}

// RunMeta summarizes one archived run.
type RunMeta struct {
	ID        string
	World     string
	K         int
	Status    string
	Cost      float64
	Steps     int
	Expanded  int
	CreatedAt time.Time
}

// SaveRun archives a completed run and its frames, returning the new run
// id. Frames may be nil for a failed run.
func (s *Store) SaveRun(ctx context.Context, worldName string, k int, status string, cost float64, expanded int, frames []world.Frame) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, world, k, status, cost, steps, expanded) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, worldName, k, status, cost, len(frames), expanded)
	if err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	for i, frame := range frames {
		data, err := json.Marshal(frame)
		if err != nil {
			return "", fmt.Errorf("store: marshal frame %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO frames (run_id, step, data) VALUES (?, ?, ?)`,
			id, i, string(data)); err != nil {
			return "", fmt.Errorf("store: insert frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// Runs lists archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, world, k, status, cost, steps, expanded, created_at FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.ID, &m.World, &m.K, &m.Status, &m.Cost, &m.Steps, &m.Expanded, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		runs = append(runs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate runs: %w", err)
	}
	return runs, nil
}

// Run fetches one run's metadata.
func (s *Store) Run(ctx context.Context, id string) (RunMeta, error) {
	var m RunMeta
	err := s.db.QueryRowContext(ctx,
		`SELECT id, world, k, status, cost, steps, expanded, created_at FROM runs WHERE id = ?`, id).
		Scan(&m.ID, &m.World, &m.K, &m.Status, &m.Cost, &m.Steps, &m.Expanded, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RunMeta{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunMeta{}, fmt.Errorf("store: fetch run: %w", err)
	}
	return m, nil
}

// Frames loads the ordered frames of one archived run.
func (s *Store) Frames(ctx context.Context, id string) ([]world.Frame, error) {
	if _, err := s.Run(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM frames WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return nil, fmt.Errorf("store: load frames: %w", err)
	}
	defer rows.Close()

	var frames []world.Frame
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("store: scan frame: %w", err)
		}
		var frame world.Frame
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			return nil, fmt.Errorf("store: unmarshal frame: %w", err)
		}
		frames = append(frames, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate frames: %w", err)
	}
	return frames, nil
}
