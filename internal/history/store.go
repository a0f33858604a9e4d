// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed runs in a SQLite database. The history
// is append-only reporting: it is never consulted to skip or resume work.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/photoconv/pkg/types"
)

const defaultLimit = 20

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dbPath, creating parent
// directories and the schema as needed.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			format TEXT NOT NULL,
			input_root TEXT NOT NULL,
			output_root TEXT NOT NULL,
			concurrency INTEGER NOT NULL,
			successful INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_failures (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			path TEXT NOT NULL,
			reason TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_failures_run_id ON run_failures(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts one completed run and its per-file failures, returning
// the new run's ID.
func (s *Store) RecordRun(cfg types.RunConfig, startedAt time.Time, result types.RunResult) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, format, input_root, output_root, concurrency, successful, failed, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), cfg.Format, cfg.InputRoot, cfg.OutputRoot,
		cfg.Concurrency, result.Successful, result.Failed, result.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, f := range result.Failures {
		if _, err := tx.Exec(
			`INSERT INTO run_failures (run_id, path, reason) VALUES (?, ?, ?)`,
			id, f.Path, f.Reason,
		); err != nil {
			return 0, fmt.Errorf("inserting failure for %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first. A non-positive limit
// uses the default (20).
func (s *Store) RecentRuns(limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, format, input_root, output_root, concurrency, successful, failed, elapsed_ms
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var r types.RunRecord
		var startedAt string
		var elapsedMs int64
		if err := rows.Scan(&r.ID, &startedAt, &r.Format, &r.InputRoot, &r.OutputRoot,
			&r.Concurrency, &r.Successful, &r.Failed, &elapsedMs); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = ts
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		records = append(records, r)
	}
	return records, rows.Err()
}

// RunFailures returns the failure list recorded for one run.
func (s *Store) RunFailures(runID int64) ([]types.TaskFailure, error) {
	rows, err := s.db.Query(
		`SELECT path, reason FROM run_failures WHERE run_id = ? ORDER BY rowid`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var failures []types.TaskFailure
	for rows.Next() {
		var f types.TaskFailure
		if err := rows.Scan(&f.Path, &f.Reason); err != nil {
			return nil, fmt.Errorf("scanning failure row: %w", err)
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}
