// Package runlog keeps a local history of pipeline runs so "did the
// finance scrape work last night" is answerable without digging
// through logs.
package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Run is one recorded pipeline step execution.
type Run struct {
	ID        int64
	Step      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Detail    string
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the run-history database. ":memory:" works
// for tests.
func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, fmt.Errorf("open runlog db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return Store{}, fmt.Errorf("apply runlog schema: %w", err)
	}
	return Store{db: db}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) Record(ctx context.Context, run Run) error {
	success := 0
	if run.Success {
		success = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (step, started_at, duration_ms, success, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Step,
		run.StartedAt.Format(time.RFC3339),
		run.Duration.Milliseconds(),
		success,
		run.Detail,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the newest runs first.
func (s Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, step, started_at, duration_ms, success, detail
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		var durationMs int64
		var success int
		if err := rows.Scan(&run.ID, &run.Step, &started, &durationMs, &success, &run.Detail); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		run.Success = success != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastSuccess reports when the given step last completed
// successfully, false when it never has.
func (s Store) LastSuccess(ctx context.Context, step string) (time.Time, bool, error) {
	var started string
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at FROM runs
		 WHERE step = ? AND success = 1
		 ORDER BY started_at DESC LIMIT 1`, step).Scan(&started)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query last success: %w", err)
	}
	at, err := time.Parse(time.RFC3339, started)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse run timestamp: %w", err)
	}
	return at, true, nil
}
