// Package score persists the high score and the history of finished runs
// in a sqlite database.
package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// HighScoreKey is the storage key of the best score.
const HighScoreKey = "asteroidDestroyerHS2"

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeFail Outcome = "fail"
)

// Run is one finished session.
type Run struct {
	Outcome    Outcome
	Score      int
	Progress   float64
	FinishedAt time.Time
}

// Store is a sqlite-backed score store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and its tables.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open score database: %w", err)
	}
	// A single connection serializes writers from concurrent SSH sessions.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			progress REAL NOT NULL,
			finished_at DATETIME NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HighScore returns the stored best score. A missing or unparsable value
// reads as 0.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, HighScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, nil
	}
	return v, nil
}

// SaveHighScore stores v unless a higher score is already stored, so
// concurrent sessions never lower the best.
func (s *Store) SaveHighScore(ctx context.Context, v int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
		WHERE CAST(kv.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		HighScoreKey, strconv.Itoa(v))
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

// RecordRun appends a finished run to the history.
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (outcome, score, progress, finished_at) VALUES (?, ?, ?, ?)`,
		string(r.Outcome), r.Score, r.Progress, r.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT outcome, score, progress, finished_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		if err := rows.Scan(&outcome, &r.Score, &r.Progress, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Outcome = Outcome(outcome)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
