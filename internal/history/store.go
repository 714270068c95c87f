// Package history keeps a SQLite log of generation runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded generation.
type Run struct {
	ID         string
	Project    string
	Root       string
	Theme      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcome    string
	Pages      int
	Files      int
	Assets     int
	Errors     []string
	Warnings   []string
	Skipped    int
	Error      string
}

// Duration is the wall time of the run.
func (r Run) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

type details struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Store records runs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the history database at path. ":memory:" gives a
// throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		project TEXT NOT NULL,
		root TEXT NOT NULL,
		theme TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL,
		files INTEGER NOT NULL,
		assets INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		error TEXT,
		details TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores run and returns it with its ID filled in.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	detailsJSON, err := json.Marshal(details{Errors: run.Errors, Warnings: run.Warnings})
	if err != nil {
		return run, fmt.Errorf("marshal details: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, project, root, theme, started_at, finished_at, outcome, pages, files, assets, skipped, error, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Project, run.Root, run.Theme,
		run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.Outcome,
		run.Pages, run.Files, run.Assets, run.Skipped, run.Error, string(detailsJSON),
	)
	if err != nil {
		return run, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, project, root, theme, started_at, finished_at, outcome, pages, files, assets, skipped, error, details
		FROM runs ORDER BY started_at DESC, seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished int64
			errText, detail   sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Project, &r.Root, &r.Theme, &started, &finished, &r.Outcome,
			&r.Pages, &r.Files, &r.Assets, &r.Skipped, &errText, &detail); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		r.Error = errText.String
		if detail.Valid && detail.String != "" {
			var d details
			if err := json.Unmarshal([]byte(detail.String), &d); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
			r.Errors, r.Warnings = d.Errors, d.Warnings
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
