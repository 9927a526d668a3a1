// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a ledger of conversion runs in a local SQLite
// database so past results can be reviewed with the history subcommand.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfpress/pkg/types"
)

const dbFile = "history.db"

// Entry is one recorded conversion run.
type Entry struct {
	ID int64
	types.Result
	CreatedAt time.Time
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at cfg.Dir/history.db,
// creating the schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
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
	const stmt = `CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		output_path TEXT,
		status TEXT NOT NULL,
		pages INTEGER,
		sample_page INTEGER,
		input_bytes INTEGER,
		output_bytes INTEGER,
		duration_ms INTEGER,
		error TEXT,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one conversion result to the ledger.
func (s *Store) Record(ctx context.Context, res types.Result) error {
	const stmt = `INSERT INTO conversions
		(input_path, output_path, status, pages, sample_page, input_bytes, output_bytes, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		res.InputPath, res.OutputPath, string(res.Status), res.Pages, res.SamplePage,
		res.InputBytes, res.OutputBytes, res.Duration.Milliseconds(), res.Error,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	const stmt = `SELECT id, input_path, output_path, status, pages, sample_page,
		input_bytes, output_bytes, duration_ms, error, created_at
		FROM conversions ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, created string
		var durationMs int64
		if err := rows.Scan(&e.ID, &e.InputPath, &e.OutputPath, &status, &e.Pages,
			&e.SamplePage, &e.InputBytes, &e.OutputBytes, &durationMs, &e.Error, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Status = types.Status(status)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all recorded runs.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversions`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
