// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the audit trail SQLite database. A Store is bound to at
// most one run at a time: Begin opens a run, Record appends file entries to
// it.
type Store struct {
	db    *sql.DB
	runID int64
}

// NewStore opens or creates the audit trail database at dbPath, creating
// the parent directory and the schema if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating audit directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
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
			folders TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source_path TEXT NOT NULL,
			result_path TEXT NOT NULL,
			pages INTEGER NOT NULL,
			source_sha256 TEXT NOT NULL,
			result_sha256 TEXT NOT NULL,
			processed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Begin opens a new run covering the given folders. Subsequent Record calls
// attach to this run.
func (s *Store) Begin(ctx context.Context, folders []string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, folders) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339), strings.Join(folders, string(os.PathListSeparator)))
	if err != nil {
		return fmt.Errorf("starting audit run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("starting audit run: %w", err)
	}
	s.runID = id
	return nil
}

// Record appends one file entry to the current run.
func (s *Store) Record(ctx context.Context, rec FileRecord) error {
	if s.runID == 0 {
		return fmt.Errorf("no audit run in progress: call Begin first")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (run_id, source_path, result_path, pages, source_sha256, result_sha256, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, rec.SourcePath, rec.ResultPath, rec.Pages,
		rec.SourceSHA256, rec.ResultSHA256, rec.ProcessedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.SourcePath, err)
	}
	return nil
}

// Recent returns up to limit file records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]FileRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, result_path, pages, source_sha256, result_sha256, processed_at
		 FROM files ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit trail: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		var processedAt string
		if err := rows.Scan(&rec.SourcePath, &rec.ResultPath, &rec.Pages,
			&rec.SourceSHA256, &rec.ResultSHA256, &processedAt); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		rec.ProcessedAt, err = time.Parse(time.RFC3339, processedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", processedAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
