// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite index of generated reports so
// `slicereport history` can list past extractions. The core extractors
// never touch it; recording is a CLI concern and can be disabled.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "history.db"

// Entry is one recorded report generation.
type Entry struct {
	ID          int64
	Title       string
	ProjectPath string
	GCodePath   string
	Printer     string
	DurationSec int
	MassGrams   float64
	Cost        float64
	GeneratedAt time.Time
}

// Store manages the report history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database under dir, creating the
// directory and schema as needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	path := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		project_path TEXT NOT NULL,
		gcode_path TEXT,
		printer TEXT,
		duration_sec INTEGER,
		mass_grams REAL,
		cost REAL,
		generated_at TEXT NOT NULL
	)`)
	return err
}

// Add records one generated report.
func (s *Store) Add(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO reports (title, project_path, gcode_path, printer, duration_sec, mass_grams, cost, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.ProjectPath, e.GCodePath, e.Printer,
		e.DurationSec, e.MassGrams, e.Cost,
		e.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording report: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first, up to limit.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, title, project_path, gcode_path, printer, duration_sec, mass_grams, cost, generated_at
		 FROM reports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &e.Title, &e.ProjectPath, &e.GCodePath, &e.Printer,
			&e.DurationSec, &e.MassGrams, &e.Cost, &ts); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.GeneratedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
