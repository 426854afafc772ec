// Package db keeps a sqlite catalog of completed capture sessions so
// downstream tooling can find session files without scanning the output
// directory.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps the session catalog database.
type DB struct {
	*sql.DB
}

// SessionRecord is one catalog row describing a completed session file.
type SessionRecord struct {
	ID              string
	FilePath        string
	StartTime       time.Time
	EndTime         time.Time
	TotalSamples    int
	DurationSeconds float64
}

// NewDB opens (creating if needed) the catalog at path.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id        TEXT PRIMARY KEY,
			file_path         TEXT,
			start_time        TEXT,
			end_time          TEXT,
			total_samples     BIGINT,
			duration_seconds  DOUBLE,
			recorded_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// RecordSession inserts a catalog row for a completed session and returns
// the generated session id.
func (db *DB) RecordSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := db.Exec(
		`INSERT INTO sessions (session_id, file_path, start_time, end_time, total_samples, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FilePath,
		rec.StartTime.UTC().Format(time.RFC3339Nano),
		rec.EndTime.UTC().Format(time.RFC3339Nano),
		rec.TotalSamples, rec.DurationSeconds,
	)
	if err != nil {
		return "", fmt.Errorf("db: record session: %w", err)
	}
	return rec.ID, nil
}

// Sessions returns all catalogued sessions, most recent start first.
func (db *DB) Sessions() ([]SessionRecord, error) {
	rows, err := db.Query(
		`SELECT session_id, file_path, start_time, end_time, total_samples, duration_seconds
		 FROM sessions ORDER BY start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("db: list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var start, end string
		if err := rows.Scan(&rec.ID, &rec.FilePath, &start, &end,
			&rec.TotalSamples, &rec.DurationSeconds); err != nil {
			return nil, fmt.Errorf("db: scan session: %w", err)
		}
		if rec.StartTime, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return nil, fmt.Errorf("db: parse start time %q: %w", start, err)
		}
		if rec.EndTime, err = time.Parse(time.RFC3339Nano, end); err != nil {
			return nil, fmt.Errorf("db: parse end time %q: %w", end, err)
		}
		sessions = append(sessions, rec)
	}
	return sessions, rows.Err()
}
