// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp  TEXT    NOT NULL,
    event_type TEXT    NOT NULL,
    session_id TEXT,
    handle     TEXT,
    amount     TEXT,
    success    INTEGER NOT NULL,
    error      TEXT,
    metadata   TEXT
);
CREATE INDEX IF NOT EXISTS idx_audit_events_handle ON audit_events(handle);
`

// SQLiteSink stores events in an audit_events table.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database at path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := os.Chmod(path, 0600); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set database permissions: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

// Write inserts one event.
func (s *SQLiteSink) Write(e Event) error {
	var metadata sql.NullString
	if len(e.Metadata) > 0 {
		data, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		metadata = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO audit_events (timestamp, event_type, session_id, handle, amount, success, error, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		string(e.EventType),
		e.SessionID,
		e.Handle,
		e.Amount,
		e.Success,
		e.Error,
		metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest events, oldest first.
func (s *SQLiteSink) Recent(n int) ([]Event, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.Query(
		`SELECT timestamp, event_type, session_id, handle, amount, success, error, metadata
		 FROM (SELECT * FROM audit_events ORDER BY id DESC LIMIT ?) ORDER BY id ASC`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e         Event
			ts        string
			eventType string
			sessionID sql.NullString
			handle    sql.NullString
			amount    sql.NullString
			errMsg    sql.NullString
			metadata  sql.NullString
		)
		if err := rows.Scan(&ts, &eventType, &sessionID, &handle, &amount, &e.Success, &errMsg, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		e.EventType = EventType(eventType)
		e.SessionID = sessionID.String
		e.Handle = handle.String
		e.Amount = amount.String
		e.Error = errMsg.String
		if metadata.Valid {
			if err := json.Unmarshal([]byte(metadata.String), &e.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata: %w", err)
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the number of stored events.
func (s *SQLiteSink) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM audit_events").Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
