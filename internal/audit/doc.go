// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit records session activity to a file or SQLite database.
//
// Every login, transfer, loan decision and closure becomes an Event.
// The Logger strips PINs and password hashes before the event reaches
// its Sink.
//
// # Key Types
//
//   - Event: one audited action
//   - Logger: redaction plus failure accounting in front of a Sink
//   - FileSink: JSON lines with size-based rotation
//   - SQLiteSink: rows in an audit_events table (modernc.org/sqlite)
//   - NopSink: discards everything
//
// # Usage
//
//	logger, err := audit.Open(audit.BackendSQLite, "")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Log(audit.Event{EventType: audit.EventLogin, Handle: "jd", Success: true})
package audit
