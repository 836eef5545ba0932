// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit records session activity to a file or SQLite database.
package audit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// EventType names one kind of audited activity.
type EventType string

const (
	EventLogin          EventType = "login"
	EventLoginFailed    EventType = "login_failed"
	EventLogout         EventType = "logout"
	EventTimeout        EventType = "timeout"
	EventTransfer       EventType = "transfer"
	EventTransferFailed EventType = "transfer_failed"
	EventLoanRequested  EventType = "loan_requested"
	EventLoanDenied     EventType = "loan_denied"
	EventLoanCredited   EventType = "loan_credited"
	EventLoanCanceled   EventType = "loan_canceled"
	EventClose          EventType = "close"
)

// =============================================================================
// AUDIT EVENT
// =============================================================================

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType EventType         `json:"event_type"`
	SessionID string            `json:"session_id,omitempty"`
	Handle    string            `json:"handle,omitempty"`
	Amount    string            `json:"amount,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ToLogLine formats the event as a single human-readable line.
func (e *Event) ToLogLine() string {
	status := "SUCCESS"
	if !e.Success {
		if e.Error != "" {
			status = "ERROR: " + e.Error
		} else {
			status = "FAILURE"
		}
	}

	line := fmt.Sprintf("%s | %s | %s | %s | %s | %s",
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.EventType,
		e.SessionID,
		e.Handle,
		e.Amount,
		status,
	)

	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + e.Metadata[k]
		}
		line += " | " + strings.Join(pairs, " ")
	}
	return line
}

// ToJSON formats the event as JSON.
func (e *Event) ToJSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
