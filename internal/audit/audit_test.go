// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(t EventType) Event {
	return Event{
		Timestamp: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		EventType: t,
		SessionID: "sess-1",
		Handle:    "jd",
		Amount:    "200",
		Success:   true,
	}
}

func TestEvent_ToLogLine(t *testing.T) {
	e := sampleEvent(EventTransfer)
	e.Metadata = map[string]string{"to": "js", "balance": "11520"}

	line := e.ToLogLine()
	assert.Equal(t, "2024-05-01 10:30:00 | transfer | sess-1 | jd | 200 | SUCCESS | balance=11520 to=js", line)

	e.Success = false
	e.Error = "insufficient balance"
	e.Metadata = nil
	assert.True(t, strings.HasSuffix(e.ToLogLine(), "ERROR: insufficient balance"))
}

func TestLogger_Redacts(t *testing.T) {
	rec := &recordingSink{}
	l := New(rec)

	err := l.Log(Event{
		EventType: EventLoginFailed,
		Error:     "wrong pin 2222 for jd",
		Metadata: map[string]string{
			"pin":   "2222",
			"input": "close jd pin: 2222",
			"note":  "transfer 500",
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.events, 1)

	got := rec.events[0]
	assert.False(t, got.Timestamp.IsZero(), "timestamp should be filled in")
	assert.NotContains(t, got.Error, "2222")
	assert.Equal(t, "[REDACTED]", got.Metadata["pin"])
	assert.NotContains(t, got.Metadata["input"], "2222")
	assert.Equal(t, "transfer 500", got.Metadata["note"])
}

func TestLogger_RedactsHashes(t *testing.T) {
	l := New(NopSink{})
	hash := "$2a$04$" + strings.Repeat("a", 53)
	assert.Equal(t, "stored [HASH_REDACTED]", l.Redact("stored "+hash))
}

func TestLogger_CountsFailures(t *testing.T) {
	rec := &recordingSink{err: errors.New("disk full")}
	l := New(rec)

	assert.Error(t, l.Log(sampleEvent(EventLogin)))
	assert.Error(t, l.Log(sampleEvent(EventLogin)))
	assert.Equal(t, 2, l.FailureCount())

	rec.err = nil
	assert.NoError(t, l.Log(sampleEvent(EventLogin)))
	assert.Equal(t, 0, l.FailureCount())
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	assert.NoError(t, l.Log(sampleEvent(EventLogin)))
	assert.NoError(t, l.Close())
	events, err := l.Recent(5)
	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(BackendNone, "")
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open("FILE", filepath.Join(dir, "a.log"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open(BackendSQLite, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, err = Open("kafka", "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

// =============================================================================
// FILE SINK
// =============================================================================

func TestFileSink_WriteAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "audit.log")
	sink, err := NewFileSink(path)
	require.NoError(t, err)
	defer sink.Close()

	l := New(sink)
	for _, et := range []EventType{EventLogin, EventTransfer, EventLogout} {
		require.NoError(t, l.Log(sampleEvent(et)))
	}

	events, err := l.Recent(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventTransfer, events[0].EventType)
	assert.Equal(t, EventLogout, events[1].EventType)
	assert.Equal(t, "jd", events[1].Handle)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestFileSink_Rotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.log")
	sink, err := NewFileSink(path)
	require.NoError(t, err)
	defer sink.Close()

	sink.SetMaxSize(1)
	require.NoError(t, sink.Write(sampleEvent(EventLogin)))
	require.NoError(t, sink.Write(sampleEvent(EventLogout)))

	matches, err := filepath.Glob(filepath.Join(dir, "audit_*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	events, err := sink.Recent(0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventLogout, events[0].EventType)
}

func TestLogger_SetMaxFileSize(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(BackendFile, filepath.Join(dir, "audit.log"))
	require.NoError(t, err)
	defer l.Close()

	l.SetMaxFileSize(1)
	require.NoError(t, l.Log(sampleEvent(EventLogin)))
	require.NoError(t, l.Log(sampleEvent(EventLogout)))

	matches, err := filepath.Glob(filepath.Join(dir, "audit_*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	New(NopSink{}).SetMaxFileSize(1)
}

func TestFileSink_WriteAfterClose(t *testing.T) {
	sink, err := NewFileSink(filepath.Join(t.TempDir(), "audit.log"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Error(t, sink.Write(sampleEvent(EventLogin)))
}

// =============================================================================
// SQLITE SINK
// =============================================================================

func TestSQLiteSink_WriteAndRecent(t *testing.T) {
	sink, err := NewSQLiteSink(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer sink.Close()

	first := sampleEvent(EventLoanRequested)
	first.Metadata = map[string]string{"loan_id": "abc"}
	require.NoError(t, sink.Write(first))

	denied := sampleEvent(EventLoanDenied)
	denied.Success = false
	denied.Error = "no qualifying deposit"
	require.NoError(t, sink.Write(denied))

	n, err := sink.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	events, err := sink.Recent(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventLoanRequested, events[0].EventType)
	assert.Equal(t, "abc", events[0].Metadata["loan_id"])
	assert.True(t, events[0].Success)
	assert.True(t, first.Timestamp.Equal(events[0].Timestamp))

	assert.Equal(t, EventLoanDenied, events[1].EventType)
	assert.False(t, events[1].Success)
	assert.Equal(t, "no qualifying deposit", events[1].Error)

	latest, err := sink.Recent(1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, EventLoanDenied, latest[0].EventType)
}

type recordingSink struct {
	events []Event
	err    error
}

func (r *recordingSink) Write(e Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) Close() error { return nil }
