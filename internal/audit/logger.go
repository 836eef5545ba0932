// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Backend names understood by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown audit backend")

// Sink persists events.
type Sink interface {
	Write(e Event) error
	Close() error
}

// Reader is implemented by sinks that can return what they stored.
type Reader interface {
	Recent(n int) ([]Event, error)
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger redacts events and hands them to a Sink. A nil *Logger discards
// everything, so callers never need to check for it.
type Logger struct {
	mu        sync.Mutex
	sink      Sink
	redactors []Redactor
	now       func() time.Time

	failureCount int
	lastFailure  error
}

// New creates a Logger writing to sink.
func New(sink Sink) *Logger {
	if sink == nil {
		sink = NopSink{}
	}
	return &Logger{
		sink:      sink,
		redactors: defaultRedactors(),
		now:       time.Now,
	}
}

// Open builds a Logger for the named backend. An empty path selects the
// default location under ~/.bankist.
func Open(backend, path string) (*Logger, error) {
	switch strings.ToLower(backend) {
	case "", BackendNone:
		return New(NopSink{}), nil
	case BackendFile:
		if path == "" {
			path = DefaultPath(BackendFile)
		}
		sink, err := NewFileSink(path)
		if err != nil {
			return nil, err
		}
		return New(sink), nil
	case BackendSQLite:
		if path == "" {
			path = DefaultPath(BackendSQLite)
		}
		sink, err := NewSQLiteSink(path)
		if err != nil {
			return nil, err
		}
		return New(sink), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// DefaultPath returns the default audit location for a backend.
func DefaultPath(backend string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	name := "audit.log"
	if backend == BackendSQLite {
		name = "audit.db"
	}
	return filepath.Join(home, ".bankist", name)
}

// Log stamps, redacts and writes one event. Write failures are reported
// on the standard logger and returned; they never block the caller.
func (l *Logger) Log(e Event) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	e.Error = l.redactLocked(e.Error)
	if len(e.Metadata) > 0 {
		md := make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			if sensitiveKey(k) {
				md[k] = "[REDACTED]"
				continue
			}
			md[k] = l.redactLocked(v)
		}
		e.Metadata = md
	}

	if err := l.sink.Write(e); err != nil {
		l.failureCount++
		l.lastFailure = err
		log.Printf("WARNING: audit write failed (#%d): %v", l.failureCount, err)
		return err
	}
	l.failureCount = 0
	return nil
}

// Redact applies every registered redactor to input.
func (l *Logger) Redact(input string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.redactLocked(input)
}

func (l *Logger) redactLocked(input string) string {
	for _, r := range l.redactors {
		input = r.Redact(input)
	}
	return input
}

// AddRedactor registers an extra redactor.
func (l *Logger) AddRedactor(r Redactor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.redactors = append(l.redactors, r)
}

// FailureCount returns the number of consecutive failed writes.
func (l *Logger) FailureCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failureCount
}

// SetMaxFileSize sets the rotation threshold on sinks that rotate by size.
// Other sinks ignore it.
func (l *Logger) SetMaxFileSize(size int64) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.sink.(interface{ SetMaxSize(int64) }); ok {
		r.SetMaxSize(size)
	}
}

// Recent returns up to n of the latest events if the sink can read back.
func (l *Logger) Recent(n int) ([]Event, error) {
	if l == nil {
		return nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.sink.(Reader)
	if !ok {
		return nil, nil
	}
	return r.Recent(n)
}

// Close closes the underlying sink.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.Close()
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Write(Event) error { return nil }
func (NopSink) Close() error      { return nil }
