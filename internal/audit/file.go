// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultMaxFileSize is the default max file size before rotation (10MB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// =============================================================================
// FILE SINK
// =============================================================================

// FileSink appends events as JSON lines and rotates the file by size.
type FileSink struct {
	path    string
	file    *os.File
	maxSize int64
	mu      sync.Mutex
}

// NewFileSink opens (or creates) path for appending with 0600 permissions.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}

	return &FileSink{path: path, file: file, maxSize: DefaultMaxFileSize}, nil
}

// Path returns the active log file path.
func (s *FileSink) Path() string {
	return s.path
}

// SetMaxSize sets the maximum file size before rotation (0 disables rotation).
func (s *FileSink) SetMaxSize(size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSize = size
}

// Write appends one event and syncs the file.
func (s *FileSink) Write(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("audit log %s is closed", s.path)
	}
	if err := s.checkRotationLocked(); err != nil {
		return err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}
	data = append(data, '\n')

	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync audit log: %w", err)
	}
	return nil
}

// Recent returns up to n of the newest events in the active file, oldest first.
func (s *FileSink) Recent(n int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan audit log: %w", err)
	}

	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// Rotate moves the current file aside with a timestamp suffix.
func (s *FileSink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotateLocked()
}

func (s *FileSink) rotateLocked() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close audit log for rotation: %w", err)
	}

	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(s.path, ext)
	rotatedPath := fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405.000"), ext)

	if err := os.Rename(s.path, rotatedPath); err != nil {
		s.file, _ = os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		return fmt.Errorf("failed to rotate audit log: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		s.file = nil
		return fmt.Errorf("failed to create new audit log after rotation: %w", err)
	}
	s.file = file
	return nil
}

func (s *FileSink) checkRotationLocked() error {
	if s.maxSize <= 0 {
		return nil
	}
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat audit log: %w", err)
	}
	if info.Size() >= s.maxSize {
		return s.rotateLocked()
	}
	return nil
}

// Close closes the log file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
