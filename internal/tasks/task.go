// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TASK STATUS
// =============================================================================

// TaskStatus represents the current state of a deferred task.
type TaskStatus string

const (
	// TaskStatusScheduled indicates the task is waiting for its due time
	TaskStatusScheduled TaskStatus = "Scheduled"

	// TaskStatusRunning indicates the task body is executing
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusComplete indicates the task body returned normally
	TaskStatusComplete TaskStatus = "Complete"

	// TaskStatusFailed indicates the task body panicked
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusCanceled indicates the task was canceled before it ran
	TaskStatusCanceled TaskStatus = "Canceled"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusComplete || s == TaskStatusFailed || s == TaskStatusCanceled
}

// =============================================================================
// TASK STRUCTURE
// =============================================================================

// Task is one delayed callback owned by a Scheduler.
type Task struct {
	// ID is a unique identifier for this task
	ID string

	// Key groups tasks so they can be canceled together
	Key string

	// Description is a human-readable description of what this task does
	Description string

	// Status is the current state of the task
	Status TaskStatus

	// CreatedAt is when the task was scheduled
	CreatedAt time.Time

	// DueAt is when the task is expected to fire
	DueAt time.Time

	// EndTime is when the task completed, failed or was canceled
	EndTime time.Time

	// Error holds the recovered panic message for failed tasks
	Error string

	// stop disarms the underlying timer
	stop func() bool

	mu sync.RWMutex
}

func newTask(key, description string, now time.Time, delay time.Duration) *Task {
	return &Task{
		ID:          uuid.New().String(),
		Key:         key,
		Description: description,
		Status:      TaskStatusScheduled,
		CreatedAt:   now,
		DueAt:       now.Add(delay),
	}
}

// =============================================================================
// TASK METHODS
// =============================================================================

// SetStatus updates the task status (thread-safe).
// Valid transitions: Scheduled -> Running -> Complete/Failed, Scheduled -> Canceled.
func (t *Task) SetStatus(status TaskStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setStatusLocked(status)
}

func (t *Task) setStatusLocked(status TaskStatus) error {
	if !isValidTransition(t.Status, status) {
		return fmt.Errorf("invalid status transition from %s to %s", t.Status, status)
	}
	t.Status = status
	if status.IsTerminal() {
		t.EndTime = time.Now()
	}
	return nil
}

func isValidTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case TaskStatusScheduled:
		return to == TaskStatusRunning || to == TaskStatusCanceled
	case TaskStatusRunning:
		return to == TaskStatusComplete || to == TaskStatusFailed
	default:
		return false
	}
}

// GetStatus returns the current task status (thread-safe).
func (t *Task) GetStatus() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Status
}

// GetError returns the failure message, if any.
func (t *Task) GetError() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Error
}

// cancel disarms the timer and marks the task canceled.
// Returns false if the task already started or finished.
func (t *Task) cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Status != TaskStatusScheduled {
		return false
	}
	if t.stop != nil {
		t.stop()
	}
	_ = t.setStatusLocked(TaskStatusCanceled)
	return true
}

// begin moves a scheduled task to Running. Returns false when the task was
// canceled between the timer firing and the body being dispatched.
func (t *Task) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Status != TaskStatusScheduled {
		return false
	}
	_ = t.setStatusLocked(TaskStatusRunning)
	return true
}

func (t *Task) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Error = msg
	_ = t.setStatusLocked(TaskStatusFailed)
}

// Summary returns a one-line summary of the task.
func (t *Task) Summary() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fmt.Sprintf("[%s] %s - %s (due %s)",
		t.ID[:8],
		t.Description,
		t.Status,
		t.DueAt.Format(time.TimeOnly),
	)
}

// Clone creates a copy of the task for reading.
func (t *Task) Clone() *Task {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return &Task{
		ID:          t.ID,
		Key:         t.Key,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		DueAt:       t.DueAt,
		EndTime:     t.EndTime,
		Error:       t.Error,
	}
}
