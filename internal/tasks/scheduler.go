// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler runs callbacks after a delay and lets callers cancel them
// by key or all at once.
type Scheduler struct {
	clock    Clock
	dispatch func(func())

	// tasks holds every task still tracked, scheduled ones plus recent history
	tasks []*Task

	// maxHistory is the maximum number of finished tasks to keep
	maxHistory int

	mu sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, typically with a ManualClock in tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithDispatcher routes due callbacks through dispatch instead of running
// them on the timer goroutine. A Bubble Tea host passes a function that
// sends a message to its program so the callback runs on the event loop.
func WithDispatcher(dispatch func(func())) Option {
	return func(s *Scheduler) { s.dispatch = dispatch }
}

// WithMaxHistory bounds how many finished tasks are retained (0 = unlimited).
func WithMaxHistory(n int) Option {
	return func(s *Scheduler) { s.maxHistory = n }
}

// NewScheduler creates a Scheduler on the wall clock.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:      RealClock{},
		dispatch:   func(f func()) { f() },
		tasks:      make([]*Task, 0),
		maxHistory: 50,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule arms fn to run once after delay. The returned task is live;
// use Clone for a stable snapshot.
func (s *Scheduler) Schedule(key, description string, delay time.Duration, fn func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := newTask(key, description, s.clock.Now(), delay)
	task.stop = s.clock.AfterFunc(delay, func() {
		s.dispatch(func() { s.run(task, fn) })
	})
	s.tasks = append(s.tasks, task)
	return task
}

// run executes fn unless the task was canceled in the meantime.
func (s *Scheduler) run(task *Task, fn func()) {
	if !task.begin() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: deferred task panicked: %v: %s", r, task.Summary())
			task.fail(fmt.Sprint(r))
		}
		s.mu.Lock()
		s.cleanupLocked()
		s.mu.Unlock()
	}()

	fn()
	_ = task.SetStatus(TaskStatusComplete)
}

// =============================================================================
// CANCELLATION
// =============================================================================

// CancelKey cancels every scheduled task with the given key and returns
// snapshots of the tasks it canceled.
func (s *Scheduler) CancelKey(key string) []*Task {
	return s.cancelWhere(func(t *Task) bool { return t.Key == key })
}

// CancelAll cancels every scheduled task.
func (s *Scheduler) CancelAll() []*Task {
	return s.cancelWhere(func(*Task) bool { return true })
}

func (s *Scheduler) cancelWhere(match func(*Task) bool) []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var canceled []*Task
	for _, task := range s.tasks {
		if match(task) && task.cancel() {
			canceled = append(canceled, task.Clone())
		}
	}
	s.cleanupLocked()
	return canceled
}

// =============================================================================
// CLEANUP
// =============================================================================

// cleanupLocked drops the oldest finished tasks beyond maxHistory.
// Must be called with lock held.
func (s *Scheduler) cleanupLocked() {
	if s.maxHistory <= 0 {
		return
	}

	finished := 0
	for _, task := range s.tasks {
		if task.GetStatus().IsTerminal() {
			finished++
		}
	}
	if finished <= s.maxHistory {
		return
	}

	toRemove := finished - s.maxHistory
	kept := make([]*Task, 0, len(s.tasks)-toRemove)
	for _, task := range s.tasks {
		if toRemove > 0 && task.GetStatus().IsTerminal() {
			toRemove--
			continue
		}
		kept = append(kept, task)
	}
	s.tasks = kept
}
