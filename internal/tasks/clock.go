// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"sort"
	"sync"
	"time"
)

// Clock is the time source a Scheduler arms its timers on.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// RealClock uses the process wall clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// =============================================================================
// MANUAL CLOCK
// =============================================================================

// ManualClock is a Clock that only moves when Advance is called.
// Due callbacks run synchronously on the caller's goroutine.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending map[int]*manualTimer
}

type manualTimer struct {
	seq int
	due time.Time
	f   func()
}

// NewManualClock creates a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, pending: make(map[int]*manualTimer)}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc arms f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	id := c.seq
	c.pending[id] = &manualTimer{seq: id, due: c.now.Add(d), f: f}

	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.pending[id]; !ok {
			return false
		}
		delete(c.pending, id)
		return true
	}
}

// Advance moves the clock forward by d and fires every timer that
// became due, earliest first.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for id, t := range c.pending {
		if !t.due.After(c.now) {
			due = append(due, t)
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		t.f()
	}
}

// Armed returns the number of timers that have not fired or been stopped.
func (c *ManualClock) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
