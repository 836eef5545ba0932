// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// TimerState is the run state of the expiry countdown.
type TimerState int

const (
	TimerStopped TimerState = iota
	TimerRunning
)

func (s TimerState) String() string {
	if s == TimerRunning {
		return "running"
	}
	return "stopped"
}

// =============================================================================
// EXPIRY TIMER
// =============================================================================

// Timer counts whole seconds down from a fixed duration. It does not read
// the clock; the host calls Tick once per second. Not safe for concurrent
// use on its own; the Session serializes access.
type Timer struct {
	duration  int
	warning   int
	remaining int
	state     TimerState
}

// NewTimer creates a stopped timer. warningSeconds may be 0.
func NewTimer(durationSeconds, warningSeconds int) *Timer {
	if durationSeconds < 1 {
		durationSeconds = 1
	}
	if warningSeconds < 0 {
		warningSeconds = 0
	}
	return &Timer{
		duration:  durationSeconds,
		warning:   warningSeconds,
		remaining: durationSeconds,
	}
}

// Start resets the countdown to the full duration and runs it.
func (t *Timer) Start() {
	t.remaining = t.duration
	t.state = TimerRunning
}

// Stop halts the countdown, keeping the remaining value.
func (t *Timer) Stop() {
	t.state = TimerStopped
}

// Restart is Stop followed by Start.
func (t *Timer) Restart() {
	t.Stop()
	t.Start()
}

// Tick advances one second. It is a no-op while stopped. Reaching zero
// stops the timer and reports expired exactly once.
func (t *Timer) Tick() (remaining int, expired bool) {
	if t.state != TimerRunning {
		return t.remaining, false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerStopped
		return 0, true
	}
	return t.remaining, false
}

// Remaining returns the seconds left on the countdown.
func (t *Timer) Remaining() int { return t.remaining }

// State returns whether the countdown is running.
func (t *Timer) State() TimerState { return t.state }

// Duration returns the full countdown length in seconds.
func (t *Timer) Duration() int { return t.duration }

// Warning reports whether the timer is running inside the warning window.
func (t *Timer) Warning() bool {
	return t.state == TimerRunning && t.warning > 0 && t.remaining <= t.warning
}
