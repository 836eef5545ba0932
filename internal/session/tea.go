// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent once per timer interval to advance the countdown.
type TickMsg struct {
	Time time.Time
}

// TimeoutWarningMsg indicates the session is about to expire.
type TimeoutWarningMsg struct {
	Remaining int
}

// TimeoutMsg indicates the session expired and was logged out.
type TimeoutMsg struct{}

// DeferredMsg carries a scheduled callback onto the event loop.
type DeferredMsg struct {
	Run func()
}

// TickCmd returns a command that ticks after interval.
func TickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick advances the countdown and returns the follow-up messages:
// a warning when the countdown enters the warning window, a timeout when
// it expires, and always the next tick.
func (s *Session) HandleTick(interval time.Duration) tea.Cmd {
	wasWarning := s.Warning()
	remaining, expired := s.Tick()

	cmds := make([]tea.Cmd, 0, 2)
	if expired {
		cmds = append(cmds, func() tea.Msg { return TimeoutMsg{} })
	} else if !wasWarning && s.Warning() {
		cmds = append(cmds, func() tea.Msg { return TimeoutWarningMsg{Remaining: remaining} })
	}
	cmds = append(cmds, TickCmd(interval))
	return tea.Batch(cmds...)
}

// ProgramRelay delivers due scheduler callbacks to a Bubble Tea program
// as DeferredMsg values, so they run in the model's Update. The scheduler
// is built before the program, hence the late Attach. Until a program is
// attached callbacks run directly.
type ProgramRelay struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach sets the program that receives callbacks.
func (r *ProgramRelay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

// Dispatch is passed to tasks.WithDispatcher.
func (r *ProgramRelay) Dispatch(f func()) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()

	if p == nil {
		f()
		return
	}
	p.Send(DeferredMsg{Run: f})
}
