// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the banking session: login, transfers, loans,
// account closure and the inactivity countdown that forces logout.
//
// A Session is the only thing allowed to mutate ledgers. It validates every
// request before touching state, restarts the expiry timer on qualifying
// activity and asks its Renderer to redraw after each change.
//
// # Key Types
//
//   - Session: the authenticated account, sort flag, timer and pending loans
//   - Timer: Stopped/Running countdown driven one tick per second by the host
//   - Renderer: display contract implemented by the TUI and the line REPL
//   - PendingLoan: an approved loan waiting for its delayed credit
//   - OpError: wraps the sentinel errors with operation and handle
//
// # Usage
//
//	sess := session.New(dir, renderer, session.DefaultConfig(),
//	    session.WithAuditLogger(logger))
//	defer sess.Shutdown()
//
//	if _, err := sess.Login("jd", 2222); err != nil {
//	    // errors.Is(err, session.ErrWrongPIN) ...
//	}
//	err := sess.Transfer("js", decimal.NewFromInt(200))
//
// Drive the countdown from the host once per second:
//
//	sess.Tick()
//
// or, in a Bubble Tea program, return session.TickCmd from Init and call
// HandleTick on every TickMsg.
//
// # Concurrency
//
// Every exported method takes one mutex. Renderer methods run under that
// mutex and must not call back into the Session.
package session
