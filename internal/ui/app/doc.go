// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the full-screen Bubble Tea front end.
//
// Screen implements session.Renderer and holds formatted view state;
// Model turns key presses into session operations and draws Screen.
// Countdown ticks and due loan credits both arrive as messages, so every
// session call and every render happens on the Bubble Tea event loop.
//
// # Usage
//
//	screen := app.NewScreen(nil)
//	relay := &session.ProgramRelay{}
//	sched := tasks.NewScheduler(tasks.WithDispatcher(relay.Dispatch))
//	sess := session.New(dir, screen, cfg.SessionConfig(), session.WithScheduler(sched))
//	prog := tea.NewProgram(app.New(sess, screen, theme), tea.WithAltScreen())
//	relay.Attach(prog)
//	_, err := prog.Run()
package app
