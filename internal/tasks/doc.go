// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks provides cancellable delayed callbacks.
//
// A Scheduler arms one timer per task and keeps the tasks grouped by a key
// so a whole group can be canceled at once. The session uses the account
// handle as the key for deferred loan credits.
//
// # Key Types
//
//   - Task: a delayed callback with status and due time
//   - Scheduler: arms, cancels and tracks tasks
//   - Clock: time source; RealClock in production, ManualClock in tests
//
// # Usage
//
//	sched := tasks.NewScheduler()
//	task := sched.Schedule("jd", "Loan 500", 3*time.Second, func() {
//	    // credit the loan
//	})
//	sched.CancelKey("jd") // on logout
//
// Hosts with an event loop pass WithDispatcher so due callbacks are
// delivered as messages instead of running on the timer goroutine.
package tasks
