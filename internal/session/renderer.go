// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "github.com/jeranaias/bankist-tui/internal/account"

// Renderer receives display requests after every state change.
//
// The Session calls these methods while holding its lock. Implementations
// must not call back into the Session and should return quickly.
type Renderer interface {
	RenderLedger(acct *account.Account, sorted bool)
	RenderBalance(acct *account.Account)
	RenderSummary(acct *account.Account)
	// RenderWelcome is called with nil once nobody is logged in.
	RenderWelcome(acct *account.Account)
	RenderRemainingTime(seconds int)
	RenderLoggedOut()
}

// NopRenderer ignores every request.
type NopRenderer struct{}

func (NopRenderer) RenderLedger(*account.Account, bool) {}
func (NopRenderer) RenderBalance(*account.Account)      {}
func (NopRenderer) RenderSummary(*account.Account)      {}
func (NopRenderer) RenderWelcome(*account.Account)      {}
func (NopRenderer) RenderRemainingTime(int)             {}
func (NopRenderer) RenderLoggedOut()                    {}
