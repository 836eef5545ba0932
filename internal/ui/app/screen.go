// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/session"
)

// Screen is the session's Renderer for the TUI. It keeps formatted view
// state that Model.View reads. The session calls it from Update, so it
// needs no locking of its own.
type Screen struct {
	now func() time.Time

	Welcome   string
	Handle    string
	Rows      []present.Row
	Sorted    bool
	Balance   string
	AsOf      string
	Summary   present.Summary
	Remaining int

	rowsDirty bool
}

var _ session.Renderer = (*Screen)(nil)

// NewScreen creates a logged-out screen. A nil now uses time.Now.
func NewScreen(now func() time.Time) *Screen {
	if now == nil {
		now = time.Now
	}
	return &Screen{now: now, Welcome: present.Welcome(nil)}
}

// LoggedIn reports whether an account is on screen.
func (s *Screen) LoggedIn() bool {
	return s.Handle != ""
}

// takeRows returns the rows if they changed since the last call.
func (s *Screen) takeRows() ([]present.Row, bool) {
	if !s.rowsDirty {
		return nil, false
	}
	s.rowsDirty = false
	return s.Rows, true
}

func (s *Screen) RenderLedger(acct *account.Account, sorted bool) {
	s.Rows = present.LedgerRows(acct, sorted, s.now())
	s.Sorted = sorted
	s.rowsDirty = true
}

func (s *Screen) RenderBalance(acct *account.Account) {
	s.Handle = acct.Handle
	s.Balance = present.FormatCurrency(acct.Ledger.Balance(), acct.Locale, acct.Currency)
	s.AsOf = present.FormatDateTime(s.now(), acct.Locale)
}

func (s *Screen) RenderSummary(acct *account.Account) {
	s.Summary = present.Summarize(acct)
}

func (s *Screen) RenderWelcome(acct *account.Account) {
	s.Welcome = present.Welcome(acct)
}

func (s *Screen) RenderRemainingTime(seconds int) {
	s.Remaining = seconds
}

func (s *Screen) RenderLoggedOut() {
	s.Handle = ""
	s.Rows = nil
	s.rowsDirty = true
	s.Balance = ""
	s.AsOf = ""
	s.Summary = present.Summary{}
	s.Remaining = 0
}
