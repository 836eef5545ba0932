// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"time"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/ledger"
)

// Movement kinds.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
)

// Row is one display line of the movements list.
type Row struct {
	Index     int    // 1-based position in the listed order
	Kind      string // KindDeposit or KindWithdrawal
	Date      string
	Amount    string
	IsDeposit bool
}

// Rows numbers entries in the order given and returns them newest
// first, which is how the movements list is shown.
func Rows(entries []ledger.Entry, locale, currencyCode string, now time.Time) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		kind := KindWithdrawal
		if e.IsDeposit() {
			kind = KindDeposit
		}
		rows[len(entries)-1-i] = Row{
			Index:     i + 1,
			Kind:      kind,
			Date:      DateLabel(e.Time, now, locale),
			Amount:    FormatCurrency(e.Amount, locale, currencyCode),
			IsDeposit: e.IsDeposit(),
		}
	}
	return rows
}

// LedgerRows builds the rows for acct, sorted by amount when sorted is set.
func LedgerRows(acct *account.Account, sorted bool, now time.Time) []Row {
	entries := acct.Ledger.Entries()
	if sorted {
		entries = acct.Ledger.SortedAscending()
	}
	return Rows(entries, acct.Locale, acct.Currency, now)
}

// Summary holds the formatted figures shown under the movements.
type Summary struct {
	Balance  string
	In       string
	Out      string
	Interest string
}

// Summarize formats acct's derived figures in its locale and currency.
func Summarize(acct *account.Account) Summary {
	l := acct.Ledger
	return Summary{
		Balance:  FormatCurrency(l.Balance(), acct.Locale, acct.Currency),
		In:       FormatCurrency(l.Income(), acct.Locale, acct.Currency),
		Out:      FormatCurrency(l.Expense(), acct.Locale, acct.Currency),
		Interest: FormatCurrency(l.Interest(acct.InterestRate), acct.Locale, acct.Currency),
	}
}

// Welcome returns the greeting for acct, or the login prompt for nil.
func Welcome(acct *account.Account) string {
	if acct == nil {
		return "Log in to get started"
	}
	return "Welcome back, " + acct.FirstName()
}
