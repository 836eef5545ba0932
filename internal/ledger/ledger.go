// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the ordered movement history of a single account.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// interestFloor is the per-deposit interest a deposit must exceed to count.
var interestFloor = decimal.NewFromInt(1)

var hundred = decimal.NewFromInt(100)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is a single booked movement. Positive amounts are deposits,
// negative amounts are withdrawals.
type Entry struct {
	Amount decimal.Decimal
	Time   time.Time
}

// IsDeposit reports whether the entry credits the account.
func (e Entry) IsDeposit() bool {
	return e.Amount.IsPositive()
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger is the ordered list of entries for one account.
// It is not safe for concurrent use; callers serialize access.
type Ledger struct {
	entries []Entry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make([]Entry, 0)}
}

// NewFromEntries creates a ledger pre-seeded with entries, in order.
func NewFromEntries(entries []Entry) *Ledger {
	l := &Ledger{entries: make([]Entry, 0, len(entries))}
	l.entries = append(l.entries, entries...)
	return l
}

// Append books one movement at the end of the ledger.
// No sign or magnitude checks happen here; business rules live in the session.
func (l *Ledger) Append(amount decimal.Decimal, at time.Time) {
	l.entries = append(l.entries, Entry{Amount: amount, Time: at})
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// SortedAscending returns a new slice ordered by amount, smallest first.
// Ties keep their original order. The ledger itself is left untouched.
func (l *Ledger) SortedAscending() []Entry {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.LessThan(out[j].Amount)
	})
	return out
}

// =============================================================================
// DERIVED FIGURES
// =============================================================================

// Balance is the sum of all entries.
func (l *Ledger) Balance() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// Income is the sum of all deposits.
func (l *Ledger) Income() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.Amount.IsPositive() {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// Expense is the sum of all withdrawals, as a non-negative figure.
func (l *Ledger) Expense() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.Amount.IsNegative() {
			sum = sum.Sub(e.Amount)
		}
	}
	return sum
}

// Interest computes deposit*rate/100 for every deposit and sums the terms
// that exceed one unit of currency. Smaller terms contribute nothing.
func (l *Ledger) Interest(ratePercent decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		if !e.Amount.IsPositive() {
			continue
		}
		term := e.Amount.Mul(ratePercent).Div(hundred)
		if term.GreaterThan(interestFloor) {
			sum = sum.Add(term)
		}
	}
	return sum
}

// HasDepositAtLeast reports whether any single entry is >= min.
func (l *Ledger) HasDepositAtLeast(min decimal.Decimal) bool {
	for _, e := range l.entries {
		if e.Amount.GreaterThanOrEqual(min) {
			return true
		}
	}
	return false
}
