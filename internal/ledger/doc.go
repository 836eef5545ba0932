// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger holds the ordered movement history of a single account.
//
// A Ledger is append-only: entries keep their insertion order, which is
// chronological and meaningful for display. Every figure shown to the
// user (balance, income, expense, interest) is derived from the entries
// on demand and never stored.
//
// # Key Types
//
//   - Entry: one signed amount with the instant it was booked
//   - Ledger: the ordered entries for one account
//
// # Usage
//
//	l := ledger.New()
//	l.Append(decimal.NewFromInt(200), time.Now())
//	l.Append(decimal.NewFromInt(-50), time.Now())
//	l.Balance() // 150
//
// Amounts are github.com/shopspring/decimal values so sums are exact.
package ledger
