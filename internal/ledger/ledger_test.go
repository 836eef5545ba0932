// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seeded(amounts ...string) *Ledger {
	l := New()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, a := range amounts {
		l.Append(dec(a), base.Add(time.Duration(i)*time.Hour))
	}
	return l
}

// =============================================================================
// DERIVED FIGURES
// =============================================================================

func TestLedger_DerivedFigures(t *testing.T) {
	l := seeded("5000", "3400", "-150", "-790", "-3210", "-1000", "8500", "-30")

	assert.True(t, l.Balance().Equal(dec("11720")), "balance = %s", l.Balance())
	assert.True(t, l.Income().Equal(dec("16900")), "income = %s", l.Income())
	assert.True(t, l.Expense().Equal(dec("5180")), "expense = %s", l.Expense())
	assert.True(t, l.Interest(dec("1.5")).Equal(dec("253.5")), "interest = %s", l.Interest(dec("1.5")))
}

func TestLedger_BalanceIsIncomeMinusExpense(t *testing.T) {
	cases := [][]string{
		{},
		{"200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300"},
		{"-10", "-20.5"},
		{"0", "0.01", "-0.01"},
	}
	for _, amounts := range cases {
		l := seeded(amounts...)
		assert.True(t, l.Balance().Equal(l.Income().Sub(l.Expense())),
			"amounts %v: balance %s != income %s - expense %s",
			amounts, l.Balance(), l.Income(), l.Expense())
	}
}

func TestLedger_InterestSkipsSmallTerms(t *testing.T) {
	// 79.97 * 1.2% = 0.95964 stays under one unit and is excluded;
	// 1300 * 1.2% = 15.6 counts.
	assert.True(t, seeded("79.97").Interest(dec("1.2")).IsZero())
	assert.True(t, seeded("1300").Interest(dec("1.2")).Equal(dec("15.6")))

	l := seeded("200", "455.23", "-306.5", "25000", "-642.21", "-133.9", "79.97", "1300")
	assert.True(t, l.Interest(dec("1.2")).Equal(dec("323.46276")), "got %s", l.Interest(dec("1.2")))
}

func TestLedger_InterestIgnoresWithdrawals(t *testing.T) {
	l := seeded("-5000")
	assert.True(t, l.Interest(dec("10")).IsZero())
}

// =============================================================================
// APPEND / ORDER
// =============================================================================

func TestLedger_AppendKeepsAmountsAndTimesAligned(t *testing.T) {
	l := seeded("1", "2")
	before := l.Len()

	now := time.Now()
	for i := 0; i < 5; i++ {
		l.Append(decimal.NewFromInt(int64(i)), now.Add(time.Duration(i)*time.Second))
	}

	entries := l.Entries()
	require.Equal(t, before+5, l.Len())
	require.Len(t, entries, before+5)
	for i, e := range entries[before:] {
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(int64(i))))
		assert.Equal(t, now.Add(time.Duration(i)*time.Second), e.Time)
	}
}

func TestLedger_EntriesReturnsCopy(t *testing.T) {
	l := seeded("10")
	entries := l.Entries()
	entries[0].Amount = dec("999")

	assert.True(t, l.Entries()[0].Amount.Equal(dec("10")))
}

func TestLedger_SortedAscendingLeavesLedgerUntouched(t *testing.T) {
	l := seeded("300", "-50", "100", "-50", "0")
	original := l.Entries()

	sorted := l.SortedAscending()
	want := []string{"-50", "-50", "0", "100", "300"}
	require.Len(t, sorted, len(want))
	for i, w := range want {
		assert.True(t, sorted[i].Amount.Equal(dec(w)), "sorted[%d] = %s, want %s", i, sorted[i].Amount, w)
	}

	// Stable: the two -50 entries keep their original relative order.
	assert.Equal(t, original[1].Time, sorted[0].Time)
	assert.Equal(t, original[3].Time, sorted[1].Time)

	assert.Equal(t, original, l.Entries())
}

func TestLedger_SortedAscendingReflectsLiveLedger(t *testing.T) {
	l := seeded("5")
	_ = l.SortedAscending()
	l.Append(dec("-1"), time.Now())

	sorted := l.SortedAscending()
	require.Len(t, sorted, 2)
	assert.True(t, sorted[0].Amount.Equal(dec("-1")))
}

func TestLedger_HasDepositAtLeast(t *testing.T) {
	l := seeded("60", "-500", "10")
	assert.True(t, l.HasDepositAtLeast(dec("50")))
	assert.True(t, l.HasDepositAtLeast(dec("60")))
	assert.False(t, l.HasDepositAtLeast(dec("60.01")))
	assert.False(t, New().HasDepositAtLeast(dec("0.1")))
}

func TestNewFromEntries_CopiesInput(t *testing.T) {
	in := []Entry{{Amount: dec("1"), Time: time.Unix(1, 0)}}
	l := NewFromEntries(in)
	in[0].Amount = dec("2")

	assert.True(t, l.Entries()[0].Amount.Equal(dec("1")))
	assert.True(t, l.Entries()[0].IsDeposit())
}
