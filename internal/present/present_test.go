// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatRemaining(t *testing.T) {
	tests := map[int]string{
		600: "10:00",
		599: "09:59",
		61:  "01:01",
		5:   "00:05",
		0:   "00:00",
		-3:  "00:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatRemaining(in), "seconds=%d", in)
	}
}

func TestFormatCurrency_EnUS(t *testing.T) {
	assert.Equal(t, "$1,300.00", FormatCurrency(dec("1300"), "en-US", "USD"))
	assert.Equal(t, "-$306.50", FormatCurrency(dec("-306.5"), "en-US", "USD"))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero, "en-US", "usd"))
	assert.Equal(t, "$0.96", FormatCurrency(dec("0.95964"), "en-US", "USD"))
}

func TestFormatCurrency_SuffixLocale(t *testing.T) {
	got := FormatCurrency(dec("25952.59"), "pt-PT", "EUR")
	assert.True(t, strings.HasSuffix(got, " €"), "got %q", got)
	assert.Contains(t, got, ",59")

	neg := FormatCurrency(dec("-642.21"), "pt-PT", "EUR")
	assert.True(t, strings.HasPrefix(neg, "-"), "got %q", neg)
	assert.True(t, strings.HasSuffix(neg, "642,21 €"), "got %q", neg)
}

func TestFormatCurrency_ZeroDecimalCurrency(t *testing.T) {
	assert.Equal(t, "¥1,235", FormatCurrency(dec("1234.5"), "en-US", "JPY"))
	assert.Contains(t, FormatCurrency(dec("1234.5"), "ja-JP", "JPY"), "1,235")
}

func TestSymbol(t *testing.T) {
	tests := map[string]string{
		"EUR": "€",
		"USD": "$",
		"BRL": "R$",
		"INR": "₹",
		"KRW": "₩",
	}
	for code, want := range tests {
		assert.Equal(t, want, Symbol(currency.MustParseISO(code), "en-US"), code)
	}
}

func TestFormatCurrency_CodeWithoutSign(t *testing.T) {
	assert.Equal(t, "XYZ 5.00", FormatCurrency(dec("5"), "en-US", "xyz"))
}

func TestFormatCurrency_UnknownLocaleFallsBack(t *testing.T) {
	assert.Equal(t, "$12.00", FormatCurrency(dec("12"), "not a locale", "USD"))
}

func TestDatePattern(t *testing.T) {
	at := time.Date(2020, 7, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "7/26/2020", FormatDate(at, "en-US"))
	assert.Equal(t, "26/07/2020", FormatDate(at, "pt-PT"))
	assert.Equal(t, "26/07/2020", FormatDate(at, "en-GB"))
	assert.Equal(t, "2020/07/26", FormatDate(at, "ja-JP"))
	assert.Equal(t, "7/26/2020, 12:00", FormatDateTime(at, "en-US"))
}

func TestDateLabel(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", DateLabel(now.Add(-8*time.Hour), now, "en-US"))
	assert.Equal(t, "Yesterday", DateLabel(now.Add(-10*time.Hour), now, "en-US"))
	assert.Equal(t, "3 days ago", DateLabel(now.AddDate(0, 0, -3), now, "en-US"))
	assert.Equal(t, "7 days ago", DateLabel(now.AddDate(0, 0, -7), now, "en-US"))
	assert.Equal(t, "6/2/2024", DateLabel(now.AddDate(0, 0, -8), now, "en-US"))
	assert.Equal(t, "02/06/2024", DateLabel(now.AddDate(0, 0, -8), now, "pt-PT"))
}

func TestRows_NewestFirstWithIndexes(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	entries := []ledger.Entry{
		{Amount: dec("200"), Time: now.AddDate(0, 0, -2)},
		{Amount: dec("-50"), Time: now.AddDate(0, 0, -1)},
		{Amount: dec("10"), Time: now},
	}

	rows := Rows(entries, "en-US", "USD", now)
	require.Len(t, rows, 3)

	assert.Equal(t, Row{Index: 3, Kind: KindDeposit, Date: "Today", Amount: "$10.00", IsDeposit: true}, rows[0])
	assert.Equal(t, Row{Index: 2, Kind: KindWithdrawal, Date: "Yesterday", Amount: "-$50.00"}, rows[1])
	assert.Equal(t, 1, rows[2].Index)
	assert.Equal(t, "2 days ago", rows[2].Date)
}

func TestLedgerRowsAndSummary(t *testing.T) {
	dir, err := account.NewDirectory(account.DefaultRoster(), account.Options{PINCost: bcrypt.MinCost})
	require.NoError(t, err)
	jd, _ := dir.FindByHandle("jd")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := LedgerRows(jd, false, now)
	require.Len(t, rows, 8)
	assert.Equal(t, "-$30.00", rows[0].Amount, "latest movement first")
	assert.Equal(t, "$5,000.00", rows[7].Amount)

	sorted := LedgerRows(jd, true, now)
	assert.Equal(t, "$8,500.00", sorted[0].Amount, "largest first when sorted ascending")
	assert.Equal(t, "-$3,210.00", sorted[7].Amount)
	assert.Equal(t, 1, sorted[7].Index)

	sum := Summarize(jd)
	assert.Equal(t, Summary{
		Balance:  "$11,720.00",
		In:       "$16,900.00",
		Out:      "$5,180.00",
		Interest: "$253.50",
	}, sum)

	assert.Equal(t, "Welcome back, Jessica", Welcome(jd))
	assert.Equal(t, "Log in to get started", Welcome(nil))
}
