// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testOptions() Options {
	return Options{PINCost: bcrypt.MinCost}
}

func TestDeriveHandle(t *testing.T) {
	tests := []struct {
		owner string
		want  string
	}{
		{"Jessica Davis", "jd"},
		{"Jonas Schmedtmann", "js"},
		{"Steven Thomas Williams", "stw"},
		{"  Sarah   Smith ", "ss"},
		{"Émile Zola", "éz"},
		{"Madonna", "m"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.owner, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveHandle(tt.owner))
		})
	}
}

func TestParsePIN(t *testing.T) {
	valid := map[string]int{
		"2222":   2222,
		" 2222 ": 2222,
		"2222.0": 2222,
		"0":      0,
		"0042":   42,
	}
	for in, want := range valid {
		got, err := ParsePIN(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"", "   ", "abc", "22.5", "-1", "1e99", "1e900000000", "1e-900000000"} {
		_, err := ParsePIN(in)
		assert.ErrorIs(t, err, ErrInvalidPIN, "input %q", in)
	}
}

func TestPINOrInvalid(t *testing.T) {
	assert.Equal(t, 2222, PINOrInvalid(" 2222 "))
	assert.Equal(t, InvalidPIN, PINOrInvalid("22x"))
	assert.Equal(t, InvalidPIN, PINOrInvalid("1e900000000"))
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"100":       "100",
		" 99.95 ":   "99.95",
		"-5":        "-5",
		"1e3":       "1000",
		"0.0000001": "0.0000001",
	}
	for in, want := range valid {
		got, err := ParseAmount(in)
		require.NoError(t, err, "input %q", in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "input %q got %s", in, got)
	}

	for _, in := range []string{
		"", "lots", "1e900000000", "1e-900000000", "1e19",
		"1234567890123456789012345678901",
	} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(decimal.Zero))
	assert.True(t, InRange(decimal.New(1, 18)))
	assert.False(t, InRange(decimal.New(1, 19)))
	assert.False(t, InRange(decimal.New(1, -19)))
	assert.False(t, InRange(decimal.New(1, 900000000)))
}

func TestAccount_FirstName(t *testing.T) {
	assert.Equal(t, "Jessica", (&Account{Owner: "Jessica Davis"}).FirstName())
	assert.Equal(t, "Cher", (&Account{Owner: "Cher"}).FirstName())
}

// =============================================================================
// DIRECTORY TESTS
// =============================================================================

func TestNewDirectory_DefaultRoster(t *testing.T) {
	dir, err := NewDirectory(DefaultRoster(), testOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"js", "jd"}, dir.Handles())
	assert.Equal(t, 2, dir.Len())

	jd, ok := dir.FindByHandle("jd")
	require.True(t, ok)
	assert.Equal(t, "Jessica Davis", jd.Owner)
	assert.Equal(t, "USD", jd.Currency)
	assert.Equal(t, "en-US", jd.Locale)
	assert.True(t, jd.InterestRate.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, 8, jd.Ledger.Len())
	assert.True(t, jd.Ledger.Balance().Equal(decimal.NewFromInt(11720)), "balance = %s", jd.Ledger.Balance())

	js, ok := dir.FindByHandle("js")
	require.True(t, ok)
	assert.True(t, js.Ledger.Entries()[1].Amount.Equal(decimal.RequireFromString("455.23")))
	assert.Equal(t, 2019, js.Ledger.Entries()[0].Time.Year())
}

func TestNewDirectory_RejectsDuplicateHandles(t *testing.T) {
	specs := []Spec{
		{Owner: "John Doe", PIN: 1},
		{Owner: "Jane Dawson", PIN: 2},
	}
	_, err := NewDirectory(specs, testOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateHandle))
}

func TestNewDirectory_Validation(t *testing.T) {
	_, err := NewDirectory([]Spec{{Owner: "  ", PIN: 1}}, testOptions())
	assert.ErrorIs(t, err, ErrEmptyOwner)

	_, err = NewDirectory([]Spec{{Owner: "A B", PIN: 1, InterestRate: -0.5}}, testOptions())
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewDirectory([]Spec{{Owner: "A B", PIN: -4}}, testOptions())
	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestNewDirectory_UndatedMovementsUseNow(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := testOptions()
	opts.Now = func() time.Time { return fixed }

	dir, err := NewDirectory([]Spec{{Owner: "Ann Lee", PIN: 7, Movements: []Movement{{Amount: 10}}}}, opts)
	require.NoError(t, err)

	al, ok := dir.FindByHandle("al")
	require.True(t, ok)
	assert.Equal(t, fixed, al.Ledger.Entries()[0].Time)
}

func TestAccount_VerifyPIN(t *testing.T) {
	dir, err := NewDirectory(DefaultRoster(), testOptions())
	require.NoError(t, err)

	jd, _ := dir.FindByHandle("jd")
	assert.True(t, jd.VerifyPIN(2222))
	assert.False(t, jd.VerifyPIN(1111))
	assert.False(t, jd.VerifyPIN(-2222))
	assert.False(t, (&Account{}).VerifyPIN(0))
}

func TestDirectory_FindAndRemove(t *testing.T) {
	dir, err := NewDirectory(DefaultRoster(), testOptions())
	require.NoError(t, err)

	_, ok := dir.FindByHandle("zz")
	assert.False(t, ok)

	js, ok := dir.FindByHandle("js")
	require.True(t, ok)
	assert.True(t, dir.Contains(js))

	assert.True(t, dir.Remove(js))
	assert.False(t, dir.Remove(js))
	assert.False(t, dir.Contains(js))

	_, ok = dir.FindByHandle("js")
	assert.False(t, ok)
	assert.Equal(t, []string{"jd"}, dir.Handles())
	assert.Len(t, dir.All(), 1)
}
