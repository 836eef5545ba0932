// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeranaias/bankist-tui/internal/ledger"
)

var (
	// ErrInvalidPIN is returned when a PIN is not a non-negative whole number.
	ErrInvalidPIN = errors.New("pin must be a non-negative whole number")

	// ErrInvalidAmount is returned when typed money is not a number of
	// plausible size.
	ErrInvalidAmount = errors.New("amount is not a number of plausible size")
)

// =============================================================================
// ACCOUNT
// =============================================================================

// Account is one roster entry together with its ledger.
// Fields are fixed after construction; only the ledger changes.
type Account struct {
	Owner        string
	Handle       string
	InterestRate decimal.Decimal // percent
	Currency     string          // ISO 4217 code, e.g. "EUR"
	Locale       string          // BCP 47 tag, e.g. "pt-PT"
	Ledger       *ledger.Ledger

	pinHash []byte
}

// FirstName returns the first whitespace-separated token of the owner name.
func (a *Account) FirstName() string {
	fields := strings.Fields(a.Owner)
	if len(fields) == 0 {
		return a.Owner
	}
	return fields[0]
}

// VerifyPIN reports whether pin is the account's PIN.
func (a *Account) VerifyPIN(pin int) bool {
	if pin < 0 || len(a.pinHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.pinHash, []byte(strconv.Itoa(pin))) == nil
}

func hashPIN(pin int, cost int) ([]byte, error) {
	if pin < 0 {
		return nil, ErrInvalidPIN
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return bcrypt.GenerateFromPassword([]byte(strconv.Itoa(pin)), cost)
}

// =============================================================================
// PIN PARSING
// =============================================================================

// ParsePIN reads a PIN typed by the user. Surrounding whitespace and a
// zero fractional part are accepted, so "2222", " 2222 " and "2222.0"
// all yield 2222.
func ParsePIN(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPIN
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !InRange(d) {
		return 0, ErrInvalidPIN
	}
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, ErrInvalidPIN
	}
	if !d.LessThanOrEqual(decimal.NewFromInt(int64(maxPIN))) {
		return 0, ErrInvalidPIN
	}
	return int(d.IntPart()), nil
}

// maxPIN bounds parsed PINs; bcrypt input stays far below its 72 byte limit.
const maxPIN = 1<<31 - 1

// InvalidPIN never verifies.
const InvalidPIN = -1

// PINOrInvalid is ParsePIN for front ends: unparseable input becomes
// InvalidPIN, so it still counts as a failed attempt.
func PINOrInvalid(s string) int {
	pin, err := ParsePIN(s)
	if err != nil {
		return InvalidPIN
	}
	return pin
}

// =============================================================================
// AMOUNT PARSING
// =============================================================================

// Bounds on decimals accepted from input. Comparing decimals rescales them
// to a common exponent, so an exponent like 1e900000000 would build a huge
// integer.
const (
	maxAmountExponent = 18
	maxAmountDigits   = 30
)

// InRange reports whether d is small enough to compare and format.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxAmountExponent || exp < -maxAmountExponent {
		return false
	}
	return d.NumDigits() <= maxAmountDigits
}

// ParseAmount reads an amount typed by the user.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !InRange(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
