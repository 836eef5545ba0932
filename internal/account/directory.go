// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/bankist-tui/internal/ledger"
)

var (
	// ErrDuplicateHandle is returned when two owners derive the same handle.
	ErrDuplicateHandle = errors.New("duplicate account handle")

	// ErrEmptyOwner is returned for a roster entry without an owner name.
	ErrEmptyOwner = errors.New("account owner is empty")

	// ErrInvalidRate is returned for a negative interest rate.
	ErrInvalidRate = errors.New("interest rate must not be negative")
)

// DeriveHandle builds a login handle from an owner name: lowercase it,
// split on whitespace and join the first rune of every token.
func DeriveHandle(owner string) string {
	lower := cases.Lower(language.Und).String(owner)
	var b strings.Builder
	for _, tok := range strings.Fields(lower) {
		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(r)
	}
	return b.String()
}

// =============================================================================
// DIRECTORY
// =============================================================================

// Options tunes directory construction.
type Options struct {
	// PINCost is the bcrypt cost for PIN hashes (0 = bcrypt.DefaultCost).
	PINCost int

	// Now supplies the timestamp for movements seeded without one.
	Now func() time.Time
}

// Directory is the live roster. Accounts are added only at construction
// and leave only through Remove.
type Directory struct {
	mu       sync.RWMutex
	accounts []*Account
}

// NewDirectory builds accounts from specs, deriving each handle once.
// A roster whose handles collide is rejected with ErrDuplicateHandle.
func NewDirectory(specs []Spec, opts Options) (*Directory, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	d := &Directory{accounts: make([]*Account, 0, len(specs))}
	seen := make(map[string]string, len(specs))

	for _, s := range specs {
		owner := strings.TrimSpace(s.Owner)
		if owner == "" {
			return nil, ErrEmptyOwner
		}
		if s.InterestRate < 0 {
			return nil, fmt.Errorf("account %q: %w", owner, ErrInvalidRate)
		}

		handle := DeriveHandle(owner)
		if prev, ok := seen[handle]; ok {
			return nil, fmt.Errorf("%q and %q both map to %q: %w", prev, owner, handle, ErrDuplicateHandle)
		}
		seen[handle] = owner

		hash, err := hashPIN(s.PIN, opts.PINCost)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", owner, err)
		}

		entries := make([]ledger.Entry, len(s.Movements))
		for i, m := range s.Movements {
			at := m.At
			if at.IsZero() {
				at = now()
			}
			entries[i] = ledger.Entry{Amount: decimal.NewFromFloat(m.Amount), Time: at}
		}

		d.accounts = append(d.accounts, &Account{
			Owner:        owner,
			Handle:       handle,
			InterestRate: decimal.NewFromFloat(s.InterestRate),
			Currency:     s.Currency,
			Locale:       s.Locale,
			Ledger:       ledger.NewFromEntries(entries),
			pinHash:      hash,
		})
	}

	return d, nil
}

// FindByHandle returns the first account whose handle equals handle.
func (d *Directory) FindByHandle(handle string) (*Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.accounts {
		if a.Handle == handle {
			return a, true
		}
	}
	return nil, false
}

// Contains reports whether acct is still part of the roster.
func (d *Directory) Contains(acct *Account) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.accounts {
		if a == acct {
			return true
		}
	}
	return false
}

// Remove drops acct from the roster. Returns false if it was not present.
func (d *Directory) Remove(acct *Account) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, a := range d.accounts {
		if a == acct {
			d.accounts = append(d.accounts[:i], d.accounts[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the accounts in roster order.
func (d *Directory) All() []*Account {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Account, len(d.accounts))
	copy(out, d.accounts)
	return out
}

// Handles returns the handles in roster order.
func (d *Directory) Handles() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]string, len(d.accounts))
	for i, a := range d.accounts {
		out[i] = a.Handle
	}
	return out
}

// Len returns the number of accounts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}
