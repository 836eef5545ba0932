// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/audit"
)

// loanCoverage is the share of a loan one existing deposit must cover.
var loanCoverage = decimal.New(1, -1)

// PendingLoan is an approved loan waiting to be credited.
type PendingLoan struct {
	ID          string
	Handle      string
	Amount      decimal.Decimal
	RequestedAt time.Time
	DueAt       time.Time

	acct *account.Account
}

// RequestLoan asks for a loan on the logged-in account. The amount is
// truncated to a whole number and approved when it is positive and some
// single ledger entry is at least 10% of it. Approved loans are credited
// after the configured delay, provided the same account is still logged in.
//
// Any request from a logged-in user restarts the expiry timer, including
// requests that are then denied. Amounts outside account.InRange are
// rejected as invalid.
func (s *Session) RequestLoan(amount decimal.Decimal) (PendingLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.current
	if acct == nil {
		return PendingLoan{}, opErr("loan", "", ErrNotAuthenticated)
	}

	// Denied requests count as activity too.
	s.timer.Restart()
	s.renderer.RenderRemainingTime(s.timer.Remaining())

	if !account.InRange(amount) {
		s.auditFailure(audit.EventLoanDenied, acct.Handle, "", ErrInvalidAmount)
		return PendingLoan{}, opErr("loan", acct.Handle, ErrInvalidAmount)
	}
	amt := amount.Truncate(0)
	if !amt.IsPositive() {
		s.auditFailure(audit.EventLoanDenied, acct.Handle, amount.String(), ErrInvalidAmount)
		return PendingLoan{}, opErr("loan", acct.Handle, ErrInvalidAmount)
	}
	if !acct.Ledger.HasDepositAtLeast(amt.Mul(loanCoverage)) {
		s.auditFailure(audit.EventLoanDenied, acct.Handle, amt.String(), ErrNoQualifyingDeposit)
		return PendingLoan{}, opErr("loan", acct.Handle, ErrNoQualifyingDeposit)
	}

	now := s.now()
	loan := &PendingLoan{
		ID:          uuid.New().String(),
		Handle:      acct.Handle,
		Amount:      amt,
		RequestedAt: now,
		DueAt:       now.Add(s.cfg.LoanDelay),
		acct:        acct,
	}
	loanID := loan.ID
	s.sched.Schedule(acct.Handle, "Loan "+amt.String()+" for "+acct.Handle, s.cfg.LoanDelay, func() {
		s.disburse(loanID)
	})
	s.loans[loan.ID] = loan

	s.audit.Log(audit.Event{
		EventType: audit.EventLoanRequested,
		SessionID: s.sessionID,
		Handle:    acct.Handle,
		Amount:    amt.String(),
		Success:   true,
		Metadata:  map[string]string{"loan_id": loan.ID},
	})

	return *loan, nil
}

// disburse credits a due loan if its account is still the live, logged-in one.
func (s *Session) disburse(loanID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[loanID]
	if !ok {
		return
	}
	delete(s.loans, loanID)

	acct := loan.acct
	if s.current != acct || !s.dir.Contains(acct) {
		s.auditFailure(audit.EventLoanCanceled, loan.Handle, loan.Amount.String(), ErrNotAuthenticated,
			"loan_id", loan.ID)
		return
	}

	acct.Ledger.Append(loan.Amount, s.now())

	s.audit.Log(audit.Event{
		EventType: audit.EventLoanCredited,
		SessionID: s.sessionID,
		Handle:    acct.Handle,
		Amount:    loan.Amount.String(),
		Success:   true,
		Metadata:  map[string]string{"loan_id": loan.ID},
	})
	s.renderAccountLocked(acct)
}

// PendingLoans lists approved loans not yet credited, earliest due first.
func (s *Session) PendingLoans() []PendingLoan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PendingLoan, 0, len(s.loans))
	for _, l := range s.loans {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].RequestedAt.Before(out[j].RequestedAt)
		}
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}

// cancelLoansLocked disarms the scheduled credits of every pending loan,
// keyed by account handle, and forgets the loans.
func (s *Session) cancelLoansLocked() {
	handles := make(map[string]bool)
	for _, loan := range s.loans {
		handles[loan.Handle] = true
	}
	for handle := range handles {
		s.sched.CancelKey(handle)
	}
	s.forgetLoansLocked()
}

func (s *Session) forgetLoansLocked() {
	for id, loan := range s.loans {
		delete(s.loans, id)
		s.audit.Log(audit.Event{
			EventType: audit.EventLoanCanceled,
			SessionID: s.sessionID,
			Handle:    loan.Handle,
			Amount:    loan.Amount.String(),
			Success:   true,
			Metadata:  map[string]string{"loan_id": loan.ID},
		})
	}
}
