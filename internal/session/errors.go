// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "errors"

var (
	// Authentication
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPIN        = errors.New("wrong pin")
	ErrLoginThrottled  = errors.New("too many login attempts")

	// Any operation that needs a logged-in account
	ErrNotAuthenticated = errors.New("not logged in")

	// Transfer and loan validation
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUnknownTarget       = errors.New("unknown transfer target")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSelfTransfer        = errors.New("cannot transfer to own account")
	ErrNoQualifyingDeposit = errors.New("no deposit of at least 10% of the requested loan")

	// Closure
	ErrCloseMismatch = errors.New("handle or pin does not match the logged-in account")
)

// OpError records the operation and account handle an error occurred on.
type OpError struct {
	Op     string
	Handle string
	Err    error
}

func (e *OpError) Error() string {
	if e.Handle == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Handle + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op, handle string, err error) error {
	return &OpError{Op: op, Handle: handle, Err: err}
}

// Message turns an operation error into a short sentence for the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrWrongPIN):
		return "Wrong user or PIN"
	case errors.Is(err, ErrLoginThrottled):
		return "Too many attempts, wait a moment"
	case errors.Is(err, ErrNotAuthenticated):
		return "Log in first"
	case errors.Is(err, ErrInvalidAmount):
		return "Enter an amount above zero"
	case errors.Is(err, ErrUnknownTarget):
		return "No such recipient"
	case errors.Is(err, ErrInsufficientBalance):
		return "Not enough money"
	case errors.Is(err, ErrSelfTransfer):
		return "You cannot transfer to yourself"
	case errors.Is(err, ErrNoQualifyingDeposit):
		return "Loan denied: no deposit of at least 10% of the amount"
	case errors.Is(err, ErrCloseMismatch):
		return "User and PIN must match the open account"
	default:
		return err.Error()
	}
}
