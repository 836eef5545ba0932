// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package account provides the roster of bank accounts and handle lookup.
//
// Accounts are built once at startup from a list of Specs. Each account
// gets a login handle derived from its owner's name ("Jessica Davis"
// becomes "jd") and keeps its PIN only as a bcrypt hash.
//
// # Key Types
//
//   - Spec: roster entry as read from configuration
//   - Account: owner, handle, PIN hash, interest rate, formatting hints, ledger
//   - Directory: the live roster; lookup by handle and removal on closure
//
// # Usage
//
//	dir, err := account.NewDirectory(account.DefaultRoster(), account.Options{})
//	if err != nil {
//	    return err
//	}
//	acct, ok := dir.FindByHandle("jd")
//	if ok && acct.VerifyPIN(2222) {
//	    // authenticated
//	}
package account
