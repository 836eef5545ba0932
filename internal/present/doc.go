// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package present turns ledger data into display strings.
//
// It is shared by the TUI and the line REPL: currency and number
// formatting per locale (golang.org/x/text), relative date labels,
// movement rows and the MM:SS countdown. Nothing here affects balances.
package present
