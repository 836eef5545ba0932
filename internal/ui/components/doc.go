// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the bankist TUI.
//
// # Key Types
//
//   - MovementsList: scrollable ledger rows (bubbles/viewport)
//   - Form: a titled group of text inputs (bubbles/textinput)
//   - StatusBar: handle, logout countdown and key hints
//   - TimeoutOverlay: the inactivity warning and logged-out notice
//
// Balance, SummaryLine and RenderHelp are stateless renderers.
package components
