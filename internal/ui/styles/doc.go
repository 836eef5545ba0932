// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the bankist TUI.

All colors are Lip Gloss AdaptiveColor values, so one palette serves both
light and dark terminals.

# Color System (colors.go)

  - Purple, Cyan - accents for titles, handles and key hints
  - Deposit, Withdrawal - money moving in and out, with badge backgrounds
  - Amber - the timeout warning and pending loans

Status text always carries an ASCII marker from StatusIndicators as well
as a color.

# Theme (theme.go)

NewTheme("dark" | "light" | "auto") builds every lipgloss.Style the app
uses. "auto" asks termenv whether the background is dark.

	theme := styles.NewTheme(cfg.UI.Theme)
	fmt.Println(theme.Badge(1, "deposit", true))
*/
package styles
