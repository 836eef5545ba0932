// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

// Balance renders the current balance line with its "as of" date.
func Balance(theme *styles.Theme, balance, asOf string, width int) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.BalanceLabel.Render("Current balance"),
		theme.BalanceDate.Render("As of "+asOf),
	)
	right := theme.BalanceValue.Render(balance)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}

// SummaryLine renders In, Out and Interest in one row.
func SummaryLine(theme *styles.Theme, s present.Summary) string {
	item := func(label string, style lipgloss.Style, value string) string {
		return theme.SummaryLabel.Render(label) + " " + style.Render(value)
	}
	return item("IN", theme.SummaryIn, s.In) + "   " +
		item("OUT", theme.SummaryOut, s.Out) + "   " +
		item("INTEREST", theme.SummaryInt, s.Interest)
}
