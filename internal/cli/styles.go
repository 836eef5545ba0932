// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(ColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Deposit).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Withdrawal).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	DepositStyle = lipgloss.NewStyle().
			Foreground(styles.Deposit)

	WithdrawalStyle = lipgloss.NewStyle().
			Foreground(styles.Withdrawal)
)

// RenderSeparator renders a horizontal rule, 60 columns unless given.
func RenderSeparator(width ...int) string {
	w := 60
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return DimStyle.Render(strings.Repeat("-", w))
}
