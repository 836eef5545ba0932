// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/ui/components"
)

// View renders the screen.
func (m Model) View() string {
	if m.overlay.IsVisible() {
		return m.overlay.View()
	}
	if m.showHelp {
		return m.theme.App.Render(m.helpView + "\n\n" + m.theme.Muted.Render("press any key to close"))
	}

	width := m.width
	if width == 0 {
		width = 80
	}

	sections := []string{m.viewHeader(width)}
	if m.screen.LoggedIn() {
		sections = append(sections,
			components.Balance(m.theme, m.screen.Balance, m.screen.AsOf, width-2),
			"",
			m.movements.View(),
			"",
			components.SummaryLine(m.theme, m.screen.Summary),
			lipgloss.JoinHorizontal(lipgloss.Top,
				m.transfer.View(), " ", m.loan.View(), " ", m.closeForm.View()),
		)
	}
	sections = append(sections, m.notice)

	body := m.theme.App.Render(strings.Join(sections, "\n"))
	return body + "\n" + m.status.View(width)
}

func (m Model) viewHeader(width int) string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.HeaderBrand.Render("bankist"),
		m.theme.Welcome.Render(m.screen.Welcome),
	)
	right := m.login.View()

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), right)
}
