// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/ui/styles"
	"github.com/jeranaias/bankist-tui/internal/util"
)

// =============================================================================
// MOVEMENTS LIST
// =============================================================================

// MovementsList is the scrollable list of ledger rows, newest at the top.
type MovementsList struct {
	viewport viewport.Model
	rows     []present.Row
	theme    *styles.Theme
	width    int
}

// NewMovementsList creates an empty list.
func NewMovementsList(theme *styles.Theme) *MovementsList {
	vp := viewport.New(60, 10)
	vp.Style = lipgloss.NewStyle()
	return &MovementsList{viewport: vp, theme: theme, width: 60}
}

// SetSize updates the visible area.
func (m *MovementsList) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// SetRows replaces the rows and scrolls back to the top.
func (m *MovementsList) SetRows(rows []present.Row) {
	m.rows = rows
	m.refresh()
	m.viewport.GotoTop()
}

// Rows returns the rows currently shown.
func (m *MovementsList) Rows() []present.Row {
	return m.rows
}

// Update forwards scrolling keys and mouse wheel events to the viewport.
func (m *MovementsList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the visible part of the list.
func (m *MovementsList) View() string {
	if len(m.rows) == 0 {
		return m.theme.Muted.Render("No movements")
	}
	return m.viewport.View()
}

func (m *MovementsList) refresh() {
	lines := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		lines = append(lines, m.renderRow(r))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderRow lays out badge, date and right-aligned amount on one line.
func (m *MovementsList) renderRow(r present.Row) string {
	badge := m.theme.Badge(r.Index, r.Kind, r.IsDeposit)
	badgeWidth := lipgloss.Width(badge)

	amountWidth := 16
	dateWidth := m.width - badgeWidth - amountWidth - 2
	if dateWidth < 10 {
		dateWidth = 10
	}

	date := m.theme.MovementDate.Render(util.PadRight(r.Date, dateWidth))
	amount := m.theme.MovementAmount.Render(util.PadLeft(r.Amount, amountWidth))
	return badge + " " + date + " " + amount
}
