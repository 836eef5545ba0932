// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar shows who is logged in, the logout countdown and key hints.
type StatusBar struct {
	Handle    string
	Remaining int
	Warning   bool
	Pending   int // loans waiting to be credited
	Keys      []key.Binding

	theme *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// View renders the bar at width.
func (s *StatusBar) View(width int) string {
	t := s.theme

	var left string
	if s.Handle == "" {
		left = t.Muted.Render("not logged in")
	} else {
		timer := t.Timer
		if s.Warning {
			timer = t.TimerWarning
		}
		left = t.HeaderBrand.Render(s.Handle) + "  " +
			timer.Render("logout in "+present.FormatRemaining(s.Remaining))
		if s.Pending > 0 {
			left += "  " + t.WarningStyle.Render(styles.StatusIndicators.Pending+" loan pending")
		}
	}

	hints := make([]string, 0, len(s.Keys))
	for _, b := range s.Keys {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
