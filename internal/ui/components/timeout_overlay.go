// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

// =============================================================================
// TIMEOUT OVERLAY
// =============================================================================

// TimeoutOverlay warns that the inactivity countdown is about to log the
// user out, and says so once it has. Dismissing it does not extend the
// session; only a transfer or a loan request restarts the countdown.
type TimeoutOverlay struct {
	visible   bool
	expired   bool
	remaining int

	width  int
	height int
}

// NewTimeoutOverlay creates a hidden overlay.
func NewTimeoutOverlay() TimeoutOverlay {
	return TimeoutOverlay{}
}

// SetSize sets the overlay dimensions.
func (o *TimeoutOverlay) SetSize(width, height int) {
	o.width = width
	o.height = height
}

// ShowWarning displays the countdown with seconds left.
func (o *TimeoutOverlay) ShowWarning(seconds int) {
	o.visible = true
	o.expired = false
	o.remaining = seconds
}

// ShowExpired displays the logged-out notice.
func (o *TimeoutOverlay) ShowExpired() {
	o.visible = true
	o.expired = true
	o.remaining = 0
}

// SetRemaining keeps a visible warning's countdown current.
func (o *TimeoutOverlay) SetRemaining(seconds int) {
	o.remaining = seconds
}

// Hide hides the overlay.
func (o *TimeoutOverlay) Hide() {
	o.visible = false
	o.expired = false
}

func (o TimeoutOverlay) IsVisible() bool { return o.visible }
func (o TimeoutOverlay) IsExpired() bool { return o.expired }

// Update hides the overlay on any key and tracks the window size.
// It reports whether it consumed the message.
func (o TimeoutOverlay) Update(msg tea.Msg) (TimeoutOverlay, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width
		o.height = msg.Height
	case tea.KeyMsg:
		if o.visible {
			o.Hide()
			return o, true
		}
	}
	return o, false
}

// View renders the overlay, or "" when hidden.
func (o TimeoutOverlay) View() string {
	if !o.visible {
		return ""
	}

	width, height := o.width, o.height
	if width == 0 {
		width = 60
	}
	if height == 0 {
		height = 24
	}
	boxWidth := clamp(width-8, 36, 56)

	var (
		border lipgloss.AdaptiveColor
		title  string
		body   string
		hint   string
	)
	if o.expired {
		border = styles.Withdrawal
		title = styles.StatusIndicators.Error + " Logged out"
		body = "Your session ended after a period of inactivity."
		hint = "Press any key, then log in again"
	} else {
		border = styles.Amber
		title = styles.StatusIndicators.Warning + " Still there?"
		body = "You will be logged out in " +
			lipgloss.NewStyle().Bold(true).Foreground(styles.Amber).Render(present.FormatRemaining(o.remaining))
		hint = "Make a transfer or request a loan to stay logged in"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(border).Render(title),
		"",
		lipgloss.NewStyle().Foreground(styles.TextPrimary).Width(boxWidth-6).Align(lipgloss.Center).Render(body),
		"",
		lipgloss.NewStyle().Foreground(styles.TextSecondary).Italic(true).Render(hint),
	)

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(boxWidth).
		Align(lipgloss.Center).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
