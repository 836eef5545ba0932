// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// HelpMarkdown documents the screen. It is rendered with glamour.
const HelpMarkdown = `# Bankist

Log in with your **handle** (the initials of your name, e.g. ` + "`jd`" + `)
and your **PIN**.

| Action   | How |
|----------|-----|
| Transfer | Recipient handle and amount, then enter |
| Loan     | Amount, then enter. Approved when any movement is at least 10% of it. Credited after a short delay |
| Close    | Your handle and PIN. The account is removed for good |
| Sort     | ` + "`ctrl+s`" + ` toggles sorting movements by amount |
| Logout   | ` + "`ctrl+l`" + ` |

You are logged out after a period of inactivity. Only transfers and
loan requests count as activity.
`

// RenderHelp renders HelpMarkdown for a terminal of the given width.
// If glamour fails the raw markdown is returned.
func RenderHelp(width int, dark bool) string {
	if width <= 0 {
		width = 80
	}
	style := "dark"
	if !dark {
		style = "light"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return HelpMarkdown
	}
	out, err := r.Render(HelpMarkdown)
	if err != nil {
		return HelpMarkdown
	}
	return strings.TrimRight(out, "\n")
}
