// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// StringWidth returns the terminal cell width of s. East Asian wide runes count as 2.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth shortens s to at most maxWidth cells, ending in an ellipsis
// when anything was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= runewidth.StringWidth(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight truncates or pads s with spaces to exactly width cells.
func PadRight(s string, width int) string {
	s = TruncateWidth(s, width)
	return runewidth.FillRight(s, width)
}

// PadLeft right-aligns s in width cells, truncating if needed.
func PadLeft(s string, width int) string {
	s = TruncateWidth(s, width)
	return runewidth.FillLeft(s, width)
}

// Columns lays out cells with the given widths separated by sep.
// A negative width right-aligns its cell.
func Columns(sep string, widths []int, cells ...string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if i >= len(widths) {
			out[i] = c
			continue
		}
		if w := widths[i]; w < 0 {
			out[i] = PadLeft(c, -w)
		} else {
			out[i] = PadRight(c, w)
		}
	}
	return strings.Join(out, sep)
}
