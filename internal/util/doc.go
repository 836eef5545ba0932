// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small file and text helpers shared by bankist's front ends.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: temp file, fsync, rename; creates owner-only parents
//
// Terminal Text:
//   - StringWidth: cell width, wide runes count as 2
//   - TruncateWidth: cut to a cell width, ending in an ellipsis
//   - PadRight, PadLeft: truncate or pad to an exact width
//   - Columns: one table row from cells and widths; negative widths right-align
//
// # Usage
//
//	row := util.Columns(" ", []int{3, 10, -16}, "1", "DEPOSIT", "$200.00")
//
//	err := util.AtomicWriteFile(path, data, 0600)
package util
