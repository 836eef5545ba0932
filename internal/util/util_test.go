// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[session]\ntimeout_secs = 600\n")

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0600 {
			t.Errorf("perm = %o, want 0600", info.Mode().Perm())
		}
	}
}

func TestAtomicWriteFile_CreatesPrivateParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".bankist", "nested")
	path := filepath.Join(dir, "audit.log")

	if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("parent dir not created: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != DirPerm {
		t.Errorf("dir perm = %o, want %o", info.Mode().Perm(), DirPerm)
	}
}

func TestAtomicWriteFile_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	for _, body := range []string{"first", "second, longer body", "3"} {
		if err := AtomicWriteFile(path, []byte(body), 0600); err != nil {
			t.Fatalf("write %q: %v", body, err)
		}
	}

	content, _ := os.ReadFile(path)
	if string(content) != "3" {
		t.Errorf("content = %q, want %q", content, "3")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestAtomicWriteFile_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := AtomicWriteFile(path, nil, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() != 0 {
		t.Errorf("expected empty file, got %v / %v", info, err)
	}
}

// =============================================================================
// WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Jonas", 5},
		{"1.300,00 €", 10},
		{"日本", 4},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.in); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Jessica Davis", 20, "Jessica Davis"},
		{"exact", "Jessica", 7, "Jessica"},
		{"cut", "Jessica Davis", 8, "Jessica…"},
		{"wide runes", "日本語", 5, "日本…"},
		{"tiny", "Jessica", 1, "J"},
		{"zero", "Jessica", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWidth(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if StringWidth(got) > tt.width {
				t.Errorf("result %q is wider than %d", got, tt.width)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("jd", 5); got != "jd   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("$30.00", 8); got != "  $30.00" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadRight("日本", 5); StringWidth(got) != 5 {
		t.Errorf("PadRight wide = %q (width %d)", got, StringWidth(got))
	}
}

func TestColumns(t *testing.T) {
	got := Columns(" | ", []int{3, -6}, "1", "$5", "extra")
	want := "1   |     $5 | extra"
	if got != want {
		t.Errorf("Columns = %q, want %q", got, want)
	}
}
