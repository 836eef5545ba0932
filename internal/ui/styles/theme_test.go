// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme_ForcedBackground(t *testing.T) {
	if !NewTheme(ThemeDark).IsDark {
		t.Error("dark theme should report a dark background")
	}
	if NewTheme(ThemeLight).IsDark {
		t.Error("light theme should not report a dark background")
	}
	if !NewTheme("unknown").IsDark {
		t.Error("unknown theme names fall back to dark")
	}
}

func TestTheme_Badge(t *testing.T) {
	theme := NewTheme(ThemeDark)

	if got := theme.Badge(3, "deposit", true); !strings.Contains(got, "3 DEPOSIT") {
		t.Errorf("deposit badge = %q", got)
	}
	if got := theme.Badge(12, "withdrawal", false); !strings.Contains(got, "12 WITHDRAWAL") {
		t.Errorf("withdrawal badge = %q", got)
	}
}

func TestTheme_StatusMarkers(t *testing.T) {
	theme := NewTheme(ThemeDark)

	cases := map[string]string{
		theme.Success("done"):   StatusIndicators.Success,
		theme.Error("failed"):   StatusIndicators.Error,
		theme.Warning("hurry"):  StatusIndicators.Warning,
	}
	for out, marker := range cases {
		if !strings.Contains(out, marker) {
			t.Errorf("%q is missing marker %q", out, marker)
		}
	}
}
