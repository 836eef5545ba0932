// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	Welcome     lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style

	// ==========================================================================
	// BALANCE AND SUMMARY
	// ==========================================================================

	BalanceLabel lipgloss.Style
	BalanceValue lipgloss.Style
	BalanceDate  lipgloss.Style
	SummaryLabel lipgloss.Style
	SummaryIn    lipgloss.Style
	SummaryOut   lipgloss.Style
	SummaryInt   lipgloss.Style

	// ==========================================================================
	// MOVEMENTS
	// ==========================================================================

	DepositBadge    lipgloss.Style
	WithdrawalBadge lipgloss.Style
	MovementDate    lipgloss.Style
	MovementAmount  lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	FormBox        lipgloss.Style
	FormBoxFocused lipgloss.Style
	FormLabel      lipgloss.Style
	Button         lipgloss.Style

	// ==========================================================================
	// STATUS
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Timer        lipgloss.Style
	TimerWarning lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme. "auto" asks the terminal for its background;
// "dark" and "light" force the adaptive colors one way.
func NewTheme(name string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(name) {
	case ThemeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	case ThemeAuto:
		isDark = termenv.HasDarkBackground()
	default:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.Welcome = lipgloss.NewStyle().Bold(true).Foreground(Purple)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(TextSecondary)

	t.BalanceLabel = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.BalanceValue = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.BalanceDate = lipgloss.NewStyle().Foreground(TextMuted)
	t.SummaryLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.SummaryIn = lipgloss.NewStyle().Foreground(Deposit).Bold(true)
	t.SummaryOut = lipgloss.NewStyle().Foreground(Withdrawal).Bold(true)
	t.SummaryInt = lipgloss.NewStyle().Foreground(Deposit)

	t.DepositBadge = lipgloss.NewStyle().
		Foreground(Deposit).
		Background(DepositBadge).
		Padding(0, 1)
	t.WithdrawalBadge = lipgloss.NewStyle().
		Foreground(Withdrawal).
		Background(WithdrawalBadge).
		Padding(0, 1)
	t.MovementDate = lipgloss.NewStyle().Foreground(TextMuted)
	t.MovementAmount = lipgloss.NewStyle().Foreground(TextPrimary)

	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.FormBoxFocused = t.FormBox.BorderForeground(Purple)
	t.FormLabel = lipgloss.NewStyle().Bold(true).Foreground(TextSecondary)
	t.Button = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.Timer = lipgloss.NewStyle().Foreground(TextSecondary)
	t.TimerWarning = lipgloss.NewStyle().Bold(true).Foreground(Amber)

	t.SuccessStyle = lipgloss.NewStyle().Foreground(Deposit)
	t.ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(Withdrawal)
	t.WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
}

// Badge returns the styled type badge for a movement.
func (t *Theme) Badge(index int, kind string, deposit bool) string {
	label := strings.ToUpper(strconv.Itoa(index) + " " + kind)
	if deposit {
		return t.DepositBadge.Render(label)
	}
	return t.WithdrawalBadge.Render(label)
}

// Success, Error and Warning prefix text with an ASCII marker.
func (t *Theme) Success(s string) string {
	return t.SuccessStyle.Render(StatusIndicators.Success + " " + s)
}

func (t *Theme) Error(s string) string {
	return t.ErrorStyle.Render(StatusIndicators.Error + " " + s)
}

func (t *Theme) Warning(s string) string {
	return t.WarningStyle.Render(StatusIndicators.Warning + " " + s)
}
