// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

// =============================================================================
// FORM
// =============================================================================

// FieldSpec describes one input of a Form.
type FieldSpec struct {
	Placeholder string
	Secret      bool
	CharLimit   int
	Width       int
}

// Form is a titled row of text inputs submitted together.
type Form struct {
	Title  string
	Action string

	inputs []textinput.Model
	focus  int // -1 when the form is not focused
	theme  *styles.Theme
}

// NewForm creates an unfocused form.
func NewForm(theme *styles.Theme, title, action string, fields ...FieldSpec) *Form {
	f := &Form{Title: title, Action: action, focus: -1, theme: theme}
	for _, spec := range fields {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.Prompt = ""
		ti.CharLimit = spec.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 32
		}
		ti.Width = spec.Width
		if ti.Width == 0 {
			ti.Width = 12
		}
		if spec.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
		ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Cyan)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

// Len returns the number of fields.
func (f *Form) Len() int { return len(f.inputs) }

// Focused reports whether any field has focus.
func (f *Form) Focused() bool { return f.focus >= 0 }

// FocusIndex returns the focused field, or -1.
func (f *Form) FocusIndex() int { return f.focus }

// FocusField moves focus to field i.
func (f *Form) FocusField(i int) tea.Cmd {
	f.Blur()
	if i < 0 || i >= len(f.inputs) {
		return nil
	}
	f.focus = i
	return f.inputs[i].Focus()
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = -1
}

// Values returns the trimmed field contents in order.
func (f *Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// SetValue fills field i.
func (f *Form) SetValue(i int, v string) {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
	}
}

// Reset clears every field and drops focus.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.Blur()
}

// Update forwards msg to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the title above the fields and the action hint.
func (f *Form) View() string {
	box := f.theme.FormBox
	if f.Focused() {
		box = f.theme.FormBoxFocused
	}

	fields := make([]string, 0, len(f.inputs)*2)
	for i, in := range f.inputs {
		if i > 0 {
			fields = append(fields, " ")
		}
		fields = append(fields, "["+in.View()+"]")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, fields...)
	action := f.theme.Muted.Render("enter: " + f.Action)

	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		f.theme.FormLabel.Render(f.Title),
		row,
		action,
	))
}
