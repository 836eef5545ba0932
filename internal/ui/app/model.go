// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bankist-tui/internal/session"
	"github.com/jeranaias/bankist-tui/internal/ui/components"
	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the bank screen.
type Model struct {
	sess   *session.Session
	screen *Screen
	theme  *styles.Theme
	keys   KeyMap
	tick   time.Duration

	login     *components.Form
	transfer  *components.Form
	loan      *components.Form
	closeForm *components.Form

	// active indexes visibleForms(); the focused field lives in the form
	active int

	movements *components.MovementsList
	status    *components.StatusBar
	overlay   components.TimeoutOverlay

	showHelp bool
	helpView string

	notice    string
	noticeErr bool

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithTickInterval overrides the one-second countdown tick.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) { m.tick = d }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// New creates the model. screen must be the Renderer sess was built with.
func New(sess *session.Session, screen *Screen, theme *styles.Theme, opts ...Option) Model {
	if theme == nil {
		theme = styles.NewTheme(styles.ThemeDark)
	}
	m := Model{
		sess:     sess,
		screen:   screen,
		theme:    theme,
		keys:     DefaultKeyMap(),
		tick:     time.Second,
		login: components.NewForm(theme, "Log in", "log in",
			components.FieldSpec{Placeholder: "user", Width: 8},
			components.FieldSpec{Placeholder: "PIN", Secret: true, CharLimit: 10, Width: 6},
		),
		transfer: components.NewForm(theme, "Transfer money", "transfer",
			components.FieldSpec{Placeholder: "to", Width: 8},
			components.FieldSpec{Placeholder: "amount", CharLimit: 16, Width: 10},
		),
		loan: components.NewForm(theme, "Request loan", "request",
			components.FieldSpec{Placeholder: "amount", CharLimit: 16, Width: 10},
		),
		closeForm: components.NewForm(theme, "Close account", "close",
			components.FieldSpec{Placeholder: "confirm user", Width: 12},
			components.FieldSpec{Placeholder: "confirm PIN", Secret: true, CharLimit: 10, Width: 11},
		),
		movements: components.NewMovementsList(theme),
		status:    components.NewStatusBar(theme),
		overlay:   components.NewTimeoutOverlay(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.keys.SetLoggedIn(false)
	m.login.FocusField(0)
	return m
}

// Init starts the countdown tick and the cursor blink.
func (m Model) Init() tea.Cmd {
	m.sess.Refresh()
	return tea.Batch(session.TickCmd(m.tick), textinput.Blink)
}

// visibleForms lists the forms shown for the current state, in focus order.
func (m *Model) visibleForms() []*components.Form {
	if !m.screen.LoggedIn() {
		return []*components.Form{m.login}
	}
	return []*components.Form{m.login, m.transfer, m.loan, m.closeForm}
}

// activeForm returns the form holding focus.
func (m *Model) activeForm() *components.Form {
	forms := m.visibleForms()
	if m.active < 0 || m.active >= len(forms) {
		m.active = 0
	}
	return forms[m.active]
}

// focusForm moves focus to field i of form f.
func (m *Model) focusForm(f *components.Form, i int) tea.Cmd {
	for idx, other := range m.visibleForms() {
		if other == f {
			m.active = idx
		} else {
			other.Blur()
		}
	}
	return f.FocusField(i)
}

// moveFocus steps through every field of the visible forms, wrapping.
func (m *Model) moveFocus(delta int) tea.Cmd {
	forms := m.visibleForms()
	type slot struct {
		form  *components.Form
		field int
	}
	var slots []slot
	current := 0
	for _, f := range forms {
		for i := 0; i < f.Len(); i++ {
			if f.FocusIndex() == i {
				current = len(slots)
			}
			slots = append(slots, slot{f, i})
		}
	}
	next := (current + delta + len(slots)) % len(slots)
	return m.focusForm(slots[next].form, slots[next].field)
}

// sync copies session state that changed into the components.
func (m *Model) sync() {
	if rows, ok := m.screen.takeRows(); ok {
		m.movements.SetRows(rows)
	}

	loggedIn := m.screen.LoggedIn()
	m.keys.SetLoggedIn(loggedIn)

	m.status.Handle = m.screen.Handle
	m.status.Remaining = m.screen.Remaining
	m.status.Warning = m.sess.Warning()
	m.status.Pending = len(m.sess.PendingLoans())
	m.status.Keys = m.keys.ShortHelp()

	if !loggedIn {
		m.transfer.Reset()
		m.loan.Reset()
		m.closeForm.Reset()
		if !m.login.Focused() {
			m.focusForm(m.login, 0)
		}
	}
}

// layout sizes the components for the current window.
func (m *Model) layout() {
	m.overlay.SetSize(m.width, m.height)

	// header 4, balance 3, summary 1, forms 5, notice 1, status 1
	listHeight := m.height - 15
	if listHeight < 3 {
		listHeight = 3
	}
	m.movements.SetSize(m.width-2, listHeight)
	if m.showHelp {
		m.helpView = components.RenderHelp(m.width-4, m.theme.IsDark)
	}
}

func (m *Model) setNotice(msg string, isErr bool) {
	m.notice = msg
	m.noticeErr = isErr
}
