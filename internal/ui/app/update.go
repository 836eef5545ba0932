// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/session"
	"github.com/jeranaias/bankist-tui/internal/ui/components"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case session.TickMsg:
		cmd := m.sess.HandleTick(m.tick)
		m.sync()
		if m.overlay.IsVisible() && !m.overlay.IsExpired() {
			if m.sess.Warning() {
				m.overlay.SetRemaining(m.screen.Remaining)
			} else {
				m.overlay.Hide()
			}
		}
		return m, cmd

	case session.TimeoutWarningMsg:
		m.overlay.ShowWarning(msg.Remaining)
		return m, nil

	case session.TimeoutMsg:
		m.overlay.ShowExpired()
		m.setNotice("", false)
		m.sync()
		return m, nil

	case session.DeferredMsg:
		before := len(m.sess.PendingLoans())
		msg.Run()
		if len(m.sess.PendingLoans()) < before && m.screen.LoggedIn() {
			m.setNotice(m.theme.Success("Loan credited"), false)
		}
		m.sync()
		return m, nil

	case tea.MouseMsg:
		return m, m.movements.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.sess.Shutdown()
		return m, tea.Quit
	}

	if m.overlay.IsVisible() {
		m.overlay, _ = m.overlay.Update(msg)
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView = components.RenderHelp(m.width-4, m.theme.IsDark)
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.moveFocus(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.moveFocus(-1)

	case key.Matches(msg, m.keys.Submit):
		cmd := m.submit()
		m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Sort):
		m.sess.ToggleSort()
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		m.sess.Logout()
		m.setNotice("Logged out", false)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown):
		return m, m.movements.Update(msg)
	}

	return m, m.activeForm().Update(msg)
}

// submit runs the active form's operation and clears its fields.
func (m *Model) submit() tea.Cmd {
	form := m.activeForm()
	vals := form.Values()
	form.Reset()

	switch form {
	case m.login:
		if _, err := m.sess.Login(vals[0], account.PINOrInvalid(vals[1])); err != nil {
			m.setNotice(m.theme.Error(session.Message(err)), true)
			return m.focusForm(m.login, 0)
		}
		m.setNotice("", false)
		return m.focusForm(m.transfer, 0)

	case m.transfer:
		amount := parseAmount(vals[1])
		if err := m.sess.Transfer(vals[0], amount); err != nil {
			m.setNotice(m.theme.Error(session.Message(err)), true)
		} else {
			m.setNotice(m.theme.Success(fmt.Sprintf("Sent %s to %s", m.money(amount), vals[0])), false)
		}
		return m.focusForm(m.transfer, 0)

	case m.loan:
		loan, err := m.sess.RequestLoan(parseAmount(vals[0]))
		if err != nil {
			m.setNotice(m.theme.Error(session.Message(err)), true)
		} else {
			m.setNotice(m.theme.Warning(fmt.Sprintf("Loan of %s approved, arriving shortly", m.money(loan.Amount))), false)
		}
		return m.focusForm(m.loan, 0)

	case m.closeForm:
		if err := m.sess.CloseAccount(vals[0], account.PINOrInvalid(vals[1])); err != nil {
			m.setNotice(m.theme.Error(session.Message(err)), true)
			return m.focusForm(m.closeForm, 0)
		}
		m.setNotice(m.theme.Success("Account closed"), false)
		return m.focusForm(m.login, 0)
	}
	return nil
}

// money formats amount in the logged-in account's currency.
func (m *Model) money(amount decimal.Decimal) string {
	acct := m.sess.Current()
	if acct == nil {
		return amount.String()
	}
	return present.FormatCurrency(amount, acct.Locale, acct.Currency)
}

// parseAmount reads a decimal amount. Anything unparseable or out of range
// is zero, which every operation rejects as an invalid amount.
func parseAmount(s string) decimal.Decimal {
	d, err := account.ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
