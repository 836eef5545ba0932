// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/util"
)

// movementColumns are the widths of index, kind, date and amount.
// The amount column is right-aligned.
var movementColumns = []int{3, 10, 12, -16}

// Printer renders session state as plain lines for the REPL.
// It is safe for concurrent use; the tick loop and the prompt loop both
// write through it.
type Printer struct {
	mu        sync.Mutex
	w         io.Writer
	now       func() time.Time
	handle    string
	remaining int
}

// NewPrinter writes to w. now dates the movement labels; nil means time.Now.
func NewPrinter(w io.Writer, now func() time.Time) *Printer {
	if now == nil {
		now = time.Now
	}
	return &Printer{w: w, now: now}
}

// Println writes one line.
func (p *Printer) Println(a ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, a...)
}

// Prompt returns the input prompt, carrying the handle and time left
// while someone is logged in.
func (p *Printer) Prompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == "" {
		return "bankist> "
	}
	return p.handle + " " + present.FormatRemaining(p.remaining) + "> "
}

// =============================================================================
// session.Renderer
// =============================================================================

func (p *Printer) RenderWelcome(acct *account.Account) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if acct != nil {
		p.handle = acct.Handle
	}
	fmt.Fprintln(p.w, TitleStyle.Render(present.Welcome(acct)))
}

func (p *Printer) RenderLedger(acct *account.Account, sorted bool) {
	rows := present.LedgerRows(acct, sorted, p.now())

	p.mu.Lock()
	defer p.mu.Unlock()

	title := "Movements"
	if sorted {
		title += " (by amount)"
	}
	fmt.Fprintln(p.w, LabelStyle.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(p.w, DimStyle.Render("  No movements"))
		return
	}
	for _, r := range rows {
		line := util.Columns(" ", movementColumns,
			strconv.Itoa(r.Index), strings.ToUpper(r.Kind), r.Date, r.Amount)
		style := WithdrawalStyle
		if r.IsDeposit {
			style = DepositStyle
		}
		fmt.Fprintln(p.w, "  "+style.Render(line))
	}
}

func (p *Printer) RenderBalance(acct *account.Account) {
	s := present.Summarize(acct)
	asOf := present.FormatDateTime(p.now(), acct.Locale)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s %s\n",
		LabelStyle.Render("Balance"), TitleStyle.Render(s.Balance), DimStyle.Render("as of "+asOf))
}

func (p *Printer) RenderSummary(acct *account.Account) {
	s := present.Summarize(acct)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s  %s %s  %s %s\n",
		LabelStyle.Render("IN"), DepositStyle.Render(s.In),
		LabelStyle.Render("OUT"), WithdrawalStyle.Render(s.Out),
		LabelStyle.Render("INTEREST"), DepositStyle.Render(s.Interest))
}

// RenderRemainingTime only updates the prompt; printing every second
// would bury the input line.
func (p *Printer) RenderRemainingTime(seconds int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remaining = seconds
}

func (p *Printer) RenderLoggedOut() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handle = ""
	p.remaining = 0
	fmt.Fprintln(p.w, WarningStyle.Render("Logged out"))
}
