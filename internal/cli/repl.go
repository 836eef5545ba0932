// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-mode front end for terminals that cannot host the
// full-screen dashboard, and for scripted input.

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/shopspring/decimal"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/session"
)

// LineReader reads one line of input at a time. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// History wraps a liner state with a history file.
type History struct {
	*liner.State
	path string
}

// OpenHistory starts line editing with history loaded from dir.
func OpenHistory(dir string) *History {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	h := &History{State: line, path: filepath.Join(dir, "repl_history")}
	if f, err := os.Open(h.path); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return h
}

// Close saves the history with owner-only permissions and restores the
// terminal.
func (h *History) Close() error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0700); err == nil {
		if f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = h.WriteHistory(f)
			f.Close()
		}
	}
	return h.State.Close()
}

// =============================================================================
// REPL
// =============================================================================

// REPL drives a session from typed commands.
type REPL struct {
	sess   *session.Session
	out    *Printer
	in     LineReader
	tick   time.Duration
	warned bool
}

// NewREPL reads commands from in and reports through out, which should be
// the session's renderer. tick is the countdown step; zero means 1s.
func NewREPL(sess *session.Session, out *Printer, in LineReader, tick time.Duration) *REPL {
	if tick <= 0 {
		tick = time.Second
	}
	return &REPL{sess: sess, out: out, in: in, tick: tick}
}

// Run prompts until quit, end of input, Ctrl+C or ctx ends. Pending loans
// are dropped on the way out.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer r.sess.Shutdown()

	go r.tickLoop(ctx)

	r.sess.Refresh()
	r.out.Println(DimStyle.Render("Type help for commands."))

	for ctx.Err() == nil {
		line, err := r.in.Prompt(r.out.Prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				r.out.Println()
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !holdsPIN(line) {
			r.in.AppendHistory(line)
		}
		if !r.Exec(line) {
			return nil
		}
	}
	return nil
}

func (r *REPL) tickLoop(ctx context.Context) {
	t := time.NewTicker(r.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Tick()
		}
	}
}

// Tick advances the countdown one step and announces the warning window
// once per stretch of inactivity.
func (r *REPL) Tick() {
	remaining, expired := r.sess.Tick()
	switch {
	case expired:
		r.warned = false
		r.out.Println(WarningStyle.Render("Session expired after inactivity"))
	case r.sess.Warning() && !r.warned:
		r.warned = true
		r.out.Println(WarningStyle.Render("[!] Still there? You will be logged out in " + present.FormatRemaining(remaining)))
	case !r.sess.Warning():
		r.warned = false
	}
}

// holdsPIN reports whether a line carries a PIN and must stay out of history.
func holdsPIN(line string) bool {
	f := strings.Fields(line)
	return len(f) > 0 && (f[0] == "login" || f[0] == "close")
}

// =============================================================================
// COMMANDS
// =============================================================================

const replHelp = `Commands:
  login <user> <pin>        Log in
  logout                    Log out
  transfer <user> <amount>  Send money
  loan <amount>             Request a loan
  close <user> <pin>        Close the logged-in account
  sort                      Toggle ordering movements by amount
  show                      Print the dashboard again
  status                    Time left and pending loans
  help                      Show this help
  quit                      Leave`

// Exec runs one command line. It returns false when the user asked to quit.
func (r *REPL) Exec(line string) bool {
	f := strings.Fields(line)
	if len(f) == 0 {
		return true
	}
	cmd, args := strings.ToLower(f[0]), f[1:]

	switch cmd {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		r.out.Println(replHelp)
	case "login":
		if !r.want(args, 2, "login <user> <pin>") {
			break
		}
		if _, err := r.sess.Login(args[0], account.PINOrInvalid(args[1])); err != nil {
			r.fail(err)
		}
	case "logout":
		r.sess.Logout()
	case "transfer":
		if !r.want(args, 2, "transfer <user> <amount>") {
			break
		}
		amount, ok := r.amount(args[1])
		if !ok {
			break
		}
		if err := r.sess.Transfer(args[0], amount); err != nil {
			r.fail(err)
			break
		}
		r.out.Println(SuccessStyle.Render("Sent " + r.money(amount) + " to " + args[0]))
	case "loan":
		if !r.want(args, 1, "loan <amount>") {
			break
		}
		amount, ok := r.amount(args[0])
		if !ok {
			break
		}
		loan, err := r.sess.RequestLoan(amount)
		if err != nil {
			r.fail(err)
			break
		}
		r.out.Println(WarningStyle.Render("Loan of " + r.money(loan.Amount) + " approved, arriving shortly"))
	case "close":
		if !r.want(args, 2, "close <user> <pin>") {
			break
		}
		if err := r.sess.CloseAccount(args[0], account.PINOrInvalid(args[1])); err != nil {
			r.fail(err)
			break
		}
		r.out.Println(SuccessStyle.Render("Account closed"))
	case "sort":
		r.sess.ToggleSort()
	case "show":
		r.sess.Refresh()
	case "status":
		r.status()
	default:
		r.out.Println(ErrorStyle.Render("Unknown command " + cmd + ", type help"))
	}
	return true
}

func (r *REPL) status() {
	if r.sess.Current() == nil {
		r.out.Println("Not logged in")
		return
	}
	r.out.Println("Logged out in " + present.FormatRemaining(r.sess.Remaining()))
	for _, l := range r.sess.PendingLoans() {
		r.out.Println("  loan " + r.money(l.Amount) + " due " + l.DueAt.Format("15:04:05"))
	}
}

func (r *REPL) want(args []string, n int, usage string) bool {
	if len(args) == n {
		return true
	}
	r.out.Println(ErrorStyle.Render("Usage: " + usage))
	return false
}

func (r *REPL) fail(err error) {
	r.out.Println(ErrorStyle.Render(session.Message(err)))
}

func (r *REPL) amount(s string) (decimal.Decimal, bool) {
	d, err := account.ParseAmount(s)
	if err != nil {
		r.out.Println(ErrorStyle.Render("Not an amount: " + s))
		return decimal.Zero, false
	}
	return d, true
}

func (r *REPL) money(d decimal.Decimal) string {
	acct := r.sess.Current()
	if acct == nil {
		return d.String()
	}
	return present.FormatCurrency(d, acct.Locale, acct.Currency)
}
