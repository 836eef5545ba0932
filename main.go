// bankist - A terminal banking dashboard.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/audit"
	"github.com/jeranaias/bankist-tui/internal/cli"
	"github.com/jeranaias/bankist-tui/internal/config"
	"github.com/jeranaias/bankist-tui/internal/session"
	"github.com/jeranaias/bankist-tui/internal/tasks"
	"github.com/jeranaias/bankist-tui/internal/ui/app"
	"github.com/jeranaias/bankist-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return
	}

	cfg := loadConfig(args)

	switch cmd {
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(os.Stdout, cfg, args.Sub, args.ConfigPath))
	case cli.CmdAccounts:
		exitOnError(cli.HandleAccounts(os.Stdout, mustDirectory(cfg), args.Sub))
	case cli.CmdAudit:
		exitOnError(runAudit(os.Stdout, mustAuditLogger(cfg), args.Sub))
	default:
		exitOnError(run(cmd, cfg))
	}
}

// loadConfig reads the configuration. A broken default file falls back to
// defaults with a warning; a broken explicit --config file is fatal.
func loadConfig(args cli.Args) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			log.Printf("WARNING: %v (using defaults)", err)
		}
	}

	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}
	config.SetGlobal(cfg)
	return cfg
}

func mustDirectory(cfg *config.Config) *account.Directory {
	dir, err := account.NewDirectory(cfg.Accounts, cfg.DirectoryOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid account roster: %v\n", err)
		os.Exit(1)
	}
	return dir
}

func mustAuditLogger(cfg *config.Config) *audit.Logger {
	logger, err := audit.Open(cfg.Audit.Backend, cfg.Audit.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open audit log: %v\n", err)
		os.Exit(1)
	}
	logger.SetMaxFileSize(int64(cfg.Audit.MaxFileSizeMB) * 1024 * 1024)
	return logger
}

// runAudit prints recent audit events and always closes the logger, since
// exitOnError leaves no room for deferred calls.
func runAudit(w io.Writer, logger *audit.Logger, sub *cli.ArgParser) (err error) {
	defer func() {
		if cerr := logger.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing audit log: %w", cerr)
		}
	}()
	return cli.HandleAudit(w, logger, sub)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INTERACTIVE FRONT ENDS
// =============================================================================

func run(cmd cli.Command, cfg *config.Config) error {
	dir := mustDirectory(cfg)
	logger := mustAuditLogger(cfg)
	defer logger.Close()

	if cmd == cli.CmdAuto {
		cmd = pickFrontEnd(cfg.UI.Mode)
	}
	if cmd == cli.CmdTUI {
		return runTUI(cfg, dir, logger)
	}
	return runREPL(cfg, dir, logger)
}

// pickFrontEnd resolves ui.mode. "auto" means full screen only when both
// stdin and stdout are terminals.
func pickFrontEnd(mode string) cli.Command {
	switch strings.ToLower(mode) {
	case "tui":
		return cli.CmdTUI
	case "repl":
		return cli.CmdREPL
	}
	if cli.Interactive() {
		return cli.CmdTUI
	}
	return cli.CmdREPL
}

// runTUI starts the full-screen dashboard. Loan callbacks reach the model
// through the relay so every session call happens on the program's loop.
func runTUI(cfg *config.Config, dir *account.Directory, logger *audit.Logger) error {
	theme := styles.NewTheme(cfg.UI.Theme)
	screen := app.NewScreen(nil)

	relay := &session.ProgramRelay{}
	sched := tasks.NewScheduler(tasks.WithDispatcher(relay.Dispatch))
	sess := session.New(dir, screen, cfg.SessionConfig(),
		session.WithScheduler(sched),
		session.WithAuditLogger(logger),
	)

	m := app.New(sess, screen, theme, app.WithTickInterval(cfg.TickInterval()))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	relay.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// runREPL starts the line-mode prompt. Loan callbacks run on the timer
// goroutine; the session serializes them with typed commands.
func runREPL(cfg *config.Config, dir *account.Directory, logger *audit.Logger) error {
	out := cli.NewPrinter(os.Stdout, nil)
	sess := session.New(dir, out, cfg.SessionConfig(),
		session.WithScheduler(tasks.NewScheduler()),
		session.WithAuditLogger(logger),
	)

	histDir, err := config.ConfigDir()
	if err != nil {
		histDir = os.TempDir()
	}
	hist := cli.OpenHistory(histDir)
	defer hist.Close()

	return cli.NewREPL(sess, out, hist, cfg.TickInterval()).Run(context.Background())
}
