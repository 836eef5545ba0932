// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line parsing for bankist.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdAuto Command = iota // pick TUI or REPL from ui.mode and the terminal
	CmdTUI
	CmdREPL
	CmdAccounts
	CmdConfig
	CmdAudit
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdREPL:
		return "repl"
	case CmdAccounts:
		return "accounts"
	case CmdConfig:
		return "config"
	case CmdAudit:
		return "audit"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return ""
	}
}

// Args holds the parsed global flags and the command's own arguments.
type Args struct {
	// ConfigPath loads this file instead of ~/.bankist/config.{toml,json}
	ConfigPath string

	// Theme overrides ui.theme for this run
	Theme string

	// Sub holds everything after the command name
	Sub *ArgParser
}

const usageText = `bankist - a terminal banking dashboard

Usage:
  bankist [global flags] [command] [arguments]

Commands:
  (none)             Start the dashboard (full screen on a terminal, REPL otherwise)
  tui                Start the full-screen dashboard
  repl               Start the line-mode prompt
  accounts [--json]  List the account roster
  config [show]      Print the effective configuration (PINs redacted)
  config get <key>   Print one setting, e.g. session.timeout_secs
  config keys        List the setting keys
  config path        Print where the configuration is read from
  config init        Write the effective configuration to disk
  audit [--lines N] [--json]
                     Show the most recent audit events (default 20)
  version            Print version information
  help               Show this help

Global flags:
  -c, --config <path>  Read configuration from this file
      --theme <name>   Color theme: dark, light or auto
      --tui, --repl    Same as the tui and repl commands
  -h, --help           Show this help
  -v, --version        Print version information

Environment:
  BANKIST_SESSION_TIMEOUT  Inactivity timeout (seconds or a duration like 5m)
  BANKIST_LOAN_DELAY       Loan credit delay (milliseconds or a duration)
  BANKIST_AUDIT_BACKEND    Audit store: file, sqlite or none
  BANKIST_AUDIT_PATH       Audit file or database path
  BANKIST_THEME            Color theme
  NO_COLOR                 Disable colors in CLI output

Values may also be placed in a .env file in the working directory.
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "bankist %s\n", Version)
	fmt.Fprintf(w, "  commit:  %s\n", GitCommit)
	fmt.Fprintf(w, "  built:   %s\n", BuildDate)
	fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv without the program name. Global flags may appear
// before the command; everything after the command name belongs to it.
func ParseArgs(argv []string) (Command, Args, error) {
	var args Args
	cmd := CmdAuto

	i := 0
	for ; i < len(argv); i++ {
		a := argv[i]
		if !strings.HasPrefix(a, "-") {
			break
		}

		name, value, hasValue := strings.Cut(a, "=")
		needValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(argv) {
				return "", fmt.Errorf("flag %s needs a value", name)
			}
			i++
			return argv[i], nil
		}

		switch name {
		case "-c", "--config":
			v, err := needValue()
			if err != nil {
				return CmdHelp, args, err
			}
			args.ConfigPath = v
		case "--theme":
			v, err := needValue()
			if err != nil {
				return CmdHelp, args, err
			}
			args.Theme = v
		case "--tui":
			cmd = CmdTUI
		case "--repl":
			cmd = CmdREPL
		case "-h", "--help":
			return CmdHelp, args, nil
		case "-v", "--version":
			return CmdVersion, args, nil
		default:
			return CmdHelp, args, fmt.Errorf("unknown flag %s", name)
		}
	}

	rest := argv[i:]
	if len(rest) == 0 {
		args.Sub = NewArgParser(nil)
		return cmd, args, nil
	}

	switch rest[0] {
	case "tui":
		cmd = CmdTUI
	case "repl":
		cmd = CmdREPL
	case "accounts", "ls":
		cmd = CmdAccounts
	case "config":
		cmd = CmdConfig
	case "audit":
		cmd = CmdAudit
	case "version":
		cmd = CmdVersion
	case "help":
		cmd = CmdHelp
	default:
		return CmdHelp, args, fmt.Errorf("unknown command %q", rest[0])
	}
	args.Sub = NewArgParser(rest[1:], "json")
	return cmd, args, nil
}
