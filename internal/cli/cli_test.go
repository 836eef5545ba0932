// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"strings"
	"testing"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"--lines", "50"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("lines") != "50" {
					t.Errorf("Flag(lines) = %q, want %q", p.Flag("lines"), "50")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"get", "--key=ui.theme"},
			wantSub: "get",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("key") != "ui.theme" {
					t.Errorf("Flag(key) = %q, want %q", p.Flag("key"), "ui.theme")
				}
			},
		},
		{
			name:    "declared boolean does not swallow positional",
			args:    []string{"--json", "get", "ui.theme"},
			bools:   []string{"json"},
			wantSub: "get",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
				if p.Positional(1) != "ui.theme" {
					t.Errorf("Positional(1) = %q, want ui.theme", p.Positional(1))
				}
			},
		},
		{
			name:    "explicit boolean false",
			args:    []string{"--json=false"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be false")
				}
				if !p.HasFlag("json") {
					t.Error("HasFlag(json) should be true")
				}
			},
		},
		{
			name:    "negative number is a value",
			args:    []string{"--lines", "-5", "-1.5"},
			wantSub: "-1.5",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("lines") != "-5" {
					t.Errorf("Flag(lines) = %q, want -5", p.Flag("lines"))
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"get", "--", "--weird"},
			wantSub: "get",
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 2 || p.Positional(1) != "--weird" {
					t.Errorf("positionals = %v", p.positional)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			if got := p.Subcommand(); got != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", got, tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagInt(t *testing.T) {
	p := NewArgParser([]string{"--lines", "7", "--bad", "x", "--neg", "-2"})

	if n, err := p.FlagInt("lines", 20); err != nil || n != 7 {
		t.Errorf("FlagInt(lines) = %d, %v", n, err)
	}
	if n, err := p.FlagInt("missing", 20); err != nil || n != 20 {
		t.Errorf("FlagInt(missing) = %d, %v", n, err)
	}
	if _, err := p.FlagInt("bad", 20); err == nil {
		t.Error("FlagInt(bad) should fail")
	}
	if _, err := p.FlagInt("neg", 20); err == nil {
		t.Error("FlagInt(neg) should fail")
	}
	if got := p.FlagOrDefault("missing", "d"); got != "d" {
		t.Errorf("FlagOrDefault = %q", got)
	}
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{" 42 ", 42, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIntWithValidation(tt.in, "lines")
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIntWithValidation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIntWithValidation(%q) = %d, want %d", tt.in, got, tt.want)
		}
		if err != nil && !strings.Contains(err.Error(), "lines") {
			t.Errorf("error should name the field: %v", err)
		}
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCmd  Command
		wantErr  bool
		validate func(*testing.T, Args)
	}{
		{name: "no args", argv: nil, wantCmd: CmdAuto},
		{name: "tui command", argv: []string{"tui"}, wantCmd: CmdTUI},
		{name: "repl flag", argv: []string{"--repl"}, wantCmd: CmdREPL},
		{name: "tui flag", argv: []string{"--tui"}, wantCmd: CmdTUI},
		{name: "version flag", argv: []string{"-v"}, wantCmd: CmdVersion},
		{name: "help flag wins", argv: []string{"--help", "accounts"}, wantCmd: CmdHelp},
		{name: "help command", argv: []string{"help"}, wantCmd: CmdHelp},
		{
			name:    "config path and accounts json",
			argv:    []string{"-c", "alt.toml", "accounts", "--json"},
			wantCmd: CmdAccounts,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "alt.toml" {
					t.Errorf("ConfigPath = %q", a.ConfigPath)
				}
				if !a.Sub.BoolFlag("json") {
					t.Error("--json should reach the subcommand")
				}
			},
		},
		{
			name:    "config equals and get",
			argv:    []string{"--config=alt.json", "--theme", "light", "config", "get", "ui.theme"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "alt.json" || a.Theme != "light" {
					t.Errorf("Args = %+v", a)
				}
				if a.Sub.Subcommand() != "get" || a.Sub.Positional(1) != "ui.theme" {
					t.Errorf("Sub = %v", a.Sub.Raw())
				}
			},
		},
		{
			name:    "audit lines",
			argv:    []string{"audit", "--lines", "5"},
			wantCmd: CmdAudit,
			validate: func(t *testing.T, a Args) {
				if n, _ := a.Sub.FlagInt("lines", 0); n != 5 {
					t.Errorf("lines = %d", n)
				}
			},
		},
		{name: "missing flag value", argv: []string{"--theme"}, wantCmd: CmdHelp, wantErr: true},
		{name: "unknown flag", argv: []string{"--bogus"}, wantCmd: CmdHelp, wantErr: true},
		{name: "unknown command", argv: []string{"deposit"}, wantCmd: CmdHelp, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := ParseArgs(tt.argv)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseArgs(%v) error = %v, wantErr %v", tt.argv, err, tt.wantErr)
			}
			if cmd != tt.wantCmd {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	if CmdAudit.String() != "audit" || CmdAuto.String() != "" {
		t.Errorf("unexpected names %q %q", CmdAudit.String(), CmdAuto.String())
	}
}

func TestPrintUsageAndVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	for _, want := range []string{"bankist", "accounts", "BANKIST_SESSION_TIMEOUT", "--config"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}

	buf.Reset()
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("version output %q missing %q", buf.String(), Version)
	}
}
