// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing, the line-mode REPL and the
// non-interactive subcommands for bankist.
//
// # Key Types
//
//   - Command: the subcommand to run (CmdAuto picks TUI or REPL)
//   - Args: global flags plus an ArgParser over the command's arguments
//   - Printer: a session.Renderer that prints plain lines
//   - REPL: reads typed commands and drives a session.Session
//
// # Usage
//
//	cmd, args, err := cli.Parse()
//	...
//	out := cli.NewPrinter(os.Stdout, nil)
//	sess := session.New(dir, out, cfg.SessionConfig())
//	hist := cli.OpenHistory(configDir)
//	defer hist.Close()
//	err = cli.NewREPL(sess, out, hist, cfg.TickInterval()).Run(ctx)
//
// Output styles respect NO_COLOR and FORCE_COLOR.
package cli
