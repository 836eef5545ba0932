// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/bankist-tui/internal/audit"
	"github.com/jeranaias/bankist-tui/internal/cli"
)

type closeCountingSink struct {
	closed   int
	closeErr error
}

func (s *closeCountingSink) Write(audit.Event) error { return nil }
func (s *closeCountingSink) Close() error            { s.closed++; return s.closeErr }

func TestRunAudit_ClosesLogger(t *testing.T) {
	sink := &closeCountingSink{}
	var buf bytes.Buffer

	assert.NoError(t, runAudit(&buf, audit.New(sink), cli.NewArgParser(nil)))
	assert.Equal(t, 1, sink.closed)
}

func TestRunAudit_ClosesLoggerOnError(t *testing.T) {
	sink := &closeCountingSink{}
	var buf bytes.Buffer

	err := runAudit(&buf, audit.New(sink), cli.NewArgParser([]string{"--lines", "many"}))
	assert.Error(t, err)
	assert.Equal(t, 1, sink.closed)
}

func TestRunAudit_ReportsCloseFailure(t *testing.T) {
	sink := &closeCountingSink{closeErr: errors.New("disk gone")}
	var buf bytes.Buffer

	err := runAudit(&buf, audit.New(sink), cli.NewArgParser(nil))
	assert.ErrorContains(t, err, "disk gone")
}

func TestPickFrontEnd(t *testing.T) {
	assert.Equal(t, cli.CmdTUI, pickFrontEnd("TUI"))
	assert.Equal(t, cli.CmdREPL, pickFrontEnd("repl"))
}
