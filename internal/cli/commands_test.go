// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/audit"
	"github.com/jeranaias/bankist-tui/internal/config"
)

func TestHandleAccounts(t *testing.T) {
	dir, err := account.NewDirectory(account.DefaultRoster(), account.Options{PINCost: bcrypt.MinCost})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HandleAccounts(&buf, dir, NewArgParser(nil)))
	out := buf.String()
	assert.Contains(t, out, "HANDLE")
	assert.Contains(t, out, "Jessica Davis")
	assert.Contains(t, out, "$11,720.00")
	assert.Contains(t, out, "2 accounts")
	assert.NotContains(t, out, "2222")

	buf.Reset()
	require.NoError(t, HandleAccounts(&buf, dir, NewArgParser([]string{"--json"}, "json")))
	var infos []AccountInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "js", infos[0].Handle)
	assert.Equal(t, "EUR", infos[0].Currency)
	assert.Equal(t, AccountInfo{
		Handle: "jd", Owner: "Jessica Davis", Currency: "USD", Locale: "en-US",
		Balance: "$11,720.00", Movements: 8,
	}, infos[1])
}

func TestHandleConfig(t *testing.T) {
	cfg := config.Default()
	run := func(args ...string) (string, error) {
		var buf bytes.Buffer
		err := HandleConfig(&buf, cfg, NewArgParser(args), "")
		return buf.String(), err
	}

	out, err := run()
	require.NoError(t, err)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "2222")

	out, err = run("get", "session.timeout_secs")
	require.NoError(t, err)
	assert.Equal(t, "600\n", out)

	_, err = run("get")
	assert.Error(t, err)
	_, err = run("get", "session.nope")
	assert.Error(t, err)

	out, err = run("keys")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "ui.theme")

	_, err = run("frobnicate")
	assert.Error(t, err)
}

func TestHandleConfig_InitWritesExplicitPath(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "light"

	for _, name := range []string{"bankist.toml", "bankist.json"} {
		path := filepath.Join(t.TempDir(), name)

		var buf bytes.Buffer
		require.NoError(t, HandleConfig(&buf, cfg, NewArgParser([]string{"init"}), path))
		assert.Contains(t, buf.String(), "Wrote "+path)

		loaded, err := config.LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, "light", loaded.UI.Theme)

		buf.Reset()
		require.NoError(t, HandleConfig(&buf, cfg, NewArgParser([]string{"path"}), path))
		assert.Equal(t, path+"\n", buf.String())
	}
}

type writeOnlySink struct{ n int }

func (s *writeOnlySink) Write(audit.Event) error { s.n++; return nil }
func (s *writeOnlySink) Close() error            { return nil }

func TestHandleAudit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	logger, err := audit.Open(audit.BackendFile, path)
	require.NoError(t, err)
	defer logger.Close()

	var buf bytes.Buffer
	require.NoError(t, HandleAudit(&buf, logger, NewArgParser(nil)))
	assert.Contains(t, buf.String(), "No audit events")

	require.NoError(t, logger.Log(audit.Event{EventType: audit.EventLogin, Handle: "jd", Success: true}))
	require.NoError(t, logger.Log(audit.Event{EventType: audit.EventTransfer, Handle: "jd", Amount: "100", Success: true}))
	require.NoError(t, logger.Log(audit.Event{EventType: audit.EventLogout, Handle: "jd", Success: true}))

	buf.Reset()
	require.NoError(t, HandleAudit(&buf, logger, NewArgParser([]string{"--lines", "2"})))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "transfer")
	assert.Contains(t, lines[1], "logout")

	buf.Reset()
	require.NoError(t, HandleAudit(&buf, logger, NewArgParser([]string{"--json"}, "json")))
	var events []audit.Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &events))
	require.Len(t, events, 3)
	assert.Equal(t, audit.EventLogin, events[0].EventType)

	assert.Error(t, HandleAudit(&buf, logger, NewArgParser([]string{"--lines", "many"})))
}

func TestHandleAudit_WriteOnlyBackend(t *testing.T) {
	logger := audit.New(&writeOnlySink{})

	var buf bytes.Buffer
	require.NoError(t, HandleAudit(&buf, logger, NewArgParser([]string{"--json"}, "json")))
	assert.Equal(t, "[]\n", buf.String())
}

func TestHistoryFileIsPrivate(t *testing.T) {
	dir := t.TempDir()
	h := OpenHistory(dir)
	h.AppendHistory("show")
	require.NoError(t, h.Close())

	info, err := os.Stat(filepath.Join(dir, "repl_history"))
	require.NoError(t, err)
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("history mode %v should be owner-only", info.Mode().Perm())
	}
}
