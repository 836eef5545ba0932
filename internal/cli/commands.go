// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Handlers for the non-interactive subcommands.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/audit"
	"github.com/jeranaias/bankist-tui/internal/config"
	"github.com/jeranaias/bankist-tui/internal/present"
	"github.com/jeranaias/bankist-tui/internal/util"
)

// DefaultAuditLines is how many events `bankist audit` shows by default.
const DefaultAuditLines = 20

// =============================================================================
// ACCOUNTS
// =============================================================================

// AccountInfo is one roster line of `bankist accounts --json`.
type AccountInfo struct {
	Handle    string `json:"handle"`
	Owner     string `json:"owner"`
	Currency  string `json:"currency"`
	Locale    string `json:"locale"`
	Balance   string `json:"balance"`
	Movements int    `json:"movements"`
}

// HandleAccounts lists every account in dir. PINs are never shown.
func HandleAccounts(w io.Writer, dir *account.Directory, args *ArgParser) error {
	accts := dir.All()
	infos := make([]AccountInfo, len(accts))
	for i, a := range accts {
		infos[i] = AccountInfo{
			Handle:    a.Handle,
			Owner:     a.Owner,
			Currency:  a.Currency,
			Locale:    a.Locale,
			Balance:   present.FormatCurrency(a.Ledger.Balance(), a.Locale, a.Currency),
			Movements: a.Ledger.Len(),
		}
	}

	if args != nil && args.BoolFlag("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	widths := []int{8, 28, 4, -16, -9}
	fmt.Fprintln(w, TitleStyle.Render(util.Columns(" ", widths, "HANDLE", "OWNER", "CCY", "BALANCE", "MOVEMENTS")))
	for _, in := range infos {
		fmt.Fprintln(w, util.Columns(" ", widths,
			in.Handle, in.Owner, in.Currency, in.Balance, strconv.Itoa(in.Movements)))
	}
	fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d accounts", len(infos))))
	return nil
}

// =============================================================================
// CONFIG
// =============================================================================

// HandleConfig runs `bankist config <sub>`. path is the --config value,
// which may be empty.
func HandleConfig(w io.Writer, cfg *config.Config, args *ArgParser, path string) error {
	sub := ""
	if args != nil {
		sub = args.Subcommand()
	}

	switch sub {
	case "", "show":
		fmt.Fprintln(w, cfg.String())
		return nil

	case "get":
		key := args.Positional(1)
		if key == "" {
			return fmt.Errorf("usage: bankist config get <key>")
		}
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
		return nil

	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(w, k)
		}
		return nil

	case "path":
		p, err := configPath(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, p)
		return nil

	case "init", "save":
		p, err := configPath(path)
		if err != nil {
			return err
		}
		if strings.EqualFold(filepath.Ext(p), ".json") {
			err = config.SaveJSON(cfg, p)
		} else {
			err = config.SaveTOML(cfg, p)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, SuccessStyle.Render("Wrote "+p))
		return nil

	default:
		return fmt.Errorf("unknown config command %q (try show, get, keys, path, init)", sub)
	}
}

func configPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return config.ConfigPathTOML()
}

// =============================================================================
// AUDIT
// =============================================================================

// HandleAudit prints the most recent audit events, oldest first.
func HandleAudit(w io.Writer, logger *audit.Logger, args *ArgParser) error {
	n := DefaultAuditLines
	asJSON := false
	if args != nil {
		var err error
		if n, err = args.FlagInt("lines", DefaultAuditLines); err != nil {
			return err
		}
		asJSON = args.BoolFlag("json")
	}

	events, err := logger.Recent(n)
	if errors.Is(err, fs.ErrNotExist) {
		events, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if events == nil {
			events = []audit.Event{}
		}
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No audit events"))
		return nil
	}
	for i := range events {
		line := events[i].ToLogLine()
		if !events[i].Success {
			line = WarningStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
