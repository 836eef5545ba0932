// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for bankist.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - SessionConfig: Inactivity timer length, warning window and tick rate
//   - LoanConfig: Delay before an approved loan is credited
//   - SecurityConfig: PIN hashing cost and login throttling
//   - AuditConfig: Audit backend selection
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (BANKIST_*), optionally from a .env file
//   - ~/.bankist/config.toml
//   - ~/.bankist/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dir, err := account.NewDirectory(cfg.Accounts, cfg.DirectoryOptions())
//	sess := session.New(dir, renderer, cfg.SessionConfig())
package config
