// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeranaias/bankist-tui/internal/account"
	"github.com/jeranaias/bankist-tui/internal/audit"
	"github.com/jeranaias/bankist-tui/internal/session"
	"github.com/jeranaias/bankist-tui/internal/util"
)

// CurrentVersion is written into freshly generated config files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete bankist configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Session  SessionConfig  `toml:"session" json:"session"`
	Loan     LoanConfig     `toml:"loan" json:"loan"`
	Security SecurityConfig `toml:"security" json:"security"`
	Audit    AuditConfig    `toml:"audit" json:"audit"`
	UI       UIConfig       `toml:"ui" json:"ui"`

	// Accounts replaces the built-in roster when non-empty.
	Accounts []account.Spec `toml:"accounts" json:"accounts"`
}

// SessionConfig contains the inactivity timer settings.
type SessionConfig struct {
	// TimeoutSecs is the countdown length after login or activity
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// WarningSecs is how many seconds before expiry the warning shows
	WarningSecs int `toml:"warning_secs" json:"warning_secs"`
	// TickMillis is the host's tick interval
	TickMillis int `toml:"tick_millis" json:"tick_millis"`
}

// LoanConfig contains loan settings.
type LoanConfig struct {
	// DelayMillis is how long an approved loan waits before it is credited
	DelayMillis int `toml:"delay_millis" json:"delay_millis"`
}

// SecurityConfig contains PIN and login throttling settings.
type SecurityConfig struct {
	// PINCost is the bcrypt cost used to hash roster PINs at startup
	PINCost int `toml:"pin_cost" json:"pin_cost"`
	// LoginRate is the sustained login attempts per second per handle (0 disables throttling)
	LoginRate float64 `toml:"login_rate" json:"login_rate"`
	// LoginBurst is the number of back-to-back attempts allowed
	LoginBurst int `toml:"login_burst" json:"login_burst"`
}

// AuditConfig selects where audit events go.
type AuditConfig struct {
	// Backend is "file", "sqlite" or "none"
	Backend string `toml:"backend" json:"backend"`
	// Path overrides the backend's default location
	Path string `toml:"path" json:"path,omitempty"`
	// MaxFileSizeMB is the rotation threshold for the file backend
	MaxFileSizeMB int `toml:"max_file_size_mb" json:"max_file_size_mb"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Mode picks the front end: "auto", "tui", "repl"
	Mode string `toml:"mode" json:"mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Session: SessionConfig{
			TimeoutSecs: 600,
			WarningSecs: 60,
			TickMillis:  1000,
		},
		Loan: LoanConfig{
			DelayMillis: 3000,
		},
		Security: SecurityConfig{
			PINCost:    bcrypt.DefaultCost,
			LoginRate:  1,
			LoginBurst: 5,
		},
		Audit: AuditConfig{
			Backend:       audit.BackendFile,
			MaxFileSizeMB: 10,
		},
		UI: UIConfig{
			Theme: "dark",
			Mode:  "auto",
		},
		Accounts: account.DefaultRoster(),
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the bankist configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".bankist"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ensureSecurePermissions tightens a config file to 0600. Roster PINs live here.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load builds the effective configuration.
//
// An optional .env in the working directory is read first so BANKIST_*
// variables can live there. Then ~/.bankist/config.toml is tried, then
// config.json, then the defaults alone. Environment overrides, defaults
// and validation are applied in every case.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARNING: could not read .env: %v", err)
	}

	cfg := Default()
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg = Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg = Default()
	out, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	return out, loadErr
}

// LoadFromPath loads a specific file. ".json" selects JSON, anything else TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		log.Printf("WARNING: could not ensure secure permissions on %s: %v", path, err)
	}

	// A file that names accounts replaces the roster rather than merging into it.
	cfg.Accounts = nil
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		log.Printf("WARNING: could not ensure secure permissions on %s: %v", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	cfg.Accounts = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to ~/.bankist/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# bankist configuration file\n")
	buf.WriteString("# Account PINs are stored here in clear; keep this file private.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every section and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Session
	if c.Session.TimeoutSecs <= 0 {
		add("session.timeout_secs", "must be positive, got %d", c.Session.TimeoutSecs)
	}
	if c.Session.WarningSecs < 0 || (c.Session.TimeoutSecs > 0 && c.Session.WarningSecs >= c.Session.TimeoutSecs) {
		add("session.warning_secs", "must be between 0 and timeout_secs, got %d", c.Session.WarningSecs)
	}
	if c.Session.TickMillis <= 0 {
		add("session.tick_millis", "must be positive, got %d", c.Session.TickMillis)
	}

	// Loan
	if c.Loan.DelayMillis < 0 {
		add("loan.delay_millis", "cannot be negative, got %d", c.Loan.DelayMillis)
	}

	// Security
	if c.Security.PINCost != 0 && (c.Security.PINCost < bcrypt.MinCost || c.Security.PINCost > bcrypt.MaxCost) {
		add("security.pin_cost", "must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Security.PINCost)
	}
	if c.Security.LoginRate < 0 {
		add("security.login_rate", "cannot be negative, got %g", c.Security.LoginRate)
	}
	if c.Security.LoginRate > 0 && c.Security.LoginBurst < 1 {
		add("security.login_burst", "must be at least 1 when login_rate is set, got %d", c.Security.LoginBurst)
	}

	// Audit
	switch strings.ToLower(c.Audit.Backend) {
	case audit.BackendFile, audit.BackendSQLite, audit.BackendNone:
	default:
		add("audit.backend", "invalid backend '%s', must be one of: file, sqlite, none", c.Audit.Backend)
	}
	if c.Audit.MaxFileSizeMB < 0 {
		add("audit.max_file_size_mb", "cannot be negative, got %d", c.Audit.MaxFileSizeMB)
	}

	// UI
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		add("ui.theme", "invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme)
	}
	validModes := map[string]bool{"auto": true, "tui": true, "repl": true}
	if !validModes[strings.ToLower(c.UI.Mode)] {
		add("ui.mode", "invalid mode '%s', must be one of: auto, tui, repl", c.UI.Mode)
	}

	// Accounts
	if len(c.Accounts) == 0 {
		add("accounts", "at least one account is required")
	}
	seen := make(map[string]int)
	for i, spec := range c.Accounts {
		field := fmt.Sprintf("accounts[%d]", i)
		handle := account.DeriveHandle(spec.Owner)
		if handle == "" {
			add(field+".owner", "cannot be empty")
			continue
		}
		if prev, dup := seen[handle]; dup {
			add(field+".owner", "handle '%s' already used by accounts[%d]", handle, prev)
		} else {
			seen[handle] = i
		}
		if spec.PIN < 0 {
			add(field+".pin", "cannot be negative")
		}
		if spec.InterestRate < 0 {
			add(field+".interest_rate", "cannot be negative, got %g", spec.InterestRate)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-valued fields that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Session.TimeoutSecs == 0 {
		c.Session.TimeoutSecs = defaults.Session.TimeoutSecs
	}
	if c.Session.TickMillis == 0 {
		c.Session.TickMillis = defaults.Session.TickMillis
	}
	if c.Security.PINCost == 0 {
		c.Security.PINCost = defaults.Security.PINCost
	}
	if c.Security.LoginRate > 0 && c.Security.LoginBurst == 0 {
		c.Security.LoginBurst = defaults.Security.LoginBurst
	}
	if c.Audit.Backend == "" {
		c.Audit.Backend = defaults.Audit.Backend
	}
	c.Audit.Backend = strings.ToLower(c.Audit.Backend)
	if c.Audit.MaxFileSizeMB == 0 {
		c.Audit.MaxFileSizeMB = defaults.Audit.MaxFileSizeMB
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.Mode == "" {
		c.UI.Mode = defaults.UI.Mode
	}
	if len(c.Accounts) == 0 {
		c.Accounts = defaults.Accounts
	}
	for i := range c.Accounts {
		if c.Accounts[i].Currency == "" {
			c.Accounts[i].Currency = "USD"
		}
		if c.Accounts[i].Locale == "" {
			c.Accounts[i].Locale = "en-US"
		}
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - BANKIST_SESSION_TIMEOUT: seconds, or a duration such as "5m"
//   - BANKIST_LOAN_DELAY: milliseconds, or a duration such as "3s"
//   - BANKIST_AUDIT_BACKEND: file, sqlite or none
//   - BANKIST_AUDIT_PATH: audit file or database location
//   - BANKIST_THEME: dark, light or auto
//
// Unparseable values are reported and ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BANKIST_SESSION_TIMEOUT"); v != "" {
		if d, err := parseDurationEnv(v, time.Second); err == nil {
			c.Session.TimeoutSecs = int(d / time.Second)
		} else {
			log.Printf("WARNING: ignoring BANKIST_SESSION_TIMEOUT=%q: %v", v, err)
		}
	}

	if v := os.Getenv("BANKIST_LOAN_DELAY"); v != "" {
		if d, err := parseDurationEnv(v, time.Millisecond); err == nil {
			c.Loan.DelayMillis = int(d / time.Millisecond)
		} else {
			log.Printf("WARNING: ignoring BANKIST_LOAN_DELAY=%q: %v", v, err)
		}
	}

	if v := os.Getenv("BANKIST_AUDIT_BACKEND"); v != "" {
		c.Audit.Backend = strings.ToLower(v)
	}

	if v := os.Getenv("BANKIST_AUDIT_PATH"); v != "" {
		c.Audit.Path = v
	}

	if v := os.Getenv("BANKIST_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
}

// parseDurationEnv accepts either a Go duration or a bare integer in unit.
func parseDurationEnv(v string, unit time.Duration) (time.Duration, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return time.Duration(n) * unit, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// SessionConfig converts the timer, loan and throttle settings for session.New.
func (c *Config) SessionConfig() session.Config {
	return session.Config{
		Timeout:       time.Duration(c.Session.TimeoutSecs) * time.Second,
		WarningBefore: time.Duration(c.Session.WarningSecs) * time.Second,
		LoanDelay:     time.Duration(c.Loan.DelayMillis) * time.Millisecond,
		LoginRate:     c.Security.LoginRate,
		LoginBurst:    c.Security.LoginBurst,
	}
}

// DirectoryOptions converts the security settings for account.NewDirectory.
func (c *Config) DirectoryOptions() account.Options {
	return account.Options{PINCost: c.Security.PINCost}
}

// TickInterval is the host's tick period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Session.TickMillis) * time.Millisecond
}

// =============================================================================
// GET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its TOML key path, e.g. "session.timeout_secs".
func (c *Config) Get(key string) (interface{}, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return nil, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if strings.EqualFold(tag, name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns every scalar key Get understands, in declaration order.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			tag := strings.Split(f.Tag.Get("toml"), ",")[0]
			if tag == "" || tag == "accounts" {
				continue
			}
			if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Time{}) {
				walk(f.Type, prefix+tag+".")
				continue
			}
			keys = append(keys, prefix+tag)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Accounts != nil {
		clone.Accounts = make([]account.Spec, len(c.Accounts))
		for i, spec := range c.Accounts {
			clone.Accounts[i] = spec
			clone.Accounts[i].Movements = append([]account.Movement(nil), spec.Movements...)
		}
	}
	return &clone
}

// String renders the config as JSON with every PIN redacted.
func (c *Config) String() string {
	safe := c.Clone()
	for i := range safe.Accounts {
		safe.Accounts[i].PIN = 0
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return strings.ReplaceAll(string(data), `"pin": 0`, `"pin": "[REDACTED]"`)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first access.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Printf("WARNING: %v (using defaults)", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
