// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"regexp"
	"strings"
)

// Redactor replaces sensitive data in a string.
type Redactor interface {
	Redact(input string) string
	Name() string
}

// PatternRedactor redacts text matching a regex pattern.
type PatternRedactor struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

// NewPatternRedactor creates a new pattern-based redactor.
func NewPatternRedactor(name string, pattern *regexp.Regexp, replace string) *PatternRedactor {
	return &PatternRedactor{name: name, pattern: pattern, replace: replace}
}

// Redact replaces matches with the replacement string.
func (r *PatternRedactor) Redact(input string) string {
	return r.pattern.ReplaceAllString(input, r.replace)
}

// Name returns the redactor name.
func (r *PatternRedactor) Name() string {
	return r.name
}

var secretPatterns = []struct {
	name    string
	pattern *regexp.Regexp
	replace string
}{
	{"PIN", regexp.MustCompile(`(?i)\bpin\s*[=:]?\s*\d+`), "pin=[REDACTED]"},
	{"Bcrypt", regexp.MustCompile(`\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}`), "[HASH_REDACTED]"},
}

func defaultRedactors() []Redactor {
	out := make([]Redactor, 0, len(secretPatterns))
	for _, sp := range secretPatterns {
		out = append(out, NewPatternRedactor(sp.name, sp.pattern, sp.replace))
	}
	return out
}

// sensitiveKey reports whether a metadata key holds a secret outright.
func sensitiveKey(key string) bool {
	k := strings.ToLower(key)
	return k == "pin" || strings.HasSuffix(k, "_pin") || strings.Contains(k, "hash")
}
