// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package present turns ledger data into display strings.
package present

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// suffixLanguages put the currency sign after the number.
var suffixLanguages = map[string]bool{
	"pt": true, "de": true, "fr": true, "es": true, "it": true,
	"nl": true, "pl": true, "cs": true, "sv": true, "fi": true,
	"da": true, "nb": true, "ru": true, "uk": true, "hu": true,
}

// ParseLocale reads a BCP 47 tag, falling back to American English.
func ParseLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		return language.AmericanEnglish
	}
	return tag
}

// FormatNumber renders d with locale grouping and exactly scale decimals.
func FormatNumber(d decimal.Decimal, locale string, scale int) string {
	p := message.NewPrinter(ParseLocale(locale))
	f, _ := d.Round(int32(scale)).Float64()
	return p.Sprint(number.Decimal(f, number.Scale(scale)))
}

// Symbol returns the narrow CLDR sign for unit in locale, such as "€" or
// "R$". Units without one render as their ISO code.
func Symbol(unit currency.Unit, locale string) string {
	return message.NewPrinter(ParseLocale(locale)).Sprint(currency.NarrowSymbol(unit))
}

// FormatCurrency renders d as money in the given locale and ISO currency,
// e.g. "$1,300.00" for en-US/USD or "1300,00 €" for pt-PT/EUR.
func FormatCurrency(d decimal.Decimal, locale, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	scale, sym := 2, code
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		sym = Symbol(unit, locale)
	}

	num := FormatNumber(d.Abs(), locale, scale)
	sign := ""
	if d.Round(int32(scale)).IsNegative() {
		sign = "-"
	}

	base, _ := ParseLocale(locale).Base()
	if suffixLanguages[base.String()] {
		return sign + num + " " + sym
	}
	if len([]rune(sym)) > 1 && sym == code {
		return sign + sym + " " + num
	}
	return sign + sym + num
}
