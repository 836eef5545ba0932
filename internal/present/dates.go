// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"fmt"
	"time"
)

// monthFirstRegions write numeric dates month/day/year.
var monthFirstRegions = map[string]bool{"US": true, "PH": true, "FM": true, "MH": true}

// yearFirstRegions write numeric dates year/month/day.
var yearFirstRegions = map[string]bool{
	"CN": true, "JP": true, "KR": true, "TW": true, "HU": true, "LT": true,
}

// DatePattern returns the time layout for a numeric date in locale.
func DatePattern(locale string) string {
	region, _ := ParseLocale(locale).Region()
	switch code := region.String(); {
	case monthFirstRegions[code]:
		return "1/2/2006"
	case yearFirstRegions[code]:
		return "2006/01/02"
	default:
		return "02/01/2006"
	}
}

// FormatDate renders t as a numeric date in locale.
func FormatDate(t time.Time, locale string) string {
	return t.Format(DatePattern(locale))
}

// FormatDateTime renders t as a numeric date followed by 24-hour time.
func FormatDateTime(t time.Time, locale string) string {
	return t.Format(DatePattern(locale)) + ", " + t.Format("15:04")
}

// DaysBetween counts calendar days from a to b in b's location.
// The result is never negative.
func DaysBetween(a, b time.Time) int {
	loc := b.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	days := int(db.Sub(da).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// DateLabel describes when a movement happened relative to now:
// "Today", "Yesterday", "N days ago" for up to a week, otherwise a
// numeric date in locale.
func DateLabel(at, now time.Time, locale string) string {
	switch days := DaysBetween(at, now); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return FormatDate(at.In(now.Location()), locale)
	}
}

// FormatRemaining renders a countdown as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
