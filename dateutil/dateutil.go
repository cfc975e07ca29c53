// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dateutil formats and parses ban timestamps using spreadsheet-style
// placeholders (YYYY-MM-DD hh:mm:ss) instead of Go reference layouts.
// The placeholder table is reused from https://github.com/metakeule/fmtdate by Marc René Arns.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

/*
	Formats:

	M    - month (1)
	MM   - month (01)
	MMM  - month (Jan)
	MMMM - month (January)
	D    - day (2)
	DD   - day (02)
	DDD  - day (Mon)
	DDDD - day (Monday)
	YY   - year (06)
	YYYY - year (2006)
	hh   - hours (15)
	mm   - minutes (04)
	ss   - seconds (05)

	AM/PM hours: 'h' followed by optional 'mm' and 'ss' followed by 'pm', e.g.

	hpm        - hours (03PM)
	h:mm:sspm  - hours:minutes:seconds (03:04:05PM)

	Time zones: a time format followed by 'ZZZZ', 'ZZZ' or 'ZZ', e.g.

	hh:mm:ss ZZZZ (16:05:06 +0100)
	hh:mm:ss ZZ   (16:05:06 +01:00)
*/

type placeholder struct{ find, subst string }

// Order matters: longer tokens must be replaced before their prefixes.
var placeholders = []placeholder{
	{"hh", "15"},
	{"h", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"pm", "PM"},
	{"ZZZZ", "-0700"},
	{"ZZZ", "MST"},
	{"ZZ", "Z07:00"},
	{"YYYY", "2006"},
	{"YY", "06"},
	{"DDDD", "Monday"},
	{"DDD", "Mon"},
	{"DD", "02"},
	{"D", "2"},
}

var (
	DefaultDateTimeFormat = "DDDD, DD MMM YYYY h:mm:ss pm"
	// InputFormats are tried in order by ParseBanTime after epoch seconds and RFC 3339.
	InputFormats = []string{
		"YYYY-MM-DD hh:mm:ss",
		"YYYY-MM-DDThh:mm:ss",
		"YYYY-MM-DD",
	}
)

// Translate converts a placeholder format to Go's reference layout.
func Translate(format string) string {
	out := format
	for _, ph := range placeholders {
		out = strings.ReplaceAll(out, ph.find, ph.subst)
	}
	return out
}

// Format formats a date; an empty format means DefaultDateTimeFormat.
func Format(format string, date time.Time) string {
	if format == "" {
		format = DefaultDateTimeFormat
	}
	return date.Format(Translate(format))
}

// Parse parses a value with a placeholder format; an empty format means DefaultDateTimeFormat.
func Parse(format string, value string) (time.Time, error) {
	if format == "" {
		format = DefaultDateTimeFormat
	}
	return time.Parse(Translate(format), value)
}

// FormatDateTime formats the given date to the DefaultDateTimeFormat.
func FormatDateTime(date time.Time) string {
	return Format(DefaultDateTimeFormat, date)
}

// ParseBanTime reads a ban timestamp: unix epoch seconds, RFC 3339, or one of
// InputFormats (interpreted as UTC).
func ParseBanTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, format := range InputFormats {
		if t, err := Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
