package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timePattern matches an hour, an optional ":MM" minute part and an optional
// meridiem marker, e.g. "3", "3 PM", "15:00", "9am".
var timePattern = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?`)

// NormalizeTime converts a free-text time expression into canonical 24-hour
// HH:MM. A PM marker adds 12 to hours below 12; a 12 AM becomes 00. Without a
// marker the hour is used as-is, so "3" stays "03:00" rather than guessing an
// afternoon slot. When no time pattern is found the input is returned
// unchanged, which makes any later catalog comparison fail to match — the
// caller's "invalid time" signal.
//
// NormalizeTime is pure and idempotent: normalizing a canonical string yields
// the same string.
func NormalizeTime(raw string) string {
	m := timePattern.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return raw
	}

	minute := m[2]
	if minute == "" {
		minute = "00"
	}

	meridiem := strings.ToLower(strings.ReplaceAll(m[3], ".", ""))
	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return fmt.Sprintf("%02d:%s", hour, minute)
}
