package datetime

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// LocalToday returns today's date in the process-local timezone as YYYY-MM-DD.
func LocalToday() string {
	return time.Now().Format(DateLayout)
}

// ParseUTC parses an upstream UTC timestamp. It tolerates a trailing "Z",
// a bare datetime, and a date-only value.
func ParseUTC(value string) (time.Time, error) {
	value = strings.TrimSuffix(value, "Z")
	if strings.Contains(value, "T") {
		return time.Parse("2006-01-02T15:04:05", value)
	}
	return time.Parse(DateLayout, value)
}

// LocalDate converts an upstream UTC timestamp to the local calendar date.
// Empty or unparseable values fall back to today, matching the tolerant
// behaviour expected of display paths.
func LocalDate(utcValue string) string {
	if utcValue == "" {
		return LocalToday()
	}
	parsed, err := ParseUTC(utcValue)
	if err != nil {
		return LocalToday()
	}
	return parsed.UTC().In(time.Local).Format(DateLayout)
}

// DateOnly trims a UTC timestamp down to its YYYY-MM-DD prefix without
// timezone conversion. Used for keys that must match the upstream's own
// date bucketing.
func DateOnly(utcValue string) string {
	if len(utcValue) < len(DateLayout) {
		return ""
	}
	return utcValue[:len(DateLayout)]
}
