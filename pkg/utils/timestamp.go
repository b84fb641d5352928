package utils

import (
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 shapes browsers and Python clients send,
// with or without a zone offset and with optional fractional seconds.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", value)
}

// DayAndClock splits a stored timestamp into its calendar day (YYYY-MM-DD) and wall clock
// time (HH:MM:SS) as written, without zone conversion.
func DayAndClock(value string) (string, string) {
	t, err := ParseTimestamp(value)
	if err != nil {
		if len(value) >= 10 {
			return value[:10], ""
		}
		return value, ""
	}
	return t.Format("2006-01-02"), t.Format("15:04:05")
}
