// utils/dates.go
package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns local
// midnight of that calendar day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return BeginningOfDay(t.In(time.Local)), nil
}

// NormalizeClock validates an HH:MM clock time and returns it zero padded.
func NormalizeClock(value string) (string, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(value))
	if err != nil {
		t, err = time.Parse("15:04:05", strings.TrimSpace(value))
		if err != nil {
			return "", fmt.Errorf("invalid time %q", value)
		}
	}
	return t.Format(TimeLayout), nil
}
