package providers

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01",
	"01/02/2006",
}

// ParseDate parses a provider date string. Empty or unparseable values yield
// nil so missing optional dates stay absent.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// ParseTime is ParseDate for required timestamps; the zero time stands in for a missing value.
func ParseTime(s string) time.Time {
	if t := ParseDate(s); t != nil {
		return *t
	}
	return time.Time{}
}

// NonNegative clamps v to zero.
func NonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ClosedAfterOpened drops a close date that precedes the open date.
func ClosedAfterOpened(opened, closed *time.Time) *time.Time {
	if opened != nil && closed != nil && closed.Before(*opened) {
		return nil
	}
	return closed
}
