package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates in the answers store
const DateLayout = "2006-01-02"

// Date builds a calendar date at midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a stored yyyy-mm-dd date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// dateOf drops the time-of-day part, keeping the calendar date at midnight UTC
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// formatDay renders a date the way the bot displays it, e.g. "Mar, 4 2024"
func formatDay(d time.Time) string { return d.Format("Jan, 2 2006") }
