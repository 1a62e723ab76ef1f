package domain

import (
	"fmt"
	"strings"
)

// Frequency defines how often a KPI value is collected
type Frequency int

// supported collection frequencies, closed set
const (
	FrequencyDaily Frequency = iota
	FrequencyWeekly
	FrequencyMonthly
)

// ParseFrequency converts a storage label to a Frequency. Labels are matched
// case-insensitively, anything outside daily/weekly/monthly is an error.
func ParseFrequency(label string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	case "monthly":
		return FrequencyMonthly, nil
	}
	return 0, fmt.Errorf("unknown KPI frequency label %q", label)
}

// Label returns the storage label for the frequency, round-trips with ParseFrequency
func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	}
	return "unknown"
}

func (f Frequency) String() string { return f.Label() }
