package domain

import "time"

// KPI describes a tracked indicator: who owns it, what question to ask, how
// often to ask it and from which date on. Definitions are read-only during a
// scheduling pass, collected values live in the answers store.
type KPI struct {
	Name      string // unique key, also the key in the answers store
	Question  string // something like "How many signups we got"
	Owner     string // chat username of the owner
	Frequency Frequency
	Since     time.Time // anchor date of the first collection period
	Enabled   bool
}

// FirstPeriod is the earliest period the KPI should be collected for, derived
// from the anchor date and the frequency
func (k KPI) FirstPeriod() (Period, error) {
	return PeriodFrom(k.Since, k.Frequency)
}

// PeriodFromDate maps a date to the KPI's period containing it
func (k KPI) PeriodFromDate(d time.Time) (Period, error) {
	return PeriodFrom(d, k.Frequency)
}
