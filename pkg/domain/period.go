package domain

import (
	"fmt"
	"time"
)

// Period is a concrete span of time a KPI value refers to: a single day, a
// Monday-anchored week or a calendar month. Periods are immutable values and
// the set of variants is sealed, exhaustive switches over the three concrete
// types stay exhaustive.
type Period interface {
	fmt.Stringer

	// Start is the first day covered, at midnight UTC
	Start() time.Time
	// End is the first instant after the period, i.e. the start of the next
	// one. Used for "is the period over" comparisons.
	End() time.Time
	// Next is the immediately following period of the same kind, no gap and
	// no overlap
	Next() Period
	// DisplayText is a human-readable description for chat messages
	DisplayText() string

	sealed()
}

// PeriodFrom maps a date and a collection frequency to the period containing
// that date: the day itself, its Monday-anchored week or its calendar month.
func PeriodFrom(d time.Time, freq Frequency) (Period, error) {
	switch freq {
	case FrequencyDaily:
		return DayPeriod{day: dateOf(d)}, nil
	case FrequencyWeekly:
		return WeekPeriod{week: WeekOf(d)}, nil
	case FrequencyMonthly:
		return MonthPeriod{year: d.Year(), month: d.Month()}, nil
	}
	return nil, fmt.Errorf("don't know how to construct a period for frequency %v", freq)
}

// DayPeriod covers a single calendar day
type DayPeriod struct {
	day time.Time
}

func (p DayPeriod) Start() time.Time    { return p.day }
func (p DayPeriod) End() time.Time      { return p.day.AddDate(0, 0, 1) }
func (p DayPeriod) Next() Period        { return DayPeriod{day: p.day.AddDate(0, 0, 1)} }
func (p DayPeriod) DisplayText() string { return formatDay(p.day) }
func (p DayPeriod) String() string      { return p.day.Format(DateLayout) }
func (DayPeriod) sealed()               {}

// WeekPeriod covers a Monday-anchored calendar week
type WeekPeriod struct {
	week Week
}

func (p WeekPeriod) Start() time.Time    { return p.week.Monday() }
func (p WeekPeriod) End() time.Time      { return p.week.PlusWeeks(1).Monday() }
func (p WeekPeriod) Next() Period        { return WeekPeriod{week: p.week.PlusWeeks(1)} }
func (p WeekPeriod) DisplayText() string { return "the " + p.week.DisplayText() }
func (p WeekPeriod) String() string      { return p.week.String() }
func (WeekPeriod) sealed()               {}

// MonthPeriod covers a calendar month
type MonthPeriod struct {
	year  int
	month time.Month
}

func (p MonthPeriod) Start() time.Time { return Date(p.year, p.month, 1) }
func (p MonthPeriod) End() time.Time   { return p.Start().AddDate(0, 1, 0) }

func (p MonthPeriod) Next() Period {
	next := p.Start().AddDate(0, 1, 0) // handles the December rollover
	return MonthPeriod{year: next.Year(), month: next.Month()}
}

func (p MonthPeriod) DisplayText() string {
	return fmt.Sprintf("the month of %s %d", p.month, p.year)
}

func (p MonthPeriod) String() string { return fmt.Sprintf("%04d-%02d", p.year, int(p.month)) }
func (MonthPeriod) sealed()          {}
