package domain

import (
	"fmt"
	"time"
)

// Week is a calendar week anchored to its Monday. The zero value is not
// usable, construct via NewWeek or WeekOf.
type Week struct {
	monday time.Time
}

// NewWeek creates a week from its Monday, fails if the date is any other day
func NewWeek(monday time.Time) (Week, error) {
	if monday.Weekday() != time.Monday {
		return Week{}, fmt.Errorf("week can be created only from dates that are Mondays, got %s", monday.Weekday())
	}
	return Week{monday: dateOf(monday)}, nil
}

// WeekOf snaps any date to its containing Monday-anchored week
func WeekOf(d time.Time) Week {
	shift := (int(d.Weekday()) + 6) % 7 // days since the week's Monday
	return Week{monday: dateOf(d).AddDate(0, 0, -shift)}
}

// Monday returns the first day of the week
func (w Week) Monday() time.Time { return w.monday }

// Sunday returns the last day of the week
func (w Week) Sunday() time.Time { return w.monday.AddDate(0, 0, 6) }

// PlusWeeks returns the week n weeks later, still Monday-anchored
func (w Week) PlusWeeks(n int) Week {
	return Week{monday: w.monday.AddDate(0, 0, 7*n)}
}

// DisplayText is the human-readable form used in chat messages
func (w Week) DisplayText() string {
	return fmt.Sprintf("week from %s to %s", formatDay(w.monday), formatDay(w.Sunday()))
}

func (w Week) String() string {
	return fmt.Sprintf("week from %s to %s", w.monday.Format(DateLayout), w.Sunday().Format(DateLayout))
}
