package scheduler

import (
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/kippino/pkg/domain"
)

// Question is a single KPI the bot has to ask about, paired with the period
// the answer will be recorded for
type Question struct {
	KPI    domain.KPI
	Period domain.Period
}

// DuePeriod decides whether a KPI needs a value for a new period. With no
// prior answer the candidate is the KPI's first period, otherwise the period
// right after the last answered one. The candidate is due only once it has
// fully ended, and at most one period is surfaced per call even if several
// have been missed - the next pass picks up the following one after the owner
// answers.
func DuePeriod(kpi domain.KPI, lastAnswered *time.Time, now time.Time) (domain.Period, bool) {
	if !kpi.Enabled {
		return nil, false
	}

	var candidate domain.Period
	if lastAnswered == nil {
		first, err := kpi.FirstPeriod()
		if err != nil {
			lgr.Printf("[WARN] can't compute first period for kpi %q: %v", kpi.Name, err)
			return nil, false
		}
		candidate = first
	} else {
		last, err := kpi.PeriodFromDate(*lastAnswered)
		if err != nil {
			lgr.Printf("[WARN] can't compute period for kpi %q: %v", kpi.Name, err)
			return nil, false
		}
		candidate = last.Next()
	}

	if !candidate.End().Before(now) {
		return nil, false // period not over yet
	}
	return candidate, true
}

// DueQuestions computes the due period for every KPI, preserving definition
// order. Disabled and not-yet-due KPIs are omitted.
func DueQuestions(kpis []domain.KPI, lastAnswered map[string]time.Time, now time.Time) []Question {
	res := make([]Question, 0, len(kpis))
	for _, kpi := range kpis {
		var last *time.Time
		if d, ok := lastAnswered[kpi.Name]; ok {
			last = &d
		}
		if period, due := DuePeriod(kpi, last, now); due {
			res = append(res, Question{KPI: kpi, Period: period})
		}
	}
	return res
}
