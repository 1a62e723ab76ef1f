package scheduler

import (
	"sync"
	"time"
)

// PauseLedger remembers when an owner skipped a KPI so it is not asked again
// until the cool-down expires. In-memory only, a restart resets all pauses.
type PauseLedger struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewPauseLedger creates a ledger with the given cool-down, 24h if not set
func NewPauseLedger(ttl time.Duration) *PauseLedger {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &PauseLedger{ttl: ttl, entries: map[string]time.Time{}}
}

// Pause records or overwrites the moment a KPI was skipped
func (l *PauseLedger) Pause(name string, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[name] = at
}

// IsSuppressed reports whether the KPI is still inside its cool-down window.
// Expired entries are cleared as they are encountered.
func (l *PauseLedger) IsSuppressed(name string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	pausedAt, ok := l.entries[name]
	if !ok {
		return false
	}
	if !pausedAt.Add(l.ttl).After(now) {
		delete(l.entries, name) // cool-down over, kpi askable again
		return false
	}
	return true
}

// FilterDue drops questions whose KPI is currently suppressed
func (l *PauseLedger) FilterDue(due []Question, now time.Time) []Question {
	res := make([]Question, 0, len(due))
	for _, q := range due {
		if l.IsSuppressed(q.KPI.Name, now) {
			continue
		}
		res = append(res, q)
	}
	return res
}
