package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/kippino/pkg/domain"
)

// ThreadResult accumulates what a finished question thread produced
type ThreadResult struct {
	Paused  map[string]time.Time // kpi name -> when the owner skipped it
	Updates []domain.Update      // collected values, in question order
}

// Thread walks one user through their due questions, strictly one at a time.
// Prompt returns the current question and Reply classifies the user's
// response, advancing to the next question or staying on the current one for
// a retry. The transport is not Thread's business, the caller shuttles text
// in and out.
type Thread struct {
	user      domain.User
	questions []Question
	idx       int
	result    ThreadResult
	now       func() time.Time
}

// NewThread creates a thread for the user over the given questions
func NewThread(user domain.User, questions []Question) *Thread {
	return &Thread{
		user:      user,
		questions: questions,
		result:    ThreadResult{Paused: map[string]time.Time{}},
		now:       time.Now,
	}
}

// Prompt returns the text of the current question, or false once all
// questions are dealt with. Entries with a missing period should never occur,
// they are logged and skipped without asking.
func (t *Thread) Prompt() (string, bool) {
	for t.idx < len(t.questions) {
		q := t.questions[t.idx]
		if q.Period == nil {
			lgr.Printf("[WARN] skipping question for kpi %q since period is missing", q.KPI.Name)
			t.idx++
			continue
		}
		return fmt.Sprintf(":question: *%s* on *%s*?", q.KPI.Question, q.Period.DisplayText()), true
	}
	return "", false
}

// Reply classifies the user's response to the current question and returns
// the messages to send back. "help" re-displays instructions and keeps the
// question, "skip" pauses the KPI and advances, anything else is parsed as a
// number - on failure the question stays for a retry, on success the value is
// recorded and the thread advances.
func (t *Thread) Reply(text string) []string {
	if t.idx >= len(t.questions) || t.questions[t.idx].Period == nil {
		return nil // Reply is only valid after Prompt returned a question
	}
	q := t.questions[t.idx]

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "help", "help me":
		return []string{
			"When providing the value for a KPI, don't include any currency or metric symbol or digit separator.",
			"Valid values are like: *124*, *1234.21*, *-5*.",
			"If you don't have the answer yet, you can also skip the KPI for 24 hours by replying `skip`.",
		}
	case "skip", "later":
		lgr.Printf("[INFO] user %s skipped %s", t.user.Name, q.KPI.Name)
		t.result.Paused[q.KPI.Name] = t.now()
		t.idx++
		return []string{fmt.Sprintf(":zzz: ok, I'll skip *%s* for this round of questions...", q.KPI.Name)}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return []string{fmt.Sprintf(":exclamation: this is not a number! please give me a number for *%s*! If you need help, just say `help`", q.KPI.Name)}
	}

	t.result.Updates = append(t.result.Updates, domain.Update{
		KPI:       q.KPI,
		Period:    q.Period,
		Value:     value,
		User:      t.user,
		Timestamp: t.now(),
	})
	t.idx++
	return []string{fmt.Sprintf(":white_check_mark: I got \"*%s*\" for *%s* on *%s*.", text, q.KPI.Name, q.Period.DisplayText())}
}

// Done reports whether all questions have been dealt with
func (t *Thread) Done() bool {
	return t.idx >= len(t.questions)
}

// Result returns the accumulated outcome, meaningful once Done
func (t *Thread) Result() ThreadResult {
	return t.result
}
