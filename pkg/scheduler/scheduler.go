package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/kippino/pkg/domain"
)

//go:generate moq -out kpi_store_mock_test.go -skip-ensure -fmt goimports . KPIStore
//go:generate moq -out answer_store_mock_test.go -skip-ensure -fmt goimports . AnswerStore
//go:generate moq -out chat_mock_test.go -skip-ensure -fmt goimports . Chat
//go:generate moq -out conversation_mock_test.go -skip-ensure -fmt goimports . Conversation

// KPIStore provides KPI definitions
type KPIStore interface {
	ListKPIs(ctx context.Context) ([]domain.KPI, error)
}

// AnswerStore provides recorded answers and accepts new ones
type AnswerStore interface {
	LastAnswered(ctx context.Context) (map[string]time.Time, error)
	Append(ctx context.Context, update domain.Update) error
}

// Chat is the conversational transport questions go over
type Chat interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	StartConversation(ctx context.Context, userID string) (Conversation, error)
}

// Conversation is a single private exchange with one user
type Conversation interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Say(text string) error
	Close() error
}

// Params holds scheduler dependencies and tunables
type Params struct {
	KPIStore    KPIStore
	AnswerStore AnswerStore
	Chat        Chat
	Pauses      *PauseLedger

	PassInterval time.Duration // periodic pass trigger, default 1h
	Debounce     time.Duration // trigger coalescing window, default 10s
}

// Scheduler periodically figures out which KPIs are due, groups them by owner
// and runs one question thread per owner over the chat transport. Triggers
// from the ticker, chat commands and the HTTP API all funnel into one
// debounced channel, so a burst of triggers causes a single pass and at most
// one pass is in flight at a time.
type Scheduler struct {
	kpis    KPIStore
	answers AnswerStore
	chat    Chat
	pauses  *PauseLedger

	passInterval time.Duration
	debounce     time.Duration

	trigger chan struct{}

	activeMu sync.Mutex
	active   map[string]bool // user names with a conversation in flight

	usersMu sync.Mutex
	users   map[string]domain.User // owner name -> chat user, refreshed each pass

	wg  sync.WaitGroup
	now func() time.Time
}

// NewScheduler creates a scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.PassInterval == 0 {
		p.PassInterval = time.Hour
	}
	if p.Debounce == 0 {
		p.Debounce = 10 * time.Second
	}
	if p.Pauses == nil {
		p.Pauses = NewPauseLedger(0)
	}

	return &Scheduler{
		kpis:         p.KPIStore,
		answers:      p.AnswerStore,
		chat:         p.Chat,
		pauses:       p.Pauses,
		passInterval: p.PassInterval,
		debounce:     p.Debounce,
		trigger:      make(chan struct{}, 1),
		active:       map[string]bool{},
		users:        map[string]domain.User{},
		now:          time.Now,
	}
}

// Trigger requests a scheduling pass. Non-blocking, duplicate requests
// arriving while one is pending collapse into a single pass.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// ActiveUsers returns the names of users with a conversation in flight,
// sorted for stable output
func (s *Scheduler) ActiveUsers() []string {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()

	res := make([]string, 0, len(s.active))
	for name := range s.active {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Run executes scheduling passes until the context is canceled. An initial
// pass fires right away, then the ticker and ad-hoc triggers take over.
func (s *Scheduler) Run(ctx context.Context) error {
	lgr.Printf("[INFO] scheduler started, pass interval %v, debounce %v", s.passInterval, s.debounce)

	ticker := time.NewTicker(s.passInterval)
	defer ticker.Stop()

	s.Trigger()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			lgr.Printf("[INFO] scheduler stopped")
			return nil
		case <-ticker.C:
			lgr.Printf("[DEBUG] periodic pass trigger")
			s.Trigger()
		case <-s.trigger:
			if !s.coalesce(ctx) {
				continue
			}
			s.pass(ctx)
		}
	}
}

// coalesce waits out the debounce window, swallowing further triggers so a
// burst turns into one pass. Returns false when the context ended meanwhile.
func (s *Scheduler) coalesce(ctx context.Context) bool {
	timer := time.NewTimer(s.debounce)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-s.trigger: // absorbed into the pending pass
		case <-timer.C:
			return true
		}
	}
}

// pass refreshes the data snapshots, resolves due periods and fans out one
// conversation per owner with pending questions
func (s *Scheduler) pass(ctx context.Context) {
	lgr.Printf("[DEBUG] scheduling pass started")

	s.refreshUsers(ctx)

	kpis, err := s.kpis.ListKPIs(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to load kpis: %v", err)
		return
	}

	lastAnswered, err := s.answers.LastAnswered(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to load recorded answers: %v", err)
		return
	}

	now := s.now()
	due := DueQuestions(kpis, lastAnswered, now)
	due = s.pauses.FilterDue(due, now)
	if len(due) == 0 {
		lgr.Printf("[DEBUG] nothing due, pass completed")
		return
	}

	for _, group := range groupByOwner(due) {
		user, ok := s.userByName(group.owner)
		if !ok {
			lgr.Printf("[WARN] owner %q of due kpis not found in user directory", group.owner)
			continue
		}
		if !s.tryActivate(user.Name) {
			lgr.Printf("[DEBUG] skipping user %s since I'm questioning them already", user.Name)
			continue
		}

		lgr.Printf("[INFO] starting conversation with user %s for %d kpis", user.Name, len(group.questions))
		s.wg.Add(1)
		go s.converse(ctx, user, group.questions)
	}
}

// converse runs a single question thread over the chat transport. The active
// slot is always released on the way out, success or not, and a follow-up
// pass is requested in case more periods became due meanwhile.
func (s *Scheduler) converse(ctx context.Context, user domain.User, questions []Question) {
	defer s.wg.Done()
	defer func() {
		s.release(user.Name)
		s.Trigger()
	}()

	convo, err := s.chat.StartConversation(ctx, user.ID)
	if err != nil {
		lgr.Printf("[ERROR] failed to start conversation with %s: %v", user.Name, err)
		return
	}
	defer func() {
		if err := convo.Close(); err != nil {
			lgr.Printf("[WARN] failed to close conversation with %s: %v", user.Name, err)
		}
	}()

	thread := NewThread(user, questions)
	for {
		prompt, ok := thread.Prompt()
		if !ok {
			break
		}

		reply, err := convo.Ask(ctx, prompt)
		if err != nil {
			lgr.Printf("[WARN] conversation with %s ended early: %v", user.Name, err)
			return
		}

		for _, msg := range thread.Reply(reply) {
			if err := convo.Say(msg); err != nil {
				lgr.Printf("[WARN] failed to reply to %s: %v", user.Name, err)
				return
			}
		}
	}

	res := thread.Result()
	for name, at := range res.Paused {
		s.pauses.Pause(name, at)
	}
	for _, update := range res.Updates {
		// the user already got a confirmation, an append failure is logged
		// but the question is never re-asked
		if err := s.answers.Append(ctx, update); err != nil {
			lgr.Printf("[ERROR] failed to store answer for %s: %v", update.KPI.Name, err)
		}
	}

	lgr.Printf("[INFO] end of conversation with user %s, %d answers, %d skipped",
		user.Name, len(res.Updates), len(res.Paused))
}

// tryActivate marks the user as engaged, false if a conversation is already
// in flight for them
func (s *Scheduler) tryActivate(name string) bool {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	if s.active[name] {
		return false
	}
	s.active[name] = true
	return true
}

func (s *Scheduler) release(name string) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	delete(s.active, name)
}

// refreshUsers reloads the user directory, keeping the previous snapshot on
// transport errors so a flaky directory doesn't stall scheduling
func (s *Scheduler) refreshUsers(ctx context.Context) {
	users, err := s.chat.ListUsers(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to refresh users, keeping previous snapshot: %v", err)
		return
	}

	byName := make(map[string]domain.User, len(users))
	for _, u := range users {
		byName[u.Name] = u
	}

	s.usersMu.Lock()
	s.users = byName
	s.usersMu.Unlock()
	lgr.Printf("[DEBUG] user directory refreshed, %d users", len(users))
}

func (s *Scheduler) userByName(name string) (domain.User, bool) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	u, ok := s.users[name]
	return u, ok
}

// ownerGroup keeps per-owner questions in resolution order
type ownerGroup struct {
	owner     string
	questions []Question
}

// groupByOwner splits due questions per owner, preserving first-seen owner
// order and question order within each owner
func groupByOwner(due []Question) []ownerGroup {
	idx := map[string]int{}
	groups := make([]ownerGroup, 0, len(due))
	for _, q := range due {
		i, ok := idx[q.KPI.Owner]
		if !ok {
			i = len(groups)
			idx[q.KPI.Owner] = i
			groups = append(groups, ownerGroup{owner: q.KPI.Owner})
		}
		groups[i].questions = append(groups[i].questions, q)
	}
	return groups
}
