package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/kippino/pkg/domain"
)

// Commands routes administrative phrases heard on direct messages outside an
// active conversation. All callbacks are optional, a nil callback disables
// its command.
type Commands struct {
	ReloadKPIs  func()                                          // trigger a kpi reload and scheduling pass
	ReloadUsers func()                                          // trigger a user directory refresh
	ListKPIs    func(ctx context.Context) ([]domain.KPI, error) // current kpi definitions
	Pending     func() []string                                 // users with a conversation in flight
	DataHint    string                                          // where the collected data can be inspected
}

var (
	reHelp        = regexp.MustCompile(`instructions|^help`)
	reReloadKPIs  = regexp.MustCompile(`(reload|refresh|sync) kpis`)
	reReloadUsers = regexp.MustCompile(`(reload|refresh|sync) users`)
	reListKPIs    = regexp.MustCompile(`list kpis|^kpis`)
	rePending     = regexp.MustCompile(`pending`)
)

// Dispatch matches the text against the known commands and runs the first
// hit, replying with say and acknowledging state-changing commands with
// react. Returns false when nothing matched.
func (c *Commands) Dispatch(ctx context.Context, say func(string), react func(), text string) bool {
	lc := strings.ToLower(strings.TrimSpace(text))

	switch {
	case reHelp.MatchString(lc):
		say("Hello! I'm Kippino, the KPI bot! My job is to collect KPIs from our team, I may be annoying some times but that's my job!")
		say("I will be sleeping most of the time, but I listen to certain commands: *help*, *reload KPIs*, *reload users*, *list kpis*, *pending*.")
		if c.DataHint != "" {
			say("You can check out the data I'm collecting here: " + c.DataHint)
		}
		say("Talk to you soon!")
	case reReloadKPIs.MatchString(lc) && c.ReloadKPIs != nil:
		react()
		c.ReloadKPIs()
	case reReloadUsers.MatchString(lc) && c.ReloadUsers != nil:
		react()
		c.ReloadUsers()
	case reListKPIs.MatchString(lc) && c.ListKPIs != nil:
		c.sayKPIList(ctx, say)
	case rePending.MatchString(lc) && c.Pending != nil:
		c.sayPending(say)
	default:
		return false
	}
	return true
}

// sayKPIList reports tracked and disabled kpis
func (c *Commands) sayKPIList(ctx context.Context, say func(string)) {
	kpis, err := c.ListKPIs(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to list kpis for command: %v", err)
		say("Sorry, I can't reach the KPI store right now.")
		return
	}
	if len(kpis) == 0 {
		say("No KPIs defined yet")
		return
	}

	var enabled, disabled []domain.KPI
	for _, kpi := range kpis {
		if kpi.Enabled {
			enabled = append(enabled, kpi)
			continue
		}
		disabled = append(disabled, kpi)
	}

	say(fmt.Sprintf("Thanks for asking, I am currently tracking *%d* KPIs:", len(enabled)))
	for _, kpi := range enabled {
		say(fmt.Sprintf("*%s* (_%s_) is owned by <@%s> and tracked %s since %s",
			kpi.Name, kpi.Question, kpi.Owner, kpi.Frequency.Label(), kpi.Since.Format(domain.DateLayout)))
	}

	if len(disabled) > 0 {
		names := make([]string, len(disabled))
		for i, kpi := range disabled {
			names[i] = "*" + kpi.Name + "*"
		}
		say("Also, the following KPIs are configured but not enabled: " + strings.Join(names, ", "))
	}
}

// sayPending reports users the bot is waiting on
func (c *Commands) sayPending(say func(string)) {
	pending := c.Pending()
	if len(pending) == 0 {
		say("Everything's fine! There are no pending questions.")
		return
	}

	mentions := make([]string, len(pending))
	for i, name := range pending {
		mentions[i] = "<@" + name + ">"
	}
	say(fmt.Sprintf("I'm currently waiting for responses from %s: %s",
		pluralize("person", "people", len(pending)), strings.Join(mentions, ", ")))
}

// pluralize renders "1 person" / "3 people"
func pluralize(singular, plural string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
