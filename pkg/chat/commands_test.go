package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/kippino/pkg/domain"
)

type dispatchRecorder struct {
	said    []string
	reacted int

	reloadedKPIs  int
	reloadedUsers int
}

func (r *dispatchRecorder) say(text string) { r.said = append(r.said, text) }
func (r *dispatchRecorder) react()          { r.reacted++ }

func testCommands(r *dispatchRecorder, kpis []domain.KPI, pending []string) *Commands {
	return &Commands{
		ReloadKPIs:  func() { r.reloadedKPIs++ },
		ReloadUsers: func() { r.reloadedUsers++ },
		ListKPIs: func(ctx context.Context) ([]domain.KPI, error) {
			return kpis, nil
		},
		Pending:  func() []string { return pending },
		DataHint: "https://example.com/data",
	}
}

func TestCommands_Help(t *testing.T) {
	rec := &dispatchRecorder{}
	cmds := testCommands(rec, nil, nil)

	for _, text := range []string{"help", "HELP", "give me instructions"} {
		rec.said = nil
		require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, text), text)
		require.NotEmpty(t, rec.said)
		assert.Contains(t, rec.said[0], "I'm Kippino")
		assert.Contains(t, rec.said[2], "https://example.com/data")
	}
}

func TestCommands_Reload(t *testing.T) {
	rec := &dispatchRecorder{}
	cmds := testCommands(rec, nil, nil)

	for _, text := range []string{"reload KPIs", "refresh kpis", "sync KPIs please"} {
		require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, text), text)
	}
	assert.Equal(t, 3, rec.reloadedKPIs)
	assert.Equal(t, 3, rec.reacted, "state-changing commands acknowledged with a reaction")

	require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, "reload users"))
	assert.Equal(t, 1, rec.reloadedUsers)
}

func TestCommands_ListKPIs(t *testing.T) {
	kpis := []domain.KPI{
		{Name: "signups", Question: "How many signups we got", Owner: "alice",
			Frequency: domain.FrequencyWeekly, Since: domain.Date(2024, time.January, 1), Enabled: true},
		{Name: "legacy", Question: "old one", Owner: "bob",
			Frequency: domain.FrequencyMonthly, Since: domain.Date(2023, time.January, 1), Enabled: false},
	}
	rec := &dispatchRecorder{}
	cmds := testCommands(rec, kpis, nil)

	require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, "list kpis"))
	require.Len(t, rec.said, 3)
	assert.Equal(t, "Thanks for asking, I am currently tracking *1* KPIs:", rec.said[0])
	assert.Equal(t, "*signups* (_How many signups we got_) is owned by <@alice> and tracked weekly since 2024-01-01", rec.said[1])
	assert.Equal(t, "Also, the following KPIs are configured but not enabled: *legacy*", rec.said[2])
}

func TestCommands_ListKPIs_Empty(t *testing.T) {
	rec := &dispatchRecorder{}
	cmds := testCommands(rec, nil, nil)

	require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, "kpis"))
	require.Len(t, rec.said, 1)
	assert.Equal(t, "No KPIs defined yet", rec.said[0])
}

func TestCommands_ListKPIs_StoreError(t *testing.T) {
	rec := &dispatchRecorder{}
	cmds := testCommands(rec, nil, nil)
	cmds.ListKPIs = func(ctx context.Context) ([]domain.KPI, error) {
		return nil, errors.New("store down")
	}

	require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, "list kpis"))
	require.Len(t, rec.said, 1)
	assert.Contains(t, rec.said[0], "can't reach")
}

func TestCommands_Pending(t *testing.T) {
	tests := []struct {
		name    string
		pending []string
		want    string
	}{
		{"nobody", nil, "Everything's fine! There are no pending questions."},
		{"one", []string{"alice"}, "I'm currently waiting for responses from 1 person: <@alice>"},
		{"two", []string{"alice", "bob"}, "I'm currently waiting for responses from 2 people: <@alice>, <@bob>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &dispatchRecorder{}
			cmds := testCommands(rec, nil, tt.pending)
			require.True(t, cmds.Dispatch(context.Background(), rec.say, rec.react, "pending"))
			require.Len(t, rec.said, 1)
			assert.Equal(t, tt.want, rec.said[0])
		})
	}
}

func TestCommands_Unmatched(t *testing.T) {
	rec := &dispatchRecorder{}
	cmds := testCommands(rec, nil, nil)

	assert.False(t, cmds.Dispatch(context.Background(), rec.say, rec.react, "what's the weather"))
	assert.Empty(t, rec.said)
	assert.Zero(t, rec.reacted)
}
