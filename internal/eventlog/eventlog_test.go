package eventlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRequiresSequentialSequence(t *testing.T) {
	l := New()
	require.NoError(t, l.Append("h1", "t1", 1, HandStarted, nil, time.Now()))
	err := l.Append("h1", "t1", 3, PlayerActed, nil, time.Now())
	require.Error(t, err)
}

func TestAppendAndGetEvents(t *testing.T) {
	l := New()
	require.NoError(t, l.Append("h1", "t1", 1, HandStarted, nil, time.Now()))
	require.NoError(t, l.Append("h1", "t1", 2, PlayerActed, "fold", time.Now()))

	events := l.GetEvents("h1")
	require.Len(t, events, 2)
	assert.Equal(t, HandStarted, events[0].Type)
	assert.Equal(t, 2, events[1].Sequence)
}

func TestGetEventsFromReturnsOnlyNew(t *testing.T) {
	l := New()
	require.NoError(t, l.Append("h1", "t1", 1, HandStarted, nil, time.Now()))
	require.NoError(t, l.Append("h1", "t1", 2, PlayerActed, nil, time.Now()))
	require.NoError(t, l.Append("h1", "t1", 3, PlayerActed, nil, time.Now()))

	events := l.GetEventsFrom("h1", 1)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Sequence)
}

func TestHandCompletedMaterialisesSummary(t *testing.T) {
	l := New()
	require.NoError(t, l.Append("h1", "t1", 1, HandStarted, nil, time.Now()))
	require.NoError(t, l.Append("h1", "t1", 2, HandCompleted, HandCompletedPayload{
		TableID:        "t1",
		WinnerIDs:      []string{"p1"},
		TotalPot:       30,
		PlayerCount:    3,
		WentToShowdown: false,
		DurationMS:     1500,
	}, time.Now()))

	summary, ok := l.GetSummary("h1")
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, summary.WinnerIDs)
	assert.Equal(t, 30, summary.TotalPot)
}

func TestGetTableHistoryOrdersNewestFirst(t *testing.T) {
	l := New()
	require.NoError(t, l.Append("h1", "t1", 1, HandCompleted, HandCompletedPayload{TableID: "t1", TotalPot: 10}, time.Now()))
	require.NoError(t, l.Append("h2", "t1", 1, HandCompleted, HandCompletedPayload{TableID: "t1", TotalPot: 20}, time.Now()))

	history := l.GetTableHistory("t1", 10)
	require.Len(t, history, 2)
	assert.Equal(t, "h2", history[0].HandID)
	assert.Equal(t, "h1", history[1].HandID)
}

func TestAppendRangeIsAtomic(t *testing.T) {
	l := New()
	err := l.AppendRange("h1", "t1", []struct {
		Sequence int
		Type     Type
		Payload  any
		At       time.Time
	}{
		{Sequence: 1, Type: HandStarted, At: time.Now()},
		{Sequence: 5, Type: PlayerActed, At: time.Now()}, // gap
	})
	require.Error(t, err)
	assert.Equal(t, 0, l.GetLastSequence("h1"), "a failed AppendRange must not partially apply")
}
