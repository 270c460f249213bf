package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPreflopCreditsBlinds(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	assert.Equal(t, 1, r.Bet("sb"))
	assert.Equal(t, 2, r.Bet("bb"))
	assert.Equal(t, 2, r.CurrentBet)
	assert.Equal(t, 2, r.MinRaiseTotal()-r.CurrentBet)
}

func TestToCall(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	assert.Equal(t, 1, r.ToCall("sb"))
	assert.Equal(t, 0, r.ToCall("bb"))
}

func TestRecordRaiseFullReopensAndTracksAggressor(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	r.RecordRaise("utg", 10, false)
	assert.Equal(t, 10, r.CurrentBet)
	assert.Equal(t, 8, r.LastRaise)
	assert.Equal(t, "utg", r.LastAggressor)
	assert.Equal(t, 1, r.RaiseCount)
	assert.Equal(t, 18, r.MinRaiseTotal())
}

func TestShortAllInDoesNotReopen(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	r.RecordRaise("utg", 10, false) // min-raise now 8
	r.RecordRaise("button", 14, true) // raise of 4, short

	assert.Equal(t, 14, r.CurrentBet)
	assert.Equal(t, 8, r.LastRaise, "short all-in must not change min-raise")
	assert.Equal(t, "utg", r.LastAggressor, "short all-in is not a new aggressor")
	assert.Equal(t, 22, r.MinRaiseTotal())
}

func TestResetPreservesLastAggressor(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	r.RecordRaise("utg", 10, false)
	next := r.Reset(Flop)

	assert.Equal(t, "utg", next.LastAggressor)
	assert.Equal(t, 0, next.CurrentBet)
	assert.Equal(t, 0, next.RaiseCount)
	assert.Equal(t, 0, next.Bet("utg"))
}

func TestIsCompleteGrantsBigBlindOption(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	contestants := []Contestant{
		{PlayerID: "sb"},
		{PlayerID: "bb"},
	}
	r.RecordCall("sb", 1) // sb calls to 2
	assert.False(t, r.IsComplete(contestants), "bb still has an uncontested option")

	r.RecordCheck("bb")
	assert.True(t, r.IsComplete(contestants))
}

func TestIsCompleteWithFoldedAndAllInPlayers(t *testing.T) {
	r := NewPreflop("sb", 1, "bb", 2)
	contestants := []Contestant{
		{PlayerID: "sb", Folded: true},
		{PlayerID: "bb"},
		{PlayerID: "utg", AllIn: true},
	}
	assert.False(t, r.IsComplete(contestants))
	r.RecordCheck("bb")
	assert.True(t, r.IsComplete(contestants))
}
