package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/cards"
	"github.com/foldline/holdem-engine/internal/phase"
	"github.com/foldline/holdem-engine/internal/table"
)

func mustParse(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.Parse(s)
	require.NoError(t, err)
	return c
}

func TestForViewerHidesOpponentHoleCards(t *testing.T) {
	hand := &table.Hand{ID: "h1", TableID: "t1", CurrentToActID: "p2"}
	players := []*table.Player{
		{ID: "p1", Seat: 1, HoleCards: []cards.Card{mustParse(t, "As"), mustParse(t, "Ks")}},
		{ID: "p2", Seat: 2, HoleCards: []cards.Card{mustParse(t, "2c"), mustParse(t, "3c")}},
	}

	snap := ForViewer(hand, players, phase.Flop, 10, "p1", nil, nil)

	require.Len(t, snap.Players, 2)
	assert.Len(t, snap.Players[0].HoleCards, 2, "viewer sees their own cards")
	assert.Empty(t, snap.Players[1].HoleCards, "viewer does not see the opponent's cards")
}

func TestForViewerRevealsShownHandsAtShowdown(t *testing.T) {
	hand := &table.Hand{ID: "h1", TableID: "t1"}
	players := []*table.Player{
		{ID: "p1", Seat: 1, HoleCards: []cards.Card{mustParse(t, "As"), mustParse(t, "Ks")}},
	}
	shown := func(id string) bool { return id == "p1" }

	snap := ForViewer(hand, players, phase.Showdown, 10, "spectator", shown, nil)
	assert.Len(t, snap.Players[0].HoleCards, 2)
}

func TestSpectatorSeesNoHoleCardsBeforeShowdown(t *testing.T) {
	hand := &table.Hand{ID: "h1", TableID: "t1"}
	players := []*table.Player{
		{ID: "p1", Seat: 1, HoleCards: []cards.Card{mustParse(t, "As"), mustParse(t, "Ks")}},
	}
	snap := ForViewer(hand, players, phase.Flop, 10, "", nil, nil)
	assert.Empty(t, snap.Players[0].HoleCards)
}
