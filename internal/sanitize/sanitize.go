// Package sanitize implements the state sanitiser (C11): per-viewer
// snapshots that hide opponents' hole cards before showdown. No direct
// teacher equivalent exists (the teacher has no multi-viewer broadcast
// concept); grounded structurally on the teacher's
// internal/game/events.go EventFormatter, which has the same shape —
// one function turning internal state into a presentation view.
package sanitize

import (
	"github.com/foldline/holdem-engine/cards"
	"github.com/foldline/holdem-engine/internal/phase"
	"github.com/foldline/holdem-engine/internal/table"
	"github.com/foldline/holdem-engine/internal/validator"
)

// PlayerView is one player as a viewer should see them: own or
// revealed-at-showdown hole cards are shown, everyone else's are a
// face-down marker.
type PlayerView struct {
	PlayerID  string
	Seat      int
	Stack     int
	Status    table.Status
	HoleCards []cards.Card // nil/empty when hidden
	RoundBet  int
	HandBet   int
}

// Snapshot is the full per-viewer state sent over the broadcaster.
type Snapshot struct {
	TableID        string
	HandID         string
	Phase          phase.Phase
	Board          []cards.Card
	SecondBoard    []cards.Card
	Pot            int
	Players        []PlayerView
	ButtonSeat     int
	CurrentToActID string
	LegalActions   *validator.LegalActions // non-nil only if it's the viewer's turn
}

// Shown reports, for a given player id, whether their hand has been
// revealed at showdown (so a spectator or opponent snapshot may show
// it even before the hand fully completes).
type Shown func(playerID string) bool

// ForViewer builds a snapshot for viewerID. viewerID == "" produces a
// spectator snapshot (no hole cards revealed until showdown).
func ForViewer(h *table.Hand, players []*table.Player, currentPhase phase.Phase, pot int, viewerID string, shown Shown, viewerLegalActions *validator.LegalActions) Snapshot {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, playerView(p, currentPhase, viewerID, shown))
	}

	var la *validator.LegalActions
	if viewerID != "" && h.CurrentToActID == viewerID {
		la = viewerLegalActions
	}

	return Snapshot{
		TableID:        h.TableID,
		HandID:         h.ID,
		Phase:          currentPhase,
		Board:          append([]cards.Card{}, h.Board...),
		SecondBoard:    append([]cards.Card{}, h.SecondBoard...),
		Pot:            pot,
		Players:        views,
		ButtonSeat:     h.ButtonSeat,
		CurrentToActID: h.CurrentToActID,
		LegalActions:   la,
	}
}

func playerView(p *table.Player, currentPhase phase.Phase, viewerID string, shown Shown) PlayerView {
	view := PlayerView{
		PlayerID: p.ID,
		Seat:     p.Seat,
		Stack:    p.Stack,
		Status:   p.Status,
		RoundBet: p.RoundBet,
		HandBet:  p.HandBet,
	}

	reveal := p.ID == viewerID
	if !reveal && currentPhase == phase.Showdown && shown != nil && shown(p.ID) {
		reveal = true
	}
	if reveal {
		view.HoleCards = append([]cards.Card{}, p.HoleCards...)
	}
	return view
}
