package main

import (
	"math/rand"

	"github.com/foldline/holdem-engine/internal/betting"
	"github.com/foldline/holdem-engine/internal/orchestrator"
	"github.com/foldline/holdem-engine/internal/table"
	"github.com/foldline/holdem-engine/internal/validator"
)

// newSimTable builds a table.Table seated with numPlayers uniform
// stacks, ready for repeated StartNewHand calls. Grounded on the
// teacher's cmd/simulate harness, which seats a fixed set of players
// once and replays hands against them rather than reconnecting real
// clients per hand.
func newSimTable(id string, numPlayers, stack, smallBlind, bigBlind int) *table.Table {
	t := &table.Table{
		ID:         id,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		MinBuyIn:   stack,
		MaxBuyIn:   stack,
		Seats:      make(map[int]*table.Player),
	}
	for seat := 1; seat <= numPlayers; seat++ {
		t.Seats[seat] = &table.Player{ID: seatID(seat), Seat: seat, Stack: stack, Status: table.Active}
	}
	return t
}

func seatID(seat int) string {
	return "sim-" + string(rune('a'+seat-1))
}

// reseat tops every seated player back up to stack and marks them
// Active, discarding any hand-to-hand stack depletion. A self-play
// driver otherwise busts players out within a few hundred hands and
// stops exercising the engine's multi-way paths.
func reseat(t *table.Table, stack int) {
	for _, p := range t.Seats {
		p.Stack = stack
		p.Status = table.Active
		p.HoleCards = nil
		p.RoundBet = 0
		p.HandBet = 0
	}
}

// playHandToCompletion drives one hand with uniformly-random legal
// actions at every decision point. This is a structural exerciser for
// the engine's state machine, not a poker strategy: it has no notion
// of hand strength, position, or difficulty, unlike the bot opponents
// this system's scope explicitly excludes.
func playHandToCompletion(o *orchestrator.Orchestrator, t *table.Table, rng *rand.Rand) (wentToShowdown bool, err error) {
	res, startErr := o.StartNewHand(t)
	if startErr != nil {
		return false, startErr
	}

	toAct := res.Hand.CurrentToActID
	for {
		avail := o.GetAvailableActions(t)
		if avail.PlayerID == "" {
			break
		}
		action, amount := randomAction(avail.Legal, rng)

		result, actErr := o.ExecutePlayerAction(t, toAct, action, amount)
		if actErr != nil {
			return false, actErr
		}
		if result.HandCompleted {
			wentToShowdown = result.ShowdownOutcome != nil
			break
		}
		toAct = result.Hand.CurrentToActID
	}

	return wentToShowdown, nil
}

func randomAction(la validator.LegalActions, rng *rand.Rand) (betting.Action, int) {
	var choices []betting.Action
	if la.CanCheck {
		choices = append(choices, betting.Check)
	}
	if la.CanCall {
		choices = append(choices, betting.Call)
	}
	if la.CanFold {
		choices = append(choices, betting.Fold)
	}
	if la.CanRaise {
		choices = append(choices, betting.Raise)
	}
	if len(choices) == 0 {
		return betting.AllIn, 0
	}

	pick := choices[rng.Intn(len(choices))]
	if pick == betting.Raise {
		return betting.Raise, la.MinRaiseTo
	}
	return pick, 0
}
