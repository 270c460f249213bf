// Package validator implements the action validator (C4): given a
// player, the current betting round, and whether it is their turn, it
// derives the set of legal actions and validates a proposed intent
// against them without ever mutating state. Grounded on the teacher's
// internal/game/betting.go GetValidActions and hand.go ProcessAction,
// generalised into a standalone, side-effect-free validator that
// returns a ValidatedAction rather than mutating a Player in place.
package validator

import (
	"github.com/foldline/holdem-engine/internal/betting"
	"github.com/foldline/holdem-engine/internal/pokererr"
)

// PlayerState is the minimal view of a player the validator needs.
type PlayerState struct {
	PlayerID string
	Stack    int
	Folded   bool
	AllIn    bool
}

// LegalActions is the set of actions available to a player right now.
type LegalActions struct {
	CanFold    bool
	CanCheck   bool
	CanCall    bool
	CallAmount int
	CanRaise   bool
	MinRaiseTo int
	MaxRaiseTo int
	CanAllIn   bool
	AllInTotal int
}

// Derive computes the legal actions for a player whose turn it is.
// isTurn=false yields an all-false LegalActions (nothing is legal).
func Derive(p PlayerState, round *betting.Round, isTurn bool) LegalActions {
	var la LegalActions
	if !isTurn || p.Folded || p.AllIn || p.Stack <= 0 {
		return la
	}

	la.CanFold = true
	toCall := round.ToCall(p.PlayerID)
	roundBet := round.Bet(p.PlayerID)

	if toCall == 0 {
		la.CanCheck = true
		if p.Stack > round.LastRaise {
			la.CanRaise = true
			la.MinRaiseTo = round.MinRaiseTotal()
			la.MaxRaiseTo = roundBet + p.Stack
		} else {
			la.CanAllIn = true
			la.AllInTotal = roundBet + p.Stack
		}
		return la
	}

	if toCall >= p.Stack {
		la.CanAllIn = true
		la.AllInTotal = roundBet + p.Stack
		return la
	}

	la.CanCall = true
	la.CallAmount = toCall
	if p.Stack > toCall+round.LastRaise {
		la.CanRaise = true
		la.MinRaiseTo = round.MinRaiseTotal()
		la.MaxRaiseTo = roundBet + p.Stack
	} else {
		la.CanAllIn = true
		la.AllInTotal = roundBet + p.Stack
	}
	return la
}

// ValidatedAction is the outcome of a legal intent: how much it adds
// to the pot, the player's new total round bet, whether it is a full
// raise, and the player's remaining stack after the action.
type ValidatedAction struct {
	Action         betting.Action
	AmountAdded    int
	NewRoundBet    int
	IsRaise        bool
	IsFullRaise    bool
	RemainingStack int
}

// Validate checks a proposed intent against the legal action set and,
// if legal, returns the ValidatedAction describing its effect. Never
// mutates round or p. On rejection returns a ValidationRejected error
// whose message names the failed constraint.
func Validate(p PlayerState, round *betting.Round, isTurn bool, action betting.Action, raiseTo int) (ValidatedAction, error) {
	la := Derive(p, round, isTurn)
	roundBet := round.Bet(p.PlayerID)

	switch action {
	case betting.Fold:
		if !la.CanFold {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "fold is not legal for %s right now", p.PlayerID)
		}
		return ValidatedAction{Action: betting.Fold, RemainingStack: p.Stack}, nil

	case betting.Check:
		if !la.CanCheck {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "%s cannot check: %d still owed", p.PlayerID, round.ToCall(p.PlayerID))
		}
		return ValidatedAction{Action: betting.Check, NewRoundBet: roundBet, RemainingStack: p.Stack}, nil

	case betting.Call:
		if !la.CanCall {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "call is not legal for %s right now", p.PlayerID)
		}
		return ValidatedAction{
			Action:         betting.Call,
			AmountAdded:    la.CallAmount,
			NewRoundBet:    roundBet + la.CallAmount,
			RemainingStack: p.Stack - la.CallAmount,
		}, nil

	case betting.Raise:
		if !la.CanRaise {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "raise is not legal for %s right now", p.PlayerID)
		}
		if raiseTo < la.MinRaiseTo && raiseTo != la.MaxRaiseTo {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "raise-to %d below minimum %d for %s", raiseTo, la.MinRaiseTo, p.PlayerID)
		}
		if raiseTo > la.MaxRaiseTo {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "raise-to %d exceeds %s's available %d", raiseTo, p.PlayerID, la.MaxRaiseTo)
		}
		added := raiseTo - roundBet
		return ValidatedAction{
			Action:         betting.Raise,
			AmountAdded:    added,
			NewRoundBet:    raiseTo,
			IsRaise:        true,
			IsFullRaise:    raiseTo-round.CurrentBet >= round.LastRaise,
			RemainingStack: p.Stack - added,
		}, nil

	case betting.AllIn:
		if !la.CanAllIn && !la.CanRaise {
			return ValidatedAction{}, pokererr.New(pokererr.ValidationRejected, "all-in is not legal for %s: no chips", p.PlayerID)
		}
		total := roundBet + p.Stack
		added := p.Stack
		return ValidatedAction{
			Action:         betting.AllIn,
			AmountAdded:    added,
			NewRoundBet:    total,
			IsRaise:        total > round.CurrentBet,
			IsFullRaise:    total-round.CurrentBet >= round.LastRaise,
			RemainingStack: 0,
		}, nil

	default:
		return ValidatedAction{}, pokererr.New(pokererr.InvalidInput, "unknown action %v", action)
	}
}
