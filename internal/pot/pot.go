// Package pot implements the pot manager (C5): folds per-player
// contributions into a main pot plus side pots by the exact
// peel-off-smallest-contribution algorithm of spec §4.5, and splits
// awards with the odd chip going to the winner closest clockwise from
// the button. Grounded on the teacher's internal/game/pot.go
// PotManager/CalculateSidePots, rewritten to the spec's precise
// algorithm rather than the teacher's all-in-level grouping (which
// produces the same pot partition in the common case but not the same
// odd-chip assignment rule).
package pot

import (
	"sort"

	"github.com/foldline/holdem-engine/internal/pokererr"
)

// Kind distinguishes the main pot from a side pot.
type Kind int

const (
	Main Kind = iota
	Side
)

func (k Kind) String() string {
	if k == Main {
		return "main"
	}
	return "side"
}

// Pot is one sealed pot: its amount and the players still eligible to
// win it, in the order the pot was created (Main first).
type Pot struct {
	ID        int
	Kind      Kind
	Amount    int
	Eligible  []string
	CreatedAt int
}

// Contribution is a player's total chips committed to the hand (or to
// the street being closed), with their fold/all-in status. AllIn marks
// a contributor with no more chips behind theirs; only an all-in
// contributor's remaining balance reaching zero during a peel seals a
// pot. A folded contributor exhausting at some level never seals one
// on its own — their chips simply keep flowing into whichever pot is
// still open.
type Contribution struct {
	PlayerID string
	Amount   int
	Folded   bool
	AllIn    bool
}

// Build partitions contributions into a main pot and zero or more
// side pots, per spec §4.5. Contributions are sorted ascending; the
// smallest non-zero contribution is repeatedly peeled off into the
// currently open pot, with every remaining contributor at or above
// that level paying in. A pot seals — its accumulated amount and
// eligible set are sealed off and a fresh pot opens — only when this
// peel brings an all-in contributor's remaining balance to exactly
// zero; folded contributions flow into whichever pot is open at the
// level they committed, never into an eligible set, and never trigger
// a seal on their own.
func Build(contributions []Contribution) []Pot {
	remaining := make([]Contribution, len(contributions))
	copy(remaining, contributions)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Amount < remaining[j].Amount })

	var pots []Pot
	potID := 0

	openAmount := 0
	eligibleSeen := make(map[string]bool)
	var eligible []string

	addEligible := func(id string) {
		if !eligibleSeen[id] {
			eligibleSeen[id] = true
			eligible = append(eligible, id)
		}
	}

	seal := func() {
		if openAmount == 0 && len(eligible) == 0 {
			return
		}
		kind := Side
		if potID == 0 {
			kind = Main
		}
		pots = append(pots, Pot{ID: potID, Kind: kind, Amount: openAmount, Eligible: eligible, CreatedAt: potID})
		potID++
		openAmount = 0
		eligibleSeen = make(map[string]bool)
		eligible = nil
	}

	for {
		// find the smallest strictly positive remaining contribution
		smallest := -1
		for _, c := range remaining {
			if c.Amount > 0 {
				if smallest == -1 || c.Amount < smallest {
					smallest = c.Amount
				}
			}
		}
		if smallest == -1 {
			break
		}

		sealNow := false
		for i := range remaining {
			if remaining[i].Amount <= 0 {
				continue
			}
			take := smallest
			if remaining[i].Amount < take {
				take = remaining[i].Amount
			}
			openAmount += take
			remaining[i].Amount -= take
			if !remaining[i].Folded {
				addEligible(remaining[i].PlayerID)
			}
			if remaining[i].Amount == 0 && remaining[i].AllIn {
				sealNow = true
			}
		}

		if sealNow {
			seal()
		}
	}

	seal()

	return pots
}

// Award is one pot's winners and their individual shares.
type Award struct {
	PotID       int
	Kind        Kind
	TotalAmount int
	Winners     []string
	Shares      map[string]int
}

// Split distributes a pot's amount evenly among winners, with the
// floor share going to each and the remainder (the odd chips) handed
// out one at a time, in clockwise seat order starting from the
// player closest to the button, until exhausted. seatOrder must list
// every winner id in clockwise order starting from (and including,
// if present) the seat immediately after the button.
func Split(p Pot, winners []string, seatOrder []string) Award {
	shares := make(map[string]int, len(winners))
	if len(winners) == 0 {
		return Award{PotID: p.ID, Kind: p.Kind, TotalAmount: p.Amount, Winners: winners, Shares: shares}
	}

	floor := p.Amount / len(winners)
	remainder := p.Amount % len(winners)
	for _, w := range winners {
		shares[w] = floor
	}

	order := orderWinners(winners, seatOrder)
	for i := 0; i < remainder; i++ {
		shares[order[i]]++
	}

	return Award{PotID: p.ID, Kind: p.Kind, TotalAmount: p.Amount, Winners: winners, Shares: shares}
}

// orderWinners returns winners in the order seatOrder lists them,
// appending any winner seatOrder omitted (defensive; should not occur).
func orderWinners(winners []string, seatOrder []string) []string {
	inWinners := make(map[string]bool, len(winners))
	for _, w := range winners {
		inWinners[w] = true
	}
	out := make([]string, 0, len(winners))
	for _, id := range seatOrder {
		if inWinners[id] {
			out = append(out, id)
		}
	}
	for _, w := range winners {
		found := false
		for _, o := range out {
			if o == w {
				found = true
				break
			}
		}
		if !found {
			out = append(out, w)
		}
	}
	return out
}

// VerifyTotal fails with InvalidState if the sum of all awards does
// not equal the sum of all pot amounts.
func VerifyTotal(pots []Pot, awards []Award) error {
	var potTotal, awardTotal int
	for _, p := range pots {
		potTotal += p.Amount
	}
	for _, a := range awards {
		for _, amt := range a.Shares {
			awardTotal += amt
		}
	}
	if potTotal != awardTotal {
		return pokererr.New(pokererr.InvalidState, "pot: awarded %d does not match total pot %d", awardTotal, potTotal)
	}
	return nil
}
