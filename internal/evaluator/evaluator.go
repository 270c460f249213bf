// Package evaluator adapts the chehsunliu/poker hand evaluator (C2):
// given 5-7 cards it returns a total order ranking (lower is
// stronger), a category, a textual description, and the best five
// cards making up that ranking.
//
// The teacher repo's own bitboard evaluator used the same "lower
// value wins" encoding and a hand-rolled perfect-hash lookup table; we
// keep that convention but delegate the actual lookup to chehsunliu,
// which gives the engine a real, independently-tested evaluator and
// frees this package to focus on the Card conversion and best-five
// extraction the engine actually needs.
package evaluator

import (
	"github.com/chehsunliu/poker"

	"github.com/foldline/holdem-engine/cards"
	"github.com/foldline/holdem-engine/internal/pokererr"
)

// Category is one of the nine standard hand categories, weakest to
// strongest. RoyalFlush is reported as a distinguished StraightFlush;
// chehsunliu's rank classes don't split it out, so Evaluate derives it
// with a top-card check on the winning five.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Ranking is a total order over evaluated hands where a LOWER value
// is a STRONGER hand, matching chehsunliu's own convention directly.
type Ranking int32

// Result is the outcome of evaluating a player's best hand.
type Result struct {
	Ranking     Ranking
	Category    Category
	Description string
	Best        []cards.Card
}

// Evaluate scores 5, 6 or 7 cards and identifies the best 5-card hand
// among them. Fails with InvalidInput on any other card count.
func Evaluate(hand []cards.Card) (Result, error) {
	if len(hand) < 5 || len(hand) > 7 {
		return Result{}, pokererr.New(pokererr.InvalidInput, "evaluator: need 5-7 cards, got %d", len(hand))
	}

	converted, err := convertAll(hand)
	if err != nil {
		return Result{}, err
	}

	rank := poker.Evaluate(converted)
	best := hand
	if len(hand) > 5 {
		best, err = bestFive(hand, converted, rank)
		if err != nil {
			return Result{}, err
		}
	}

	category := categoryFromClass(poker.RankClass(rank))
	description := poker.RankString(rank)
	if category == StraightFlush && isRoyal(best) {
		category = RoyalFlush
		description = "Royal Flush"
	}

	return Result{
		Ranking:     Ranking(rank),
		Category:    category,
		Description: description,
		Best:        best,
	}, nil
}

// Compare returns 1 if a beats b, -1 if a loses to b, 0 on a tie (a
// split pot).
func Compare(a, b Result) int {
	switch {
	case a.Ranking < b.Ranking:
		return 1
	case a.Ranking > b.Ranking:
		return -1
	default:
		return 0
	}
}

func convertAll(hand []cards.Card) ([]poker.Card, error) {
	out := make([]poker.Card, 0, len(hand))
	for _, c := range hand {
		pc, err := convert(c)
		if err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, nil
}

func convert(c cards.Card) (poker.Card, error) {
	rc, err := rankChar(c.Rank)
	if err != nil {
		return poker.Card(0), err
	}
	sc, err := suitChar(c.Suit)
	if err != nil {
		return poker.Card(0), err
	}
	return poker.NewCard(string([]byte{rc, sc})), nil
}

func rankChar(r cards.Rank) (byte, error) {
	switch r {
	case cards.Two:
		return '2', nil
	case cards.Three:
		return '3', nil
	case cards.Four:
		return '4', nil
	case cards.Five:
		return '5', nil
	case cards.Six:
		return '6', nil
	case cards.Seven:
		return '7', nil
	case cards.Eight:
		return '8', nil
	case cards.Nine:
		return '9', nil
	case cards.Ten:
		return 'T', nil
	case cards.Jack:
		return 'J', nil
	case cards.Queen:
		return 'Q', nil
	case cards.King:
		return 'K', nil
	case cards.Ace:
		return 'A', nil
	default:
		return 0, pokererr.New(pokererr.InvalidInput, "evaluator: invalid rank %v", r)
	}
}

func suitChar(s cards.Suit) (byte, error) {
	switch s {
	case cards.Clubs:
		return 'c', nil
	case cards.Diamonds:
		return 'd', nil
	case cards.Hearts:
		return 'h', nil
	case cards.Spades:
		return 's', nil
	default:
		return 0, pokererr.New(pokererr.InvalidInput, "evaluator: invalid suit %v", s)
	}
}

func categoryFromClass(rankClass int32) Category {
	switch rankClass {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return Pair
	default:
		return HighCard
	}
}

// isRoyal reports whether a winning 5-card straight flush is ace-high
// (ten through ace).
func isRoyal(best []cards.Card) bool {
	if len(best) != 5 {
		return false
	}
	has := make(map[cards.Rank]bool, 5)
	for _, c := range best {
		has[c.Rank] = true
	}
	for _, r := range []cards.Rank{cards.Ten, cards.Jack, cards.Queen, cards.King, cards.Ace} {
		if !has[r] {
			return false
		}
	}
	return true
}

// bestFive finds which 5 of 6/7 cards produced the overall rank by
// exhaustive combination search: at most C(7,5) = 21 evaluations.
func bestFive(hand []cards.Card, converted []poker.Card, rank int32) ([]cards.Card, error) {
	var best []cards.Card
	err := forEachCombination(len(hand), 5, func(idxs []int) bool {
		combo := make([]poker.Card, 5)
		out := make([]cards.Card, 5)
		for i, idx := range idxs {
			combo[i] = converted[idx]
			out[i] = hand[idx]
		}
		if poker.Evaluate(combo) == rank {
			best = out
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, pokererr.New(pokererr.InvalidState, "evaluator: no 5-card combination matched the overall rank")
	}
	return best, nil
}

// forEachCombination calls fn with each k-combination of indices in
// [0,n), in lexicographic order, stopping early if fn returns true.
func forEachCombination(n, k int, fn func(idxs []int) bool) error {
	if k <= 0 || k > n {
		return pokererr.New(pokererr.InvalidInput, "evaluator: invalid combination request n=%d k=%d", n, k)
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if fn(idx) {
			return nil
		}
		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
