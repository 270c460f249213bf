package cards

import (
	"crypto/rand"
	"math/big"

	"github.com/foldline/holdem-engine/internal/pokererr"
)

// Deck is an ordered sequence of 52 unique cards plus a deal cursor.
// At any time the remaining (undealt) cards are a subset of a standard
// deck and each card appears at most once.
type Deck struct {
	cards [52]Card
	next  int
}

// New constructs a deck in the standard, unshuffled order: clubs then
// diamonds then hearts then spades, two through ace within each suit.
func New() *Deck {
	d := &Deck{}
	i := 0
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = Card{Suit: suit, Rank: rank}
			i++
		}
	}
	return d
}

// Shuffle performs a Fisher-Yates shuffle drawing from a CSPRNG. Each
// index i from 51 down to 1 swaps with a uniformly-chosen j in [0,i];
// crypto/rand.Int is rejection-sampled internally so the draw has no
// modulo bias. Shuffle also resets the deal cursor.
func (d *Deck) Shuffle() error {
	for i := len(d.cards) - 1; i > 0; i-- {
		j, err := randIntn(i + 1)
		if err != nil {
			return pokererr.Wrap(pokererr.InvalidState, err, "deck: shuffle RNG failed")
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.next = 0
	return nil
}

func randIntn(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Deal removes and returns the next card from the top of the deck.
// Fails with InvalidState if the cursor has reached the end.
func (d *Deck) Deal() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, pokererr.New(pokererr.InvalidState, "deck: dealt past the end of the deck")
	}
	c := d.cards[d.next]
	d.next++
	return c, nil
}

// DealN deals n cards in sequence.
func (d *Deck) DealN(n int) ([]Card, error) {
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.Deal()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Burn deals one card and discards it, returning nothing. It is
// Deal-and-discard, used before each postflop street.
func (d *Deck) Burn() error {
	_, err := d.Deal()
	return err
}

// Remaining returns the number of cards left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// IsPermutation reports whether the deck's full 52-card backing array
// (regardless of cursor position) is a permutation of a standard deck,
// i.e. every card appears exactly once. Used as a shuffle-verification
// helper.
func (d *Deck) IsPermutation() bool {
	seen := make(map[Card]bool, 52)
	for _, c := range d.cards {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return len(seen) == 52
}
