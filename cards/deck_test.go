package cards

import (
	"testing"

	"github.com/foldline/holdem-engine/internal/pokererr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New()
	assert.True(t, d.IsPermutation())
	assert.Equal(t, 52, d.Remaining())
}

func TestShuffleIsPermutation(t *testing.T) {
	d := New()
	require.NoError(t, d.Shuffle())
	assert.True(t, d.IsPermutation(), "a shuffled deck must remain a permutation of the 52-card multiset")
	assert.Equal(t, 52, d.Remaining())
}

func TestShuffleShuffleIsStillAPermutation(t *testing.T) {
	d := New()
	require.NoError(t, d.Shuffle())
	require.NoError(t, d.Shuffle())
	assert.True(t, d.IsPermutation())
}

func TestDealAdvancesCursor(t *testing.T) {
	d := New()
	require.NoError(t, d.Shuffle())

	c, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, 51, d.Remaining())
	assert.NotEqual(t, Card{}, c)
}

func TestDealPastEndFails(t *testing.T) {
	d := New()
	_, err := d.DealN(52)
	require.NoError(t, err)

	_, err = d.Deal()
	require.Error(t, err)
	assert.True(t, pokererr.Is(err, pokererr.InvalidState))
}

func TestBurnConsumesOneCardWithoutReturningIt(t *testing.T) {
	d := New()
	require.NoError(t, d.Burn())
	assert.Equal(t, 51, d.Remaining())
}

func TestDealNDealsInSequence(t *testing.T) {
	d := New()
	cards, err := d.DealN(5)
	require.NoError(t, err)
	assert.Len(t, cards, 5)
	assert.Equal(t, 47, d.Remaining())
}

func TestParseAndString(t *testing.T) {
	c, err := Parse("As")
	require.NoError(t, err)
	assert.Equal(t, Card{Suit: Spades, Rank: Ace}, c)
	assert.Equal(t, "As", c.String())

	_, err = Parse("Zz")
	assert.Error(t, err)

	_, err = Parse("A")
	assert.Error(t, err)
}
