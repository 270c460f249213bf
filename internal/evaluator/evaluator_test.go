package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/cards"
)

func mustParse(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.Parse(s)
	require.NoError(t, err)
	return c
}

func hand(t *testing.T, s ...string) []cards.Card {
	t.Helper()
	out := make([]cards.Card, len(s))
	for i, c := range s {
		out[i] = mustParse(t, c)
	}
	return out
}

func TestEvaluateRejectsWrongCardCount(t *testing.T) {
	_, err := Evaluate(hand(t, "As", "Ks", "Qs", "Js"))
	require.Error(t, err)
}

func TestEvaluateRoyalFlush(t *testing.T) {
	r, err := Evaluate(hand(t, "As", "Ks", "Qs", "Js", "Ts"))
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, r.Category)
}

func TestEvaluateStraightFlushNotRoyal(t *testing.T) {
	r, err := Evaluate(hand(t, "9s", "8s", "7s", "6s", "5s"))
	require.NoError(t, err)
	assert.Equal(t, StraightFlush, r.Category)
}

func TestEvaluateFourOfAKind(t *testing.T) {
	r, err := Evaluate(hand(t, "Ac", "Ad", "Ah", "As", "2c"))
	require.NoError(t, err)
	assert.Equal(t, FourOfAKind, r.Category)
}

func TestEvaluateFullHouse(t *testing.T) {
	r, err := Evaluate(hand(t, "Ac", "Ad", "Ah", "2s", "2c"))
	require.NoError(t, err)
	assert.Equal(t, FullHouse, r.Category)
}

func TestEvaluateSevenCardsPicksBestFive(t *testing.T) {
	r, err := Evaluate(hand(t, "As", "Ks", "Qs", "Js", "Ts", "2c", "3d"))
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, r.Category)
	assert.Len(t, r.Best, 5)
}

func TestCompareOrdersStrongerHandHigher(t *testing.T) {
	quad, err := Evaluate(hand(t, "Ac", "Ad", "Ah", "As", "2c"))
	require.NoError(t, err)
	pair, err := Evaluate(hand(t, "Ac", "Ad", "2h", "3s", "4c"))
	require.NoError(t, err)

	assert.Equal(t, 1, Compare(quad, pair))
	assert.Equal(t, -1, Compare(pair, quad))
}

func TestCompareTieIsZero(t *testing.T) {
	a, err := Evaluate(hand(t, "2c", "7d", "9h", "Js", "Kc"))
	require.NoError(t, err)
	b, err := Evaluate(hand(t, "2d", "7c", "9s", "Jh", "Kd"))
	require.NoError(t, err)

	assert.Equal(t, 0, Compare(a, b))
}
