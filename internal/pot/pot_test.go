package pot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNoAllInsProducesSinglePot(t *testing.T) {
	pots := Build([]Contribution{
		{PlayerID: "a", Amount: 10},
		{PlayerID: "b", Amount: 10},
	})
	require.Len(t, pots, 1)
	assert.Equal(t, Main, pots[0].Kind)
	assert.Equal(t, 20, pots[0].Amount)
	assert.ElementsMatch(t, []string{"a", "b"}, pots[0].Eligible)
}

func TestBuildSidePotScenario(t *testing.T) {
	// A(10) B(50) C(200) all-in preflop: main=30 {A,B,C}, side1=80 {B,C}, side2=150 {C}.
	pots := Build([]Contribution{
		{PlayerID: "A", Amount: 10, AllIn: true},
		{PlayerID: "B", Amount: 50, AllIn: true},
		{PlayerID: "C", Amount: 200, AllIn: true},
	})
	require.Len(t, pots, 3)

	assert.Equal(t, Main, pots[0].Kind)
	assert.Equal(t, 30, pots[0].Amount)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, pots[0].Eligible)

	assert.Equal(t, Side, pots[1].Kind)
	assert.Equal(t, 80, pots[1].Amount)
	assert.ElementsMatch(t, []string{"B", "C"}, pots[1].Eligible)

	assert.Equal(t, Side, pots[2].Kind)
	assert.Equal(t, 150, pots[2].Amount)
	assert.ElementsMatch(t, []string{"C"}, pots[2].Eligible)

	var total int
	for _, p := range pots {
		total += p.Amount
	}
	assert.Equal(t, 260, total)
}

func TestBuildFoldedContributionFlowsIntoOpenPotNotEligible(t *testing.T) {
	pots := Build([]Contribution{
		{PlayerID: "folder", Amount: 5, Folded: true},
		{PlayerID: "a", Amount: 10},
		{PlayerID: "b", Amount: 10},
	})
	require.Len(t, pots, 1)
	assert.Equal(t, 25, pots[0].Amount)
	assert.ElementsMatch(t, []string{"a", "b"}, pots[0].Eligible)
}

func TestBuildStaggeredFoldExhaustionDoesNotSealUntilAllInZeroes(t *testing.T) {
	// Two folded players exhaust at different levels (3, then 7) while
	// two all-in actives keep playing on; neither fold-exhaustion may
	// seal a pot, since that would produce multiple pots sharing the
	// identical {a, b} eligible set.
	pots := Build([]Contribution{
		{PlayerID: "f1", Amount: 3, Folded: true},
		{PlayerID: "f2", Amount: 7, Folded: true},
		{PlayerID: "a", Amount: 10, AllIn: true},
		{PlayerID: "b", Amount: 10, AllIn: true},
	})
	require.Len(t, pots, 1)
	assert.Equal(t, 30, pots[0].Amount)
	assert.ElementsMatch(t, []string{"a", "b"}, pots[0].Eligible)
}

func TestSplitEvenNoOddChip(t *testing.T) {
	p := Pot{ID: 0, Kind: Main, Amount: 20}
	award := Split(p, []string{"a", "b"}, []string{"a", "b"})
	assert.Equal(t, 10, award.Shares["a"])
	assert.Equal(t, 10, award.Shares["b"])
}

func TestSplitOddChipGoesToClosestClockwiseFromButton(t *testing.T) {
	p := Pot{ID: 0, Kind: Main, Amount: 21}
	// seatOrder starts with the seat immediately clockwise of the button.
	award := Split(p, []string{"a", "b"}, []string{"b", "a"})
	assert.Equal(t, 11, award.Shares["b"])
	assert.Equal(t, 10, award.Shares["a"])
}

func TestVerifyTotalDetectsMismatch(t *testing.T) {
	pots := []Pot{{ID: 0, Amount: 100}}
	awards := []Award{{PotID: 0, Shares: map[string]int{"a": 90}}}
	err := VerifyTotal(pots, awards)
	require.Error(t, err)
}

func TestVerifyTotalPasses(t *testing.T) {
	pots := []Pot{{ID: 0, Amount: 100}}
	awards := []Award{{PotID: 0, Shares: map[string]int{"a": 50, "b": 50}}}
	require.NoError(t, VerifyTotal(pots, awards))
}
