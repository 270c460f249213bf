package tableconfig

import "github.com/foldline/holdem-engine/internal/table"

// NewTable builds a table.Table seeded from TableRules, with an empty
// seat map ready for players to join. Stakes and timer policy are only
// re-read by the core at hand boundaries; nothing here mutates a table
// mid-hand.
func (t *TableRules) NewTable(id string) *table.Table {
	return &table.Table{
		ID:              id,
		SmallBlind:      t.SmallBlind,
		BigBlind:        t.BigBlind,
		MinBuyIn:        t.BuyInMin,
		MaxBuyIn:        t.BuyInMax,
		ActionDeadlineS: t.ActionDeadlineS,
		TimeBankEnabled: t.TimeBankEnabled,
		TimeBankS:       t.TimeBankS,
		Seats:           make(map[int]*table.Player),
	}
}
