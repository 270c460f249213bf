package tableconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
}

func TestLoadDecodesHCLAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.hcl")
	const src = `
table "high-stakes" {
  small_blind = 5
  big_blind   = 10
}

table "micro" {
  small_blind       = 1
  big_blind         = 2
  max_seats         = 6
  buy_in_min        = 40
  buy_in_max        = 400
  action_deadline_s = 20
  time_bank_enabled = true
  time_bank_s       = 30
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Tables, 2)

	hi := cfg.ByName("high-stakes")
	require.NotNil(t, hi)
	assert.Equal(t, 9, hi.MaxSeats, "default max seats")
	assert.Equal(t, 500, hi.BuyInMin, "default buy-in min is 50x big blind")
	assert.Equal(t, 5000, hi.BuyInMax, "default buy-in max is 500x big blind")
	assert.Equal(t, 30, hi.ActionDeadlineS, "default action deadline")
	assert.False(t, hi.TimeBankEnabled)

	micro := cfg.ByName("micro")
	require.NotNil(t, micro)
	assert.Equal(t, 6, micro.MaxSeats)
	assert.Equal(t, 20, micro.ActionDeadlineS)
	assert.Equal(t, 30, micro.TimeBankS)
}

func TestValidateRejectsBadBlindOrdering(t *testing.T) {
	cfg := &Config{Tables: []TableRules{{
		Name: "bad", SmallBlind: 5, BigBlind: 2, MaxSeats: 6, BuyInMin: 100, BuyInMax: 1000, ActionDeadlineS: 30,
	}}}
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestNewTableSeedsFromRules(t *testing.T) {
	rules := &TableRules{
		Name: "main", SmallBlind: 1, BigBlind: 2, MaxSeats: 9,
		BuyInMin: 100, BuyInMax: 1000, ActionDeadlineS: 30,
		TimeBankEnabled: true, TimeBankS: 60,
	}
	tbl := rules.NewTable("t1")
	assert.Equal(t, "t1", tbl.ID)
	assert.Equal(t, 1, tbl.SmallBlind)
	assert.Equal(t, 2, tbl.BigBlind)
	assert.Equal(t, 60, tbl.TimeBankS)
	assert.NotNil(t, tbl.Seats)
	assert.Empty(t, tbl.Seats)
}
