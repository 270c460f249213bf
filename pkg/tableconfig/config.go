// Package tableconfig loads TableRules from HCL config files. It is
// consumed only at hand boundaries (StartNewHand/StartBombPot); the
// core has no mid-hand config mutation path.
//
// Grounded on the teacher's internal/server/config.go: the same
// block/label shape, a DefaultConfig-with-fallback loader, and a
// Validate pass, narrowed to the table-rules surface this engine
// actually owns (no server address/port, no bot blocks — AI
// opponents are an explicit non-goal of this system).
package tableconfig

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the top-level document: one or more named tables.
type Config struct {
	Tables []TableRules `hcl:"table,block"`
}

// TableRules is the set of per-table parameters the core consults at
// hand boundaries: stakes, buy-in range, seating, and the action-timer
// policy (§4.9/C10).
type TableRules struct {
	Name            string `hcl:"name,label"`
	SmallBlind      int    `hcl:"small_blind"`
	BigBlind        int    `hcl:"big_blind"`
	MaxSeats        int    `hcl:"max_seats,optional"`
	BuyInMin        int    `hcl:"buy_in_min,optional"`
	BuyInMax        int    `hcl:"buy_in_max,optional"`
	ActionDeadlineS int    `hcl:"action_deadline_s,optional"`
	TimeBankEnabled bool   `hcl:"time_bank_enabled,optional"`
	TimeBankS       int    `hcl:"time_bank_s,optional"`
}

// DefaultConfig returns a single default table, used when no config
// file is present.
func DefaultConfig() *Config {
	return &Config{
		Tables: []TableRules{
			{
				Name:            "main",
				SmallBlind:      1,
				BigBlind:        2,
				MaxSeats:        9,
				BuyInMin:        100,
				BuyInMax:        1000,
				ActionDeadlineS: 30,
				TimeBankEnabled: true,
				TimeBankS:       60,
			},
		},
	}
}

// Load reads and decodes an HCL file at filename. A missing file is
// not an error: it yields DefaultConfig(), matching the teacher's
// LoadServerConfig fallback.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tableconfig: parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tableconfig: decode %s: %s", filename, diags.Error())
	}

	for i := range cfg.Tables {
		applyDefaults(&cfg.Tables[i])
	}

	return &cfg, nil
}

func applyDefaults(t *TableRules) {
	if t.MaxSeats == 0 {
		t.MaxSeats = 9
	}
	if t.BuyInMin == 0 {
		t.BuyInMin = t.BigBlind * 50
	}
	if t.BuyInMax == 0 {
		t.BuyInMax = t.BigBlind * 500
	}
	if t.ActionDeadlineS == 0 {
		t.ActionDeadlineS = 30
	}
	if t.TimeBankS == 0 && t.TimeBankEnabled {
		t.TimeBankS = 60
	}
}

// Validate checks the decoded config for internally consistent
// stakes, seating, and buy-in ranges.
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("tableconfig: at least one table must be configured")
	}
	for _, t := range c.Tables {
		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind <= t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", t.Name)
		}
		if t.MaxSeats < 2 || t.MaxSeats > 10 {
			return fmt.Errorf("table %s: max seats must be between 2 and 10", t.Name)
		}
		if t.BuyInMin >= t.BuyInMax {
			return fmt.Errorf("table %s: buy-in minimum must be less than maximum", t.Name)
		}
		if t.ActionDeadlineS <= 0 {
			return fmt.Errorf("table %s: action deadline must be positive", t.Name)
		}
		if t.TimeBankEnabled && t.TimeBankS <= 0 {
			return fmt.Errorf("table %s: time bank seconds must be positive when enabled", t.Name)
		}
	}
	return nil
}

// ByName returns the named table's rules, or nil if not configured.
func (c *Config) ByName(name string) *TableRules {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
