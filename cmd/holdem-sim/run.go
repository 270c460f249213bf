package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/foldline/holdem-engine/internal/eventlog"
	"github.com/foldline/holdem-engine/internal/orchestrator"
)

// RunCmd simulates self-play hands across N tables, one goroutine per
// table, demonstrating spec §5's "parallel execution across tables,
// serialised within a table". Grounded on
// internal/evaluator/equity.go's errgroup worker-pool pattern (one
// independent RNG per worker to avoid contention) and the teacher's
// cmd/simulate's hand-count/showdown aggregate reporting.
type RunCmd struct {
	Tables     int `default:"4" help:"Number of tables to run concurrently."`
	Hands      int `default:"1000" help:"Hands to simulate per table."`
	Players    int `default:"6" help:"Players seated per table (2-9)."`
	SmallBlind int `default:"1" help:"Small blind size."`
	BigBlind   int `default:"2" help:"Big blind size."`
	Stack      int `default:"200" help:"Starting stack per player, reset between hands."`
}

// tableStats accumulates per-table results; fields are only ever
// touched from the single goroutine that owns that table, then summed
// under runStats' mutex once the table finishes.
type tableStats struct {
	hands     int
	showdowns int
	errors    int
}

type runStats struct {
	mu sync.Mutex
	tableStats
}

func (s *runStats) add(t tableStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands += t.hands
	s.showdowns += t.showdowns
	s.errors += t.errors
}

func (c *RunCmd) Run() error {
	if c.Players < 2 || c.Players > 9 {
		return fmt.Errorf("players must be between 2 and 9, got %d", c.Players)
	}

	start := time.Now()
	stats := &runStats{}

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < c.Tables; i++ {
		tableIdx := i
		g.Go(func() error {
			return c.runTable(ctx, tableIdx, stats)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("holdem-sim run: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("tables:       %d\n", c.Tables)
	fmt.Printf("hands:        %d\n", stats.hands)
	fmt.Printf("showdowns:    %d (%.1f%%)\n", stats.showdowns, pct(stats.showdowns, stats.hands))
	fmt.Printf("errors:       %d\n", stats.errors)
	fmt.Printf("elapsed:      %s\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("hands/sec:    %.0f\n", float64(stats.hands)/elapsed.Seconds())
	}
	return nil
}

func (c *RunCmd) runTable(ctx context.Context, tableIdx int, stats *runStats) error {
	tableID := fmt.Sprintf("sim-%d", tableIdx)
	tbl := newSimTable(tableID, c.Players, c.Stack, c.SmallBlind, c.BigBlind)
	o := orchestrator.New(eventlog.New(), nil)
	rng := rand.New(rand.NewSource(int64(tableIdx) + 1))

	local := tableStats{}
	for n := 0; n < c.Hands; n++ {
		select {
		case <-ctx.Done():
			stats.add(local)
			return ctx.Err()
		default:
		}

		reseat(tbl, c.Stack)
		wentToShowdown, err := playHandToCompletion(o, tbl, rng)
		if err != nil {
			local.errors++
			logger.Warn("hand failed", "table", tableID, "hand", n, "err", err)
			continue
		}
		local.hands++
		if wentToShowdown {
			local.showdowns++
		}
	}

	stats.add(local)
	return nil
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
