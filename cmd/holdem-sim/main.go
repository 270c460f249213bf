// Command holdem-sim is a reference driver for the engine: it runs
// self-play hands across N independent tables concurrently and either
// prints aggregate statistics (run) or renders one table live in a
// terminal viewer (watch). Grounded on the teacher's cmd/simulate (the
// CLI shape, per-hand result aggregation) and cmd/holdem-client (a
// thin kong entrypoint around a single subcommand), generalised to
// kong's multi-command dispatch since this binary has two modes.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

// CLI is the top-level command set.
var CLI struct {
	Run   RunCmd   `cmd:"" help:"Simulate self-play hands across N concurrent tables and print aggregate statistics."`
	Watch WatchCmd `cmd:"" help:"Run a single table and render its sanitised state live in a terminal viewer."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holdem-sim"),
		kong.Description("Self-play driver and terminal viewer for the holdem engine."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
