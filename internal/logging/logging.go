// Package logging centralises the engine's charmbracelet/log setup so
// every component logs with a consistent "component" field.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
)

// Root is the process-wide base logger. Components derive their own
// logger from it via For, rather than constructing their own.
var Root = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.000",
})

// For returns a logger scoped to a named component, e.g. "orchestrator"
// or "timer".
func For(component string) *log.Logger {
	return Root.With("component", component)
}

// DumpState renders v as a multi-line Go-syntax dump at Debug level.
// Used when an InvalidState abort needs a full snapshot of the hand
// that broke an invariant, without attaching a debugger.
func DumpState(logger *log.Logger, msg string, v any) {
	logger.Debug(msg, "state", spew.Sdump(v))
}
