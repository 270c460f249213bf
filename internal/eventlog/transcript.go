// RenderTranscript renders a hand's event log as human-readable lines,
// grounded on the teacher's internal/game/events.go EventFormatter (an
// ANSI-colored human-readable renderer for its transient event bus);
// here it walks the sequenced, in-memory Log instead of a live pub/sub
// stream. Supplements spec §4.7, which only requires replay-sufficient
// storage, with a presentation rendering the original distillation
// dropped.
package eventlog

import (
	"fmt"
	"strings"
)

// RenderTranscript renders every event for a hand as one line per
// event, in sequence order. It makes no assumption about payload
// shape beyond what a %v can print, so it stays useful even for
// payload types this package doesn't otherwise understand.
func RenderTranscript(l *Log, handID string) string {
	events := l.GetEvents(handID)
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "[%3d] %-24s %s\n", e.Sequence, e.Type, describe(e.Payload))
	}
	return b.String()
}

func describe(payload any) string {
	switch p := payload.(type) {
	case nil:
		return ""
	case HandCompletedPayload:
		outcome := "folded out"
		if p.WentToShowdown {
			outcome = "showdown"
		}
		return fmt.Sprintf("pot=%d winners=%v (%s)", p.TotalPot, p.WinnerIDs, outcome)
	case fmt.Stringer:
		return p.String()
	default:
		return fmt.Sprintf("%v", p)
	}
}
