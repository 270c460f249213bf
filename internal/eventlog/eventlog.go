// Package eventlog implements the hand event log (C7): an append-only,
// per-hand sequenced store of typed events that underpins both replay
// and crash recovery, plus a HandSummary projection materialised on
// HandCompleted. Generalised from the teacher's internal/game/events.go
// EventType/GameEvent/SimpleEventBus — a transient pub/sub bus — into an
// in-memory, sequenced, per-hand-partitioned log per spec §4.7.
package eventlog

import (
	"sync"
	"time"

	"github.com/foldline/holdem-engine/internal/pokererr"
)

// Type identifies the kind of a HandEvent.
type Type string

const (
	HandStarted           Type = "hand_started"
	BlindsPosted          Type = "blinds_posted"
	AntePosted            Type = "ante_posted"
	HoleCardsDealt        Type = "hole_cards_dealt"
	PlayerActed           Type = "player_acted"
	BettingRoundCompleted Type = "betting_round_completed"
	CommunityCardsDealt   Type = "community_cards_dealt"
	PlayerShowedCards     Type = "player_showed_cards"
	PlayerMuckedCards     Type = "player_mucked_cards"
	PotAwarded            Type = "pot_awarded"
	HandCompleted         Type = "hand_completed"
)

// Event is one entry in a hand's event log: a shared header (hand id,
// sequence number, timestamp, type) plus a type-specific payload.
type Event struct {
	HandID    string
	Sequence  int
	Type      Type
	Timestamp time.Time
	Payload   any
}

// HandSummary is auto-materialised when a HandCompleted event is
// appended: who won, how much, how long the hand took, and whether it
// reached showdown.
type HandSummary struct {
	HandID         string
	TableID        string
	WinnerIDs      []string
	TotalPot       int
	PlayerCount    int
	WentToShowdown bool
	DurationMS     int64
	CompletedAt    time.Time
}

// HandCompletedPayload is the expected payload shape of a
// HandCompleted event; Append reads it via a type assertion to build
// the HandSummary.
type HandCompletedPayload struct {
	TableID        string
	WinnerIDs      []string
	TotalPot       int
	PlayerCount    int
	WentToShowdown bool
	DurationMS     int64
}

// Log is a thread-safe, in-memory reference implementation of the
// event log. The orchestrator only appends to it; nothing in this
// module folds the stored events back into Hand state.
type Log struct {
	mu        sync.Mutex
	byHand    map[string][]Event
	summaries map[string]HandSummary
	byTable   []string // hand ids in append order, for GetTableHistory
	tableOf   map[string]string
}

// New constructs an empty in-memory Log.
func New() *Log {
	return &Log{
		byHand:    make(map[string][]Event),
		summaries: make(map[string]HandSummary),
		tableOf:   make(map[string]string),
	}
}

// Append adds a single event to the given hand's log. Sequence must be
// exactly one greater than the hand's current last sequence (1 for
// the first event); a duplicate or out-of-order sequence fails with
// Conflict and the append is abandoned.
func (l *Log) Append(handID string, tableID string, seq int, typ Type, payload any, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendLocked(handID, tableID, seq, typ, payload, at)
}

func (l *Log) appendLocked(handID string, tableID string, seq int, typ Type, payload any, at time.Time) error {
	existing := l.byHand[handID]
	want := len(existing) + 1
	if seq != want {
		return pokererr.New(pokererr.Conflict, "eventlog: hand %s expected sequence %d, got %d", handID, want, seq)
	}

	evt := Event{HandID: handID, Sequence: seq, Type: typ, Timestamp: at, Payload: payload}
	l.byHand[handID] = append(existing, evt)
	if _, seen := l.tableOf[handID]; !seen {
		l.tableOf[handID] = tableID
		l.byTable = append(l.byTable, handID)
	}

	if typ == HandCompleted {
		if p, ok := payload.(HandCompletedPayload); ok {
			l.summaries[handID] = HandSummary{
				HandID:         handID,
				TableID:        tableID,
				WinnerIDs:      p.WinnerIDs,
				TotalPot:       p.TotalPot,
				PlayerCount:    p.PlayerCount,
				WentToShowdown: p.WentToShowdown,
				DurationMS:     p.DurationMS,
				CompletedAt:    at,
			}
		}
	}
	return nil
}

// AppendRange appends a batch of events atomically: if any would
// conflict, none are applied.
func (l *Log) AppendRange(handID string, tableID string, events []struct {
	Sequence int
	Type     Type
	Payload  any
	At       time.Time
}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing := l.byHand[handID]
	want := len(existing) + 1
	for _, e := range events {
		if e.Sequence != want {
			return pokererr.New(pokererr.Conflict, "eventlog: hand %s expected sequence %d, got %d", handID, want, e.Sequence)
		}
		want++
	}
	for _, e := range events {
		if err := l.appendLocked(handID, tableID, e.Sequence, e.Type, e.Payload, e.At); err != nil {
			return err
		}
	}
	return nil
}

// GetEvents returns the full ordered event stream for a hand.
func (l *Log) GetEvents(handID string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.byHand[handID]))
	copy(out, l.byHand[handID])
	return out
}

// GetEventsFrom returns events for a hand with sequence > from,
// letting a reconnecting client replay only what it missed.
func (l *Log) GetEventsFrom(handID string, from int) []Event {
	all := l.GetEvents(handID)
	var out []Event
	for _, e := range all {
		if e.Sequence > from {
			out = append(out, e)
		}
	}
	return out
}

// GetLastSequence returns the highest sequence number appended for a
// hand, or 0 if none.
func (l *Log) GetLastSequence(handID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byHand[handID])
}

// GetSummary returns the HandSummary materialised for a completed
// hand, and whether one exists.
func (l *Log) GetSummary(handID string) (HandSummary, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.summaries[handID]
	return s, ok
}

// GetTableHistory returns up to limit hand summaries for a table,
// newest first.
func (l *Log) GetTableHistory(tableID string, limit int) []HandSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []HandSummary
	for i := len(l.byTable) - 1; i >= 0 && len(out) < limit; i-- {
		handID := l.byTable[i]
		if l.tableOf[handID] != tableID {
			continue
		}
		if s, ok := l.summaries[handID]; ok {
			out = append(out, s)
		}
	}
	return out
}
