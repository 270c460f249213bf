// Package phase implements the hand phase state machine (C6):
// Waiting→Preflop→Flop→Turn→River→Showdown→Complete, with a shortcut
// to Complete from any betting street, modelled as a tagged variant
// and a dispatch table per spec §9's design note rather than the
// teacher's switch-driven NextStreet flow.
package phase

import "github.com/foldline/holdem-engine/internal/pokererr"

// Phase is one state in the hand lifecycle.
type Phase int

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Complete
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Hook is called when a phase is entered or exited. board is the
// current community board length, used to validate street entry.
type Hook func(boardLen int) error

// Machine drives phase transitions for a single hand, dispatching
// through per-phase entry validation and Enter/Exit hooks rather than
// a single monolithic switch.
type Machine struct {
	current Phase
	onEnter map[Phase]Hook
	onExit  map[Phase]Hook
}

// New constructs a Machine starting in Waiting.
func New() *Machine {
	return &Machine{
		current: Waiting,
		onEnter: make(map[Phase]Hook),
		onExit:  make(map[Phase]Hook),
	}
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	return m.current
}

// OnEnter registers a hook run when entering p.
func (m *Machine) OnEnter(p Phase, h Hook) {
	m.onEnter[p] = h
}

// OnExit registers a hook run when leaving p.
func (m *Machine) OnExit(p Phase, h Hook) {
	m.onExit[p] = h
}

// next lists the only permitted forward transition from each phase,
// excluding the any-street→Complete shortcut, which ForceComplete
// handles separately.
var next = map[Phase]Phase{
	Waiting:  Preflop,
	Preflop:  Flop,
	Flop:     Turn,
	Turn:     River,
	River:    Showdown,
	Showdown: Complete,
}

// minBoardLen is the community board length a phase requires on entry.
var minBoardLen = map[Phase]int{
	Flop:  3,
	Turn:  4,
	River: 5,
}

// Advance moves to the next phase in sequence, running the current
// phase's exit hook then the target phase's entry hook. boardLen is
// the community board length at the moment of transition, used to
// validate street entry: a street's own cards are dealt before the
// transition, so Flop requires |board|>=3, Turn >=4 and River >=5. Fails with
// PreconditionFailed if the machine is already Complete, or
// InvalidState if boardLen doesn't meet the target phase's minimum.
func (m *Machine) Advance(boardLen int) error {
	if m.current == Complete {
		return pokererr.New(pokererr.PreconditionFailed, "phase: cannot advance past Complete")
	}
	target, ok := next[m.current]
	if !ok {
		return pokererr.New(pokererr.InvalidState, "phase: no transition defined from %s", m.current)
	}
	return m.transitionTo(target, boardLen)
}

// ForceComplete takes the any-street→Complete shortcut, used when
// exactly one non-folded player remains. Legal from Preflop, Flop,
// Turn, River or Showdown; a no-op if already Complete.
func (m *Machine) ForceComplete(boardLen int) error {
	if m.current == Complete {
		return nil
	}
	switch m.current {
	case Preflop, Flop, Turn, River, Showdown:
		return m.transitionTo(Complete, boardLen)
	default:
		return pokererr.New(pokererr.InvalidState, "phase: cannot force-complete from %s", m.current)
	}
}

func (m *Machine) transitionTo(target Phase, boardLen int) error {
	if min, ok := minBoardLen[target]; ok && boardLen < min {
		return pokererr.New(pokererr.InvalidState, "phase: entering %s requires board length >= %d, have %d", target, min, boardLen)
	}
	if exit, ok := m.onExit[m.current]; ok {
		if err := exit(boardLen); err != nil {
			return err
		}
	}
	m.current = target
	if enter, ok := m.onEnter[target]; ok {
		if err := enter(boardLen); err != nil {
			return err
		}
	}
	return nil
}

// IsBettingStreet reports whether p is one of the four streets where
// betting occurs.
func IsBettingStreet(p Phase) bool {
	switch p {
	case Preflop, Flop, Turn, River:
		return true
	default:
		return false
	}
}
