// Package timer implements the action-timer subsystem (C10): a
// per-table scheduling loop that ticks once per second, warns at the
// 10-second threshold, activates a time bank on expiry, and issues
// the authoritative auto-fold. Grounded on spec §4.10 and §9's
// "one task per active table timer, owning a ticker and a cancel
// channel" design note; the coder/quartz usage found in the teacher's
// internal/testing/test_infrastructure.go is the source for testing
// this with a mock clock instead of real sleeps.
package timer

import (
	"sync"
	"time"

	"github.com/foldline/holdem-engine/internal/logging"
	"github.com/foldline/holdem-engine/internal/pokererr"
)

var log = logging.For("timer")

// Broadcaster is the subset of the outbound surface (§6.3) the timer
// needs to publish tick/warning/expiry events.
type Broadcaster interface {
	TimerStarted(tableID, playerID string, totalSeconds int, bankAvailable bool)
	TimerTick(tableID, playerID string, remaining int)
	TimerWarning(tableID, playerID string, remaining int)
	TimeBankActivated(tableID, playerID string, bankRemaining int)
	TimerExpired(tableID, playerID string)
	TimerCancelled(tableID, playerID string)
}

// ForceFolder is called when a timer expires with no bank remaining;
// normally the orchestrator's ForceTimeoutFold.
type ForceFolder interface {
	ForceTimeoutFold(tableID string, timeBankConsumed int) error
}

type session struct {
	tableID      string
	playerID     string
	mainRemain   int
	bankEnabled  bool
	bankRemain   int
	bankActive   bool
	warningSent  bool
	paused       bool
	cancel       chan struct{}
	bankConsumed int
	mu           sync.Mutex
}

// Scheduler runs at most one active timer per table.
type Scheduler struct {
	clock       Clock
	broadcaster Broadcaster
	folder      ForceFolder

	mu       sync.Mutex
	sessions map[string]*session // tableID -> active session
}

// New constructs a Scheduler. clock is normally SystemClock{} in
// production and a QuartzClock wrapping a mock in tests.
func New(clock Clock, b Broadcaster, f ForceFolder) *Scheduler {
	return &Scheduler{
		clock:       clock,
		broadcaster: b,
		folder:      f,
		sessions:    make(map[string]*session),
	}
}

// StartTimer cancels any existing timer for the table and starts a
// new one, ticking once per second until cancelled or expired.
func (s *Scheduler) StartTimer(tableID, playerID string, actionSec int, bankEnabled bool, bankSec int) {
	s.CancelTimer(tableID, playerID)

	sess := &session{
		tableID:     tableID,
		playerID:    playerID,
		mainRemain:  actionSec,
		bankEnabled: bankEnabled,
		bankRemain:  bankSec,
		cancel:      make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[tableID] = sess
	s.mu.Unlock()

	s.broadcaster.TimerStarted(tableID, playerID, actionSec, bankEnabled)

	go s.run(sess)
}

func (s *Scheduler) run(sess *session) {
	ticker := s.clock.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sess.cancel:
			return
		case <-ticker.C():
			if s.tick(sess) {
				return
			}
		}
	}
}

// tick applies one second of elapsed time and returns true if the
// timer has expired and the loop should stop.
func (s *Scheduler) tick(sess *session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.paused {
		return false
	}

	if !sess.bankActive {
		if sess.mainRemain > 0 {
			sess.mainRemain--
			s.broadcaster.TimerTick(sess.tableID, sess.playerID, sess.mainRemain)
			if sess.mainRemain <= 10 && !sess.warningSent {
				sess.warningSent = true
				s.broadcaster.TimerWarning(sess.tableID, sess.playerID, sess.mainRemain)
			}
			if sess.mainRemain > 0 {
				return false
			}
		}
		// main timer just reached zero
		if sess.bankEnabled && sess.bankRemain > 0 {
			sess.bankActive = true
			s.broadcaster.TimeBankActivated(sess.tableID, sess.playerID, sess.bankRemain)
			return false
		}
		s.expire(sess)
		return true
	}

	// bank is active
	if sess.bankRemain > 0 {
		sess.bankRemain--
		sess.bankConsumed++
		if sess.bankRemain > 0 {
			return false
		}
	}
	s.expire(sess)
	return true
}

func (s *Scheduler) expire(sess *session) {
	s.broadcaster.TimerExpired(sess.tableID, sess.playerID)
	consumed := sess.bankConsumed
	if s.folder != nil {
		if err := s.folder.ForceTimeoutFold(sess.tableID, consumed); err != nil {
			log.Error("force timeout fold failed", "table", sess.tableID, "player", sess.playerID, "err", err)
		}
	}
	s.mu.Lock()
	if s.sessions[sess.tableID] == sess {
		delete(s.sessions, sess.tableID)
	}
	s.mu.Unlock()
}

// CancelTimer stops the table's active timer (if any), publishes
// TimerCancelled, and returns the number of bank seconds consumed so
// the caller can decrement the player's bank. Idempotent: calling it
// twice, or on a table with no active timer, is a no-op returning 0.
func (s *Scheduler) CancelTimer(tableID, playerID string) int {
	s.mu.Lock()
	sess, ok := s.sessions[tableID]
	if ok {
		delete(s.sessions, tableID)
	}
	s.mu.Unlock()

	if !ok {
		return 0
	}

	sess.mu.Lock()
	consumed := sess.bankConsumed
	sess.mu.Unlock()

	close(sess.cancel)
	s.broadcaster.TimerCancelled(tableID, playerID)
	return consumed
}

// Pause suspends tick effects for the table's active timer without
// stopping the underlying loop.
func (s *Scheduler) Pause(tableID string) error {
	sess, ok := s.activeSession(tableID)
	if !ok {
		return pokererr.New(pokererr.PreconditionFailed, "timer: no active timer for table %s", tableID)
	}
	sess.mu.Lock()
	sess.paused = true
	sess.mu.Unlock()
	return nil
}

// Resume lifts a Pause.
func (s *Scheduler) Resume(tableID string) error {
	sess, ok := s.activeSession(tableID)
	if !ok {
		return pokererr.New(pokererr.PreconditionFailed, "timer: no active timer for table %s", tableID)
	}
	sess.mu.Lock()
	sess.paused = false
	sess.mu.Unlock()
	return nil
}

// StopAll cancels every active timer for a table (there is at most
// one) without triggering an auto-fold. Used when the table worker
// shuts down mid-hand.
func (s *Scheduler) StopAll(tableID string) {
	s.mu.Lock()
	sess, ok := s.sessions[tableID]
	if ok {
		delete(s.sessions, tableID)
	}
	s.mu.Unlock()
	if ok {
		close(sess.cancel)
	}
}

func (s *Scheduler) activeSession(tableID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tableID]
	return sess, ok
}
