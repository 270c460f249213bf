// Package orchestrator implements the game orchestrator (C9): it
// drives one hand end to end — deal, apply validated intents, advance
// phases, trigger all-in runouts, and hand off to showdown — wiring
// together C1-C8 and C11. Grounded on the teacher's
// internal/game/engine.go GameEngine.PlayHand loop and table.go's
// deal/position/button helpers, generalised to the full
// StartNewHand/StartBombPot/ExecutePlayerAction/ForceTimeoutFold
// contract of spec §4.9.
package orchestrator

import (
	"fmt"
	"time"

	"github.com/foldline/holdem-engine/cards"
	"github.com/foldline/holdem-engine/internal/betting"
	"github.com/foldline/holdem-engine/internal/eventlog"
	"github.com/foldline/holdem-engine/internal/logging"
	"github.com/foldline/holdem-engine/internal/phase"
	"github.com/foldline/holdem-engine/internal/pokererr"
	"github.com/foldline/holdem-engine/internal/pot"
	"github.com/foldline/holdem-engine/internal/showdown"
	"github.com/foldline/holdem-engine/internal/table"
	"github.com/foldline/holdem-engine/internal/validator"
)

var log = logging.For("orchestrator")

// TimerStarter is the subset of C10 the orchestrator drives directly:
// starting the next player's clock and cancelling the current one.
type TimerStarter interface {
	StartTimer(tableID, playerID string, actionSec int, bankEnabled bool, bankSec int)
	CancelTimer(tableID, playerID string) int
}

// HandStartResult is returned by StartNewHand/StartBombPot.
type HandStartResult struct {
	Hand      *table.Hand
	HoleCards map[string][]cards.Card
}

// ActionResult is returned by ExecutePlayerAction/ForceTimeoutFold.
type ActionResult struct {
	Hand            *table.Hand
	RoundCompleted  bool
	HandCompleted   bool
	ShowdownOutcome *showdown.Outcome
}

// AvailableActions mirrors the outbound shape of §6.1's
// GetAvailableActions response.
type AvailableActions struct {
	PlayerID string
	Legal    validator.LegalActions
}

type handRuntime struct {
	hand         *table.Hand
	deck         *cards.Deck
	round        *betting.Round
	machine      *phase.Machine
	actOrder     []string // contesting player ids in act order for the current street
	actIdx       int
	pendingMuck  map[string]bool
	awaitingMuck bool
}

// Orchestrator drives hands for a set of tables. It is not safe for
// concurrent use on the same table; callers must serialise intents
// per table (spec §5 — each table is owned by a single logical worker).
type Orchestrator struct {
	eventLog *eventlog.Log
	timer    TimerStarter
	runtimes map[string]*handRuntime // tableID -> active hand runtime
	handSeq  map[string]int          // tableID -> hand number counter
}

// New constructs an Orchestrator. timer may be nil if the caller
// doesn't wire the action-timer subsystem (e.g. in tests).
func New(eventLog *eventlog.Log, timer TimerStarter) *Orchestrator {
	return &Orchestrator{
		eventLog: eventLog,
		timer:    timer,
		runtimes: make(map[string]*handRuntime),
		handSeq:  make(map[string]int),
	}
}

// StartNewHand rotates the button, assigns blinds, deals hole cards,
// and transitions to Preflop.
func (o *Orchestrator) StartNewHand(t *table.Table) (HandStartResult, error) {
	active := t.SeatedActivePlayers()
	if len(active) < 2 {
		return HandStartResult{}, pokererr.New(pokererr.PreconditionFailed, "orchestrator: need >=2 active players, have %d", len(active))
	}

	rotateButton(t, active)
	o.handSeq[t.ID]++

	h := &table.Hand{
		ID:         fmt.Sprintf("%s-%d", t.ID, o.handSeq[t.ID]),
		TableID:    t.ID,
		Number:     o.handSeq[t.ID],
		ButtonSeat: t.ButtonSeat,
		SBAmount:   t.SmallBlind,
		BBAmount:   t.BigBlind,
	}
	for _, p := range active {
		h.PlayerIDs = append(h.PlayerIDs, p.ID)
		p.Status = table.Active
		p.RoundBet = 0
		p.HandBet = 0
		p.HoleCards = nil
	}

	sbSeat, bbSeat := assignBlindSeats(t, active)
	h.SBSeat, h.BBSeat = sbSeat, bbSeat
	sbPlayer, bbPlayer := t.Seats[sbSeat], t.Seats[bbSeat]

	deck := cards.New()
	if err := deck.Shuffle(); err != nil {
		return HandStartResult{}, pokererr.Wrap(pokererr.InvalidState, err, "orchestrator: shuffle failed")
	}

	rt := &handRuntime{hand: h, deck: deck, machine: phase.New()}
	o.runtimes[t.ID] = rt
	t.Hand = h

	postBlind(sbPlayer, t.SmallBlind)
	postBlind(bbPlayer, t.BigBlind)
	rt.round = betting.NewPreflop(sbPlayer.ID, sbPlayer.RoundBet, bbPlayer.ID, bbPlayer.RoundBet)

	log.Debug("hand started", "table", t.ID, "hand", h.ID, "button", t.ButtonSeat)

	if err := o.appendEvent(h, eventlog.HandStarted, nil); err != nil {
		return HandStartResult{}, err
	}
	if err := o.appendEvent(h, eventlog.BlindsPosted, nil); err != nil {
		return HandStartResult{}, err
	}

	holeCards, err := dealHoleCards(deck, active, t.ButtonSeat)
	if err != nil {
		return HandStartResult{}, err
	}
	for _, p := range active {
		p.HoleCards = holeCards[p.ID]
	}
	if err := o.appendEvent(h, eventlog.HoleCardsDealt, holeCards); err != nil {
		return HandStartResult{}, err
	}

	if err := rt.machine.Advance(0); err != nil { // -> Preflop
		return HandStartResult{}, err
	}

	rt.actOrder = preflopActOrder(active, sbSeat, bbSeat)
	rt.actIdx = 0
	h.CurrentToActID = rt.actOrder[0]

	o.maybeStartTimer(t, h)

	return HandStartResult{Hand: h, HoleCards: holeCards}, nil
}

// StartBombPot collects an ante from every active player, deals hole
// cards and the flop (and a second board if doubleBoard), and begins
// betting directly on the flop. The button does not rotate.
func (o *Orchestrator) StartBombPot(t *table.Table, anteAmount int, doubleBoard bool) (HandStartResult, error) {
	active := t.SeatedActivePlayers()
	if len(active) < 2 {
		return HandStartResult{}, pokererr.New(pokererr.PreconditionFailed, "orchestrator: need >=2 active players, have %d", len(active))
	}

	o.handSeq[t.ID]++
	h := &table.Hand{
		ID:          fmt.Sprintf("%s-%d", t.ID, o.handSeq[t.ID]),
		TableID:     t.ID,
		Number:      o.handSeq[t.ID],
		ButtonSeat:  t.ButtonSeat,
		IsBombPot:   true,
		DoubleBoard: doubleBoard,
	}
	for _, p := range active {
		h.PlayerIDs = append(h.PlayerIDs, p.ID)
		p.Status = table.Active
		p.RoundBet = 0
		p.HandBet = 0
		p.HoleCards = nil
	}

	deck := cards.New()
	if err := deck.Shuffle(); err != nil {
		return HandStartResult{}, pokererr.Wrap(pokererr.InvalidState, err, "orchestrator: shuffle failed")
	}
	rt := &handRuntime{hand: h, deck: deck, machine: phase.New()}
	o.runtimes[t.ID] = rt
	t.Hand = h

	for _, p := range active {
		amount := anteAmount
		if amount > p.Stack {
			amount = p.Stack
		}
		p.Stack -= amount
		p.HandBet += amount
		if p.Stack == 0 {
			p.Status = table.AllIn
		}
		if err := o.appendEvent(h, eventlog.AntePosted, map[string]any{"playerID": p.ID, "amount": amount}); err != nil {
			return HandStartResult{}, err
		}
	}

	if t.ButtonContribution > 0 {
		if err := o.appendEvent(h, eventlog.AntePosted, map[string]any{"source": "button", "amount": t.ButtonContribution}); err != nil {
			return HandStartResult{}, err
		}
	}

	holeCards, err := dealHoleCards(deck, active, t.ButtonSeat)
	if err != nil {
		return HandStartResult{}, err
	}
	for _, p := range active {
		p.HoleCards = holeCards[p.ID]
	}
	if err := o.appendEvent(h, eventlog.HoleCardsDealt, holeCards); err != nil {
		return HandStartResult{}, err
	}

	if err := deck.Burn(); err != nil {
		return HandStartResult{}, err
	}
	flop, err := deck.DealN(3)
	if err != nil {
		return HandStartResult{}, err
	}
	h.Board = flop
	if doubleBoard {
		if err := deck.Burn(); err != nil {
			return HandStartResult{}, err
		}
		second, err := deck.DealN(3)
		if err != nil {
			return HandStartResult{}, err
		}
		h.SecondBoard = second
	}
	if err := o.appendEvent(h, eventlog.CommunityCardsDealt, map[string]any{"phase": "flop", "board": h.Board}); err != nil {
		return HandStartResult{}, err
	}

	if err := rt.machine.Advance(0); err != nil { // -> Preflop (skipped over, no betting)
		return HandStartResult{}, err
	}
	if err := rt.machine.Advance(len(h.Board)); err != nil { // -> Flop
		return HandStartResult{}, err
	}

	rt.round = betting.NewEmpty(betting.Flop, t.BigBlind)
	rt.actOrder = postflopActOrder(active, t.ButtonSeat)
	rt.actIdx = 0
	h.CurrentToActID = rt.actOrder[0]

	o.maybeStartTimer(t, h)

	return HandStartResult{Hand: h, HoleCards: holeCards}, nil
}

// ExecutePlayerAction validates and applies one player's intent.
func (o *Orchestrator) ExecutePlayerAction(t *table.Table, playerID string, action betting.Action, amount int) (ActionResult, error) {
	rt, ok := o.runtimes[t.ID]
	if !ok {
		return ActionResult{}, pokererr.New(pokererr.PreconditionFailed, "orchestrator: no active hand for table %s", t.ID)
	}
	h := rt.hand
	if h.CurrentToActID != playerID {
		return ActionResult{}, pokererr.New(pokererr.PreconditionFailed, "orchestrator: it is not %s's turn", playerID)
	}

	p := t.Seats[seatOf(t, playerID)]
	if p == nil {
		return ActionResult{}, pokererr.New(pokererr.PreconditionFailed, "orchestrator: unknown player %s", playerID)
	}

	ps := validator.PlayerState{PlayerID: playerID, Stack: p.Stack, Folded: p.Status == table.Folded, AllIn: p.Status == table.AllIn}
	va, err := validator.Validate(ps, rt.round, true, action, amount)
	if err != nil {
		return ActionResult{}, err
	}

	if o.timer != nil {
		o.timer.CancelTimer(t.ID, playerID)
	}

	applyAction(p, rt.round, va, action)

	if err := o.appendEvent(h, eventlog.PlayerActed, map[string]any{
		"playerID": playerID, "action": action.String(), "amount": va.AmountAdded, "phase": rt.machine.Current().String(),
	}); err != nil {
		return ActionResult{}, err
	}

	result := ActionResult{Hand: h}

	if remaining := contestingPlayers(t, h); len(remaining) <= 1 {
		if err := o.finishUncontested(t, rt, result.Hand); err != nil {
			return ActionResult{}, err
		}
		result.RoundCompleted = true
		result.HandCompleted = true
		delete(o.runtimes, t.ID)
		t.Hand = nil
		return result, nil
	}

	if !rt.round.IsComplete(contestants(t, h)) {
		o.advanceToNext(rt, t)
		o.maybeStartTimer(t, h)
		return result, nil
	}

	result.RoundCompleted = true
	if err := o.closeRound(t, rt); err != nil {
		return ActionResult{}, err
	}

	if rt.machine.Current() == phase.Complete || rt.machine.Current() == phase.Showdown {
		outcome, err := o.runShowdown(t, rt)
		if err != nil {
			return ActionResult{}, err
		}
		result.ShowdownOutcome = &outcome
		result.HandCompleted = true
		delete(o.runtimes, t.ID)
		t.Hand = nil
		return result, nil
	}

	o.maybeStartTimer(t, h)
	return result, nil
}

// ForceTimeoutFold decrements the current-to-act's time bank by the
// seconds the timer reports consumed, then applies an inbound Fold for
// them. The fold is recorded exactly like a voluntary one: the
// PlayerActed event carries no timeout marker.
func (o *Orchestrator) ForceTimeoutFold(t *table.Table, timeBankConsumed int) error {
	rt, ok := o.runtimes[t.ID]
	if !ok {
		return pokererr.New(pokererr.PreconditionFailed, "orchestrator: no active hand for table %s", t.ID)
	}
	playerID := rt.hand.CurrentToActID
	p := t.Seats[seatOf(t, playerID)]
	if p != nil {
		p.TimeBankS -= timeBankConsumed
		if p.TimeBankS < 0 {
			p.TimeBankS = 0
		}
	}
	_, err := o.ExecutePlayerAction(t, playerID, betting.Fold, 0)
	return err
}

// GetAvailableActions returns the legal action set for the current
// player to act, or a zero-value if no hand is active.
func (o *Orchestrator) GetAvailableActions(t *table.Table) AvailableActions {
	rt, ok := o.runtimes[t.ID]
	if !ok {
		return AvailableActions{}
	}
	playerID := rt.hand.CurrentToActID
	p := t.Seats[seatOf(t, playerID)]
	if p == nil {
		return AvailableActions{}
	}
	ps := validator.PlayerState{PlayerID: playerID, Stack: p.Stack, Folded: p.Status == table.Folded, AllIn: p.Status == table.AllIn}
	return AvailableActions{PlayerID: playerID, Legal: validator.Derive(ps, rt.round, true)}
}

// RequestShowdownMuck is a player's explicit request to muck during
// the live showdown sequence; forwarded to whatever showdown.Run call
// is collecting decisions for the active hand via pendingMuck.
func (o *Orchestrator) RequestShowdownMuck(t *table.Table, playerID string) bool {
	rt, ok := o.runtimes[t.ID]
	if !ok || !rt.awaitingMuck {
		return false
	}
	if rt.pendingMuck == nil {
		rt.pendingMuck = make(map[string]bool)
	}
	rt.pendingMuck[playerID] = true
	return true
}

func (o *Orchestrator) appendEvent(h *table.Hand, typ eventlog.Type, payload any) error {
	seq := o.eventLog.GetLastSequence(h.ID) + 1
	return o.eventLog.Append(h.ID, h.TableID, seq, typ, payload, time.Now())
}

func (o *Orchestrator) maybeStartTimer(t *table.Table, h *table.Hand) {
	if o.timer == nil {
		return
	}
	o.timer.StartTimer(t.ID, h.CurrentToActID, t.ActionDeadlineS, t.TimeBankEnabled, t.TimeBankS)
}

func (o *Orchestrator) advanceToNext(rt *handRuntime, t *table.Table) {
	for {
		rt.actIdx = (rt.actIdx + 1) % len(rt.actOrder)
		next := rt.actOrder[rt.actIdx]
		p := t.Seats[seatOf(t, next)]
		if p != nil && p.Status == table.Active {
			rt.hand.CurrentToActID = next
			return
		}
	}
}

func (o *Orchestrator) finishUncontested(t *table.Table, rt *handRuntime, h *table.Hand) error {
	winner := contestingPlayers(t, h)[0]
	pots := pot.Build(handContributions(t, h))
	seatOrder := clockwiseFromButton(t)
	out, err := showdown.Run(pots, []showdown.Contestant{{PlayerID: winner.ID}}, nil, nil, seatOrder, nil)
	if err != nil {
		return err
	}
	for _, a := range out.Awards {
		for id, amt := range a.Shares {
			pl := t.Seats[seatOf(t, id)]
			if pl != nil {
				pl.Stack += amt
			}
		}
		if err := o.appendEvent(h, eventlog.PotAwarded, a); err != nil {
			return err
		}
	}
	return o.appendEvent(h, eventlog.HandCompleted, eventlog.HandCompletedPayload{
		TableID: t.ID, WinnerIDs: []string{winner.ID}, TotalPot: sumPots(pots), PlayerCount: len(h.PlayerIDs), WentToShowdown: false,
	})
}

func (o *Orchestrator) closeRound(t *table.Table, rt *handRuntime) error {
	h := rt.hand
	if err := o.appendEvent(h, eventlog.BettingRoundCompleted, nil); err != nil {
		return err
	}

	allInOrOne := allInRunoutReached(t, h)

	switch rt.machine.Current() {
	case phase.Preflop:
		if err := dealStreet(rt.deck, h, 3); err != nil {
			return err
		}
		if err := rt.machine.Advance(len(h.Board)); err != nil {
			return err
		}
		if err := o.appendEvent(h, eventlog.CommunityCardsDealt, map[string]any{"phase": "flop", "board": h.Board}); err != nil {
			return err
		}
	case phase.Flop:
		if err := dealStreet(rt.deck, h, 1); err != nil {
			return err
		}
		if err := rt.machine.Advance(len(h.Board)); err != nil {
			return err
		}
		if err := o.appendEvent(h, eventlog.CommunityCardsDealt, map[string]any{"phase": "turn", "board": h.Board}); err != nil {
			return err
		}
	case phase.Turn:
		if err := dealStreet(rt.deck, h, 1); err != nil {
			return err
		}
		if err := rt.machine.Advance(len(h.Board)); err != nil {
			return err
		}
		if err := o.appendEvent(h, eventlog.CommunityCardsDealt, map[string]any{"phase": "river", "board": h.Board}); err != nil {
			return err
		}
	case phase.River:
		if err := rt.machine.Advance(len(h.Board)); err != nil { // -> Showdown
			return err
		}
		return nil
	}

	if allInOrOne {
		// run the board out with no further betting
		for rt.machine.Current() != phase.River {
			n := 1
			if rt.machine.Current() == phase.Preflop {
				n = 3
			}
			if err := dealStreet(rt.deck, h, n); err != nil {
				return err
			}
			if err := rt.machine.Advance(len(h.Board)); err != nil {
				return err
			}
			if err := o.appendEvent(h, eventlog.CommunityCardsDealt, map[string]any{"board": h.Board}); err != nil {
				return err
			}
		}
		return rt.machine.Advance(len(h.Board)) // -> Showdown
	}

	rt.round = rt.round.Reset(streetOf(rt.machine.Current()))
	rt.actOrder = postflopActOrder(activePlayersOf(t, h), t.ButtonSeat)
	rt.actIdx = 0
	if len(rt.actOrder) > 0 {
		h.CurrentToActID = rt.actOrder[0]
	}
	return nil
}

func (o *Orchestrator) runShowdown(t *table.Table, rt *handRuntime) (showdown.Outcome, error) {
	h := rt.hand
	log.Debug("hand reached showdown", "table", t.ID, "hand", h.ID)
	contesting := contestingPlayers(t, h)
	pots := pot.Build(handContributions(t, h))
	seatOrder := clockwiseFromButton(t)
	order := showOrder(contesting, rt.round.LastAggressor, seatOrder)

	var scs []showdown.Contestant
	for _, p := range contesting {
		scs = append(scs, showdown.Contestant{PlayerID: p.ID, HoleCards: p.HoleCards})
	}

	rt.awaitingMuck = true
	requestMuck := func(id string) bool { return rt.pendingMuck[id] }
	out, err := showdown.Run(pots, scs, h.Board, order, seatOrder, requestMuck)
	rt.awaitingMuck = false
	if err != nil {
		return showdown.Outcome{}, err
	}

	for _, d := range out.Decisions {
		if d.Muck {
			_ = o.appendEvent(h, eventlog.PlayerMuckedCards, d)
		} else {
			_ = o.appendEvent(h, eventlog.PlayerShowedCards, d)
		}
	}

	var winnerIDs []string
	totalPot := sumPots(pots)
	for _, a := range out.Awards {
		for id, amt := range a.Shares {
			pl := t.Seats[seatOf(t, id)]
			if pl != nil {
				pl.Stack += amt
			}
			winnerIDs = append(winnerIDs, id)
		}
		if err := o.appendEvent(h, eventlog.PotAwarded, a); err != nil {
			return out, err
		}
	}

	return out, o.appendEvent(h, eventlog.HandCompleted, eventlog.HandCompletedPayload{
		TableID: t.ID, WinnerIDs: winnerIDs, TotalPot: totalPot, PlayerCount: len(h.PlayerIDs), WentToShowdown: true,
	})
}

func applyAction(p *table.Player, round *betting.Round, va validator.ValidatedAction, action betting.Action) {
	switch action {
	case betting.Fold:
		p.Status = table.Folded
		round.RecordFold(p.ID)
	case betting.Check:
		round.RecordCheck(p.ID)
	case betting.Call:
		p.Stack -= va.AmountAdded
		p.HandBet += va.AmountAdded
		p.RoundBet = va.NewRoundBet
		round.RecordCall(p.ID, va.AmountAdded)
		if p.Stack == 0 {
			p.Status = table.AllIn
		}
	case betting.Raise, betting.AllIn:
		p.Stack -= va.AmountAdded
		p.HandBet += va.AmountAdded
		p.RoundBet = va.NewRoundBet
		round.RecordRaise(p.ID, va.NewRoundBet, action == betting.AllIn)
		if p.Stack == 0 {
			p.Status = table.AllIn
		}
	}
}

func postBlind(p *table.Player, amount int) {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.RoundBet = amount
	p.HandBet = amount
	if p.Stack == 0 {
		p.Status = table.AllIn
	}
}

func rotateButton(t *table.Table, active []*table.Player) {
	if t.ButtonSeat == 0 {
		t.ButtonSeat = active[0].Seat
		return
	}
	for i, p := range active {
		if p.Seat == t.ButtonSeat {
			t.ButtonSeat = active[(i+1)%len(active)].Seat
			return
		}
	}
	t.ButtonSeat = active[0].Seat
}

func assignBlindSeats(t *table.Table, active []*table.Player) (sb, bb int) {
	idx := seatIndex(active, t.ButtonSeat)
	if len(active) == 2 {
		return active[idx].Seat, active[(idx+1)%2].Seat
	}
	return active[(idx+1)%len(active)].Seat, active[(idx+2)%len(active)].Seat
}

func seatIndex(active []*table.Player, seat int) int {
	for i, p := range active {
		if p.Seat == seat {
			return i
		}
	}
	return 0
}

// dealHoleCards deals two cards per player, round-robin starting left
// of the button.
func dealHoleCards(deck *cards.Deck, active []*table.Player, buttonSeat int) (map[string][]cards.Card, error) {
	idx := seatIndex(active, buttonSeat)
	order := make([]*table.Player, len(active))
	for i := range active {
		order[i] = active[(idx+1+i)%len(active)]
	}
	out := make(map[string][]cards.Card, len(active))
	for round := 0; round < 2; round++ {
		for _, p := range order {
			c, err := deck.Deal()
			if err != nil {
				return nil, err
			}
			out[p.ID] = append(out[p.ID], c)
		}
	}
	return out, nil
}

// preflopActOrder: heads-up the button/SB acts first; multi-way UTG
// (first seat after BB) acts first.
func preflopActOrder(active []*table.Player, sbSeat, bbSeat int) []string {
	if len(active) == 2 {
		idx := seatIndex(active, sbSeat)
		return []string{active[idx].ID, active[(idx+1)%2].ID}
	}
	bbIdx := seatIndex(active, bbSeat)
	order := make([]string, 0, len(active))
	for i := 1; i <= len(active); i++ {
		order = append(order, active[(bbIdx+i)%len(active)].ID)
	}
	return order
}

// postflopActOrder: first active player clockwise from the button acts first.
func postflopActOrder(active []*table.Player, buttonSeat int) []string {
	idx := seatIndex(active, buttonSeat)
	order := make([]string, 0, len(active))
	for i := 1; i <= len(active); i++ {
		p := active[(idx+i)%len(active)]
		if p.Status == table.Active {
			order = append(order, p.ID)
		}
	}
	return order
}

func seatOf(t *table.Table, playerID string) int {
	for seat, p := range t.Seats {
		if p.ID == playerID {
			return seat
		}
	}
	return -1
}

func contestingPlayers(t *table.Table, h *table.Hand) []*table.Player {
	var out []*table.Player
	for _, id := range h.PlayerIDs {
		p := t.Seats[seatOf(t, id)]
		if p != nil && p.Status != table.Folded {
			out = append(out, p)
		}
	}
	return out
}

func activePlayersOf(t *table.Table, h *table.Hand) []*table.Player {
	var out []*table.Player
	for _, id := range h.PlayerIDs {
		p := t.Seats[seatOf(t, id)]
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func contestants(t *table.Table, h *table.Hand) []betting.Contestant {
	var out []betting.Contestant
	for _, id := range h.PlayerIDs {
		p := t.Seats[seatOf(t, id)]
		if p == nil {
			continue
		}
		out = append(out, betting.Contestant{PlayerID: id, Folded: p.Status == table.Folded, AllIn: p.Status == table.AllIn})
	}
	return out
}

func handContributions(t *table.Table, h *table.Hand) []pot.Contribution {
	var out []pot.Contribution
	for _, id := range h.PlayerIDs {
		p := t.Seats[seatOf(t, id)]
		if p == nil {
			continue
		}
		out = append(out, pot.Contribution{PlayerID: id, Amount: p.HandBet, Folded: p.Status == table.Folded, AllIn: p.Status == table.AllIn})
	}
	return out
}

func sumPots(pots []pot.Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

func clockwiseFromButton(t *table.Table) []string {
	var seats []int
	for seat := range t.Seats {
		seats = append(seats, seat)
	}
	// simple insertion sort; table sizes are small (<=10)
	for i := 1; i < len(seats); i++ {
		for j := i; j > 0 && seats[j] < seats[j-1]; j-- {
			seats[j], seats[j-1] = seats[j-1], seats[j]
		}
	}
	idx := 0
	for i, s := range seats {
		if s == t.ButtonSeat {
			idx = i
			break
		}
	}
	out := make([]string, 0, len(seats))
	for i := 1; i <= len(seats); i++ {
		out = append(out, t.Seats[seats[(idx+i)%len(seats)]].ID)
	}
	return out
}

// showOrder puts the last aggressor first (if any), else the first
// non-folded seat clockwise from the button, followed by the rest in
// clockwise order.
func showOrder(contesting []*table.Player, lastAggressor string, seatOrder []string) []string {
	contestingIDs := make(map[string]bool, len(contesting))
	for _, p := range contesting {
		contestingIDs[p.ID] = true
	}
	var order []string
	if lastAggressor != "" && contestingIDs[lastAggressor] {
		order = append(order, lastAggressor)
	}
	for _, id := range seatOrder {
		if contestingIDs[id] && id != lastAggressor {
			order = append(order, id)
		}
	}
	return order
}

func allInRunoutReached(t *table.Table, h *table.Hand) bool {
	withChips := 0
	for _, id := range h.PlayerIDs {
		p := t.Seats[seatOf(t, id)]
		if p == nil || p.Status == table.Folded {
			continue
		}
		if p.Status == table.Active && p.Stack > 0 {
			withChips++
		}
	}
	return withChips <= 1
}

func dealStreet(deck *cards.Deck, h *table.Hand, n int) error {
	if err := deck.Burn(); err != nil {
		return err
	}
	dealt, err := deck.DealN(n)
	if err != nil {
		return err
	}
	h.Board = append(h.Board, dealt...)
	return nil
}

func streetOf(p phase.Phase) betting.Street {
	switch p {
	case phase.Flop:
		return betting.Flop
	case phase.Turn:
		return betting.Turn
	case phase.River:
		return betting.River
	default:
		return betting.Preflop
	}
}
