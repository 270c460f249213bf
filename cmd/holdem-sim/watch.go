package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foldline/holdem-engine/internal/betting"
	"github.com/foldline/holdem-engine/internal/eventlog"
	"github.com/foldline/holdem-engine/internal/orchestrator"
	"github.com/foldline/holdem-engine/internal/phase"
	"github.com/foldline/holdem-engine/internal/sanitize"
	"github.com/foldline/holdem-engine/internal/table"
)

const logViewportLines = 8

// WatchCmd runs a single table's self-play hands and renders the
// spectator-sanitised state (C11) live via bubbletea, the
// presentation-layer analogue of the teacher's internal/tui/internal/
// display viewers. Grounded on internal/tui/tui.go's Model/Update/View
// split and styles.go's lipgloss palette, swapped from a human action
// textinput to a read-only spectator feed since this viewer drives no
// input back into the engine.
type WatchCmd struct {
	Players    int           `default:"6" help:"Players seated at the table (2-9)."`
	SmallBlind int           `default:"1" help:"Small blind size."`
	BigBlind   int           `default:"2" help:"Big blind size."`
	Stack      int           `default:"200" help:"Starting stack per player, reset between hands."`
	Delay      time.Duration `default:"400ms" help:"Pause between actions, for human-watchable pacing."`
}

type snapshotMsg struct {
	snap sanitize.Snapshot
	line string
}
type handDoneMsg struct{ err error }

// watchModel follows the teacher's TUIModel shape: a scrolling
// viewport.Model for the event log alongside the live table state,
// minus the textinput pane since this viewer takes no action input.
type watchModel struct {
	snap    sanitize.Snapshot
	handNum int
	err     error
	quit    bool

	log         []string
	logViewport viewport.Model
}

func newWatchModel() *watchModel {
	vp := viewport.New(80, logViewportLines)
	return &watchModel{logViewport: vp}
}

func (m *watchModel) Init() tea.Cmd { return nil }

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logViewport.Width = msg.Width
		m.logViewport.Height = logViewportLines
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" || msg.String() == "esc" {
			m.quit = true
			return m, tea.Quit
		}
	case snapshotMsg:
		m.snap = msg.snap
		if msg.line != "" {
			m.log = append(m.log, msg.line)
			m.logViewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, m.log...))
			m.logViewport.GotoBottom()
		}
	case handDoneMsg:
		m.handNum++
		m.err = msg.err
		m.log = append(m.log, infoStyle.Render(fmt.Sprintf("--- hand #%d complete ---", m.handNum)))
		m.logViewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, m.log...))
		m.logViewport.GotoBottom()
	}
	return m, nil
}

func (m *watchModel) View() string {
	if m.quit {
		return ""
	}

	header := headerStyle.Render(fmt.Sprintf(" holdem-sim watch — hand #%d ", m.handNum))
	phaseLine := infoStyle.Render(fmt.Sprintf("phase: %s   pot: %d   button seat: %d", m.snap.Phase, m.snap.Pot, m.snap.ButtonSeat))
	board := infoStyle.Render("board: " + cardsString(m.snap))

	var rows []string
	rows = append(rows, header, phaseLine, board, "")
	for _, p := range m.snap.Players {
		marker := " "
		if p.PlayerID == m.snap.CurrentToActID {
			marker = actionsStyle.Render(">")
		}
		rows = append(rows, fmt.Sprintf("%s seat %d  %-10s stack %-6d status %-8s bet %d",
			marker, p.Seat, p.PlayerID, p.Stack, p.Status, p.RoundBet))
	}

	if m.err != nil {
		rows = append(rows, "", errorStyle.Render("error: "+m.err.Error()))
	}
	rows = append(rows, "", m.logViewport.View(), "", infoStyle.Render("q to quit"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cardsString(snap sanitize.Snapshot) string {
	if len(snap.Board) == 0 {
		return "(none)"
	}
	s := ""
	for _, c := range snap.Board {
		s += c.String() + " "
	}
	return s
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4"))
	actionsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

func (c *WatchCmd) Run() error {
	if c.Players < 2 || c.Players > 9 {
		return fmt.Errorf("players must be between 2 and 9, got %d", c.Players)
	}

	tbl := newSimTable("watch", c.Players, c.Stack, c.SmallBlind, c.BigBlind)
	o := orchestrator.New(eventlog.New(), nil)
	rng := rand.New(rand.NewSource(1))

	model := newWatchModel()
	program := tea.NewProgram(model, tea.WithAltScreen())

	go driveWatchTable(program, o, tbl, rng, c.Stack, c.Delay)

	_, err := program.Run()
	return err
}

func driveWatchTable(program *tea.Program, o *orchestrator.Orchestrator, tbl *table.Table, rng *rand.Rand, stack int, delay time.Duration) {
	for {
		reseat(tbl, stack)
		_, err := playWatchedHand(program, o, tbl, rng, delay)
		program.Send(handDoneMsg{err: err})
		if err != nil {
			return
		}
	}
}

func playWatchedHand(program *tea.Program, o *orchestrator.Orchestrator, tbl *table.Table, rng *rand.Rand, delay time.Duration) (bool, error) {
	res, err := o.StartNewHand(tbl)
	if err != nil {
		return false, err
	}
	publishSnapshot(program, tbl, fmt.Sprintf("hand started, button seat %d", res.Hand.ButtonSeat))
	time.Sleep(delay)

	toAct := res.Hand.CurrentToActID
	for {
		avail := o.GetAvailableActions(tbl)
		if avail.PlayerID == "" {
			break
		}
		action, amount := randomAction(avail.Legal, rng)
		result, err := o.ExecutePlayerAction(tbl, toAct, action, amount)
		if err != nil {
			return false, err
		}
		publishSnapshot(program, tbl, describeAction(toAct, action, amount))
		time.Sleep(delay)

		if result.HandCompleted {
			return result.ShowdownOutcome != nil, nil
		}
		toAct = result.Hand.CurrentToActID
	}
	return false, nil
}

func describeAction(playerID string, action betting.Action, amount int) string {
	if amount > 0 {
		return fmt.Sprintf("%s: %s to %d", playerID, action, amount)
	}
	return fmt.Sprintf("%s: %s", playerID, action)
}

func publishSnapshot(program *tea.Program, tbl *table.Table, line string) {
	if tbl.Hand == nil {
		return
	}
	players := make([]*table.Player, 0, len(tbl.Seats))
	for _, p := range tbl.Seats {
		players = append(players, p)
	}
	pot := 0
	for _, p := range players {
		pot += p.HandBet
	}
	snap := sanitize.ForViewer(tbl.Hand, players, phaseFromBoard(tbl.Hand), pot, "", nil, nil)
	program.Send(snapshotMsg{snap: snap, line: line})
}

// phaseFromBoard infers a display-only phase from board length. The
// orchestrator doesn't expose its internal phase.Machine state, so the
// viewer (a spectator, never a decision-maker) reconstructs enough of
// it to label the feed.
func phaseFromBoard(h *table.Hand) phase.Phase {
	switch len(h.Board) {
	case 0:
		return phase.Preflop
	case 3:
		return phase.Flop
	case 4:
		return phase.Turn
	default:
		return phase.River
	}
}
