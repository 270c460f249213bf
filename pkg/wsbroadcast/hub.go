// Package wsbroadcast is a reference (non-core) implementation of the
// outbound Broadcaster surface (§6.3) over gorilla/websocket. The core
// itself never imports this package; the only broadcaster interface
// the core defines is internal/timer's Broadcaster, and snapshots are
// passed as plain sanitize.Snapshot values. This is the worked example of the
// transport the core deliberately does not own.
//
// Grounded on the teacher's internal/server/bot.go connection pump
// pair (ReadPump/WritePump, ping/pong keepalive, a buffered send
// channel) and server.go's upgrader setup, adapted from one bot-per-
// game connection to one connection per (table, viewer) pair.
package wsbroadcast

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/foldline/holdem-engine/internal/logging"
	"github.com/foldline/holdem-engine/internal/sanitize"
)

var log = logging.For("wsbroadcast")

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Envelope is the wire shape for every outbound message: a type tag
// plus its JSON-encoded payload, so a client can dispatch on Type
// without guessing the shape.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Conn is one viewer's live connection to one table.
type Conn struct {
	tableID  string
	viewerID string
	ws       *websocket.Conn
	send     chan Envelope
	done     chan struct{}
	closeMu  sync.Mutex
	closed   bool
}

func (c *Conn) close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

// readPump drains the connection so pong keepalives are observed;
// viewers are outbound-only (inbound intents travel over the
// dispatcher, not this package).
func (c *Conn) readPump(h *Hub) {
	defer func() {
		h.Unregister(c.tableID, c.viewerID)
		c.close()
		_ = c.ws.Close()
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("unexpected websocket close", "table", c.tableID, "viewer", c.viewerID, "err", err)
			}
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
		c.close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			data, err := json.Marshal(env)
			if err != nil {
				log.Error("failed to encode envelope", "type", env.Type, "err", err)
				continue
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// enqueue drops the message rather than blocking the table worker if
// the viewer's connection is backed up, matching §5's backpressure
// rule: stale per-viewer snapshots are dropped, never queued
// indefinitely.
func (c *Conn) enqueue(env Envelope) {
	select {
	case c.send <- env:
	case <-c.done:
	default:
		log.Warn("dropping envelope for slow viewer", "table", c.tableID, "viewer", c.viewerID, "type", env.Type)
	}
}

// Hub fans outbound events out to every connected viewer of a table.
// It delivers sanitised snapshots through SnapshotForViewer/Broadcast
// and implements internal/timer's Broadcaster interface, so a single
// Hub can carry both snapshots and timer events.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]*Conn // "<tableID>|<viewerID>" -> conn
}

// NewHub constructs a Hub with a permissive CheckOrigin, matching the
// teacher's demo upgrader.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[string]*Conn),
	}
}

func connKey(tableID, viewerID string) string {
	return tableID + "|" + viewerID
}

// Upgrade promotes an HTTP request to a websocket connection for the
// given table/viewer pair and starts its read/write pumps.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, tableID, viewerID string) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Conn{
		tableID:  tableID,
		viewerID: viewerID,
		ws:       ws,
		send:     make(chan Envelope, sendBuffer),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	if existing, ok := h.conns[connKey(tableID, viewerID)]; ok {
		existing.close()
	}
	h.conns[connKey(tableID, viewerID)] = c
	h.mu.Unlock()

	go c.writePump()
	go c.readPump(h)

	log.Debug("viewer connected", "table", tableID, "viewer", viewerID)
	return nil
}

// Unregister removes a connection. Safe to call more than once.
func (h *Hub) Unregister(tableID, viewerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connKey(tableID, viewerID))
}

func (h *Hub) conn(tableID, viewerID string) (*Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.conns[connKey(tableID, viewerID)]
	return c, ok
}

// SnapshotForViewer implements the Broadcaster surface's
// SnapshotForViewer (§6.3): silently a no-op if the viewer has no live
// connection, since a disconnected viewer simply misses snapshots
// until it reconnects and replays from the event log.
func (h *Hub) SnapshotForViewer(tableID, viewerID string, snap sanitize.Snapshot) {
	c, ok := h.conn(tableID, viewerID)
	if !ok {
		return
	}
	c.enqueue(Envelope{Type: "snapshot", Payload: snap})
}

// Broadcast sends each listed viewer of a table the snapshot build
// returns for that viewer id; listed viewers without a live connection
// are skipped.
func (h *Hub) Broadcast(tableID string, viewerIDs []string, build func(viewerID string) sanitize.Snapshot) {
	for _, id := range viewerIDs {
		h.SnapshotForViewer(tableID, id, build(id))
	}
}

func (h *Hub) TimerStarted(tableID, playerID string, totalSeconds int, bankAvailable bool) {
	h.sendTimer(tableID, playerID, "timer_started", map[string]any{
		"totalSeconds":  totalSeconds,
		"bankAvailable": bankAvailable,
	})
}

func (h *Hub) TimerTick(tableID, playerID string, remaining int) {
	h.sendTimer(tableID, playerID, "timer_tick", map[string]any{"remaining": remaining})
}

func (h *Hub) TimerWarning(tableID, playerID string, remaining int) {
	h.sendTimer(tableID, playerID, "timer_warning", map[string]any{"remaining": remaining})
}

func (h *Hub) TimeBankActivated(tableID, playerID string, bankRemaining int) {
	h.sendTimer(tableID, playerID, "time_bank_activated", map[string]any{"bankRemaining": bankRemaining})
}

func (h *Hub) TimerExpired(tableID, playerID string) {
	h.sendTimer(tableID, playerID, "timer_expired", nil)
}

func (h *Hub) TimerCancelled(tableID, playerID string) {
	h.sendTimer(tableID, playerID, "timer_cancelled", nil)
}

func (h *Hub) sendTimer(tableID, playerID, typ string, payload any) {
	c, ok := h.conn(tableID, playerID)
	if !ok {
		return
	}
	c.enqueue(Envelope{Type: typ, Payload: payload})
}
