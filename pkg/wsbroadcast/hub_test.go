package wsbroadcast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/foldline/holdem-engine/internal/sanitize"
)

func newTestServer(t *testing.T, h *Hub) (*httptest.Server, string) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		tableID := r.URL.Query().Get("table")
		viewerID := r.URL.Query().Get("viewer")
		require.NoError(t, h.Upgrade(w, r, tableID, viewerID))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	return srv, wsURL
}

func dial(t *testing.T, wsURL, tableID, viewerID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?table="+tableID+"&viewer="+viewerID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSnapshotForViewerDeliversToConnectedViewer(t *testing.T) {
	h := NewHub()
	_, wsURL := newTestServer(t, h)
	conn := dial(t, wsURL, "t1", "p1")

	// give the server a moment to register the connection
	time.Sleep(20 * time.Millisecond)

	h.SnapshotForViewer("t1", "p1", sanitize.Snapshot{TableID: "t1", HandID: "h1", Pot: 42})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, "snapshot", env.Type)
}

func TestSnapshotForViewerSilentlyNoOpsWithoutConnection(t *testing.T) {
	h := NewHub()
	require.NotPanics(t, func() {
		h.SnapshotForViewer("t1", "ghost", sanitize.Snapshot{})
	})
}

func TestTimerEventsDeliverToViewer(t *testing.T) {
	h := NewHub()
	_, wsURL := newTestServer(t, h)
	conn := dial(t, wsURL, "t1", "p1")
	time.Sleep(20 * time.Millisecond)

	h.TimerStarted("t1", "p1", 30, true)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, "timer_started", env.Type)
}
