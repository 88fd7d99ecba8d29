package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gridclaim/internal/config"
	"gridclaim/internal/room"
	"gridclaim/internal/store"
)

type testServer struct {
	server  *httptest.Server
	hub     *Hub
	manager *room.Manager
}

func newTestServer(t *testing.T, ack bool, mutate func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hub := NewHub(cfg.WS, ack, logger)
	mgr := room.NewManager(store.NewMemoryStore(), cfg.Game, hub, logger)
	hub.SetHandler(mgr)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return &testServer{server: srv, hub: hub, manager: mgr}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Every connection is greeted with the registry.
	readUntil(t, conn, room.ActionRoomListUpdate, nil)
	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, data interface{}) {
	t.Helper()
	if err := conn.WriteJSON(map[string]interface{}{"action": action, "data": data}); err != nil {
		t.Fatalf("write %s: %v", action, err)
	}
}

// readUntil reads frames until one has the given action and satisfies match.
func readUntil(t *testing.T, conn *websocket.Conn, action string, match func(json.RawMessage) bool) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("waiting for %s: %v", action, err)
		}
		if env.Action != action {
			continue
		}
		if match == nil || match(env.Data) {
			return env.Data
		}
	}
}

// nextAction returns the action of the next frame.
func nextAction(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env.Action, env.Data
}

func roomPlayers(id string, n int) func(json.RawMessage) bool {
	return func(data json.RawMessage) bool {
		var snap map[string]struct {
			Players []room.Player `json:"players"`
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			return false
		}
		r, ok := snap[id]
		return ok && len(r.Players) == n
	}
}

func TestHub_JoinFlow(t *testing.T) {
	ts := newTestServer(t, false, nil)
	alice := ts.dial(t)
	bob := ts.dial(t)

	if _, err := ts.manager.CreateRoom("R1"); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	readUntil(t, alice, room.ActionRoomListUpdate, roomPlayers("R1", 0))
	readUntil(t, bob, room.ActionRoomListUpdate, roomPlayers("R1", 0))

	send(t, alice, ActionJoinRoom, map[string]string{"roomId": "R1", "playerName": "Alice"})

	action, data := nextAction(t, alice)
	if action != room.ActionJoined {
		t.Fatalf("first reply = %q, want %q", action, room.ActionJoined)
	}
	var joined room.JoinedPayload
	if err := json.Unmarshal(data, &joined); err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	if joined.Color != "red" || len(joined.Players) != 1 {
		t.Errorf("joined = %+v, want red with 1 player", joined)
	}

	readUntil(t, alice, room.ActionRoomListUpdate, roomPlayers("R1", 1))
	grid := readUntil(t, alice, room.ActionUpdateGrid, nil)
	if !strings.Contains(string(grid), `"grid":[null,`) {
		t.Errorf("update-grid payload = %s, want null cells", grid)
	}

	// Bob is not in the room, so he sees the registry change but no grid.
	readUntil(t, bob, room.ActionRoomListUpdate, roomPlayers("R1", 1))
}

func TestHub_GameToCompletion(t *testing.T) {
	ts := newTestServer(t, false, func(c *config.Config) { c.Game.GridCells = 4 })
	alice := ts.dial(t)
	bob := ts.dial(t)

	if _, err := ts.manager.CreateRoom("R1"); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	send(t, alice, ActionJoinRoom, map[string]string{"roomId": "R1", "playerName": "Alice"})
	readUntil(t, alice, room.ActionJoined, nil)
	send(t, bob, ActionJoinRoom, map[string]string{"roomId": "R1", "playerName": "Bob"})
	readUntil(t, bob, room.ActionJoined, nil)

	claims := []struct {
		conn  *websocket.Conn
		index int
		color string
	}{
		{alice, 0, "red"},
		{bob, 1, "green"},
		{alice, 2, "red"},
		{bob, 3, "green"},
	}
	for _, c := range claims {
		send(t, c.conn, ActionClaimCell, map[string]interface{}{
			"roomId": "R1", "index": c.index, "playerColor": c.color,
		})
		// Wait for the claim to land before the next one so the order is fixed.
		readUntil(t, alice, room.ActionUpdateGrid, func(data json.RawMessage) bool {
			var p struct {
				Grid []*string `json:"grid"`
			}
			_ = json.Unmarshal(data, &p)
			return len(p.Grid) == 4 && p.Grid[c.index] != nil && *p.Grid[c.index] == c.color
		})
	}

	for name, conn := range map[string]*websocket.Conn{"alice": alice, "bob": bob} {
		data := readUntil(t, conn, room.ActionGameOver, nil)
		var winner string
		if err := json.Unmarshal(data, &winner); err != nil {
			t.Fatalf("%s: decode winner: %v", name, err)
		}
		if winner != "Alice" {
			t.Errorf("%s saw winner %q, want Alice", name, winner)
		}
	}

	v, _ := ts.manager.GetRoom("R1")
	if !v.GameOver {
		t.Error("GameOver = false, want true")
	}
}

func TestHub_DisconnectReleasesSeat(t *testing.T) {
	ts := newTestServer(t, false, nil)
	alice := ts.dial(t)
	bob := ts.dial(t)

	if _, err := ts.manager.CreateRoom("R1"); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	send(t, alice, ActionJoinRoom, map[string]string{"roomId": "R1", "playerName": "Alice"})
	readUntil(t, alice, room.ActionJoined, nil)
	send(t, alice, ActionClaimCell, map[string]interface{}{"roomId": "R1", "index": 0, "playerColor": "red"})
	readUntil(t, alice, room.ActionUpdateGrid, func(data json.RawMessage) bool {
		return strings.Contains(string(data), `"red"`)
	})
	readUntil(t, bob, room.ActionRoomListUpdate, roomPlayers("R1", 1))

	alice.Close()

	readUntil(t, bob, room.ActionRoomListUpdate, roomPlayers("R1", 0))
	v, _ := ts.manager.GetRoom("R1")
	if v.Grid[0] != "red" {
		t.Errorf("grid[0] = %q after disconnect, want red", v.Grid[0])
	}
}

func TestHub_RejectionsAreSilentByDefault(t *testing.T) {
	ts := newTestServer(t, false, nil)
	conn := ts.dial(t)

	if _, err := ts.manager.CreateRoom("R1"); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	readUntil(t, conn, room.ActionRoomListUpdate, roomPlayers("R1", 0))

	send(t, conn, ActionClaimCell, map[string]interface{}{"roomId": "R1", "index": 0, "playerColor": "red"})
	send(t, conn, ActionJoinRoom, map[string]string{"roomId": "missing", "playerName": "Alice"})
	send(t, conn, "dance", nil)
	send(t, conn, ActionJoinRoom, map[string]string{"roomId": "R1", "playerName": "Alice"})

	action, _ := nextAction(t, conn)
	if action != room.ActionJoined {
		t.Errorf("next message = %q, want %q (no error replies)", action, room.ActionJoined)
	}
}

func TestHub_Acknowledgements(t *testing.T) {
	ts := newTestServer(t, true, nil)
	conn := ts.dial(t)

	if _, err := ts.manager.CreateRoom("R1"); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	readUntil(t, conn, room.ActionRoomListUpdate, roomPlayers("R1", 0))

	tests := []struct {
		name     string
		raw      string
		wantCode string
	}{
		{name: "malformed json", raw: `{"action":`, wantCode: "invalid_payload"},
		{name: "unknown action", raw: `{"action":"dance"}`, wantCode: "unknown_action"},
		{name: "missing index", raw: `{"action":"claim-cell","data":{"roomId":"R1","playerColor":"red"}}`, wantCode: "invalid_payload"},
		{name: "not seated", raw: `{"action":"claim-cell","data":{"roomId":"R1","index":0,"playerColor":"red"}}`, wantCode: "not_seated"},
		{name: "missing room", raw: `{"action":"join-room","data":{"roomId":"nope","playerName":"A"}}`, wantCode: "room_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
				t.Fatalf("write: %v", err)
			}
			action, data := nextAction(t, conn)
			if action != ActionError {
				t.Fatalf("reply = %q, want %q", action, ActionError)
			}
			var e ErrorData
			if err := json.Unmarshal(data, &e); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if e.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}
}

func TestHub_LenTracksConnections(t *testing.T) {
	ts := newTestServer(t, false, nil)
	a := ts.dial(t)
	ts.dial(t)

	if n := ts.hub.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}

	a.Close()
	deadline := time.Now().Add(3 * time.Second)
	for ts.hub.Len() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("Len() = %d after close, want 1", ts.hub.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{room.ErrRoomNotFound, "room_not_found"},
		{room.ErrRoomFull, "room_full"},
		{room.ErrRoomAlreadyExists, "room_exists"},
		{room.ErrInvalidRoomID, "invalid_room_id"},
		{room.ErrRoomInUse, "room_in_use"},
		{room.ErrCellAlreadyClaimed, "cell_claimed"},
		{room.ErrGameAlreadyOver, "game_over"},
		{room.ErrNotSeated, "not_seated"},
		{room.ErrColorMismatch, "color_mismatch"},
		{room.ErrAlreadyJoined, "already_joined"},
		{fmt.Errorf("%w: index", room.ErrInvalidPayload), "invalid_payload"},
		{errUnknownAction, "unknown_action"},
		{errors.New("anything else"), "invalid_payload"},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
