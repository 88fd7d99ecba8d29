package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gridclaim/internal/config"
)

// Hub tracks every live connection and the room groups they belong to.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client

	handler  SessionHandler
	cfg      config.WSConfig
	ack      bool
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub builds a hub. ack makes rejected requests answer with an "error"
// message instead of a silent no-op.
func NewHub(cfg config.WSConfig, ack bool, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		cfg:     cfg,
		ack:     ack,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		logger: logger,
	}
}

func (h *Hub) SetHandler(handler SessionHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

func (h *Hub) sessionHandler() SessionHandler {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.handler
}

// HandleWS upgrades the request and serves the connection until it closes.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remote", c.ClientIP())
		return
	}

	client := newClient(uuid.NewString(), conn, h.cfg)
	h.register(client)
	h.logger.Info("client connected", "conn", client.id, "remote", c.ClientIP())

	go client.writeLoop()

	handler := h.sessionHandler()
	if handler != nil {
		handler.Connect(client.id)
	}

	err = client.readLoop(func(data []byte) {
		h.dispatch(client, data)
	})
	if err != nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.logger.Debug("client read failed", "conn", client.id, "error", err)
	}

	h.unregister(client)
	client.close()
	if handler != nil {
		handler.Disconnect(client.id)
	}
	h.logger.Info("client disconnected", "conn", client.id)
}

func (h *Hub) dispatch(client *Client, data []byte) {
	var msg Envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		h.reject(client, "", errors.New("malformed message"))
		return
	}

	handler := h.sessionHandler()
	if handler == nil {
		return
	}

	switch msg.Action {
	case ActionJoinRoom:
		var req joinRoomData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.reject(client, msg.Action, err)
			return
		}
		if err := handler.Join(client.id, req.RoomID, req.PlayerName); err != nil {
			h.reject(client, msg.Action, err)
		}
	case ActionClaimCell:
		var req claimCellData
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			h.reject(client, msg.Action, err)
			return
		}
		if req.Index == nil {
			h.reject(client, msg.Action, errors.New("index required"))
			return
		}
		if err := handler.ClaimCell(client.id, req.RoomID, *req.Index, req.PlayerColor); err != nil {
			h.reject(client, msg.Action, err)
		}
	default:
		h.reject(client, msg.Action, errUnknownAction)
	}
}

// reject logs a refused request and, when acknowledgements are on, tells
// the caller why.
func (h *Hub) reject(client *Client, action string, err error) {
	h.logger.Debug("request rejected", "conn", client.id, "action", action, "error", err)
	if !h.ack {
		return
	}
	h.Send(client.id, ActionError, ErrorData{Code: errorCode(err), Message: err.Error()})
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
	for roomID, members := range h.rooms {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Broadcast sends to every connection.
func (h *Hub) Broadcast(action string, data interface{}) {
	msg, ok := h.encode(action, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		h.deliver(c, msg)
	}
}

// BroadcastRoom sends to the members of one room group.
func (h *Hub) BroadcastRoom(roomID string, action string, data interface{}) {
	msg, ok := h.encode(action, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[roomID] {
		h.deliver(c, msg)
	}
}

// Send targets a single connection.
func (h *Hub) Send(connID string, action string, data interface{}) {
	msg, ok := h.encode(action, data)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connID]; ok {
		h.deliver(c, msg)
	}
}

func (h *Hub) JoinGroup(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][connID] = c
}

func (h *Hub) LeaveGroup(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) DropGroup(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomID)
}

// Len is the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Their read loops then run the normal
// disconnect path.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.close()
	}
}

func (h *Hub) encode(action string, data interface{}) ([]byte, bool) {
	msg, err := json.Marshal(outbound{Action: action, Data: data})
	if err != nil {
		h.logger.Error("failed to encode message", "action", action, "error", err)
		return nil, false
	}
	return msg, true
}

// deliver must be called with h.mu held. A client that cannot keep up is
// closed rather than allowed to stall everyone else.
func (h *Hub) deliver(c *Client, msg []byte) {
	if c.enqueue(msg) {
		return
	}
	select {
	case <-c.done:
		return // already closing
	default:
	}
	h.logger.Warn("send buffer full, dropping client", "conn", c.id)
	c.close()
}
