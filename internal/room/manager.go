package room

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"gridclaim/internal/config"
	"gridclaim/internal/game"
)

// JoinedPayload is sent to a connection after it takes a seat.
type JoinedPayload struct {
	Color   game.Color `json:"color"`
	Players []Player   `json:"players"`
}

// GridPayload carries the current grid of one room.
type GridPayload struct {
	Grid game.Grid `json:"grid"`
}

// seat binds a connection to the room and player it joined as.
type seat struct {
	roomID   string
	playerID string
}

// Manager owns the room registry and the per-connection session state.
// A single mutex serializes every mutation, so all clients observe
// broadcasts in the order the manager accepted the requests.
type Manager struct {
	mu      sync.Mutex
	store   Store
	cfg     config.GameConfig
	palette []game.Color
	hub     Broadcaster
	logger  *slog.Logger
	seats   map[string]seat
}

func NewManager(s Store, cfg config.GameConfig, hub Broadcaster, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	palette := make([]game.Color, len(cfg.Palette))
	for i, c := range cfg.Palette {
		palette[i] = game.Color(c)
	}
	return &Manager{
		store:   s,
		cfg:     cfg,
		palette: palette,
		hub:     hub,
		logger:  logger,
		seats:   make(map[string]seat),
	}
}

// Palette returns the join-order colors.
func (m *Manager) Palette() []game.Color {
	return append([]game.Color(nil), m.palette...)
}

// MaxPlayers is the room capacity.
func (m *Manager) MaxPlayers() int {
	return len(m.palette)
}

// CreateRoom registers an empty room under the trimmed id.
func (m *Manager) CreateRoom(id string) (View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return View{}, ErrInvalidRoomID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store.GetRoom(id); ok {
		return View{}, ErrRoomAlreadyExists
	}

	r := newRoom(id, m.cfg.GridCells, time.Now())
	m.store.SaveRoom(r)
	m.logger.Info("room created", "room", id)

	m.broadcastRoomListLocked()
	return r.view(), nil
}

// DeleteRoom removes a room that has no players or whose game has ended.
// Connections still seated in it lose their seat.
func (m *Manager) DeleteRoom(id string) error {
	id = strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(id)
	if !ok {
		return ErrRoomNotFound
	}
	if !r.Deletable() {
		return ErrRoomInUse
	}

	m.store.DeleteRoom(id)
	for connID, s := range m.seats {
		if s.roomID == id {
			delete(m.seats, connID)
		}
	}
	if m.hub != nil {
		m.hub.DropGroup(id)
	}
	m.logger.Info("room deleted", "room", id, "game_over", r.GameOver)

	m.broadcastRoomListLocked()
	return nil
}

// GetRoom returns a copy of the room.
func (m *Manager) GetRoom(id string) (View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(id)
	if !ok {
		return View{}, false
	}
	return r.view(), true
}

// ListRooms returns copies of every room, oldest first.
func (m *Manager) ListRooms() []View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked()
}

// Snapshot returns the registry keyed by room id.
func (m *Manager) Snapshot() map[string]View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Connect greets a new connection with the current registry.
func (m *Manager) Connect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hub != nil {
		m.hub.Send(connID, ActionRoomListUpdate, m.snapshotLocked())
	}
}

// Join seats the connection in roomID with the next free palette color.
// The display name is kept exactly as sent, empty included.
func (m *Manager) Join(connID, roomID, playerName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	prev, seated := m.seats[connID]
	if seated && prev.roomID == roomID {
		return ErrAlreadyJoined
	}
	if len(r.Players) >= len(m.palette) {
		return ErrRoomFull
	}
	color, ok := game.NextColor(m.palette, r.colors())
	if !ok {
		return ErrRoomFull
	}

	// One seat per connection: moving rooms gives up the old seat.
	if seated {
		delete(m.seats, connID)
		m.leaveLocked(connID, prev)
	}

	p := Player{ID: connID, Name: playerName, Color: color}
	r.Players = append(r.Players, p)
	m.store.SaveRoom(r)
	m.seats[connID] = seat{roomID: roomID, playerID: p.ID}

	m.logger.Info("player joined",
		"room", roomID,
		"conn", connID,
		"name", playerName,
		"color", color,
		"players", len(r.Players),
	)

	if m.hub != nil {
		m.hub.JoinGroup(connID, roomID)
		m.hub.Send(connID, ActionJoined, JoinedPayload{Color: color, Players: r.players()})
	}
	m.broadcastRoomListLocked()
	m.broadcastGridLocked(r)
	return nil
}

// ClaimCell marks one cell for color. When the last cell is claimed the
// winner is announced and the room stops accepting claims.
func (m *Manager) ClaimCell(connID, roomID string, index int, color string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	if color == "" {
		return fmt.Errorf("%w: color required", ErrInvalidPayload)
	}
	if r.GameOver {
		return ErrGameAlreadyOver
	}

	if !m.cfg.TrustClientColor {
		s, seated := m.seats[connID]
		if !seated || s.roomID != roomID {
			return ErrNotSeated
		}
		p := r.player(s.playerID)
		if p == nil {
			return ErrNotSeated
		}
		if p.Color != game.Color(color) {
			return ErrColorMismatch
		}
	}

	if err := r.Grid.Claim(index, game.Color(color)); err != nil {
		if errors.Is(err, game.ErrCellClaimed) {
			return ErrCellAlreadyClaimed
		}
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	m.store.SaveRoom(r)

	m.logger.Debug("cell claimed", "room", roomID, "conn", connID, "index", index, "color", color)
	m.broadcastGridLocked(r)

	if r.Grid.Full() {
		m.finishLocked(r)
	}
	return nil
}

// Disconnect releases the connection's seat, if any. The grid keeps the
// departed player's cells.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.seats[connID]
	if !ok {
		return
	}
	delete(m.seats, connID)
	m.leaveLocked(connID, s)
}

// RankRow is one line of a room scoreboard.
type RankRow struct {
	PlayerID string     `json:"playerId"`
	Name     string     `json:"name"`
	Color    game.Color `json:"color"`
	Cells    int        `json:"cells"`
}

// Rank scores the seated players, best first. Equal scores keep join order,
// so the first row is the winner a full grid would produce.
func (m *Manager) Rank(roomID string) ([]RankRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return rank(r), nil
}

func rank(r *Room) []RankRow {
	scores := game.Scores(r.Grid, r.colors())
	out := make([]RankRow, 0, len(r.Players))
	for i, p := range r.Players {
		out = append(out, RankRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Color:    p.Color,
			Cells:    scores[i],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cells > out[j].Cells
	})
	return out
}

func (m *Manager) finishLocked(r *Room) {
	scores := game.Scores(r.Grid, r.colors())
	winner := ""
	if i := game.Winner(scores); i >= 0 {
		winner = r.Players[i].Name
	}
	r.GameOver = true
	m.store.SaveRoom(r)

	m.logger.Info("game over", "room", r.ID, "winner", winner, "scores", scores)
	if m.hub != nil {
		m.hub.BroadcastRoom(r.ID, ActionGameOver, winner)
	}
}

func (m *Manager) leaveLocked(connID string, s seat) {
	if m.hub != nil {
		m.hub.LeaveGroup(connID, s.roomID)
	}

	r, ok := m.store.GetRoom(s.roomID)
	if !ok {
		return
	}
	if !r.removePlayer(s.playerID) {
		return
	}
	m.store.SaveRoom(r)

	m.logger.Info("player left", "room", r.ID, "conn", connID, "players", len(r.Players))
	m.broadcastRoomListLocked()
}

func (m *Manager) broadcastRoomListLocked() {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(ActionRoomListUpdate, m.snapshotLocked())
}

func (m *Manager) broadcastGridLocked(r *Room) {
	if m.hub == nil {
		return
	}
	m.hub.BroadcastRoom(r.ID, ActionUpdateGrid, GridPayload{Grid: r.Grid.Clone()})
}

func (m *Manager) snapshotLocked() map[string]View {
	rooms := m.store.ListRooms()
	out := make(map[string]View, len(rooms))
	for _, r := range rooms {
		out[r.ID] = r.view()
	}
	return out
}

func (m *Manager) listLocked() []View {
	rooms := m.store.ListRooms()
	out := make([]View, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.view())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
