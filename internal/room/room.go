package room

import (
	"time"

	"gridclaim/internal/game"
)

// Player is a seat in a room. ID is the owning connection's id.
type Player struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Color game.Color `json:"color"`
}

// Room is owned by the store; only the Manager mutates it.
type Room struct {
	ID        string
	Players   []Player
	Grid      game.Grid
	GameOver  bool
	CreatedAt time.Time
}

// View is a detached copy of a room, safe to serialize off-lock.
type View struct {
	ID        string    `json:"id"`
	Players   []Player  `json:"players"`
	Grid      game.Grid `json:"grid"`
	GameOver  bool      `json:"gameOver"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store holds rooms by id.
type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string) bool
	ListRooms() []*Room
}

func newRoom(id string, cells int, now time.Time) *Room {
	return &Room{
		ID:        id,
		Players:   []Player{},
		Grid:      game.NewGrid(cells),
		CreatedAt: now,
	}
}

func (r *Room) view() View {
	return View{
		ID:        r.ID,
		Players:   r.players(),
		Grid:      r.Grid.Clone(),
		GameOver:  r.GameOver,
		CreatedAt: r.CreatedAt,
	}
}

func (r *Room) players() []Player {
	out := make([]Player, len(r.Players))
	copy(out, r.Players)
	return out
}

func (r *Room) colors() []game.Color {
	out := make([]game.Color, len(r.Players))
	for i, p := range r.Players {
		out[i] = p.Color
	}
	return out
}

func (r *Room) player(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// removePlayer drops the seat owned by id and reports whether one existed.
func (r *Room) removePlayer(id string) bool {
	for i := range r.Players {
		if r.Players[i].ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

// Deletable reports whether the room may be removed from the registry.
func (r *Room) Deletable() bool {
	return len(r.Players) == 0 || r.GameOver
}
