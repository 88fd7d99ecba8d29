package http

import (
	"gridclaim/internal/game"
	"gridclaim/internal/room"
)

// CreateRoomRequest is the payload for /create-room (form or JSON).
type CreateRoomRequest struct {
	RoomID string `form:"roomId" json:"roomId"`
}

// DeleteRoomRequest is the payload for /delete-room (form or JSON).
type DeleteRoomRequest struct {
	RoomID string `form:"roomId" json:"roomId"`
}

// RoomResponse is the room detail view.
type RoomResponse struct {
	Room room.View      `json:"room"`
	Rank []room.RankRow `json:"rank"`
}

// GameConfigResponse tells clients how rooms are laid out.
type GameConfigResponse struct {
	Palette          []game.Color `json:"palette"`
	GridCells        int          `json:"gridCells"`
	MaxPlayers       int          `json:"maxPlayers"`
	TrustClientColor bool         `json:"trustClientColor"`
}
