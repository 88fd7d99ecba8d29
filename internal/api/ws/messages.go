package ws

import (
	"encoding/json"
	"errors"

	"gridclaim/internal/room"
)

// Inbound actions.
const (
	ActionJoinRoom  = "join-room"
	ActionClaimCell = "claim-cell"
	ActionError     = "error"
)

// Envelope is the frame format in both directions.
type Envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

type joinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type claimCellData struct {
	RoomID      string `json:"roomId"`
	Index       *int   `json:"index"`
	PlayerColor string `json:"playerColor"`
}

// ErrorData is the payload of an "error" acknowledgement.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errUnknownAction = errors.New("unknown action")

// errorCode maps a rejection to its acknowledgement code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, room.ErrRoomFull):
		return "room_full"
	case errors.Is(err, room.ErrRoomAlreadyExists):
		return "room_exists"
	case errors.Is(err, room.ErrInvalidRoomID):
		return "invalid_room_id"
	case errors.Is(err, room.ErrRoomInUse):
		return "room_in_use"
	case errors.Is(err, room.ErrCellAlreadyClaimed):
		return "cell_claimed"
	case errors.Is(err, room.ErrGameAlreadyOver):
		return "game_over"
	case errors.Is(err, room.ErrNotSeated):
		return "not_seated"
	case errors.Is(err, room.ErrColorMismatch):
		return "color_mismatch"
	case errors.Is(err, room.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, errUnknownAction):
		return "unknown_action"
	default:
		return "invalid_payload"
	}
}
