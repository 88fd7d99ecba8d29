package room

import "errors"

// Rejections. Callers see these as no-ops unless acknowledgements are on.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrRoomAlreadyExists  = errors.New("room already exists")
	ErrInvalidRoomID      = errors.New("room id is empty")
	ErrRoomInUse          = errors.New("room has players and the game is not over")
	ErrCellAlreadyClaimed = errors.New("cell already claimed")
	ErrGameAlreadyOver    = errors.New("game already over")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrNotSeated          = errors.New("connection has no seat in this room")
	ErrColorMismatch      = errors.New("color does not belong to this connection")
	ErrAlreadyJoined      = errors.New("connection already joined this room")
)
