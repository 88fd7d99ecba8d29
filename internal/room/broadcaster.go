package room

// Outbound message names.
const (
	ActionRoomListUpdate = "roomListUpdate"
	ActionJoined         = "joined"
	ActionUpdateGrid     = "update-grid"
	ActionGameOver       = "game-over"
)

// Broadcaster delivers messages to connections. Implementations must not
// block and must not call back into the Manager.
type Broadcaster interface {
	// Broadcast sends to every connection.
	Broadcast(action string, data interface{})
	// BroadcastRoom sends to the members of one room group.
	BroadcastRoom(roomID string, action string, data interface{})
	// Send targets a single connection.
	Send(connID string, action string, data interface{})

	JoinGroup(connID, roomID string)
	LeaveGroup(connID, roomID string)
	DropGroup(roomID string)
}
