package ws

// SessionHandler reacts to connection events. The hub calls it from each
// connection's read goroutine and never while holding its own lock.
type SessionHandler interface {
	Connect(connID string)
	Join(connID, roomID, playerName string) error
	ClaimCell(connID, roomID string, index int, color string) error
	Disconnect(connID string)
}
