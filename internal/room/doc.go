// Package room holds the room registry and the per-connection session state
// of the grid-claim game.
//
// Manager is the only writer. Every registry and session operation runs under
// one mutex, and the broadcasts it triggers are enqueued before the lock is
// released, so every connection sees events in the order they were accepted.
//
// A connection owns at most one seat. Joining another room gives up the old
// seat, and disconnecting removes the player while leaving its claimed cells
// on the grid.
package room
