// Package ws serves the {action, data} websocket protocol and fans
// room events out to connections.
package ws
