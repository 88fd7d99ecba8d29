package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gridclaim/internal/config"
)

// Client is one websocket connection. Writes go through send so that a
// slow reader never blocks a broadcaster.
type Client struct {
	id   string
	conn *websocket.Conn
	cfg  config.WSConfig

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn, cfg config.WSConfig) *Client {
	return &Client{
		id:   id,
		conn: conn,
		cfg:  cfg,
		send: make(chan []byte, cfg.SendBuffer),
		done: make(chan struct{}),
	}
}

// ID is the connection id, which doubles as the player id.
func (c *Client) ID() string {
	return c.id
}

// enqueue reports false when the client is closed or its buffer is full.
func (c *Client) enqueue(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close stops the write loop, which in turn closes the socket and ends
// the read loop.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writeLoop drains send and keeps the peer alive with pings.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteWait)
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				return
			}
		}
	}
}

// readLoop hands every frame to handle until the connection fails or goes
// silent for longer than PongWait.
func (c *Client) readLoop(handle func(data []byte)) error {
	c.conn.SetReadLimit(c.cfg.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		handle(data)
	}
}
