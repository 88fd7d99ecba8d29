package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must be >= 0")
	}

	if c.WS.PingInterval <= 0 {
		return errors.New("ws.ping_interval must be > 0")
	}
	if c.WS.PongWait <= c.WS.PingInterval {
		return fmt.Errorf("ws.pong_wait (%s) must exceed ws.ping_interval (%s)", c.WS.PongWait, c.WS.PingInterval)
	}
	if c.WS.WriteWait <= 0 {
		return errors.New("ws.write_wait must be > 0")
	}
	if c.WS.SendBuffer < 1 {
		return errors.New("ws.send_buffer must be >= 1")
	}
	if c.WS.MaxMessageBytes < 64 {
		return errors.New("ws.max_message_bytes must be >= 64")
	}

	if err := c.Game.validate("game"); err != nil {
		return err
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (g *GameConfig) validate(prefix string) error {
	if len(g.Palette) == 0 {
		return fmt.Errorf("%s.palette must list at least one color", prefix)
	}
	seen := make(map[string]bool, len(g.Palette))
	for _, color := range g.Palette {
		if strings.TrimSpace(color) == "" {
			return fmt.Errorf("%s.palette contains an empty color", prefix)
		}
		if seen[color] {
			return fmt.Errorf("%s.palette contains duplicate color %q", prefix, color)
		}
		seen[color] = true
	}
	if g.GridCells < 1 {
		return fmt.Errorf("%s.grid_cells must be >= 1, got %d", prefix, g.GridCells)
	}
	return nil
}
