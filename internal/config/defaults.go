package config

import (
	"os"
	"strconv"
	"time"

	"gridclaim/internal/game"
)

// Default values for optional configuration fields.
const (
	DefaultAddr              = ":3004"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultPingInterval      = 25 * time.Second
	DefaultPongWait          = 60 * time.Second
	DefaultWriteWait         = 10 * time.Second
	DefaultSendBuffer        = 64
	DefaultMaxMessageBytes   = 4096
	DefaultGridCells         = game.DefaultCells
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Websocket defaults
	if c.WS.PingInterval == 0 {
		c.WS.PingInterval = DefaultPingInterval
	}
	if c.WS.PongWait == 0 {
		c.WS.PongWait = DefaultPongWait
	}
	if c.WS.WriteWait == 0 {
		c.WS.WriteWait = DefaultWriteWait
	}
	if c.WS.SendBuffer == 0 {
		c.WS.SendBuffer = DefaultSendBuffer
	}
	if c.WS.MaxMessageBytes == 0 {
		c.WS.MaxMessageBytes = DefaultMaxMessageBytes
	}

	// Game defaults
	if len(c.Game.Palette) == 0 {
		c.Game.Palette = make([]string, len(game.DefaultPalette))
		for i, color := range game.DefaultPalette {
			c.Game.Palette[i] = string(color)
		}
	}
	if c.Game.GridCells == 0 {
		c.Game.GridCells = DefaultGridCells
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// applyEnv lets a few GRIDCLAIM_* variables win over file values.
func (c *Config) applyEnv() {
	c.Server.Addr = getenv("GRIDCLAIM_ADDR", c.Server.Addr)
	c.Log.Level = getenv("GRIDCLAIM_LOG_LEVEL", c.Log.Level)
	c.Game.GridCells = getenvInt("GRIDCLAIM_GRID_CELLS", c.Game.GridCells)
	c.Game.TrustClientColor = getenvBool("GRIDCLAIM_TRUST_CLIENT_COLOR", c.Game.TrustClientColor)
	c.Session.AcknowledgeErrors = getenvBool("GRIDCLAIM_ACK_ERRORS", c.Session.AcknowledgeErrors)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
