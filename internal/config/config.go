package config

import "time"

// Config is the root configuration for a gridclaim server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	WS      WSConfig      `yaml:"ws"`
	Game    GameConfig    `yaml:"game"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// WSConfig holds per-connection websocket settings.
type WSConfig struct {
	PingInterval    time.Duration `yaml:"ping_interval"`
	PongWait        time.Duration `yaml:"pong_wait"`
	WriteWait       time.Duration `yaml:"write_wait"`
	SendBuffer      int           `yaml:"send_buffer"`
	MaxMessageBytes int64         `yaml:"max_message_bytes"`
}

// GameConfig holds room rules. The palette length is the room capacity.
type GameConfig struct {
	Palette          []string `yaml:"palette"`
	GridCells        int      `yaml:"grid_cells"`
	TrustClientColor bool     `yaml:"trust_client_color"` // accept any caller-supplied claim color
}

// SessionConfig controls what rejected requests look like to the caller.
type SessionConfig struct {
	AcknowledgeErrors bool `yaml:"acknowledge_errors"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
