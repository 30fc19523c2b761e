package config

import (
	"net"
	"strconv"
	"time"

	"github.com/vovakirdan/wirechat-broker/internal/core"
)

// Config holds server configuration values.
type Config struct {
	Hostname string `mapstructure:"hostname" yaml:"hostname"`
	Port     int    `mapstructure:"port" yaml:"port"`

	LogPath  string `mapstructure:"log_path" yaml:"log_path"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	FrameSize int `mapstructure:"frame_size" yaml:"frame_size"`

	PingInterval     time.Duration `mapstructure:"ping_interval" yaml:"ping_interval"`
	PingTimeoutTicks int           `mapstructure:"ping_timeout_ticks" yaml:"ping_timeout_ticks"`
	TickInterval     time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`

	SendBuffer int `mapstructure:"send_buffer" yaml:"send_buffer"`
}

// Default returns configuration with reasonable starter defaults, matching
// core.DefaultLivenessConfig for the liveness fields.
func Default() Config {
	liveness := core.DefaultLivenessConfig()
	return Config{
		Hostname: "localhost",
		Port:     50000,

		LogLevel: "info",

		FrameSize: 1024,

		PingInterval:     liveness.PingInterval,
		PingTimeoutTicks: liveness.PingTimeoutTicks,
		TickInterval:     liveness.TickInterval,

		SendBuffer: 64,
	}
}

// Addr is the listen address built from Hostname and Port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Hostname, strconv.Itoa(c.Port))
}

// Liveness extracts the subset of Config core.Hub needs.
func (c Config) Liveness() core.LivenessConfig {
	return core.LivenessConfig{
		TickInterval:     c.TickInterval,
		PingInterval:     c.PingInterval,
		PingTimeoutTicks: c.PingTimeoutTicks,
	}
}
