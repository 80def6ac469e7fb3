package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-player/internal/strategy"
)

// Transport kinds
const (
	TransportRedis     = "redis"
	TransportWebSocket = "websocket"
)

// Config represents the complete player configuration
type Config struct {
	Transport *TransportSettings `hcl:"transport,block"`
	Player    *PlayerSettings    `hcl:"player,block"`
	Log       *LogSettings       `hcl:"log,block"`
}

// TransportSettings contains server connection settings
type TransportSettings struct {
	Kind           string `hcl:"kind,optional"`
	RedisURL       string `hcl:"redis_url,optional"`
	Lobby          string `hcl:"lobby,optional"`
	WebSocketURL   string `hcl:"websocket_url,optional"`
	ConnectTimeout int    `hcl:"connect_timeout,optional"`
	ReceiveTimeout int    `hcl:"receive_timeout,optional"`
}

// PlayerSettings contains settings shared by every virtual player
type PlayerSettings struct {
	Count       int     `hcl:"count,optional"`
	NamePrefix  string  `hcl:"name_prefix,optional"`
	Money       float64 `hcl:"money,optional"`
	Strategy    string  `hcl:"strategy,optional"`
	Simulations int     `hcl:"simulations,optional"`
	Seed        int64   `hcl:"seed,optional"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Transport: &TransportSettings{
			Kind:           TransportRedis,
			RedisURL:       "redis://localhost:6379/0",
			Lobby:          "texas-holdem-poker:lobby",
			WebSocketURL:   "ws://localhost:8080/ws",
			ConnectTimeout: 30,
			ReceiveTimeout: 120,
		},
		Player: &PlayerSettings{
			Count:       1,
			NamePrefix:  "hal",
			Money:       1000,
			Strategy:    strategy.NameSmart,
			Simulations: 10,
		},
		Log: &LogSettings{
			Level: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills anything left unset from the defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults(Default())
	return &config, nil
}

func (c *Config) applyDefaults(defaults *Config) {
	if c.Transport == nil {
		c.Transport = defaults.Transport
	}
	if c.Player == nil {
		c.Player = defaults.Player
	}
	if c.Log == nil {
		c.Log = defaults.Log
	}

	t, dt := c.Transport, defaults.Transport
	if t.Kind == "" {
		t.Kind = dt.Kind
	}
	if t.RedisURL == "" {
		t.RedisURL = dt.RedisURL
	}
	if t.Lobby == "" {
		t.Lobby = dt.Lobby
	}
	if t.WebSocketURL == "" {
		t.WebSocketURL = dt.WebSocketURL
	}
	if t.ConnectTimeout == 0 {
		t.ConnectTimeout = dt.ConnectTimeout
	}
	if t.ReceiveTimeout == 0 {
		t.ReceiveTimeout = dt.ReceiveTimeout
	}

	p, dp := c.Player, defaults.Player
	if p.Count == 0 {
		p.Count = dp.Count
	}
	if p.NamePrefix == "" {
		p.NamePrefix = dp.NamePrefix
	}
	if p.Money == 0 {
		p.Money = dp.Money
	}
	if p.Strategy == "" {
		p.Strategy = dp.Strategy
	}
	if p.Simulations == 0 {
		p.Simulations = dp.Simulations
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Transport.Kind {
	case TransportRedis:
		if c.Transport.RedisURL == "" {
			return fmt.Errorf("redis URL is required")
		}
		if c.Transport.Lobby == "" {
			return fmt.Errorf("lobby queue is required")
		}
	case TransportWebSocket:
		if c.Transport.WebSocketURL == "" {
			return fmt.Errorf("websocket URL is required")
		}
	default:
		return fmt.Errorf("invalid transport: %s", c.Transport.Kind)
	}

	if c.Transport.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	if c.Transport.ReceiveTimeout <= 0 {
		return fmt.Errorf("receive timeout must be positive")
	}

	if c.Player.Count <= 0 {
		return fmt.Errorf("player count must be positive")
	}
	if c.Player.NamePrefix == "" {
		return fmt.Errorf("player name prefix is required")
	}
	if c.Player.Money <= 0 {
		return fmt.Errorf("player money must be positive")
	}
	if !slices.Contains(strategy.Names, c.Player.Strategy) {
		return fmt.Errorf("invalid bet strategy: %s", c.Player.Strategy)
	}
	if c.Player.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// ConnectTimeout returns how long to wait for the server to accept a player
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Transport.ConnectTimeout) * time.Second
}

// ReceiveTimeout returns how long a player waits for the next message
// before giving up on the session.
func (c *Config) ReceiveTimeout() time.Duration {
	return time.Duration(c.Transport.ReceiveTimeout) * time.Second
}
