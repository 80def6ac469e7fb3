package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), config)
	assert.NoError(t, config.Validate())
	assert.Equal(t, 2*time.Minute, config.ReceiveTimeout())
	assert.Equal(t, 30*time.Second, config.ConnectTimeout())
}

func TestLoadBackfillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdem-player.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
transport {
  kind          = "websocket"
  websocket_url = "wss://poker.example.com/ws"
}

player {
  count    = 4
  strategy = "random"
  seed     = 42
}
`), 0o644))

	config, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, TransportWebSocket, config.Transport.Kind)
	assert.Equal(t, "wss://poker.example.com/ws", config.Transport.WebSocketURL)
	assert.Equal(t, 120, config.Transport.ReceiveTimeout)
	assert.Equal(t, "texas-holdem-poker:lobby", config.Transport.Lobby)

	assert.Equal(t, 4, config.Player.Count)
	assert.Equal(t, "random", config.Player.Strategy)
	assert.Equal(t, int64(42), config.Player.Seed)
	assert.Equal(t, 1000.0, config.Player.Money)
	assert.Equal(t, "hal", config.Player.NamePrefix)

	assert.Equal(t, "info", config.Log.Level)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`transport {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Parse([]byte(`player { money = "lots" }`), "typed.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")

	_, err = Parse([]byte(`table { seats = 6 }`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown transport", func(c *Config) { c.Transport.Kind = "carrier-pigeon" }, "invalid transport"},
		{"missing redis url", func(c *Config) { c.Transport.RedisURL = "" }, "redis URL is required"},
		{"missing lobby", func(c *Config) { c.Transport.Lobby = "" }, "lobby queue is required"},
		{"missing websocket url", func(c *Config) {
			c.Transport.Kind = TransportWebSocket
			c.Transport.WebSocketURL = ""
		}, "websocket URL is required"},
		{"receive timeout", func(c *Config) { c.Transport.ReceiveTimeout = -1 }, "receive timeout must be positive"},
		{"connect timeout", func(c *Config) { c.Transport.ConnectTimeout = -1 }, "connect timeout must be positive"},
		{"player count", func(c *Config) { c.Player.Count = 0 }, "player count must be positive"},
		{"name prefix", func(c *Config) { c.Player.NamePrefix = "" }, "name prefix is required"},
		{"money", func(c *Config) { c.Player.Money = 0 }, "money must be positive"},
		{"strategy", func(c *Config) { c.Player.Strategy = "psychic" }, "invalid bet strategy"},
		{"simulations", func(c *Config) { c.Player.Simulations = 0 }, "simulations must be positive"},
		{"log level", func(c *Config) { c.Log.Level = "chatty" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			assert.ErrorContains(t, config.Validate(), tt.errMsg)
		})
	}
}
