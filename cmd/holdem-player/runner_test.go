package main

import (
	"context"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-player/internal/channel"
	"github.com/lox/holdem-player/internal/config"
	"github.com/lox/holdem-player/internal/display"
	"github.com/lox/holdem-player/internal/protocol"
)

// closingChannel disconnects the player straight away
type closingChannel struct{}

func (closingChannel) Send(context.Context, protocol.Message) error { return nil }

func (closingChannel) Receive(context.Context, time.Time) (protocol.Message, error) {
	return protocol.Disconnect{}, nil
}

func (closingChannel) Close() error { return nil }

type recordingConnector struct {
	mu      sync.Mutex
	players []protocol.PlayerInfo
}

func (r *recordingConnector) Connect(_ context.Context, player protocol.PlayerInfo, _ string) (channel.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = append(r.players, player)
	return closingChannel{}, nil
}

func TestNewIdentity(t *testing.T) {
	id, name := newIdentity("hal")

	assert.Regexp(t, regexp.MustCompile(`^hal-[0-9a-f]{8}$`), id)
	assert.Equal(t, "Hal "+id[4:], name)

	other, _ := newIdentity("hal")
	assert.NotEqual(t, id, other)
}

func TestRunnerPlaysSessionsUnderNewIdentities(t *testing.T) {
	connector := &recordingConnector{}
	plain := display.PlainRenderer()
	r := &runner{
		cfg:       config.Default(),
		connector: connector,
		logger:    log.New(io.Discard),
		formatter: display.NewCardsFormatter(true, plain),
		visual:    display.NewCardsFormatter(false, plain),
		sessions:  3,
	}

	require.NoError(t, r.run(context.Background(), 0))

	require.Len(t, connector.players, 3)
	seen := map[string]bool{}
	for _, player := range connector.players {
		assert.Regexp(t, `^hal-`, player.ID)
		assert.Equal(t, 1000.0, player.Money)
		seen[player.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestRunnerStopsWhenCancelled(t *testing.T) {
	connector := &recordingConnector{}
	r := &runner{
		cfg:       config.Default(),
		connector: connector,
		logger:    log.New(io.Discard),
		formatter: display.NewCardsFormatter(true, display.PlainRenderer()),
		visual:    display.NewCardsFormatter(false, display.PlainRenderer()),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.run(ctx, 0))
	assert.Empty(t, connector.players)
}

func TestNewConnector(t *testing.T) {
	cfg := config.Default()
	assert.IsType(t, &channel.RedisConnector{}, newConnector(cfg, nil, log.New(io.Discard)))

	cfg.Transport.Kind = config.TransportWebSocket
	assert.IsType(t, &channel.WebSocketConnector{}, newConnector(cfg, nil, log.New(io.Discard)))
}

func TestApplyOverrides(t *testing.T) {
	saved := CLI
	t.Cleanup(func() { CLI = saved })

	CLI.Players = 3
	CLI.Strategy = "random"
	CLI.RedisURL = "redis://cache:6379/1"
	CLI.Debug = true

	cfg := config.Default()
	applyOverrides(cfg)

	assert.Equal(t, 3, cfg.Player.Count)
	assert.Equal(t, "random", cfg.Player.Strategy)
	assert.Equal(t, "redis://cache:6379/1", cfg.Transport.RedisURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}
