// Package client runs a single player's session against the poker server,
// tracking the game from the server's events and betting when asked.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdem-player/internal/channel"
	"github.com/lox/holdem-player/internal/display"
	"github.com/lox/holdem-player/internal/evaluator"
	"github.com/lox/holdem-player/internal/game"
	"github.com/lox/holdem-player/internal/protocol"
	"github.com/lox/holdem-player/internal/strategy"
)

// DefaultReceiveTimeout is how long the player waits for the server before
// giving up on the session.
const DefaultReceiveTimeout = 2 * time.Minute

// PlayerClient plays one session for one player. It processes a single
// message at a time and is not safe for concurrent use.
type PlayerClient struct {
	connector      channel.Connector
	player         *game.Player
	strategy       strategy.Strategy
	detector       *evaluator.Detector
	formatter      *display.CardsFormatter
	logger         *log.Logger
	clock          quartz.Clock
	receiveTimeout time.Duration

	// state is the game in progress, nil between games.
	state *game.State
}

// Option configures a PlayerClient
type Option func(*PlayerClient)

func WithLogger(logger *log.Logger) Option {
	return func(c *PlayerClient) { c.logger = logger }
}

func WithClock(clock quartz.Clock) Option {
	return func(c *PlayerClient) { c.clock = clock }
}

func WithReceiveTimeout(d time.Duration) Option {
	return func(c *PlayerClient) {
		if d > 0 {
			c.receiveTimeout = d
		}
	}
}

// WithFormatter sets how cards are rendered in the log
func WithFormatter(formatter *display.CardsFormatter) Option {
	return func(c *PlayerClient) { c.formatter = formatter }
}

// New creates a client playing as player with the given bet strategy
func New(connector channel.Connector, player *game.Player, bets strategy.Strategy, opts ...Option) *PlayerClient {
	c := &PlayerClient{
		connector:      connector,
		player:         player,
		strategy:       bets,
		detector:       evaluator.NewDetector(evaluator.Holdem),
		clock:          quartz.NewReal(),
		receiveTimeout: DefaultReceiveTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default().WithPrefix("player." + player.ID)
	}
	if c.formatter == nil {
		c.formatter = display.NewCardsFormatter(true, nil)
	}
	return c
}

// Player returns the player this client plays as
func (c *PlayerClient) Player() *game.Player {
	return c.player
}

// Play connects with a fresh session and plays until the server disconnects
// the player or goes quiet for longer than the receive timeout, both of
// which return nil. Malformed messages and events that contradict the
// tracked game end the session with an error.
func (c *PlayerClient) Play(ctx context.Context) error {
	sessionID := uuid.NewString()
	info := protocol.PlayerInfo{ID: c.player.ID, Name: c.player.Name, Money: c.player.Money}

	ch, err := c.connector.Connect(ctx, info, sessionID)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = ch.Close() }()

	c.state = nil
	for {
		msg, err := ch.Receive(ctx, c.clock.Now().Add(c.receiveTimeout))
		if errors.Is(err, channel.ErrTimeout) {
			if err := ch.Send(ctx, protocol.Disconnect{}); err != nil {
				return fmt.Errorf("failed to disconnect: %w", err)
			}
			c.logger.Warn("Server went quiet, disconnecting", "timeout", c.receiveTimeout)
			return nil
		}
		if err != nil {
			return err
		}

		done, err := c.handle(ctx, ch, msg)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handle processes one message, reporting whether the session is over.
func (c *PlayerClient) handle(ctx context.Context, ch channel.Channel, msg protocol.Message) (bool, error) {
	switch m := msg.(type) {
	case protocol.Disconnect:
		c.logger.Warn("Disconnected from the server")
		return true, nil

	case protocol.Ping:
		return false, ch.Send(ctx, protocol.Pong{})

	case protocol.RoomUpdate, protocol.Pong:
		return false, nil

	case protocol.Connect:
		c.logger.Debug("Server acknowledged connection", "server", m.ServerID)
		return false, nil

	case protocol.NewGame:
		c.handleNewGame(m)
		return false, nil

	case protocol.GameEvent:
		if c.state == nil {
			c.logger.Warn("Ignoring event outside a game", "event", m.Event())
			return false, nil
		}
		if err := c.handleEvent(ctx, ch, m); err != nil {
			return false, fmt.Errorf("handling %s: %w", m.Event(), err)
		}
		return false, nil

	case protocol.Unrecognized:
		if m.Type == protocol.TypeGameUpdate {
			c.logger.Error("Event not recognised", "event", m.Event)
		} else {
			c.logger.Error("Message type not recognised", "type", m.Type)
		}
		return false, nil

	default:
		c.logger.Error("Message type not recognised", "type", msg.MessageType())
		return false, nil
	}
}
