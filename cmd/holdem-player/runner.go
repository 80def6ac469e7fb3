package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lox/holdem-player/internal/channel"
	"github.com/lox/holdem-player/internal/client"
	"github.com/lox/holdem-player/internal/config"
	"github.com/lox/holdem-player/internal/display"
	"github.com/lox/holdem-player/internal/game"
	"github.com/lox/holdem-player/internal/randutil"
	"github.com/lox/holdem-player/internal/strategy"
)

// retryDelay separates a failed session from the next attempt
const retryDelay = 5 * time.Second

type runner struct {
	cfg       *config.Config
	connector channel.Connector
	logger    *log.Logger
	formatter *display.CardsFormatter
	visual    *display.CardsFormatter
	sessions  int
}

func newConnector(cfg *config.Config, rdb redis.Cmdable, logger *log.Logger) channel.Connector {
	switch cfg.Transport.Kind {
	case config.TransportWebSocket:
		return channel.NewWebSocketConnector(cfg.Transport.WebSocketURL, cfg.ConnectTimeout(), logger.WithPrefix("websocket"))
	default:
		return channel.NewRedisConnector(rdb, cfg.Transport.Lobby,
			channel.WithConnectTimeout(cfg.ConnectTimeout()),
			channel.WithLogger(logger.WithPrefix("redis")))
	}
}

// newIdentity returns a fresh player id and display name, e.g. "hal-1a2b3c4d"
// and "Hal 1a2b3c4d".
func newIdentity(prefix string) (id, name string) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + suffix, strings.ToUpper(prefix[:1]) + prefix[1:] + " " + suffix
}

// run plays sessions for the n-th player slot, each under a new identity,
// until the context is cancelled or the session limit is reached.
func (r *runner) run(ctx context.Context, n int) error {
	rng := randutil.New(randutil.Derive(r.cfg.Player.Seed, n))

	for session := 0; r.sessions == 0 || session < r.sessions; session++ {
		if ctx.Err() != nil {
			return nil
		}

		id, name := newIdentity(r.cfg.Player.NamePrefix)
		logger := r.logger.WithPrefix("player." + id)
		player := game.NewPlayer(id, name, r.cfg.Player.Money)

		bets, err := strategy.New(r.cfg.Player.Strategy,
			strategy.WithRand(rng),
			strategy.WithLogger(logger),
			strategy.WithSimulations(r.cfg.Player.Simulations),
			strategy.WithFormatter(r.visual))
		if err != nil {
			return err
		}

		c := client.New(r.connector, player, bets,
			client.WithLogger(logger),
			client.WithFormatter(r.formatter),
			client.WithReceiveTimeout(r.cfg.ReceiveTimeout()))

		logger.Info("Joining", "name", name, "money", player.Money)
		err = c.Play(ctx)
		switch {
		case err == nil:
			logger.Info("Session over", "money", player.Money)
		case errors.Is(err, context.Canceled):
			return nil
		default:
			logger.Error("Session failed", "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryDelay):
			}
		}
	}
	return nil
}
