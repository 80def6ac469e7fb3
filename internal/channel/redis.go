package channel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"

	"github.com/lox/holdem-player/internal/protocol"
)

const (
	// DefaultQueueExpiry is refreshed on every push so abandoned sessions
	// are cleaned up by Redis.
	DefaultQueueExpiry = 300 * time.Second

	// DefaultPollInterval is the pause between empty pops
	DefaultPollInterval = 10 * time.Millisecond

	// DefaultConnectTimeout bounds the wait for the lobby's acknowledgement
	DefaultConnectTimeout = 30 * time.Second
)

// Queue is a Redis list used as a FIFO: producers LPUSH, the consumer RPOPs.
type Queue struct {
	rdb          redis.Cmdable
	name         string
	expiry       time.Duration
	pollInterval time.Duration
	clock        quartz.Clock
}

// NewQueue creates a queue stored under the Redis key name
func NewQueue(rdb redis.Cmdable, name string, clock quartz.Clock) *Queue {
	return &Queue{
		rdb:          rdb,
		name:         name,
		expiry:       DefaultQueueExpiry,
		pollInterval: DefaultPollInterval,
		clock:        clock,
	}
}

// Name returns the Redis key of the queue
func (q *Queue) Name() string {
	return q.name
}

// Push appends a message and refreshes the queue's expiry.
func (q *Queue) Push(ctx context.Context, msg protocol.Message) error {
	data, err := encode(msg)
	if err != nil {
		return err
	}

	pipe := q.rdb.Pipeline()
	pipe.LPush(ctx, q.name, data)
	pipe.Expire(ctx, q.name, q.expiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return transportError("push "+q.name, err)
	}
	return nil
}

// Pop removes the oldest message, polling until one arrives or the deadline
// passes.
func (q *Queue) Pop(ctx context.Context, deadline time.Time) (protocol.Message, error) {
	for {
		if !q.clock.Now().Before(deadline) {
			return nil, ErrTimeout
		}

		data, err := q.rdb.RPop(ctx, q.name).Bytes()
		switch {
		case err == nil:
			return decode(data)
		case errors.Is(err, redis.Nil):
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			return nil, transportError("pop "+q.name, err)
		}

		timer := q.clock.NewTimer(q.pollInterval, "queue", "poll")
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// RedisChannel is a session made of two queues, one per direction.
type RedisChannel struct {
	in  *Queue
	out *Queue
}

// NewRedisChannel creates a channel receiving from in and sending to out
func NewRedisChannel(in, out *Queue) *RedisChannel {
	return &RedisChannel{in: in, out: out}
}

func (c *RedisChannel) Send(ctx context.Context, msg protocol.Message) error {
	return c.out.Push(ctx, msg)
}

func (c *RedisChannel) Receive(ctx context.Context, deadline time.Time) (protocol.Message, error) {
	return c.in.Pop(ctx, deadline)
}

// Close is a no-op; the Redis client is owned by the caller.
func (c *RedisChannel) Close() error {
	return nil
}

// RedisConnector joins players through a lobby queue. Each session then
// talks over its own pair of queues.
type RedisConnector struct {
	rdb            redis.Cmdable
	lobby          string
	clock          quartz.Clock
	connectTimeout time.Duration
	logger         *log.Logger
}

// RedisOption configures a RedisConnector
type RedisOption func(*RedisConnector)

func WithClock(clock quartz.Clock) RedisOption {
	return func(c *RedisConnector) { c.clock = clock }
}

func WithConnectTimeout(d time.Duration) RedisOption {
	return func(c *RedisConnector) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

func WithLogger(logger *log.Logger) RedisOption {
	return func(c *RedisConnector) { c.logger = logger }
}

// NewRedisConnector creates a connector joining through the lobby queue
func NewRedisConnector(rdb redis.Cmdable, lobby string, opts ...RedisOption) *RedisConnector {
	c := &RedisConnector{
		rdb:            rdb,
		lobby:          lobby,
		clock:          quartz.NewReal(),
		connectTimeout: DefaultConnectTimeout,
		logger:         log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionQueues returns the names of the queues carrying server to player
// and player to server messages for a session.
func SessionQueues(lobby, playerID, sessionID string) (fromServer, toServer string) {
	base := fmt.Sprintf("%s:player-%s:session-%s", lobby, playerID, sessionID)
	return base + ":O", base + ":I"
}

// Connect announces the player on the lobby queue and waits for the server
// to acknowledge the session.
func (c *RedisConnector) Connect(ctx context.Context, player protocol.PlayerInfo, sessionID string) (Channel, error) {
	fromServer, toServer := SessionQueues(c.lobby, player.ID, sessionID)
	ch := NewRedisChannel(
		NewQueue(c.rdb, fromServer, c.clock),
		NewQueue(c.rdb, toServer, c.clock),
	)

	lobby := NewQueue(c.rdb, c.lobby, c.clock)
	if err := lobby.Push(ctx, protocol.Connect{Player: &player, SessionID: sessionID}); err != nil {
		return nil, fmt.Errorf("joining lobby %s: %w", c.lobby, err)
	}
	c.logger.Debug("Waiting for lobby", "lobby", c.lobby, "session", sessionID)

	ack, err := expectAck(ctx, ch, c.clock.Now().Add(c.connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connecting %s: %w", player.ID, err)
	}

	c.logger.Info("Connected", "server", ack.ServerID, "session", sessionID)
	return ch, nil
}
