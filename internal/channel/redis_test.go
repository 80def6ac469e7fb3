package channel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-player/internal/protocol"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestQueueIsFIFO(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	q := NewQueue(rdb, "texas-holdem-poker:test", quartz.NewReal())

	require.NoError(t, q.Push(ctx, protocol.Ping{}))
	require.NoError(t, q.Push(ctx, protocol.Bet{Bet: 20}))
	assert.Equal(t, DefaultQueueExpiry, mr.TTL(q.Name()))

	deadline := time.Now().Add(time.Second)
	first, err := q.Pop(ctx, deadline)
	require.NoError(t, err)
	assert.Equal(t, protocol.Ping{}, first)

	second, err := q.Pop(ctx, deadline)
	require.NoError(t, err)
	assert.Equal(t, protocol.Bet{Bet: 20}, second)
}

func TestQueuePollsUntilMessageArrives(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	q := NewQueue(rdb, "q", quartz.NewReal())

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = q.Push(ctx, protocol.Disconnect{})
	}()

	msg, err := q.Pop(ctx, time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, protocol.Disconnect{}, msg)
}

func TestQueueTimeout(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()

	t.Run("deadline already passed", func(t *testing.T) {
		clock := quartz.NewMock(t)
		q := NewQueue(rdb, "q", clock)
		require.NoError(t, q.Push(ctx, protocol.Ping{}))

		_, err := q.Pop(ctx, clock.Now())
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("nothing arrives", func(t *testing.T) {
		q := NewQueue(rdb, "empty", quartz.NewReal())
		start := time.Now()

		_, err := q.Pop(ctx, start.Add(50*time.Millisecond))
		assert.ErrorIs(t, err, ErrTimeout)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}

func TestQueueMalformedPayload(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	require.NoError(t, rdb.LPush(ctx, "q", "{not json").Err())

	_, err := NewQueue(rdb, "q", quartz.NewReal()).Pop(ctx, time.Now().Add(time.Second))

	var formatErr *MessageFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.ErrorIs(t, err, protocol.ErrMalformed)
}

func TestQueueTransportFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer func() { _ = rdb.Close() }()
	mr.Close()

	q := NewQueue(rdb, "q", quartz.NewReal())
	_, err = q.Pop(context.Background(), time.Now().Add(time.Second))
	assert.ErrorIs(t, err, ErrChannel)

	err = q.Push(context.Background(), protocol.Pong{})
	assert.ErrorIs(t, err, ErrChannel)
}

func TestQueueCancelled(t *testing.T) {
	_, rdb := newRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQueue(rdb, "q", quartz.NewReal()).Pop(ctx, time.Now().Add(time.Second))
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeLobby answers the first connection request on the lobby queue with reply.
func fakeLobby(t *testing.T, rdb *redis.Client, lobby string, reply protocol.Message) <-chan protocol.Connect {
	t.Helper()
	requests := make(chan protocol.Connect, 1)

	go func() {
		ctx := context.Background()
		res, err := rdb.BRPop(ctx, 2*time.Second, lobby).Result()
		if !assert.NoError(t, err) {
			return
		}
		msg, err := protocol.Decode([]byte(res[1]))
		if !assert.NoError(t, err) {
			return
		}
		req := msg.(protocol.Connect)
		requests <- req

		fromServer, _ := SessionQueues(lobby, req.Player.ID, req.SessionID)
		assert.NoError(t, NewQueue(rdb, fromServer, quartz.NewReal()).Push(ctx, reply))
	}()

	return requests
}

func TestRedisConnector(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	lobby := "texas-holdem-poker:lobby"
	requests := fakeLobby(t, rdb, lobby, protocol.Connect{ServerID: "server-1"})

	player := protocol.PlayerInfo{ID: "hal-1", Name: "Hal 1", Money: 1000}
	ch, err := NewRedisConnector(rdb, lobby, WithConnectTimeout(2*time.Second)).Connect(ctx, player, "session-1")
	require.NoError(t, err)
	defer func() { _ = ch.Close() }()

	req := <-requests
	assert.Equal(t, &player, req.Player)
	assert.Equal(t, "session-1", req.SessionID)

	require.NoError(t, ch.Send(ctx, protocol.Pong{}))
	_, toServer := SessionQueues(lobby, "hal-1", "session-1")
	assert.Equal(t, "texas-holdem-poker:lobby:player-hal-1:session-session-1:I", toServer)

	sent, err := rdb.RPop(ctx, toServer).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"message_type":"pong"}`, sent)
}

func TestRedisConnectorRejected(t *testing.T) {
	_, rdb := newRedis(t)
	fakeLobby(t, rdb, "lobby", protocol.Disconnect{})

	_, err := NewRedisConnector(rdb, "lobby", WithConnectTimeout(2*time.Second)).
		Connect(context.Background(), protocol.PlayerInfo{ID: "hal-2"}, "s")
	assert.ErrorIs(t, err, ErrConnectRejected)
}

func TestRedisConnectorTimeout(t *testing.T) {
	_, rdb := newRedis(t)

	_, err := NewRedisConnector(rdb, "lobby", WithConnectTimeout(30*time.Millisecond)).
		Connect(context.Background(), protocol.PlayerInfo{ID: "hal-3"}, "s")
	assert.ErrorIs(t, err, ErrTimeout)
}
