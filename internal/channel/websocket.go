package channel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-player/internal/protocol"
)

// WebSocketChannel exchanges one JSON text frame per message.
type WebSocketChannel struct {
	conn *websocket.Conn
}

// NewWebSocketChannel wraps an established connection
func NewWebSocketChannel(conn *websocket.Conn) *WebSocketChannel {
	return &WebSocketChannel{conn: conn}
}

func (c *WebSocketChannel) Send(ctx context.Context, msg protocol.Message) error {
	data, err := encode(msg)
	if err != nil {
		return err
	}

	deadline, _ := ctx.Deadline()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return transportError("set write deadline", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return transportError("write", err)
	}
	return nil
}

// Receive reads the next frame. A normal close from the server is reported
// as a disconnect message.
func (c *WebSocketChannel) Receive(ctx context.Context, deadline time.Time) (protocol.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, transportError("set read deadline", err)
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			return nil, ErrTimeout
		case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
			return protocol.Disconnect{}, nil
		default:
			return nil, transportError("read", err)
		}
	}
	return decode(data)
}

func (c *WebSocketChannel) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}

// WebSocketConnector dials the server once per session. The player and
// session ids travel in the query string.
type WebSocketConnector struct {
	url    string
	dialer *websocket.Dialer
	logger *log.Logger
}

// NewWebSocketConnector creates a connector for the server at rawURL. http
// and https URLs are converted to their websocket schemes.
func NewWebSocketConnector(rawURL string, connectTimeout time.Duration, logger *log.Logger) *WebSocketConnector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	return &WebSocketConnector{
		url:    rawURL,
		dialer: &websocket.Dialer{HandshakeTimeout: connectTimeout},
		logger: logger,
	}
}

func (c *WebSocketConnector) Connect(ctx context.Context, player protocol.PlayerInfo, sessionID string) (Channel, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	q := u.Query()
	q.Set("player_id", player.ID)
	q.Set("session_id", sessionID)
	u.RawQuery = q.Encode()

	c.logger.Debug("Dialing server", "url", u.String())
	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, transportError("dial", err)
	}

	ch := NewWebSocketChannel(conn)
	if err := ch.Send(ctx, protocol.Connect{Player: &player, SessionID: sessionID}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting %s: %w", player.ID, err)
	}

	c.logger.Info("Connected", "url", c.url, "session", sessionID)
	return ch, nil
}
