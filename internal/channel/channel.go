// Package channel carries protocol messages between a player and the poker
// server. Transport failures are reported as ErrTimeout, *MessageFormatError
// or ErrChannel so callers never see transport specific errors.
package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lox/holdem-player/internal/protocol"
)

var (
	// ErrTimeout means no message arrived before the receive deadline.
	ErrTimeout = errors.New("timed out waiting for message")

	// ErrChannel wraps failures of the underlying transport.
	ErrChannel = errors.New("channel error")

	// ErrConnectRejected means the server answered a connection request with
	// something other than an acknowledgement.
	ErrConnectRejected = errors.New("connection rejected")
)

// MessageFormatError reports a payload that could not be decoded
type MessageFormatError struct {
	Err error
}

func (e *MessageFormatError) Error() string {
	return fmt.Sprintf("message format error: %v", e.Err)
}

func (e *MessageFormatError) Unwrap() error {
	return e.Err
}

// Channel is a bidirectional session with the server
type Channel interface {
	// Send delivers a message to the server.
	Send(ctx context.Context, msg protocol.Message) error

	// Receive blocks until a message arrives or the absolute deadline passes.
	Receive(ctx context.Context, deadline time.Time) (protocol.Message, error)

	// Close releases the session's resources.
	Close() error
}

// Connector seats a player with the server and opens their session
type Connector interface {
	Connect(ctx context.Context, player protocol.PlayerInfo, sessionID string) (Channel, error)
}

func decode(data []byte) (protocol.Message, error) {
	msg, err := protocol.Decode(data)
	if err != nil {
		return nil, &MessageFormatError{Err: err}
	}
	return msg, nil
}

func encode(msg protocol.Message) ([]byte, error) {
	data, err := protocol.Encode(msg)
	if err != nil {
		return nil, &MessageFormatError{Err: err}
	}
	return data, nil
}

// transportError hides the transport's own error type behind ErrChannel.
func transportError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrChannel, op, err)
}

// expectAck waits for the server to acknowledge a connect request.
func expectAck(ctx context.Context, ch Channel, deadline time.Time) (protocol.Connect, error) {
	msg, err := ch.Receive(ctx, deadline)
	if err != nil {
		return protocol.Connect{}, err
	}
	ack, ok := msg.(protocol.Connect)
	if !ok {
		return protocol.Connect{}, fmt.Errorf("%w: expected connect, got %s", ErrConnectRejected, msg.MessageType())
	}
	return ack, nil
}
