package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned for payloads that are not a JSON object with a
// message_type, or whose fields do not match their declared type.
var ErrMalformed = errors.New("malformed message")

type header struct {
	MessageType string `json:"message_type"`
	Event       string `json:"event,omitempty"`
}

// Decode parses a payload into its message record.
func Decode(data []byte) (Message, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if h.MessageType == "" {
		return nil, fmt.Errorf("%w: missing message_type", ErrMalformed)
	}

	var msg Message
	switch h.MessageType {
	case TypeConnect:
		msg = &Connect{}
	case TypeDisconnect:
		return Disconnect{}, nil
	case TypePing:
		return Ping{}, nil
	case TypePong:
		return Pong{}, nil
	case TypeRoomUpdate:
		return RoomUpdate{}, nil
	case TypeBet:
		msg = &Bet{}
	case TypeGameUpdate:
		msg = newEvent(h.Event)
	}
	if msg == nil {
		return Unrecognized{Type: h.MessageType, Event: h.Event, Raw: data}, nil
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, describe(h), err)
	}
	return deref(msg), nil
}

func newEvent(event string) Message {
	switch event {
	case EventNewGame:
		return &NewGame{}
	case EventGameOver:
		return &GameOver{}
	case EventCardsAssignment:
		return &CardsAssignment{}
	case EventShowdown:
		return &Showdown{}
	case EventFold:
		return &Fold{}
	case EventDeadPlayer:
		return &DeadPlayer{}
	case EventPotsUpdate:
		return &PotsUpdate{}
	case EventPlayerAction:
		return &PlayerAction{}
	case EventBet:
		return &BetPlaced{}
	case EventSharedCards:
		return &SharedCards{}
	case EventWinnerDesignation:
		return &WinnerDesignation{}
	default:
		return nil
	}
}

// deref returns decoded records by value so callers can switch on them
// without caring how they were built.
func deref(msg Message) Message {
	switch m := msg.(type) {
	case *Connect:
		return *m
	case *Bet:
		return *m
	case *NewGame:
		return *m
	case *GameOver:
		return *m
	case *CardsAssignment:
		return *m
	case *Showdown:
		return *m
	case *Fold:
		return *m
	case *DeadPlayer:
		return *m
	case *PotsUpdate:
		return *m
	case *PlayerAction:
		return *m
	case *BetPlaced:
		return *m
	case *SharedCards:
		return *m
	case *WinnerDesignation:
		return *m
	default:
		return msg
	}
}

func describe(h header) string {
	if h.Event != "" {
		return h.MessageType + "/" + h.Event
	}
	return h.MessageType
}

// Encode serializes a message with its message_type, and event for game
// updates, alongside the record's own fields.
func Encode(msg Message) ([]byte, error) {
	if m, ok := msg.(Unrecognized); ok {
		return m.Raw, nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", msg.MessageType(), err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", msg.MessageType(), err)
	}

	fields["message_type"], _ = json.Marshal(msg.MessageType())
	if ev, ok := msg.(GameEvent); ok {
		fields["event"], _ = json.Marshal(ev.Event())
	}
	return json.Marshal(fields)
}
