// Package protocol defines the JSON messages exchanged with the poker
// server. Every payload decodes into one of a closed set of records;
// anything the player does not understand decodes to Unrecognized.
package protocol

import "github.com/lox/holdem-player/internal/deck"

// Message types
const (
	TypeConnect    = "connect"
	TypeDisconnect = "disconnect"
	TypePing       = "ping"
	TypePong       = "pong"
	TypeRoomUpdate = "room-update"
	TypeGameUpdate = "game-update"
	TypeBet        = "bet"
)

// Game update events
const (
	EventNewGame           = "new-game"
	EventGameOver          = "game-over"
	EventCardsAssignment   = "cards-assignment"
	EventShowdown          = "showdown"
	EventFold              = "fold"
	EventDeadPlayer        = "dead-player"
	EventPotsUpdate        = "pots-update"
	EventPlayerAction      = "player-action"
	EventBet               = "bet"
	EventSharedCards       = "shared-cards"
	EventWinnerDesignation = "winner-designation"
)

// ActionBet is the only player action that asks for a response
const ActionBet = "bet"

// Message is any record sent or received over a channel
type Message interface {
	MessageType() string
}

// GameEvent is a game-update message
type GameEvent interface {
	Message
	Event() string
}

// PlayerInfo describes a seated player
type PlayerInfo struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Money float64 `json:"money"`
}

// PlayerRef identifies the player an event is about
type PlayerRef struct {
	ID string `json:"id"`
}

// Connect asks the lobby to seat a player; the server acknowledges it on the
// session channel with its own id.
type Connect struct {
	Player    *PlayerInfo `json:"player,omitempty"`
	SessionID string      `json:"session_id,omitempty"`
	ServerID  string      `json:"server_id,omitempty"`
}

type Disconnect struct{}

type Ping struct{}

type Pong struct{}

// RoomUpdate reports lobby activity the player does not act on
type RoomUpdate struct{}

// Bet answers a player-action request. FoldBet (-1) folds.
type Bet struct {
	Bet float64 `json:"bet"`
}

// NewGame starts a game with the listed players in seat order
type NewGame struct {
	GameID     string       `json:"game_id"`
	Players    []PlayerInfo `json:"players"`
	BigBlind   float64      `json:"big_blind"`
	SmallBlind float64      `json:"small_blind"`
}

type GameOver struct{}

// CardsAssignment deals the player their hole cards
type CardsAssignment struct {
	Cards []deck.Card `json:"cards"`
}

// ShowdownHand is the hand revealed by one player at showdown
type ShowdownHand struct {
	Cards []deck.Card `json:"cards"`
}

// Showdown reveals the hole cards of the remaining players
type Showdown struct {
	Players map[string]ShowdownHand `json:"players"`
}

type Fold struct {
	Player PlayerRef `json:"player"`
}

// DeadPlayer reports a player who left the table
type DeadPlayer struct {
	Player PlayerRef `json:"player"`
}

type Pot struct {
	Money float64 `json:"money"`
}

// PotsUpdate carries the pots once a betting round is collected
type PotsUpdate struct {
	Pots []Pot `json:"pots"`
}

// Total returns the money across all pots
func (m PotsUpdate) Total() float64 {
	var total float64
	for _, pot := range m.Pots {
		total += pot.Money
	}
	return total
}

// PlayerAction asks a player to act. Bets holds each player's contribution
// to the current betting round.
type PlayerAction struct {
	Action string             `json:"action"`
	Player PlayerRef          `json:"player"`
	MinBet float64            `json:"min_bet"`
	MaxBet float64            `json:"max_bet"`
	Bets   map[string]float64 `json:"bets"`
}

// BetPlaced reports a wager made by any player
type BetPlaced struct {
	Player  PlayerRef `json:"player"`
	Bet     float64   `json:"bet"`
	BetType string    `json:"bet_type"`
}

// SharedCards adds cards to the board
type SharedCards struct {
	Cards []deck.Card `json:"cards"`
}

type WinnerPot struct {
	Money      float64  `json:"money"`
	WinnerIDs  []string `json:"winner_ids"`
	MoneySplit float64  `json:"money_split"`
}

// WinnerDesignation splits a pot between its winners
type WinnerDesignation struct {
	Pot WinnerPot `json:"pot"`
}

// Unrecognized is a well formed message of a type or event the player does
// not know. Raw is the payload as received.
type Unrecognized struct {
	Type  string
	Event string
	Raw   []byte
}

func (Connect) MessageType() string    { return TypeConnect }
func (Disconnect) MessageType() string { return TypeDisconnect }
func (Ping) MessageType() string       { return TypePing }
func (Pong) MessageType() string       { return TypePong }
func (RoomUpdate) MessageType() string { return TypeRoomUpdate }
func (Bet) MessageType() string        { return TypeBet }

func (m Unrecognized) MessageType() string { return m.Type }

func (NewGame) MessageType() string           { return TypeGameUpdate }
func (GameOver) MessageType() string          { return TypeGameUpdate }
func (CardsAssignment) MessageType() string   { return TypeGameUpdate }
func (Showdown) MessageType() string          { return TypeGameUpdate }
func (Fold) MessageType() string              { return TypeGameUpdate }
func (DeadPlayer) MessageType() string        { return TypeGameUpdate }
func (PotsUpdate) MessageType() string        { return TypeGameUpdate }
func (PlayerAction) MessageType() string      { return TypeGameUpdate }
func (BetPlaced) MessageType() string         { return TypeGameUpdate }
func (SharedCards) MessageType() string       { return TypeGameUpdate }
func (WinnerDesignation) MessageType() string { return TypeGameUpdate }

func (NewGame) Event() string           { return EventNewGame }
func (GameOver) Event() string          { return EventGameOver }
func (CardsAssignment) Event() string   { return EventCardsAssignment }
func (Showdown) Event() string          { return EventShowdown }
func (Fold) Event() string              { return EventFold }
func (DeadPlayer) Event() string        { return EventDeadPlayer }
func (PotsUpdate) Event() string        { return EventPotsUpdate }
func (PlayerAction) Event() string      { return EventPlayerAction }
func (BetPlaced) Event() string         { return EventBet }
func (SharedCards) Event() string       { return EventSharedCards }
func (WinnerDesignation) Event() string { return EventWinnerDesignation }
