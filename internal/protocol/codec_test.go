package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-player/internal/deck"
)

func TestDecodeGameEvents(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected Message
	}{
		{
			name:    "new game",
			payload: `{"message_type":"game-update","event":"new-game","game_id":"g1","players":[{"id":"a","name":"Alice","money":1000},{"id":"b","name":"Bob","money":500.5}],"big_blind":10,"small_blind":5}`,
			expected: NewGame{
				GameID: "g1",
				Players: []PlayerInfo{
					{ID: "a", Name: "Alice", Money: 1000},
					{ID: "b", Name: "Bob", Money: 500.5},
				},
				BigBlind:   10,
				SmallBlind: 5,
			},
		},
		{
			name:     "game over",
			payload:  `{"message_type":"game-update","event":"game-over"}`,
			expected: GameOver{},
		},
		{
			name:     "cards assignment",
			payload:  `{"message_type":"game-update","event":"cards-assignment","cards":[[14,0],[10,1]]}`,
			expected: CardsAssignment{Cards: deck.MustParseCards("AsTh")},
		},
		{
			name:    "showdown",
			payload: `{"message_type":"game-update","event":"showdown","players":{"a":{"cards":[[2,3],[3,2]]}}}`,
			expected: Showdown{Players: map[string]ShowdownHand{
				"a": {Cards: deck.MustParseCards("2c3d")},
			}},
		},
		{
			name:     "fold",
			payload:  `{"message_type":"game-update","event":"fold","player":{"id":"a"}}`,
			expected: Fold{Player: PlayerRef{ID: "a"}},
		},
		{
			name:     "dead player",
			payload:  `{"message_type":"game-update","event":"dead-player","player":{"id":"b"}}`,
			expected: DeadPlayer{Player: PlayerRef{ID: "b"}},
		},
		{
			name:     "pots update",
			payload:  `{"message_type":"game-update","event":"pots-update","pots":[{"money":30},{"money":12.5}]}`,
			expected: PotsUpdate{Pots: []Pot{{Money: 30}, {Money: 12.5}}},
		},
		{
			name:    "player action",
			payload: `{"message_type":"game-update","event":"player-action","action":"bet","player":{"id":"a"},"min_bet":10,"max_bet":200,"bets":{"a":5,"b":10}}`,
			expected: PlayerAction{
				Action: ActionBet,
				Player: PlayerRef{ID: "a"},
				MinBet: 10,
				MaxBet: 200,
				Bets:   map[string]float64{"a": 5, "b": 10},
			},
		},
		{
			name:     "bet",
			payload:  `{"message_type":"game-update","event":"bet","player":{"id":"b"},"bet":20,"bet_type":"raise"}`,
			expected: BetPlaced{Player: PlayerRef{ID: "b"}, Bet: 20, BetType: "raise"},
		},
		{
			name:     "shared cards",
			payload:  `{"message_type":"game-update","event":"shared-cards","cards":[[12,0],[11,0],[10,0]]}`,
			expected: SharedCards{Cards: deck.MustParseCards("QsJsTs")},
		},
		{
			name:    "winner designation",
			payload: `{"message_type":"game-update","event":"winner-designation","pot":{"money":60,"winner_ids":["a","b"],"money_split":30}}`,
			expected: WinnerDesignation{Pot: WinnerPot{
				Money:      60,
				WinnerIDs:  []string{"a", "b"},
				MoneySplit: 30,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, msg)

			event, ok := msg.(GameEvent)
			require.True(t, ok)
			assert.Equal(t, TypeGameUpdate, event.MessageType())
		})
	}
}

func TestDecodeControlMessages(t *testing.T) {
	tests := map[string]Message{
		`{"message_type":"ping"}`:                  Ping{},
		`{"message_type":"pong"}`:                  Pong{},
		`{"message_type":"disconnect"}`:            Disconnect{},
		`{"message_type":"room-update","seats":3}`: RoomUpdate{},
		`{"message_type":"bet","bet":-1}`:          Bet{Bet: -1},
		`{"message_type":"connect","server_id":"s1"}`: Connect{
			ServerID: "s1",
		},
	}

	for payload, expected := range tests {
		msg, err := Decode([]byte(payload))
		require.NoError(t, err, payload)
		assert.Equal(t, expected, msg, payload)
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	payload := []byte(`{"message_type":"game-update","event":"table-talk","text":"hi"}`)
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, Unrecognized{Type: TypeGameUpdate, Event: "table-talk", Raw: payload}, msg)

	msg, err = Decode([]byte(`{"message_type":"chat"}`))
	require.NoError(t, err)
	unknown, ok := msg.(Unrecognized)
	require.True(t, ok)
	assert.Equal(t, "chat", unknown.MessageType())
}

func TestDecodeMalformed(t *testing.T) {
	payloads := []string{
		`not json`,
		`[1,2]`,
		`null`,
		`{"event":"new-game"}`,
		`{"message_type":""}`,
		`{"message_type":"game-update","event":"cards-assignment","cards":[[15,0]]}`,
		`{"message_type":"game-update","event":"cards-assignment","cards":[[14,4]]}`,
		`{"message_type":"game-update","event":"bet","bet":"lots"}`,
	}

	for _, payload := range payloads {
		_, err := Decode([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformed, payload)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		expected string
	}{
		{"pong", Pong{}, `{"message_type":"pong"}`},
		{"disconnect", Disconnect{}, `{"message_type":"disconnect"}`},
		{"bet", Bet{Bet: 12.5}, `{"bet":12.5,"message_type":"bet"}`},
		{"fold", Bet{Bet: -1}, `{"bet":-1,"message_type":"bet"}`},
		{
			"connect",
			Connect{Player: &PlayerInfo{ID: "hal-1", Name: "Hal 1", Money: 1000}, SessionID: "s"},
			`{"message_type":"connect","player":{"id":"hal-1","name":"Hal 1","money":1000},"session_id":"s"}`,
		},
		{
			"game event",
			SharedCards{Cards: deck.MustParseCards("2c")},
			`{"cards":[[2,3]],"event":"shared-cards","message_type":"game-update"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestEncodeDecodeGameEvent(t *testing.T) {
	original := PlayerAction{
		Action: ActionBet,
		Player: PlayerRef{ID: "me"},
		MinBet: 0,
		MaxBet: 100,
		Bets:   map[string]float64{"you": 10},
	}

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestPotsUpdateTotal(t *testing.T) {
	assert.Equal(t, 42.5, PotsUpdate{Pots: []Pot{{Money: 40}, {Money: 2.5}}}.Total())
	assert.Zero(t, PotsUpdate{}.Total())
}
