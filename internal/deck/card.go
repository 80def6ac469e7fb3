package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit. Suits carry no game meaning beyond flushes;
// their numeric order only breaks ties for reproducible sorting.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the long form of the suit, e.g. "spades".
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return fmt.Sprintf("%d", int(r))
	case r == Ten:
		return "10"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is between Two and Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. Two cards with the same rank and suit
// are the same card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// Compare orders cards by rank only, returning -1, 0 or 1.
func (c Card) Compare(other Card) int {
	switch {
	case c.Rank < other.Rank:
		return -1
	case c.Rank > other.Rank:
		return 1
	default:
		return 0
	}
}

// Index maps the card onto 0..51, ranks major and suits minor.
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// MarshalJSON encodes the card in its wire form, [rank, suit].
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{int(c.Rank), int(c.Suit)})
}

// UnmarshalJSON decodes a [rank, suit] pair, rejecting out of range values.
func (c *Card) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("card must be a [rank, suit] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("card must be a [rank, suit] pair, got %d values", len(pair))
	}

	rank, suit := Rank(pair[0]), Suit(pair[1])
	if !rank.Valid() {
		return fmt.Errorf("invalid card rank %d", pair[0])
	}
	if !suit.Valid() {
		return fmt.Errorf("invalid card suit %d", pair[1])
	}

	*c = Card{Rank: rank, Suit: suit}
	return nil
}
