package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-player/internal/deck"
	"github.com/lox/holdem-player/internal/evaluator"
)

var (
	ErrInvalidBoard = errors.New("invalid number of shared cards")
	ErrNoCards      = errors.New("no cards to assign")
)

// Scores holds the known hole cards of each player and the shared board.
type Scores struct {
	detector *evaluator.Detector
	cards    map[string][]deck.Card
	shared   []deck.Card
}

// NewScores creates an empty card registry scored by detector
func NewScores(detector *evaluator.Detector) *Scores {
	return &Scores{
		detector: detector,
		cards:    make(map[string][]deck.Card),
	}
}

// AssignCards stores the player's cards in the order the detector ranks
// them, replacing anything assigned before.
func (s *Scores) AssignCards(playerID string, cards []deck.Card) error {
	if len(cards) == 0 {
		return fmt.Errorf("%w: %s", ErrNoCards, playerID)
	}
	s.cards[playerID] = s.detector.Score(cards).Cards
	return nil
}

// PlayerCards returns the cards assigned to the player, if any.
func (s *Scores) PlayerCards(playerID string) ([]deck.Card, bool) {
	cards, ok := s.cards[playerID]
	return cards, ok
}

// SharedCards returns the board
func (s *Scores) SharedCards() []deck.Card {
	return s.shared
}

// AddSharedCards extends the board. The board only ever holds 0, 3, 4 or 5
// cards; any other resulting size is rejected and leaves the board as it was.
func (s *Scores) AddSharedCards(cards []deck.Card) error {
	size := len(s.shared) + len(cards)
	if len(cards) == 0 || !validBoardSize(size) {
		return fmt.Errorf("%w: %d + %d", ErrInvalidBoard, len(s.shared), len(cards))
	}
	s.shared = append(slices.Clone(s.shared), cards...)
	return nil
}

// PlayerScore scores the player's cards together with the board. It is
// recomputed on every call.
func (s *Scores) PlayerScore(playerID string) (evaluator.Score, error) {
	cards, ok := s.cards[playerID]
	if !ok {
		return evaluator.Score{}, fmt.Errorf("%w: no cards for %s", ErrUnknownPlayer, playerID)
	}
	return s.detector.Score(append(slices.Clone(cards), s.shared...)), nil
}

func validBoardSize(n int) bool {
	return n == 0 || n == 3 || n == 4 || n == 5
}
