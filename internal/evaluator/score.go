package evaluator

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/lox/holdem-player/internal/deck"
)

// Score is a ranked hand: its category plus the cards forming it, ordered
// high to low by the detector. The order matters for kicker comparison.
type Score struct {
	Category Category
	Cards    []deck.Card

	variant *Variant
}

// NewScore builds a score for the given variant without running detection.
func NewScore(variant Variant, category Category, cards []deck.Card) Score {
	if len(cards) > 5 {
		panic(fmt.Sprintf("evaluator: a score holds at most 5 cards, got %d", len(cards)))
	}
	return Score{Category: category, Cards: cards, variant: &variant}
}

func (s Score) rules() *Variant {
	if s.variant == nil {
		return &Holdem
	}
	return s.variant
}

// Strength packs the category rank followed by five rank nibbles (missing
// cards count as zero) and, for variants ranking suits, five 2-bit suit
// fields. Equal strengths are true ties.
func (s Score) Strength() int64 {
	v := s.rules()
	strength := int64(v.rank(s.Category))
	for i := 0; i < 5; i++ {
		strength <<= 4
		if i < len(s.Cards) {
			strength += int64(s.Cards[i].Rank)
		}
	}
	if v.SuitStrength {
		for i := 0; i < 5; i++ {
			strength <<= 2
			if i < len(s.Cards) {
				strength += int64(s.Cards[i].Suit)
			}
		}
	}
	return strength
}

// Compare returns -1 if s is weaker than other, 0 on a tie, and 1 if s is
// stronger.
func (s Score) Compare(other Score) int {
	if s.rules().RoyalBelowWheel && s.Category == StraightFlush && other.Category == StraightFlush {
		switch {
		case isRoyal(s.Cards) && isWheel(other.Cards):
			return -1
		case isWheel(s.Cards) && isRoyal(other.Cards):
			return 1
		}
	}
	return cmp.Compare(s.Strength(), other.Strength())
}

// String returns a string representation of the score
func (s Score) String() string {
	cards := make([]string, len(s.Cards))
	for i, card := range s.Cards {
		cards[i] = card.String()
	}
	return fmt.Sprintf("%s [%s]", s.Category, strings.Join(cards, " "))
}

func isRoyal(cards []deck.Card) bool {
	return len(cards) == 5 && cards[0].Rank == deck.Ace
}

// isWheel reports a straight with the Ace played low, i.e. placed last.
func isWheel(cards []deck.Card) bool {
	return len(cards) == 5 && cards[4].Rank == deck.Ace
}
