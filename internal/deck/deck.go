package deck

import (
	"cmp"
	"slices"
)

// Size is the number of cards in a standard deck
const Size = 52

// Full returns a fresh standard 52-card deck ordered by rank, then suit.
func Full() []Card {
	cards := make([]Card, 0, Size)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Spades; suit <= Clubs; suit++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Set represents a set of cards using a bitset for fast operations.
// Each card maps to the bit at Card.Index().
type Set uint64

// NewSet creates a Set from the given card slices
func NewSet(groups ...[]Card) Set {
	var s Set
	for _, cards := range groups {
		for _, card := range cards {
			s.Add(card)
		}
	}
	return s
}

// Add adds a card to the set
func (s *Set) Add(card Card) {
	*s |= 1 << card.Index()
}

// Contains checks if a card is in the set
func (s Set) Contains(card Card) bool {
	return s&(1<<card.Index()) != 0
}

// Remaining returns every card of a full deck that is not in any of the
// given groups.
func Remaining(groups ...[]Card) []Card {
	used := NewSet(groups...)
	remaining := make([]Card, 0, Size)
	for _, card := range Full() {
		if !used.Contains(card) {
			remaining = append(remaining, card)
		}
	}
	return remaining
}

// HasDuplicates reports whether the same card appears twice across groups.
func HasDuplicates(groups ...[]Card) bool {
	var seen Set
	for _, cards := range groups {
		for _, card := range cards {
			if seen.Contains(card) {
				return true
			}
			seen.Add(card)
		}
	}
	return false
}

// SortDescending returns a copy of cards ordered by rank descending, with
// equal ranks ordered by suit descending.
func SortDescending(cards []Card) []Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b Card) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(b.Suit, a.Suit)
	})
	return sorted
}
