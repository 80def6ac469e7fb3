package evaluator

import (
	"slices"

	"github.com/lox/holdem-player/internal/deck"
)

// Cards classifies an unordered collection of cards. Every detector works on
// the same rank-descending working copy and returns the cards forming the
// best hand of its category (at most 5), or nil when the pattern is absent.
type Cards struct {
	sorted     []deck.Card
	lowestRank deck.Rank
}

// NewCards sorts a working copy of cards. lowestRank is the lowest playable
// rank, under which an Ace can complete a wheel straight.
func NewCards(cards []deck.Card, lowestRank deck.Rank) *Cards {
	return &Cards{
		sorted:     deck.SortDescending(cards),
		lowestRank: lowestRank,
	}
}

// Detect runs the detector for the given category.
func (c *Cards) Detect(category Category) []deck.Card {
	switch category {
	case StraightFlush:
		return c.StraightFlush()
	case Quads:
		return c.Quads()
	case FullHouse:
		return c.FullHouse()
	case Flush:
		return c.Flush()
	case Straight:
		return c.Straight()
	case Trips:
		return c.Trips()
	case TwoPair:
		return c.TwoPair()
	case Pair:
		return c.Pair()
	case NoPair:
		return c.NoPair()
	default:
		return nil
	}
}

// rankGroups groups cards sharing a rank, ordered by rank descending. Since
// the working copy is sorted, cards inside a group are ordered by suit
// descending.
func (c *Cards) rankGroups() [][]deck.Card {
	var groups [][]deck.Card
	for i, card := range c.sorted {
		if i > 0 && c.sorted[i-1].Rank == card.Rank {
			groups[len(groups)-1] = append(groups[len(groups)-1], card)
			continue
		}
		groups = append(groups, []deck.Card{card})
	}
	return groups
}

// ofAKind returns the groups holding exactly n cards, highest rank first.
func (c *Cards) ofAKind(n int) [][]deck.Card {
	var groups [][]deck.Card
	for _, group := range c.rankGroups() {
		if len(group) == n {
			groups = append(groups, group)
		}
	}
	return groups
}

// withKickers fills the hand up to 5 cards with the highest unused cards.
func (c *Cards) withKickers(hand []deck.Card) []deck.Card {
	merged := slices.Clone(hand)
	for _, card := range c.sorted {
		if len(merged) == 5 {
			break
		}
		if !slices.Contains(hand, card) {
			merged = append(merged, card)
		}
	}
	return merged
}

// Quads returns four of a kind plus the highest kicker.
func (c *Cards) Quads() []deck.Card {
	quads := c.ofAKind(4)
	if len(quads) == 0 {
		return nil
	}
	return c.withKickers(quads[0])
}

// FullHouse returns the highest trips plus the highest other group of at
// least two cards. A second trips donates its two best cards.
func (c *Cards) FullHouse() []deck.Card {
	trips := c.ofAKind(3)
	if len(trips) == 0 {
		return nil
	}
	for _, group := range c.rankGroups() {
		if group[0].Rank == trips[0][0].Rank || len(group) < 2 || len(group) > 3 {
			continue
		}
		return append(slices.Clone(trips[0]), group[:2]...)
	}
	return nil
}

// Trips returns three of a kind plus the two highest kickers.
func (c *Cards) Trips() []deck.Card {
	trips := c.ofAKind(3)
	if len(trips) == 0 {
		return nil
	}
	return c.withKickers(trips[0])
}

// TwoPair returns the two highest pairs plus the highest kicker.
func (c *Cards) TwoPair() []deck.Card {
	pairs := c.ofAKind(2)
	if len(pairs) < 2 {
		return nil
	}
	return c.withKickers(append(slices.Clone(pairs[0]), pairs[1]...))
}

// Pair returns the highest pair plus the three highest kickers.
func (c *Cards) Pair() []deck.Card {
	pairs := c.ofAKind(2)
	if len(pairs) == 0 {
		return nil
	}
	return c.withKickers(pairs[0])
}

// Straight returns the highest five card run.
func (c *Cards) Straight() []deck.Card {
	return c.straight(c.sorted)
}

// Flush returns the five highest cards of the first suit to reach five.
// Since the working copy is sorted, that is the highest flush.
func (c *Cards) Flush() []deck.Card {
	suits := make(map[deck.Suit][]deck.Card, 4)
	for _, card := range c.sorted {
		suits[card.Suit] = append(suits[card.Suit], card)
		if len(suits[card.Suit]) == 5 {
			return suits[card.Suit]
		}
	}
	return nil
}

// StraightFlush runs straight detection on each suit as soon as it holds
// five cards; the first match is the highest straight flush.
func (c *Cards) StraightFlush() []deck.Card {
	suits := make(map[deck.Suit][]deck.Card, 4)
	for _, card := range c.sorted {
		suits[card.Suit] = append(suits[card.Suit], card)
		if len(suits[card.Suit]) < 5 {
			continue
		}
		if straight := c.straight(suits[card.Suit]); straight != nil {
			return straight
		}
	}
	return nil
}

// NoPair returns the five highest cards.
func (c *Cards) NoPair() []deck.Card {
	return slices.Clone(c.sorted[:min(5, len(c.sorted))])
}

// straight scans rank-sorted cards for five consecutive ranks, skipping
// duplicated ranks. An Ace on top completes a run of four ending at the
// lowest playable rank as the low card of a wheel.
func (c *Cards) straight(sorted []deck.Card) []deck.Card {
	if len(sorted) < 5 {
		return nil
	}

	run := []deck.Card{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		switch sorted[i].Rank {
		case sorted[i-1].Rank - 1:
			run = append(run, sorted[i])
			if len(run) == 5 {
				return run
			}
		case sorted[i-1].Rank:
		default:
			run = []deck.Card{sorted[i]}
		}
	}

	if len(run) == 4 && sorted[0].Rank == deck.Ace && run[3].Rank == c.lowestRank {
		return append(run, sorted[0])
	}
	return nil
}
