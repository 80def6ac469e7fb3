package evaluator

import (
	"fmt"

	"github.com/lox/holdem-player/internal/deck"
)

// Variant describes how a poker game ranks hands. Precedence lists the
// categories from strongest to weakest; the first one detected wins.
type Variant struct {
	Name       string
	Precedence []Category
	// LowestRank is the lowest playable rank, used to detect the wheel.
	LowestRank deck.Rank
	// SuitStrength packs suits into Score.Strength so that no two distinct
	// hands tie.
	SuitStrength bool
	// RoyalBelowWheel makes an Ace-high straight flush lose against the
	// Ace-low one, so that no hand is guaranteed to win.
	RoyalBelowWheel bool
}

// Holdem is the community-card variant played by the live client.
var Holdem = Variant{
	Name: "holdem",
	Precedence: []Category{
		StraightFlush,
		Quads,
		FullHouse,
		Flush,
		Straight,
		Trips,
		TwoPair,
		Pair,
		NoPair,
	},
	LowestRank: deck.Two,
}

// Traditional returns the traditional (draw) poker variant, where a flush
// outranks a full house. Short decks raise lowestRank.
func Traditional(lowestRank deck.Rank, royalBelowWheel bool) Variant {
	return Variant{
		Name: "traditional",
		Precedence: []Category{
			StraightFlush,
			Quads,
			Flush,
			FullHouse,
			Straight,
			Trips,
			TwoPair,
			Pair,
			NoPair,
		},
		LowestRank:      lowestRank,
		SuitStrength:    true,
		RoyalBelowWheel: royalBelowWheel,
	}
}

// rank returns the strength of a category, 0 being the weakest.
func (v *Variant) rank(category Category) int {
	for i, c := range v.Precedence {
		if c == category {
			return len(v.Precedence) - 1 - i
		}
	}
	return -1
}

// Detector maps a collection of cards onto the best Score of its variant.
type Detector struct {
	variant Variant
}

// NewDetector creates a detector for the given variant
func NewDetector(variant Variant) *Detector {
	return &Detector{variant: variant}
}

// Variant returns the variant the detector scores for.
func (d *Detector) Variant() Variant {
	return d.variant
}

// Score tries every category in precedence order and returns the first
// match. NoPair matches any non-empty hand, so a miss means the caller broke
// the contract and Score panics.
func (d *Detector) Score(cards []deck.Card) Score {
	if len(cards) == 0 {
		panic("evaluator: cannot score an empty hand")
	}

	classifier := NewCards(cards, d.variant.LowestRank)
	for _, category := range d.variant.Precedence {
		if detected := classifier.Detect(category); detected != nil {
			return Score{Category: category, Cards: detected, variant: &d.variant}
		}
	}

	panic(fmt.Sprintf("evaluator: unable to detect the score of %v", cards))
}
