package strategy

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-player/internal/game"
)

var ErrInvalidWeights = errors.New("invalid decision weights")

// Default population of a Random strategy
const (
	DefaultFoldCases  = 2
	DefaultCallCases  = 5
	DefaultRaiseCases = 3
)

// Random picks fold, call or raise uniformly from a weighted population,
// ignoring the cards entirely.
type Random struct {
	cases []Decision
	rng   *rand.Rand
}

// NewRandom creates a strategy drawing from foldCases folds, callCases calls
// and raiseCases raises.
func NewRandom(rng *rand.Rand, foldCases, callCases, raiseCases int) (*Random, error) {
	if foldCases < 0 || callCases < 0 || raiseCases < 0 || foldCases+callCases+raiseCases == 0 {
		return nil, fmt.Errorf("%w: %d/%d/%d", ErrInvalidWeights, foldCases, callCases, raiseCases)
	}

	cases := make([]Decision, 0, foldCases+callCases+raiseCases)
	for decision, n := range []int{foldCases, callCases, raiseCases} {
		for range n {
			cases = append(cases, Decision(decision))
		}
	}
	return &Random{cases: cases, rng: rng}, nil
}

// NewDefaultRandom creates a Random strategy with the default population.
func NewDefaultRandom(rng *rand.Rand) *Random {
	r, _ := NewRandom(rng, DefaultFoldCases, DefaultCallCases, DefaultRaiseCases)
	return r
}

// Weights returns the number of fold, call and raise cases drawn from.
func (r *Random) Weights() (fold, call, raise int) {
	for _, d := range r.cases {
		switch d {
		case Fold:
			fold++
		case Call:
			call++
		case Raise:
			raise++
		}
	}
	return fold, call, raise
}

// Bet implements Strategy. Raises are sized against the collected pot.
func (r *Random) Bet(_ *game.Player, state *game.State, _ map[string]float64, minBet, maxBet float64) (float64, error) {
	decision := r.cases[r.rng.IntN(len(r.cases))]
	return Resolve(decision, state.Pot, minBet, maxBet), nil
}
