package evaluator

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/holdem-player/internal/deck"
	"github.com/lox/holdem-player/internal/randutil"
)

const (
	// BoardSize is the number of shared cards on a complete board
	BoardSize = 5

	// DefaultSimulations is the number of virtual boards per estimate
	DefaultSimulations = 10
)

var (
	ErrNoCards        = errors.New("no hole cards to evaluate")
	ErrBoardTooLarge  = errors.New("board holds more than 5 cards")
	ErrDuplicateCards = errors.New("duplicate cards between hand and board")
	ErrTooManyCards   = errors.New("not enough cards left for an opponent hand")
)

// HandEvaluator estimates the probability that a hand beats a random
// opponent holding the same number of hole cards.
type HandEvaluator struct {
	detector    *Detector
	simulations int
	rng         *rand.Rand
}

// Option configures a HandEvaluator
type Option func(*HandEvaluator)

// WithSimulations sets how many virtual boards are sampled per estimate.
func WithSimulations(n int) Option {
	return func(e *HandEvaluator) {
		if n > 0 {
			e.simulations = n
		}
	}
}

// WithRand sets the random source used to shuffle the remaining deck.
func WithRand(rng *rand.Rand) Option {
	return func(e *HandEvaluator) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// NewHandEvaluator creates an evaluator scoring hands with detector
func NewHandEvaluator(detector *Detector, opts ...Option) *HandEvaluator {
	e := &HandEvaluator{
		detector:    detector,
		simulations: DefaultSimulations,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.New(0)
	}
	return e
}

// Simulations returns the number of virtual boards sampled per estimate.
func (e *HandEvaluator) Simulations() int {
	return e.simulations
}

// HandStrength returns a win probability in [0, 1]. Each simulation shuffles
// the unseen cards, completes the board, then plays myCards against every
// possible opponent holding drawn from what is left. Ties count as wins.
// The result is the mean of the per-simulation win ratios.
func (e *HandEvaluator) HandStrength(myCards, board []deck.Card) (float64, error) {
	if len(myCards) == 0 {
		return 0, ErrNoCards
	}
	if len(board) > BoardSize {
		return 0, fmt.Errorf("%w: got %d", ErrBoardTooLarge, len(board))
	}
	if deck.HasDuplicates(myCards, board) {
		return 0, ErrDuplicateCards
	}

	remaining := deck.Remaining(myCards, board)
	missing := BoardSize - len(board)
	if len(myCards) > len(remaining)-missing {
		return 0, fmt.Errorf("%w: %d hole cards", ErrTooManyCards, len(myCards))
	}

	virtualBoard := make([]deck.Card, BoardSize)
	copy(virtualBoard, board)

	total := 0.0
	for i := 0; i < e.simulations; i++ {
		e.rng.Shuffle(len(remaining), func(a, b int) {
			remaining[a], remaining[b] = remaining[b], remaining[a]
		})
		copy(virtualBoard[len(board):], remaining[:missing])
		total += e.evaluateCase(myCards, virtualBoard, remaining[missing:])
	}

	return total / float64(e.simulations), nil
}

// evaluateCase compares myCards against every opponent holding drawn from
// the virtual deck on a complete board.
func (e *HandEvaluator) evaluateCase(myCards, board, virtualDeck []deck.Card) float64 {
	myScore := e.detector.Score(append(slices.Clone(myCards), board...))

	wins, defeats := 0, 0
	opponent := make([]deck.Card, len(myCards), len(myCards)+len(board))
	combinations(virtualDeck, len(myCards), func(hole []deck.Card) {
		copy(opponent, hole)
		opponentScore := e.detector.Score(append(opponent[:len(hole)], board...))
		if myScore.Compare(opponentScore) < 0 {
			defeats++
		} else {
			wins++
		}
	})

	return float64(wins) / float64(wins+defeats)
}

// combinations calls fn with every k-sized combination of cards, in
// lexicographic index order. fn must not retain the slice.
func combinations(cards []deck.Card, k int, fn func([]deck.Card)) {
	n := len(cards)
	if k > n {
		return
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	combo := make([]deck.Card, k)

	for {
		for i, idx := range indices {
			combo[i] = cards[idx]
		}
		fn(combo)

		i := k - 1
		for i >= 0 && indices[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
