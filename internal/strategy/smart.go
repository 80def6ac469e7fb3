package strategy

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-player/internal/display"
	"github.com/lox/holdem-player/internal/evaluator"
	"github.com/lox/holdem-player/internal/game"
)

// band maps hand strengths below a threshold to fold/call/raise weights.
type band struct {
	below   float64
	weights [3]float64
}

// Strong hands never fold; weak ones mostly fold with an occasional bluff.
var bands = []band{
	{0.20, [3]float64{0.85, 0.10, 0.05}},
	{0.40, [3]float64{0.60, 0.35, 0.05}},
	{0.60, [3]float64{0.15, 0.65, 0.20}},
	{0.80, [3]float64{0.00, 0.45, 0.55}},
}

var topBand = [3]float64{0.00, 0.20, 0.85}

// weightsFor returns the fold/call/raise weights for a hand strength
func weightsFor(strength float64) [3]float64 {
	for _, b := range bands {
		if strength < b.below {
			return b.weights
		}
	}
	return topBand
}

// pick samples a decision from the cumulative distribution of weights using
// a single uniform draw x in [0, 1).
func pick(weights [3]float64, x float64) Decision {
	var total float64
	for _, w := range weights {
		total += w
	}

	var cdf [3]float64
	var sum float64
	for i, w := range weights {
		sum += w
		cdf[i] = sum / total
	}

	idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] > x })
	if idx == len(cdf) {
		idx = len(cdf) - 1
	}
	return Decision(idx)
}

// Smart estimates the strength of its hand by simulation and leans towards
// raising as the estimate improves.
type Smart struct {
	evaluator *evaluator.HandEvaluator
	rng       *rand.Rand
	logger    *log.Logger
	formatter *display.CardsFormatter
}

// NewSmart creates a strategy that sizes its decisions from hand strength.
// A nil formatter draws cards as boxes.
func NewSmart(hands *evaluator.HandEvaluator, rng *rand.Rand, logger *log.Logger, formatter *display.CardsFormatter) *Smart {
	if formatter == nil {
		formatter = display.NewCardsFormatter(false, nil)
	}
	return &Smart{
		evaluator: hands,
		rng:       rng,
		logger:    logger,
		formatter: formatter,
	}
}

// Bet implements Strategy. Raises are sized against the pot including the
// bets of the current round.
func (s *Smart) Bet(me *game.Player, state *game.State, bets map[string]float64, minBet, maxBet float64) (float64, error) {
	pot := state.Pot
	for _, bet := range bets {
		pot += bet
	}

	cards, ok := state.Scores.PlayerCards(me.ID)
	if !ok {
		return 0, fmt.Errorf("%w: no cards dealt to %s", game.ErrUnknownPlayer, me.ID)
	}
	board := state.Scores.SharedCards()

	s.logger.Info("My cards:\n" + s.formatter.Format(cards))
	if len(board) > 0 {
		s.logger.Info("Board cards:\n" + s.formatter.Format(board))
	}
	s.logger.Info("Betting", "min_bet", minBet, "max_bet", maxBet, "pot", pot)

	strength, err := s.evaluator.HandStrength(cards, board)
	if err != nil {
		return 0, fmt.Errorf("estimating hand strength: %w", err)
	}

	weights := weightsFor(strength)
	decision := pick(weights, s.rng.Float64())

	s.logger.Info("Hand strength", "strength", strength,
		"fold", weights[0], "call", weights[1], "raise", weights[2], "decision", decision)

	return Resolve(decision, pot, minBet, maxBet), nil
}
