// Package strategy decides how much a player wagers when asked to bet.
package strategy

import (
	"errors"
	"fmt"

	"github.com/lox/holdem-player/internal/game"
)

// FoldBet is the amount sent to the server to fold
const FoldBet = -1.0

var ErrUnknownStrategy = errors.New("unknown bet strategy")

// Strategy chooses a bet for the player whose turn it is. The result is
// either FoldBet or an amount in [minBet, maxBet]. It never folds when
// minBet is zero.
type Strategy interface {
	Bet(me *game.Player, state *game.State, bets map[string]float64, minBet, maxBet float64) (float64, error)
}

// Decision is the kind of bet a strategy settles on before it is sized
type Decision int

const (
	Fold Decision = iota
	Call
	Raise
)

// String returns the string representation of a decision
func (d Decision) String() string {
	switch d {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Resolve sizes a decision. Folding when calling is free becomes a call, and
// raising when there is no room to raise becomes a call. A raise bets the
// pot, capped at maxBet and never below minBet.
func Resolve(decision Decision, pot, minBet, maxBet float64) float64 {
	if decision == Fold && minBet == 0 {
		decision = Call
	}
	if decision == Raise && minBet == maxBet {
		decision = Call
	}

	switch decision {
	case Fold:
		return FoldBet
	case Call:
		return minBet
	default:
		return max(minBet, min(maxBet, pot))
	}
}
