package game

import "fmt"

// Phase is the betting round, derived from the board size
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// State is everything a player tracks during one game. A new game replaces
// the whole state.
type State struct {
	Players *Players
	Scores  *Scores

	Pot        float64
	BigBlind   float64
	SmallBlind float64

	// Bets are the contributions of each player in the current betting round.
	Bets map[string]float64
}

// NewState creates the state for a game that has just started
func NewState(players *Players, scores *Scores, bigBlind, smallBlind float64) *State {
	return &State{
		Players:    players,
		Scores:     scores,
		BigBlind:   bigBlind,
		SmallBlind: smallBlind,
		Bets:       make(map[string]float64),
	}
}

// Phase derives the betting round from the number of shared cards.
func (s *State) Phase() (Phase, error) {
	switch n := len(s.Scores.SharedCards()); n {
	case 0:
		return Preflop, nil
	case 3:
		return Flop, nil
	case 4:
		return Turn, nil
	case 5:
		return River, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidBoard, n)
	}
}

// RecordBet adds a player's wager to the current betting round.
func (s *State) RecordBet(playerID string, amount float64) {
	s.Bets[playerID] += amount
}

// CollectBets sets the pot total, starting a new betting round.
func (s *State) CollectBets(pot float64) {
	s.Pot = pot
	s.Bets = make(map[string]float64)
}

// TotalPot returns the pot plus the bets of the current round
func (s *State) TotalPot() float64 {
	total := s.Pot
	for _, bet := range s.Bets {
		total += bet
	}
	return total
}
