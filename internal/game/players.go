package game

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrUnknownPlayer  = errors.New("unknown player id")
	ErrInactivePlayer = errors.New("inactive player")
)

// Players keeps the seating order of a game, fixed at construction, along
// with who has folded in the current hand and who has left the game.
// Dead players are always folded too.
type Players struct {
	players map[string]*Player
	ids     []string
	folded  map[string]bool
	dead    map[string]bool
}

// NewPlayers seats players in the given order. Repeated ids keep their first
// seat.
func NewPlayers(players []*Player) *Players {
	p := &Players{
		players: make(map[string]*Player, len(players)),
		ids:     make([]string, 0, len(players)),
		folded:  make(map[string]bool),
		dead:    make(map[string]bool),
	}
	for _, player := range players {
		if _, ok := p.players[player.ID]; ok {
			continue
		}
		p.players[player.ID] = player
		p.ids = append(p.ids, player.ID)
	}
	return p
}

func (p *Players) seat(id string) (int, error) {
	i := slices.Index(p.ids, id)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return i, nil
}

// Get returns the player seated with the given id
func (p *Players) Get(id string) (*Player, error) {
	player, ok := p.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return player, nil
}

// Fold marks the player as out of the current hand.
func (p *Players) Fold(id string) error {
	if _, err := p.seat(id); err != nil {
		return err
	}
	p.folded[id] = true
	return nil
}

// Remove folds the player and marks them as gone for the rest of the game.
func (p *Players) Remove(id string) error {
	if err := p.Fold(id); err != nil {
		return err
	}
	p.dead[id] = true
	return nil
}

// Reset starts a new hand: only dead players stay folded.
func (p *Players) Reset() {
	p.folded = make(map[string]bool, len(p.dead))
	for id := range p.dead {
		p.folded[id] = true
	}
}

// Round yields each active player once, starting from the seat of start and
// walking the table forwards, or backwards when reverse is set.
func (p *Players) Round(start string, reverse bool) (iter.Seq[*Player], error) {
	first, err := p.seat(start)
	if err != nil {
		return nil, err
	}

	step := 1
	if reverse {
		step = -1
	}

	return func(yield func(*Player) bool) {
		n := len(p.ids)
		for i := 0; i < n; i++ {
			id := p.ids[((first+i*step)%n+n)%n]
			if p.folded[id] {
				continue
			}
			if !yield(p.players[id]) {
				return
			}
		}
	}, nil
}

// Next returns the nearest active player after id in seating order, or nil
// when id is the only active player left.
func (p *Players) Next(id string) (*Player, error) {
	return p.neighbour(id, 1)
}

// Previous returns the nearest active player before id in seating order, or
// nil when id is the only active player left.
func (p *Players) Previous(id string) (*Player, error) {
	return p.neighbour(id, -1)
}

func (p *Players) neighbour(id string, step int) (*Player, error) {
	first, err := p.seat(id)
	if err != nil {
		return nil, err
	}
	if p.folded[id] {
		return nil, fmt.Errorf("%w: %s", ErrInactivePlayer, id)
	}

	n := len(p.ids)
	for i := 1; i < n; i++ {
		next := p.ids[((first+i*step)%n+n)%n]
		if !p.folded[next] {
			return p.players[next], nil
		}
	}
	return nil, nil
}

// IsActive reports whether the player is still in the current hand.
func (p *Players) IsActive(id string) (bool, error) {
	if _, err := p.seat(id); err != nil {
		return false, err
	}
	return !p.folded[id], nil
}

// CountActive returns the number of players still in the hand
func (p *Players) CountActive() int {
	return len(p.ids) - len(p.folded)
}

// CountActiveWithMoney returns the number of active players with money left
func (p *Players) CountActiveWithMoney() int {
	count := 0
	for _, player := range p.Active() {
		if player.Money > 0 {
			count++
		}
	}
	return count
}

// All returns every player still in the game, in seating order.
func (p *Players) All() []*Player {
	return p.filter(func(id string) bool { return !p.dead[id] })
}

// Active returns the players still in the hand, in seating order.
func (p *Players) Active() []*Player {
	return p.filter(func(id string) bool { return !p.folded[id] })
}

// Folded returns the players out of the hand, in seating order.
func (p *Players) Folded() []*Player {
	return p.filter(func(id string) bool { return p.folded[id] })
}

// Dead returns the players who left the game, in seating order.
func (p *Players) Dead() []*Player {
	return p.filter(func(id string) bool { return p.dead[id] })
}

func (p *Players) filter(keep func(id string) bool) []*Player {
	var players []*Player
	for _, id := range p.ids {
		if keep(id) {
			players = append(players, p.players[id])
		}
	}
	return players
}
