package game

import "fmt"

// Player is a seated participant and the money they have left.
type Player struct {
	ID    string
	Name  string
	Money float64
}

// NewPlayer creates a new player
func NewPlayer(id, name string, money float64) *Player {
	return &Player{ID: id, Name: name, Money: money}
}

// TakeMoney removes money wagered by the player
func (p *Player) TakeMoney(amount float64) {
	p.Money -= amount
}

// AddMoney credits the player with money won
func (p *Player) AddMoney(amount float64) {
	p.Money += amount
}

// String returns a string representation of the player
func (p *Player) String() string {
	return fmt.Sprintf("%s $%.2f", p.Name, p.Money)
}
