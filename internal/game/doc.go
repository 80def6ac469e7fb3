// Package game tracks what a seated player knows about the hand in
// progress: who is still in it, which cards are known, and how much money
// is on the table.
//
// # Basic Usage
//
//	players := game.NewPlayers([]*game.Player{alice, bob, carol})
//	scores := game.NewScores(evaluator.NewDetector(evaluator.Holdem))
//	state := game.NewState(players, scores, 10, 5)
//
//	scores.AssignCards(alice.ID, hole)
//	if err := scores.AddSharedCards(flop); err != nil {
//	    // the dealer broke the 0 -> 3 -> 4 -> 5 board contract
//	}
//	phase, _ := state.Phase() // game.Flop
//
// Nothing in this package is safe for concurrent use; a state belongs to the
// single goroutine processing the game's messages.
package game
