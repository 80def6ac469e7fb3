package client

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/lox/holdem-player/internal/channel"
	"github.com/lox/holdem-player/internal/game"
	"github.com/lox/holdem-player/internal/protocol"
	"github.com/lox/holdem-player/internal/strategy"
)

// handleNewGame replaces the tracked game. The client's own player takes its
// seat so money bookkeeping carries across games.
func (c *PlayerClient) handleNewGame(m protocol.NewGame) {
	if c.state != nil {
		c.logger.Debug("New game replaces the game in progress")
	}

	players := make([]*game.Player, len(m.Players))
	for i, info := range m.Players {
		if info.ID == c.player.ID {
			c.player.Money = info.Money
			players[i] = c.player
			continue
		}
		players[i] = game.NewPlayer(info.ID, info.Name, info.Money)
	}

	c.state = game.NewState(
		game.NewPlayers(players),
		game.NewScores(c.detector),
		m.BigBlind,
		m.SmallBlind,
	)
	c.logger.Info("New game", "game", m.GameID, "players", len(players),
		"big_blind", m.BigBlind, "small_blind", m.SmallBlind)
}

func (c *PlayerClient) handleEvent(ctx context.Context, ch channel.Channel, ev protocol.GameEvent) error {
	switch m := ev.(type) {
	case protocol.GameOver:
		c.state = nil
		c.logger.Info("Game over", "money", c.player.Money)
		return nil
	case protocol.CardsAssignment:
		return c.handleCardsAssignment(m)
	case protocol.Showdown:
		return c.handleShowdown(m)
	case protocol.Fold:
		return c.handleFold(m)
	case protocol.DeadPlayer:
		return c.handleDeadPlayer(m)
	case protocol.PotsUpdate:
		c.state.CollectBets(m.Total())
		c.logger.Info("Jackpot", "pot", fmt.Sprintf("$%.2f", c.state.Pot))
		return nil
	case protocol.PlayerAction:
		return c.handlePlayerAction(ctx, ch, m)
	case protocol.BetPlaced:
		return c.handleBet(m)
	case protocol.SharedCards:
		return c.handleSharedCards(m)
	case protocol.WinnerDesignation:
		return c.handleWinnerDesignation(m)
	default:
		c.logger.Error("Event not recognised", "event", ev.Event())
		return nil
	}
}

func (c *PlayerClient) handleCardsAssignment(m protocol.CardsAssignment) error {
	if err := c.state.Scores.AssignCards(c.player.ID, m.Cards); err != nil {
		return err
	}
	c.logger.Info("Cards received", "cards", c.formatter.Format(m.Cards))
	return nil
}

func (c *PlayerClient) handleShowdown(m protocol.Showdown) error {
	for _, id := range slices.Sorted(maps.Keys(m.Players)) {
		player, err := c.state.Players.Get(id)
		if err != nil {
			return err
		}
		cards := m.Players[id].Cards
		if err := c.state.Scores.AssignCards(id, cards); err != nil {
			return err
		}
		c.logger.Info("Showdown", "player", player, "cards", c.formatter.Format(cards))
	}
	return nil
}

func (c *PlayerClient) handleFold(m protocol.Fold) error {
	if err := c.state.Players.Fold(m.Player.ID); err != nil {
		return err
	}
	player, _ := c.state.Players.Get(m.Player.ID)
	c.logger.Info("Player fold", "player", player)
	return nil
}

func (c *PlayerClient) handleDeadPlayer(m protocol.DeadPlayer) error {
	if err := c.state.Players.Remove(m.Player.ID); err != nil {
		return err
	}
	player, _ := c.state.Players.Get(m.Player.ID)
	c.logger.Info("Player left", "player", player)
	return nil
}

func (c *PlayerClient) handlePlayerAction(ctx context.Context, ch channel.Channel, m protocol.PlayerAction) error {
	if m.Action != protocol.ActionBet {
		c.logger.Error("Action not recognised", "action", m.Action)
		return nil
	}

	c.state.Bets = maps.Clone(m.Bets)
	if c.state.Bets == nil {
		c.state.Bets = make(map[string]float64)
	}

	if m.Player.ID != c.player.ID {
		player, err := c.state.Players.Get(m.Player.ID)
		if err != nil {
			return err
		}
		c.logger.Info("Waiting for player to bet", "player", player)
		return nil
	}

	c.logger.Info("My turn to bet")
	bet, err := c.strategy.Bet(c.player, c.state, m.Bets, m.MinBet, m.MaxBet)
	if err != nil {
		c.logger.Error("Bet strategy failed, folding", "err", err)
		bet = strategy.Resolve(strategy.Fold, c.state.Pot, m.MinBet, m.MaxBet)
	}

	switch bet {
	case strategy.FoldBet:
		c.logger.Info("Decision: fold")
	case m.MinBet:
		c.logger.Info("Decision: call", "amount", fmt.Sprintf("$%.2f", bet))
	default:
		c.logger.Info("Decision: raise", "amount", fmt.Sprintf("$%.2f", bet))
	}

	return ch.Send(ctx, protocol.Bet{Bet: bet})
}

func (c *PlayerClient) handleBet(m protocol.BetPlaced) error {
	player, err := c.state.Players.Get(m.Player.ID)
	if err != nil {
		return err
	}
	player.TakeMoney(m.Bet)
	c.state.RecordBet(player.ID, m.Bet)
	c.logger.Info("Player bet", "player", player, "amount", fmt.Sprintf("$%.2f", m.Bet), "type", m.BetType)
	return nil
}

func (c *PlayerClient) handleSharedCards(m protocol.SharedCards) error {
	if err := c.state.Scores.AddSharedCards(m.Cards); err != nil {
		return err
	}
	c.logger.Info("Shared cards", "board", c.formatter.Format(c.state.Scores.SharedCards()))
	return nil
}

func (c *PlayerClient) handleWinnerDesignation(m protocol.WinnerDesignation) error {
	c.logger.Info("Pot winners designation", "pot", fmt.Sprintf("$%.2f", m.Pot.Money))
	for _, id := range m.Pot.WinnerIDs {
		player, err := c.state.Players.Get(id)
		if err != nil {
			return err
		}
		player.AddMoney(m.Pot.MoneySplit)
		c.logger.Info("Player won", "player", player, "amount", fmt.Sprintf("$%.2f", m.Pot.MoneySplit))
	}
	return nil
}
