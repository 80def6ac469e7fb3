package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatPlayers(ids ...string) *Players {
	players := make([]*Player, len(ids))
	for i, id := range ids {
		players[i] = NewPlayer(id, "Player "+id, 1000)
	}
	return NewPlayers(players)
}

func ids(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func roundIDs(t *testing.T, p *Players, start string, reverse bool) []string {
	t.Helper()
	seq, err := p.Round(start, reverse)
	require.NoError(t, err)
	return ids(slices.Collect(seq))
}

func TestRoundSkipsFoldedSeats(t *testing.T) {
	p := seatPlayers("1", "2", "3", "4")
	require.NoError(t, p.Fold("2"))
	require.NoError(t, p.Fold("3"))

	assert.Equal(t, []string{"1", "4"}, roundIDs(t, p, "1", false))

	next, err := p.Next("1")
	require.NoError(t, err)
	assert.Equal(t, "4", next.ID)
}

func TestRoundWrapsAround(t *testing.T) {
	p := seatPlayers("a", "b", "c", "d", "e")
	require.NoError(t, p.Remove("d"))

	assert.Equal(t, []string{"c", "e", "a", "b"}, roundIDs(t, p, "c", false))
	assert.Equal(t, []string{"c", "b", "a", "e"}, roundIDs(t, p, "c", true))
}

func TestRoundVisitsEveryActiveSeatOnce(t *testing.T) {
	p := seatPlayers("1", "2", "3", "4", "5", "6")
	require.NoError(t, p.Fold("2"))
	require.NoError(t, p.Remove("5"))

	active := ids(p.Active())
	for _, start := range active {
		for _, reverse := range []bool{false, true} {
			visited := roundIDs(t, p, start, reverse)
			assert.ElementsMatch(t, active, visited)
			assert.Equal(t, start, visited[0])
		}
	}
}

func TestRoundStopsEarly(t *testing.T) {
	p := seatPlayers("1", "2", "3")
	seq, err := p.Round("2", false)
	require.NoError(t, err)

	var visited []string
	for player := range seq {
		visited = append(visited, player.ID)
		break
	}
	assert.Equal(t, []string{"2"}, visited)
}

func TestNeighbours(t *testing.T) {
	p := seatPlayers("1", "2", "3", "4")
	require.NoError(t, p.Fold("4"))

	prev, err := p.Previous("1")
	require.NoError(t, err)
	assert.Equal(t, "3", prev.ID)

	next, err := p.Next("3")
	require.NoError(t, err)
	assert.Equal(t, "1", next.ID)

	_, err = p.Next("4")
	assert.ErrorIs(t, err, ErrInactivePlayer)
	_, err = p.Previous("4")
	assert.ErrorIs(t, err, ErrInactivePlayer)
}

func TestNeighboursOfLastActivePlayer(t *testing.T) {
	p := seatPlayers("1", "2", "3")
	require.NoError(t, p.Fold("1"))
	require.NoError(t, p.Fold("3"))

	next, err := p.Next("2")
	require.NoError(t, err)
	assert.Nil(t, next)

	prev, err := p.Previous("2")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestUnknownPlayer(t *testing.T) {
	p := seatPlayers("1", "2")

	_, err := p.Get("9")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	assert.ErrorIs(t, p.Fold("9"), ErrUnknownPlayer)
	assert.ErrorIs(t, p.Remove("9"), ErrUnknownPlayer)
	_, err = p.Round("9", false)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	_, err = p.Next("9")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	_, err = p.IsActive("9")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestResetKeepsDeadPlayersFolded(t *testing.T) {
	p := seatPlayers("1", "2", "3", "4")
	require.NoError(t, p.Fold("1"))
	require.NoError(t, p.Remove("3"))
	assert.Equal(t, 2, p.CountActive())

	p.Reset()

	assert.Equal(t, []string{"1", "2", "4"}, ids(p.Active()))
	assert.Equal(t, []string{"3"}, ids(p.Folded()))
	assert.Equal(t, []string{"3"}, ids(p.Dead()))
	assert.Equal(t, []string{"1", "2", "4"}, ids(p.All()))

	active, err := p.IsActive("3")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCountActiveWithMoney(t *testing.T) {
	p := seatPlayers("1", "2", "3")
	broke, err := p.Get("2")
	require.NoError(t, err)
	broke.TakeMoney(1000)

	assert.Equal(t, 3, p.CountActive())
	assert.Equal(t, 2, p.CountActiveWithMoney())
}

func TestDuplicateSeatsKeepFirst(t *testing.T) {
	first := NewPlayer("1", "First", 10)
	p := NewPlayers([]*Player{first, NewPlayer("2", "Two", 10), NewPlayer("1", "Again", 10)})

	assert.Equal(t, []string{"1", "2"}, ids(p.All()))
	got, err := p.Get("1")
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestPlayerMoney(t *testing.T) {
	player := NewPlayer("hal", "Hal", 100)
	player.TakeMoney(30)
	player.AddMoney(12.5)
	assert.Equal(t, 82.5, player.Money)
	assert.Equal(t, "Hal $82.50", player.String())
}
