package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"nexopoly/platform/board"
)

var testNames = []string{"Ada", "Belle", "Cato", "Dora"}

// testGame seats n players p1..pn with a fixed randomness source.
func testGame(t *testing.T, n int) *Game {
	t.Helper()
	var seats []Seat
	for i := 0; i < n; i++ {
		seats = append(seats, Seat{
			PlayerID: fmt.Sprintf("p%d", i+1),
			Name:     testNames[i%len(testNames)],
			Color:    "red",
		})
	}
	g, err := NewGame("lobby-1", seats)
	require.NoError(t, err)
	g.SetRand(rand.New(rand.NewSource(42)))
	return g
}

// grantTile hands a tile to a player the way purchase would, bypassing
// phase checks.
func grantTile(t *testing.T, g *Game, playerID string, pos int) {
	t.Helper()
	require.NoError(t, g.Board.SetOwner(pos, playerID))
	p, err := g.Player(playerID)
	require.NoError(t, err)
	tile, err := g.Board.Tile(pos)
	require.NoError(t, err)
	addOwnedTile(p, tile.ID)
}

// grantGroup hands a player every property tile of a color group.
func grantGroup(t *testing.T, g *Game, playerID, group string) {
	t.Helper()
	for _, tile := range g.Board.GroupTiles(group) {
		grantTile(t, g, playerID, tile.Position)
	}
}

// assertLedgerConsistent checks the two views of ownership against each
// other: OwnedTiles must exactly match the tiles pointing back.
func assertLedgerConsistent(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.Players {
		owned := map[string]bool{}
		for _, tile := range g.Board.OwnedBy(p.ID) {
			owned[tile.ID] = true
		}
		require.Len(t, p.OwnedTiles, len(owned), "player %s ledger drift", p.ID)
		for _, id := range p.OwnedTiles {
			require.True(t, owned[id], "player %s claims unowned tile %s", p.ID, id)
		}
	}
}

// totalMoney sums all players' cash, for conservation checks.
func totalMoney(g *Game) int {
	sum := 0
	for _, p := range g.Players {
		sum += p.Money
	}
	return sum
}

// mustTile fetches a tile or fails the test.
func mustTile(t *testing.T, g *Game, pos int) *board.Tile {
	t.Helper()
	tile, err := g.Board.Tile(pos)
	require.NoError(t, err)
	return tile
}
