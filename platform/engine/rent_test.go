package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var railPositions = []int{5, 15, 25, 35}

func TestRentDueRailroads(t *testing.T) {
	want := []int{25, 50, 100, 200}
	for owned := 1; owned <= 4; owned++ {
		g := testGame(t, 2)
		for i := 0; i < owned; i++ {
			grantTile(t, g, "p1", railPositions[i])
		}
		rent, err := RentDue(g.Board, railPositions[0], "p2", 7)
		require.NoError(t, err)
		require.Equal(t, want[owned-1], rent, "%d railroads", owned)
	}
}

func TestRentDueUtilities(t *testing.T) {
	t.Run("one utility pays 4x dice", func(t *testing.T) {
		g := testGame(t, 2)
		grantTile(t, g, "p1", 12)
		rent, err := RentDue(g.Board, 12, "p2", 7)
		require.NoError(t, err)
		require.Equal(t, 28, rent)
	})

	t.Run("both utilities pay 10x dice", func(t *testing.T) {
		g := testGame(t, 2)
		grantTile(t, g, "p1", 12)
		grantTile(t, g, "p1", 28)
		rent, err := RentDue(g.Board, 12, "p2", 7)
		require.NoError(t, err)
		require.Equal(t, 70, rent)
	})
}

func TestRentDueProperties(t *testing.T) {
	// Bernsteinallee (position 24, yellow) has base rent 20.
	const pos = 24

	t.Run("no monopoly, no houses", func(t *testing.T) {
		g := testGame(t, 2)
		grantTile(t, g, "p1", pos)
		rent, err := RentDue(g.Board, pos, "p2", 7)
		require.NoError(t, err)
		require.Equal(t, 20, rent)
	})

	t.Run("monopoly doubles base rent", func(t *testing.T) {
		g := testGame(t, 2)
		grantGroup(t, g, "p1", "yellow")
		rent, err := RentDue(g.Board, pos, "p2", 7)
		require.NoError(t, err)
		require.Equal(t, 40, rent)
	})

	t.Run("house tiers", func(t *testing.T) {
		want := map[int]int{1: 100, 2: 300, 3: 900, 4: 1600, 5: 2200}
		for houses, expected := range want {
			g := testGame(t, 2)
			grantGroup(t, g, "p1", "yellow")
			require.NoError(t, g.Board.AddHouses(pos, houses))
			rent, err := RentDue(g.Board, pos, "p2", 7)
			require.NoError(t, err)
			require.Equal(t, expected, rent, "%d houses", houses)
		}
	})
}

func TestRentDueZeroCases(t *testing.T) {
	t.Run("special tile", func(t *testing.T) {
		g := testGame(t, 2)
		rent, err := RentDue(g.Board, 20, "p2", 7)
		require.NoError(t, err)
		require.Zero(t, rent)
	})

	t.Run("unowned tile", func(t *testing.T) {
		g := testGame(t, 2)
		rent, err := RentDue(g.Board, 24, "p2", 7)
		require.NoError(t, err)
		require.Zero(t, rent)
	})

	t.Run("self landing", func(t *testing.T) {
		g := testGame(t, 2)
		grantTile(t, g, "p1", 24)
		rent, err := RentDue(g.Board, 24, "p1", 7)
		require.NoError(t, err)
		require.Zero(t, rent)
	})

	t.Run("mortgaged tile beats every formula", func(t *testing.T) {
		g := testGame(t, 2)
		grantGroup(t, g, "p1", "yellow")
		require.NoError(t, g.Board.AddHouses(24, 5))
		mustTile(t, g, 24).Mortgaged = true
		rent, err := RentDue(g.Board, 24, "p2", 7)
		require.NoError(t, err)
		require.Zero(t, rent)
	})

	t.Run("out of range", func(t *testing.T) {
		g := testGame(t, 2)
		_, err := RentDue(g.Board, 40, "p2", 7)
		require.Error(t, err)
	})
}
