package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	t.Run("seats players with the fixed stake", func(t *testing.T) {
		g := testGame(t, 3)
		require.Len(t, g.Players, 3)
		for i, p := range g.Players {
			require.Equal(t, StartingMoney, p.Money)
			require.Zero(t, p.Position)
			require.False(t, p.InJail)
			require.Equal(t, i, p.Seat)
		}
		require.Equal(t, "p1", g.State.CurrentPlayerID)
		require.Equal(t, PhaseAwaitingRoll, g.State.Phase)
		require.Equal(t, 1, g.State.Round)
	})

	t.Run("rejects fewer than two seats", func(t *testing.T) {
		_, err := NewGame("lobby-1", []Seat{{PlayerID: "solo"}})
		require.ErrorIs(t, err, ErrNotEnoughPlayers)
	})
}

func TestRollAdmission(t *testing.T) {
	t.Run("only the current player may roll", func(t *testing.T) {
		g := testGame(t, 2)
		before := *g.Snapshot()
		_, err := g.RollDice("p2")
		require.ErrorIs(t, err, ErrNotYourTurn)
		require.Equal(t, before, *g.Snapshot(), "rejected roll must not change state")
	})

	t.Run("unknown player", func(t *testing.T) {
		g := testGame(t, 2)
		_, err := g.RollDice("ghost")
		require.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("no second roll in one turn", func(t *testing.T) {
		g := testGame(t, 2)
		// Park p1 in a decision phase by landing on an unowned property.
		out := g.applyRoll("p1", DiceRoll{Die1: 1, Die2: 2})
		require.True(t, out.OfferedPurchase)
		_, err := g.RollDice("p1")
		require.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("roll records the dice", func(t *testing.T) {
		g := testGame(t, 2)
		out, err := g.RollDice("p1")
		require.NoError(t, err)
		require.Equal(t, out.Roll, *g.State.LastDiceRoll)
		require.GreaterOrEqual(t, out.Roll.Die1, 1)
		require.LessOrEqual(t, out.Roll.Die1, 6)
		require.GreaterOrEqual(t, out.Roll.Die2, 1)
		require.LessOrEqual(t, out.Roll.Die2, 6)
	})
}

func TestAdvanceTurn(t *testing.T) {
	t.Run("visits every active player once per round", func(t *testing.T) {
		g := testGame(t, 4)
		require.Equal(t, 1, g.State.Round)
		var visited []string
		for i := 0; i < 4; i++ {
			visited = append(visited, g.State.CurrentPlayerID)
			g.advanceTurn()
		}
		require.Equal(t, []string{"p1", "p2", "p3", "p4"}, visited)
		require.Equal(t, "p1", g.State.CurrentPlayerID)
		require.Equal(t, 2, g.State.Round, "round bumps exactly once per cycle")
	})

	t.Run("skips eliminated players", func(t *testing.T) {
		g := testGame(t, 4)
		p2, _ := g.Player("p2")
		p2.Eliminated = true
		g.advanceTurn()
		require.Equal(t, "p3", g.State.CurrentPlayerID)
	})

	t.Run("finishes with one player left", func(t *testing.T) {
		g := testGame(t, 3)
		for _, id := range []string{"p2", "p3"} {
			p, _ := g.Player(id)
			p.Eliminated = true
		}
		g.advanceTurn()
		require.Equal(t, PhaseFinished, g.State.Phase)
		require.Equal(t, "p1", g.Winner().ID)
	})
}

func TestJail(t *testing.T) {
	jailPlayer := func(g *Game, id string) {
		p, _ := g.Player(id)
		p.InJail = true
		p.Position = 10
	}

	t.Run("doubles release and move", func(t *testing.T) {
		g := testGame(t, 2)
		jailPlayer(g, "p1")
		out := g.applyRoll("p1", DiceRoll{Die1: 3, Die2: 3})
		p, _ := g.Player("p1")
		require.True(t, out.ReleasedFromJail)
		require.False(t, p.InJail)
		require.Zero(t, p.JailTurns)
		require.True(t, out.Moved)
		require.Equal(t, 16, p.Position)
	})

	t.Run("failed rolls count up and end the turn", func(t *testing.T) {
		g := testGame(t, 2)
		jailPlayer(g, "p1")
		out := g.applyRoll("p1", DiceRoll{Die1: 2, Die2: 5})
		p, _ := g.Player("p1")
		require.False(t, out.Moved)
		require.False(t, out.ReleasedFromJail)
		require.True(t, p.InJail)
		require.Equal(t, 1, p.JailTurns)
		require.Equal(t, 10, p.Position)
		require.Equal(t, "p2", g.State.CurrentPlayerID)
	})

	t.Run("third failure releases without movement or fine", func(t *testing.T) {
		g := testGame(t, 2)
		jailPlayer(g, "p1")
		for i := 0; i < 3; i++ {
			g.State.CurrentPlayerID = "p1"
			g.State.Phase = PhaseAwaitingRoll
			g.applyRoll("p1", DiceRoll{Die1: 2, Die2: 5})
		}
		p, _ := g.Player("p1")
		require.False(t, p.InJail)
		require.Zero(t, p.JailTurns)
		require.Equal(t, 10, p.Position, "forced release does not move")
		require.Equal(t, StartingMoney, p.Money, "forced release is free")
	})
}

func TestFinishedIsTerminal(t *testing.T) {
	g := testGame(t, 2)
	grantTile(t, g, "p1", 24)
	p2, _ := g.Player("p2")
	p2.Eliminated = true
	g.maybeFinish()
	require.True(t, g.Finished())

	_, err := g.RollDice("p1")
	require.ErrorIs(t, err, ErrGameFinished)
	require.ErrorIs(t, g.Purchase("p1", 1), ErrGameFinished)
	require.ErrorIs(t, g.BuildHouses("p1", 24, 1), ErrGameFinished)
	require.ErrorIs(t, g.TransferMoney("p1", "p2", 10), ErrGameFinished)
	require.ErrorIs(t, g.DeclareBankruptcy("p1"), ErrGameFinished)
	require.True(t, g.Finished())
}
