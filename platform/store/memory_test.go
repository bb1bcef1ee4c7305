package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nexopoly/platform/engine"
)

func newGame(t *testing.T, lobbyID string) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(lobbyID, []engine.Seat{
		{PlayerID: "p1", Name: "Alice", Color: "red"},
		{PlayerID: "p2", Name: "Bob", Color: "blue"},
	})
	require.NoError(t, err)
	return g
}

func TestCreateAndLoad(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t, "lobby-1")
	require.NoError(t, s.Create(g))
	require.Equal(t, int64(1), g.Version)

	require.ErrorIs(t, s.Create(newGame(t, "lobby-1")), ErrExists)

	loaded, err := s.Load("lobby-1")
	require.NoError(t, err)
	require.Equal(t, "lobby-1", loaded.LobbyID)
	require.Equal(t, int64(1), loaded.Version)
	require.Len(t, loaded.Players, 2)
	require.Equal(t, "p1", loaded.State.CurrentPlayerID)

	_, err = s.Load("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveBumpsVersion(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newGame(t, "lobby-1")))

	g, err := s.Load("lobby-1")
	require.NoError(t, err)
	_, err = g.RollDice("p1")
	require.NoError(t, err)
	require.NoError(t, s.Save(g))
	require.Equal(t, int64(2), g.Version)

	reloaded, err := s.Load("lobby-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), reloaded.Version)
	require.NotNil(t, reloaded.State.LastDiceRoll)
}

func TestSaveDetectsStaleVersion(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newGame(t, "lobby-1")))

	// Two clients load the same version; the second commit loses.
	a, err := s.Load("lobby-1")
	require.NoError(t, err)
	b, err := s.Load("lobby-1")
	require.NoError(t, err)

	require.NoError(t, s.Save(a))
	require.ErrorIs(t, s.Save(b), ErrConflict)

	// The loser reloads at the new version and can commit again.
	b, err = s.Load("lobby-1")
	require.NoError(t, err)
	require.NoError(t, s.Save(b))
	require.Equal(t, int64(3), b.Version)
}

func TestSaveUnknownLobby(t *testing.T) {
	s := NewMemoryStore()
	require.ErrorIs(t, s.Save(newGame(t, "ghost")), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Create(newGame(t, "lobby-1")))
	require.NoError(t, s.Delete("lobby-1"))
	_, err := s.Load("lobby-1")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete("lobby-1"), "delete is idempotent")
}

func TestSavedSnapshotIsDetached(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t, "lobby-1")
	require.NoError(t, s.Create(g))

	// Mutating the live game after Create must not touch the stored copy.
	p, err := g.Player("p1")
	require.NoError(t, err)
	p.Money = 7

	loaded, err := s.Load("lobby-1")
	require.NoError(t, err)
	lp, err := loaded.Player("p1")
	require.NoError(t, err)
	require.Equal(t, engine.StartingMoney, lp.Money)
}

func TestSubscribe(t *testing.T) {
	drain := func(sub Subscription) {
		for {
			select {
			case <-sub.C():
			default:
				return
			}
		}
	}

	t.Run("save signals subscribers", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Create(newGame(t, "lobby-1")))
		sub, err := s.Subscribe("lobby-1")
		require.NoError(t, err)
		defer sub.Close()
		drain(sub)

		g, err := s.Load("lobby-1")
		require.NoError(t, err)
		require.NoError(t, s.Save(g))

		select {
		case <-sub.C():
		default:
			t.Fatal("expected a change signal after Save")
		}
	})

	t.Run("signals coalesce instead of blocking", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Create(newGame(t, "lobby-1")))
		sub, err := s.Subscribe("lobby-1")
		require.NoError(t, err)
		defer sub.Close()
		drain(sub)

		for i := 0; i < 5; i++ {
			g, err := s.Load("lobby-1")
			require.NoError(t, err)
			require.NoError(t, s.Save(g))
		}
		<-sub.C()
		select {
		case <-sub.C():
			t.Fatal("coalesced signals should deliver at most one pending tick")
		default:
		}
	})

	t.Run("other lobbies stay quiet", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Create(newGame(t, "lobby-1")))
		sub, err := s.Subscribe("lobby-2")
		require.NoError(t, err)
		defer sub.Close()

		g, err := s.Load("lobby-1")
		require.NoError(t, err)
		require.NoError(t, s.Save(g))

		select {
		case <-sub.C():
			t.Fatal("signal leaked across lobbies")
		default:
		}
	})

	t.Run("close removes the subscriber", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Create(newGame(t, "lobby-1")))
		sub, err := s.Subscribe("lobby-1")
		require.NoError(t, err)
		require.NoError(t, sub.Close())
		drain(sub)

		g, err := s.Load("lobby-1")
		require.NoError(t, err)
		require.NoError(t, s.Save(g))

		select {
		case <-sub.C():
			t.Fatal("closed subscription still receiving")
		default:
		}
	})
}
