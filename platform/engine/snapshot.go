package engine

import (
	"math/rand"
	"time"

	"nexopoly/platform/board"
)

// TileState is the dynamic slice of a tile that gets persisted; the static
// definition is rebuilt from configuration on load.
type TileState struct {
	Position  int    `json:"position"`
	Owner     string `json:"owner,omitempty"`
	Houses    int    `json:"houses,omitempty"`
	Mortgaged bool   `json:"mortgaged,omitempty"`
}

// Snapshot is the whole-game persistence unit. The store writes one
// snapshot per lobby with a compare-and-swap on Version, so multi-player
// effects (rent, transfers) commit atomically.
type Snapshot struct {
	LobbyID string      `json:"lobby_id"`
	Version int64       `json:"version"`
	State   GameState   `json:"state"`
	Players []Player    `json:"players"`
	Tiles   []TileState `json:"tiles,omitempty"`
}

// Snapshot copies the game into a detached snapshot.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		LobbyID: g.LobbyID,
		Version: g.Version,
		State:   g.State,
	}
	if g.State.LastDiceRoll != nil {
		roll := *g.State.LastDiceRoll
		s.State.LastDiceRoll = &roll
	}
	if g.State.Insolvency != nil {
		ins := *g.State.Insolvency
		s.State.Insolvency = &ins
	}
	for _, p := range g.Players {
		cp := *p
		cp.OwnedTiles = append([]string(nil), p.OwnedTiles...)
		s.Players = append(s.Players, cp)
	}
	for _, t := range g.Board.Tiles() {
		if t.Owner == "" && t.Houses == 0 && !t.Mortgaged {
			continue
		}
		s.Tiles = append(s.Tiles, TileState{
			Position:  t.Position,
			Owner:     t.Owner,
			Houses:    t.Houses,
			Mortgaged: t.Mortgaged,
		})
	}
	return s
}

// FromSnapshot rebuilds a live game from a persisted snapshot.
func FromSnapshot(s *Snapshot) (*Game, error) {
	g := &Game{
		LobbyID: s.LobbyID,
		Version: s.Version,
		State:   s.State,
		Board:   board.New(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if s.State.LastDiceRoll != nil {
		roll := *s.State.LastDiceRoll
		g.State.LastDiceRoll = &roll
	}
	if s.State.Insolvency != nil {
		ins := *s.State.Insolvency
		g.State.Insolvency = &ins
	}
	for i := range s.Players {
		p := s.Players[i]
		p.OwnedTiles = append([]string(nil), s.Players[i].OwnedTiles...)
		g.Players = append(g.Players, &p)
	}
	for _, ts := range s.Tiles {
		t, err := g.Board.Tile(ts.Position)
		if err != nil {
			return nil, err
		}
		t.Owner = ts.Owner
		t.Houses = ts.Houses
		t.Mortgaged = ts.Mortgaged
	}
	return g, nil
}
