package engine

import "nexopoly/platform/board"

// Player ledger: lookups and per-player mutations. Money adjustments do not
// clamp; bankruptcy detection is the transaction layer's job.

func (g *Game) Player(id string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrUnknownPlayer
}

// ActivePlayers returns the non-eliminated players in seating order.
func (g *Game) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range g.Players {
		if !p.Eliminated {
			out = append(out, p)
		}
	}
	return out
}

// AdjustMoney applies delta to the player's cash and returns the new total.
func (g *Game) AdjustMoney(id string, delta int) (int, error) {
	p, err := g.Player(id)
	if err != nil {
		return 0, err
	}
	p.Money += delta
	return p.Money, nil
}

func (g *Game) SetPosition(id string, pos int) error {
	p, err := g.Player(id)
	if err != nil {
		return err
	}
	if pos < 0 || pos >= board.Size {
		return board.ErrOutOfRange
	}
	p.Position = pos
	return nil
}

func (g *Game) SetJailed(id string, jailed bool) error {
	p, err := g.Player(id)
	if err != nil {
		return err
	}
	p.InJail = jailed
	return nil
}

func (g *Game) IncrementJailTurns(id string) (int, error) {
	p, err := g.Player(id)
	if err != nil {
		return 0, err
	}
	p.JailTurns++
	return p.JailTurns, nil
}

func (g *Game) ResetJailTurns(id string) error {
	p, err := g.Player(id)
	if err != nil {
		return err
	}
	p.JailTurns = 0
	return nil
}

// addOwnedTile and removeOwnedTile keep Player.OwnedTiles in lockstep with
// the board's owner fields; every ownership mutation goes through both.

func addOwnedTile(p *Player, tileID string) {
	for _, id := range p.OwnedTiles {
		if id == tileID {
			return
		}
	}
	p.OwnedTiles = append(p.OwnedTiles, tileID)
}

func removeOwnedTile(p *Player, tileID string) {
	for i, id := range p.OwnedTiles {
		if id == tileID {
			p.OwnedTiles = append(p.OwnedTiles[:i], p.OwnedTiles[i+1:]...)
			return
		}
	}
}
