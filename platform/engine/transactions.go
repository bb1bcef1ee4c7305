package engine

import "nexopoly/platform/board"

// Purchase buys the tile the current player just landed on. Only valid
// while the purchase offer is open.
func (g *Game) Purchase(playerID string, pos int) error {
	if err := g.requireTurn(playerID); err != nil {
		return err
	}
	if g.State.Phase != PhaseAwaitingPropertyDecision {
		return ErrWrongPhase
	}
	p, _ := g.Player(playerID)
	t, err := g.Board.Tile(pos)
	if err != nil {
		return err
	}
	if t.Position != p.Position {
		// The open offer is for the landed tile only.
		return ErrWrongPhase
	}
	if !t.Ownable() {
		return board.ErrNotOwnable
	}
	if t.Owner != "" {
		return board.ErrAlreadyOwned
	}
	if p.Money < t.Price {
		return ErrInsufficientFunds
	}
	p.Money -= t.Price
	if err := g.Board.SetOwner(pos, p.ID); err != nil {
		return err
	}
	addOwnedTile(p, t.ID)
	g.advanceTurn()
	return nil
}

// DeclinePurchase closes the purchase offer without buying; the tile stays
// unowned and the turn advances. Closing the dialog client-side maps here.
func (g *Game) DeclinePurchase(playerID string) error {
	if err := g.requireTurn(playerID); err != nil {
		return err
	}
	if g.State.Phase != PhaseAwaitingPropertyDecision {
		return ErrWrongPhase
	}
	g.advanceTurn()
	return nil
}

// BuildHouses adds count houses to an owned monopoly tile. Cost is
// count * floor(price/2). Ownership, not turn possession, is the gate.
func (g *Game) BuildHouses(playerID string, pos, count int) error {
	p, err := g.requireSolvent(playerID)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrInvalidAmount
	}
	t, err := g.Board.Tile(pos)
	if err != nil {
		return err
	}
	if t.Kind != board.KindProperty {
		return board.ErrNotAProperty
	}
	if t.Owner != p.ID {
		return ErrNotOwner
	}
	if t.Mortgaged {
		return ErrTileMortgaged
	}
	if !g.Board.HasMonopoly(p.ID, t.Group) {
		return board.ErrNotAMonopoly
	}
	if t.Houses+count > board.MaxHouses {
		return board.ErrCapacityExceeded
	}
	cost := count * (t.Price / 2)
	if p.Money < cost {
		return ErrInsufficientFunds
	}
	if err := g.Board.AddHouses(pos, count); err != nil {
		return err
	}
	p.Money -= cost
	return nil
}

// Mortgage pawns an owned, house-free tile for half its price.
func (g *Game) Mortgage(playerID string, pos int) error {
	p, err := g.requireSolvent(playerID)
	if err != nil {
		return err
	}
	t, err := g.Board.Tile(pos)
	if err != nil {
		return err
	}
	if t.Owner != p.ID {
		return ErrNotOwner
	}
	if t.Mortgaged {
		return ErrTileMortgaged
	}
	if t.Houses > 0 {
		return ErrHousesPresent
	}
	t.Mortgaged = true
	p.Money += t.Price / 2
	return nil
}

// Unmortgage buys a mortgaged tile back for the same half price.
func (g *Game) Unmortgage(playerID string, pos int) error {
	p, err := g.requireSolvent(playerID)
	if err != nil {
		return err
	}
	t, err := g.Board.Tile(pos)
	if err != nil {
		return err
	}
	if t.Owner != p.ID {
		return ErrNotOwner
	}
	if !t.Mortgaged {
		return ErrTileNotMortgaged
	}
	cost := t.Price / 2
	if p.Money < cost {
		return ErrInsufficientFunds
	}
	p.Money -= cost
	t.Mortgaged = false
	return nil
}

// TransferMoney moves amount from one player to another. Debit and credit
// happen together on the in-memory state and reach the store in one
// snapshot write, so no partial transfer is ever observable. A credit that
// brings an insolvency debtor up to the owed amount settles the debt on
// the spot.
func (g *Game) TransferMoney(fromID, toID string, amount int) error {
	if g.Finished() {
		return ErrGameFinished
	}
	if amount <= 0 || fromID == toID {
		return ErrInvalidAmount
	}
	from, err := g.requireSolvent(fromID)
	if err != nil {
		return err
	}
	to, err := g.Player(toID)
	if err != nil {
		return err
	}
	if to.Eliminated {
		return ErrEliminated
	}
	if from.Money < amount {
		return ErrInsufficientFunds
	}
	g.AdjustMoney(from.ID, -amount)
	g.AdjustMoney(to.ID, amount)
	if ins := g.State.Insolvency; ins != nil && ins.Debtor == to.ID {
		g.settleInsolvency(to)
	}
	return nil
}

// SellProperty liquidates one owned tile for floor(price/2) while the
// seller is resolving an insolvency. Houses on the tile are forfeited, and
// a mortgaged tile sells for nothing: the mortgage already advanced the
// half price. The debt is settled the moment cash covers it, and the turn
// then advances.
func (g *Game) SellProperty(playerID string, pos int) error {
	ins := g.State.Insolvency
	if ins == nil || ins.Debtor != playerID {
		return ErrNotInsolvent
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	t, err := g.Board.Tile(pos)
	if err != nil {
		return err
	}
	if t.Owner != p.ID {
		return ErrNotOwner
	}
	if !t.Mortgaged {
		p.Money += t.Price / 2
	}
	removeOwnedTile(p, t.ID)
	if err := g.Board.ClearOwnership(pos); err != nil {
		return err
	}
	g.settleInsolvency(p)
	return nil
}

func (g *Game) settleInsolvency(p *Player) {
	ins := g.State.Insolvency
	if ins == nil || p.Money < ins.Amount {
		return
	}
	creditor, _ := g.Player(ins.Creditor)
	p.Money -= ins.Amount
	creditor.Money += ins.Amount
	g.State.Insolvency = nil
	g.advanceTurn()
}

// DeclareBankruptcy eliminates the player: every owned tile reverts to the
// bank (houses reset, mortgages cleared), money drops to zero, and any
// open debt they owe or are owed is written off. Works both as forced
// bankruptcy and as a voluntary give-up.
func (g *Game) DeclareBankruptcy(playerID string) error {
	if g.Finished() {
		return ErrGameFinished
	}
	p, err := g.Player(playerID)
	if err != nil {
		return err
	}
	if p.Eliminated {
		return ErrEliminated
	}
	for _, t := range g.Board.OwnedBy(p.ID) {
		g.Board.ClearOwnership(t.Position)
	}
	p.OwnedTiles = nil
	p.Money = 0
	p.Eliminated = true

	wasCurrent := g.State.CurrentPlayerID == p.ID
	if ins := g.State.Insolvency; ins != nil {
		switch p.ID {
		case ins.Debtor:
			g.State.Insolvency = nil
		case ins.Creditor:
			// The debt dies with the creditor; the blocked debtor's turn
			// ends as if it had been settled.
			g.State.Insolvency = nil
			g.advanceTurn()
			return nil
		}
	}
	if wasCurrent {
		g.advanceTurn()
	} else {
		g.maybeFinish()
	}
	return nil
}

// requireSolvent admits asset operations: the player must exist, still be
// in the game, and not be mid-insolvency.
func (g *Game) requireSolvent(playerID string) (*Player, error) {
	if g.Finished() {
		return nil, ErrGameFinished
	}
	p, err := g.Player(playerID)
	if err != nil {
		return nil, err
	}
	if p.Eliminated {
		return nil, ErrEliminated
	}
	if ins := g.State.Insolvency; ins != nil && ins.Debtor == p.ID {
		return nil, ErrInsolvencyPending
	}
	return p, nil
}
