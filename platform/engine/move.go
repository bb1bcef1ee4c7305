package engine

import "nexopoly/platform/board"

// movePlayer advances p by diceTotal, credits the pass-start bonus when the
// path crosses position 0, then resolves the landing tile.
func (g *Game) movePlayer(p *Player, diceTotal int, out *RollOutcome) {
	out.From = p.Position
	dest := (p.Position + diceTotal) % board.Size
	if dest < p.Position {
		p.Money += PassStartBonus
		out.PassedStart = true
	}
	p.Position = dest
	out.To = dest
	out.Moved = true
	g.resolveLanding(p, diceTotal, out)
}

// resolveLanding dispatches on the landed tile. It either advances the turn
// or leaves the game parked in a decision/debt phase.
func (g *Game) resolveLanding(p *Player, diceTotal int, out *RollOutcome) {
	t, _ := g.Board.Tile(p.Position)
	switch {
	case t.Kind == board.KindSpecial:
		g.applySpecial(p, t, out)
		g.advanceTurn()
	case t.Owner == "" && t.Ownable():
		g.State.Phase = PhaseAwaitingPropertyDecision
		out.OfferedPurchase = true
	case t.Owner == "" || t.Owner == p.ID || t.Mortgaged:
		g.advanceTurn()
	default:
		g.chargeRent(p, t, diceTotal, out)
	}
}

func (g *Game) applySpecial(p *Player, t *board.Tile, out *RollOutcome) {
	switch t.Effect {
	case board.EffectTax:
		// Taxes clamp at zero; only rent can push a player into insolvency.
		paid := t.TaxAmount
		if paid > p.Money {
			paid = p.Money
		}
		p.Money -= paid
		out.TaxPaid = paid
	case board.EffectSendToJail:
		p.Position = board.JailPos
		p.InJail = true
		p.JailTurns = 0
		out.To = board.JailPos
		out.SentToJail = true
	case board.EffectFortune:
		delta := fortuneTable[g.rng.Intn(len(fortuneTable))]
		if p.Money+delta < 0 {
			delta = -p.Money
		}
		p.Money += delta
		out.FortuneDelta = &delta
	}
}

// chargeRent assesses rent for a tile owned by someone else. A shortfall
// never partially pays: it raises an insolvency that blocks the turn until
// the debtor sells assets or goes bankrupt.
func (g *Game) chargeRent(p *Player, t *board.Tile, diceTotal int, out *RollOutcome) {
	rent, _ := RentDue(g.Board, t.Position, p.ID, diceTotal)
	out.RentOwed = rent
	out.RentTo = t.Owner
	if rent == 0 {
		g.advanceTurn()
		return
	}
	if p.Money < rent {
		g.State.Insolvency = &Insolvency{Debtor: p.ID, Creditor: t.Owner, Amount: rent}
		g.State.Phase = PhasePayingRent
		out.InsolvencyRaised = true
		return
	}
	owner, _ := g.Player(t.Owner)
	p.Money -= rent
	owner.Money += rent
	out.RentPaid = rent
	g.advanceTurn()
}
