package engine

// RollOutcome reports what a single roll did, so observers can render the
// turn without diffing snapshots.
type RollOutcome struct {
	PlayerID         string    `json:"player_id"`
	Roll             DiceRoll  `json:"roll"`
	From             int       `json:"from"`
	To               int       `json:"to"`
	Moved            bool      `json:"moved"`
	PassedStart      bool      `json:"passed_start"`
	ReleasedFromJail bool      `json:"released_from_jail"`
	SentToJail       bool      `json:"sent_to_jail"`
	TaxPaid          int       `json:"tax_paid,omitempty"`
	FortuneDelta     *int      `json:"fortune_delta,omitempty"`
	RentOwed         int       `json:"rent_owed,omitempty"`
	RentPaid         int       `json:"rent_paid,omitempty"`
	RentTo           string    `json:"rent_to,omitempty"`
	OfferedPurchase  bool      `json:"offered_purchase"`
	InsolvencyRaised bool      `json:"insolvency_raised"`
}

// RollDice rolls for playerID and runs the whole turn transition: jail
// handling, movement, landing resolution and, unless a decision or debt is
// pending, turn advancement.
func (g *Game) RollDice(playerID string) (*RollOutcome, error) {
	if err := g.requireTurn(playerID); err != nil {
		return nil, err
	}
	if g.State.Phase != PhaseAwaitingRoll {
		return nil, ErrWrongPhase
	}
	return g.applyRoll(playerID, DiceRoll{Die1: g.rollDie(), Die2: g.rollDie()}), nil
}

// applyRoll is the deterministic remainder of RollDice. The caller has
// already validated admission.
func (g *Game) applyRoll(playerID string, roll DiceRoll) *RollOutcome {
	p, _ := g.Player(playerID)
	g.State.LastDiceRoll = &roll
	g.State.Phase = PhaseMoving
	out := &RollOutcome{PlayerID: playerID, Roll: roll, From: p.Position, To: p.Position}

	if p.InJail {
		if roll.Doubles() {
			p.InJail = false
			p.JailTurns = 0
			out.ReleasedFromJail = true
		} else {
			p.JailTurns++
			if p.JailTurns >= jailReleaseAttempts {
				// Third failed attempt: released without a fine, but the
				// turn still ends without movement.
				p.InJail = false
				p.JailTurns = 0
				out.ReleasedFromJail = true
			}
			g.advanceTurn()
			return out
		}
	}

	g.movePlayer(p, roll.Total(), out)
	return out
}

func (g *Game) requireTurn(playerID string) error {
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
	if g.State.CurrentPlayerID != playerID {
		return ErrNotYourTurn
	}
	return nil
}

// advanceTurn hands the turn to the next non-eliminated player in seating
// order, bumping the round when the order wraps to the first active seat.
// With at most one player left it finishes the game instead.
func (g *Game) advanceTurn() {
	active := g.ActivePlayers()
	if len(active) <= 1 {
		g.State.Phase = PhaseFinished
		return
	}
	cur := 0
	for i, p := range g.Players {
		if p.ID == g.State.CurrentPlayerID {
			cur = i
			break
		}
	}
	var next *Player
	for j := 1; j <= len(g.Players); j++ {
		if cand := g.Players[(cur+j)%len(g.Players)]; !cand.Eliminated {
			next = cand
			break
		}
	}
	if next == active[0] {
		g.State.Round++
	}
	g.State.CurrentPlayerID = next.ID
	g.State.Phase = PhaseAwaitingRoll
}

// maybeFinish ends the game if at most one player is still in it, without
// touching the turn order otherwise.
func (g *Game) maybeFinish() {
	if len(g.ActivePlayers()) <= 1 {
		g.State.Phase = PhaseFinished
	}
}
