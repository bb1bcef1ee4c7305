// Package engine is the authoritative game core: one Game value per lobby,
// mutated only through the synchronous operations in this package. Every
// operation validates first and mutates second, so a returned error means
// nothing changed.
package engine

import (
	"math/rand"
	"time"

	"nexopoly/platform/board"
)

type Phase string

const (
	PhaseAwaitingRoll             Phase = "awaiting_roll"
	PhaseMoving                   Phase = "moving"
	PhaseAwaitingPropertyDecision Phase = "awaiting_property_decision"
	PhasePayingRent               Phase = "paying_rent"
	PhaseFinished                 Phase = "finished"
)

const (
	// StartingMoney is each player's stake at game start.
	StartingMoney = 1500
	// PassStartBonus is credited whenever movement crosses position 0.
	PassStartBonus = 200
	// jailReleaseAttempts is the failed-roll count that forces release.
	jailReleaseAttempts = 3
)

// fortuneTable is the bonus/penalty bucket drawn from on fortune tiles.
var fortuneTable = []int{0, 50, 100, 200, -50, -100}

type DiceRoll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

func (d DiceRoll) Total() int    { return d.Die1 + d.Die2 }
func (d DiceRoll) Doubles() bool { return d.Die1 == d.Die2 }

// Insolvency blocks turn advancement until the debtor covers the rent in
// full (by selling property) or declares bankruptcy.
type Insolvency struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   int    `json:"amount"`
}

type GameState struct {
	CurrentPlayerID string      `json:"current_player_id"`
	Phase           Phase       `json:"phase"`
	Round           int         `json:"round"`
	LastDiceRoll    *DiceRoll   `json:"last_dice_roll,omitempty"`
	Insolvency      *Insolvency `json:"insolvency,omitempty"`
}

type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Color      string   `json:"color"`
	Seat       int      `json:"seat"`
	Money      int      `json:"money"`
	Position   int      `json:"position"`
	InJail     bool     `json:"in_jail"`
	JailTurns  int      `json:"jail_turns"`
	Eliminated bool     `json:"eliminated"`
	OwnedTiles []string `json:"properties"`
}

// Seat describes one lobby participant at game start.
type Seat struct {
	PlayerID string
	Name     string
	Color    string
}

// Game is one lobby's full authoritative state.
type Game struct {
	LobbyID string
	State   GameState
	Players []*Player // seating order
	Board   *board.Board

	// Version is the snapshot version last read from the store; the store
	// uses it for compare-and-swap writes.
	Version int64

	rng *rand.Rand
}

// NewGame seats the given players and returns a game ready for the first
// roll: 1500 money each, everyone on position 0, round 1, first seat to move.
func NewGame(lobbyID string, seats []Seat) (*Game, error) {
	if len(seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	g := &Game{
		LobbyID: lobbyID,
		Board:   board.New(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i, s := range seats {
		g.Players = append(g.Players, &Player{
			ID:    s.PlayerID,
			Name:  s.Name,
			Color: s.Color,
			Seat:  i,
			Money: StartingMoney,
		})
	}
	g.State = GameState{
		CurrentPlayerID: seats[0].PlayerID,
		Phase:           PhaseAwaitingRoll,
		Round:           1,
	}
	return g, nil
}

// SetRand swaps the dice/fortune randomness source. Tests use a fixed seed.
func (g *Game) SetRand(r *rand.Rand) { g.rng = r }

func (g *Game) rollDie() int { return g.rng.Intn(6) + 1 }

func (g *Game) Finished() bool { return g.State.Phase == PhaseFinished }

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	p, _ := g.Player(g.State.CurrentPlayerID)
	return p
}

// Winner returns the last solvent player once the game is finished.
func (g *Game) Winner() *Player {
	if !g.Finished() {
		return nil
	}
	active := g.ActivePlayers()
	if len(active) != 1 {
		return nil
	}
	return active[0]
}
