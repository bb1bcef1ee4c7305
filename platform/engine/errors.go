package engine

import "errors"

// Validation failures are detected before any mutation, so a rejected
// operation leaves the game state untouched and the caller can retry.
var (
	ErrUnknownPlayer     = errors.New("engine: unknown player")
	ErrNotEnoughPlayers  = errors.New("engine: need at least two players")
	ErrNotYourTurn       = errors.New("engine: not your turn")
	ErrWrongPhase        = errors.New("engine: action not legal in current phase")
	ErrGameFinished      = errors.New("engine: game is finished")
	ErrEliminated        = errors.New("engine: player is eliminated")
	ErrNotOwner          = errors.New("engine: player does not own this tile")
	ErrInvalidAmount     = errors.New("engine: amount must be positive")
	ErrInsufficientFunds = errors.New("engine: insufficient funds")
	ErrInsolvencyPending = errors.New("engine: insolvency must be resolved first")
	ErrNotInsolvent      = errors.New("engine: no insolvency to resolve")
	ErrTileMortgaged     = errors.New("engine: tile is mortgaged")
	ErrTileNotMortgaged  = errors.New("engine: tile is not mortgaged")
	ErrHousesPresent     = errors.New("engine: tile still carries houses")
)
