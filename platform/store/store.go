// Package store persists one authoritative game snapshot per lobby and
// fans out content-free change signals to observers, who re-read on signal.
package store

import (
	"errors"

	"nexopoly/platform/engine"
)

var (
	ErrNotFound = errors.New("store: game not found")
	ErrExists   = errors.New("store: game already exists")
	// ErrConflict means another client committed between this caller's
	// Load and Save; reload and re-validate before retrying.
	ErrConflict = errors.New("store: snapshot changed since load")
)

type GameStore interface {
	// Create writes the initial snapshot; fails if the lobby already has one.
	Create(g *engine.Game) error
	// Load rebuilds the live game from the current snapshot.
	Load(lobbyID string) (*engine.Game, error)
	// Save commits the game with a compare-and-swap on the version read at
	// Load time, then signals subscribers.
	Save(g *engine.Game) error
	Delete(lobbyID string) error
	// Subscribe delivers a signal whenever the lobby's snapshot changes.
	Subscribe(lobbyID string) (Subscription, error)
}

type Subscription interface {
	C() <-chan struct{}
	Close() error
}
