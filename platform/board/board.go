// Package board holds the static 40-tile board definition and the mutable
// per-tile ownership state layered on top of it.
package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed properties.json
var rawTiles []byte

const (
	// Size is the fixed number of tiles on the board.
	Size = 40
	// JailPos is where banished players are sent.
	JailPos = 10
	// MaxHouses is the house cap per tile; 5 denotes a hotel.
	MaxHouses = 5
)

var (
	ErrOutOfRange       = errors.New("board: position out of range")
	ErrUnknownTile      = errors.New("board: unknown tile")
	ErrAlreadyOwned     = errors.New("board: tile already owned")
	ErrNotOwnable       = errors.New("board: tile cannot be owned")
	ErrNotAProperty     = errors.New("board: houses require a property tile")
	ErrNotAMonopoly     = errors.New("board: owner does not hold the full color group")
	ErrCapacityExceeded = errors.New("board: house capacity exceeded")
)

type Kind string

const (
	KindProperty Kind = "property"
	KindRailroad Kind = "railroad"
	KindUtility  Kind = "utility"
	KindSpecial  Kind = "special"
)

// Effect is the landing behavior of a special tile, resolved once at
// definition time instead of by matching tile id strings.
type Effect string

const (
	EffectNone       Effect = ""
	EffectTax        Effect = "tax"
	EffectSendToJail Effect = "jail"
	EffectFortune    Effect = "fortune"
)

type Tile struct {
	Position  int    `json:"position"`
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"type"`
	Group     string `json:"group,omitempty"`
	Price     int    `json:"price,omitempty"`
	BaseRent  int    `json:"rent,omitempty"`
	Effect    Effect `json:"effect,omitempty"`
	TaxAmount int    `json:"amount,omitempty"`
	Flavor    string `json:"flavor,omitempty"`

	// Mutable per-game state.
	Owner     string `json:"owner,omitempty"`
	Houses    int    `json:"houses,omitempty"`
	Mortgaged bool   `json:"mortgaged,omitempty"`
}

// Ownable reports whether the tile can be bought at all.
func (t *Tile) Ownable() bool {
	return t.Kind != KindSpecial && t.Price > 0
}

// Board is one lobby's view of the 40 tiles.
type Board struct {
	tiles []Tile
}

// New builds a fresh board from the embedded definition. The definition is
// static configuration; a malformed build is unrecoverable.
func New() *Board {
	var tiles []Tile
	if err := json.Unmarshal(rawTiles, &tiles); err != nil {
		panic(fmt.Sprintf("board: bad properties.json: %v", err))
	}
	if len(tiles) != Size {
		panic(fmt.Sprintf("board: expected %d tiles, got %d", Size, len(tiles)))
	}
	for i := range tiles {
		tiles[i].Position = i
	}
	return &Board{tiles: tiles}
}

// Tile returns the tile at pos.
func (b *Board) Tile(pos int) (*Tile, error) {
	if pos < 0 || pos >= Size {
		return nil, ErrOutOfRange
	}
	return &b.tiles[pos], nil
}

// TileByID looks a tile up by its stable id.
func (b *Board) TileByID(id string) (*Tile, error) {
	for i := range b.tiles {
		if b.tiles[i].ID == id {
			return &b.tiles[i], nil
		}
	}
	return nil, ErrUnknownTile
}

// Tiles returns every tile in board order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, Size)
	for i := range b.tiles {
		out[i] = &b.tiles[i]
	}
	return out
}

// SetOwner records playerID as the owner of the tile at pos.
func (b *Board) SetOwner(pos int, playerID string) error {
	t, err := b.Tile(pos)
	if err != nil {
		return err
	}
	if !t.Ownable() {
		return ErrNotOwnable
	}
	if t.Owner != "" && t.Owner != playerID {
		return ErrAlreadyOwned
	}
	t.Owner = playerID
	return nil
}

// ClearOwnership resets the tile at pos to its unowned state.
func (b *Board) ClearOwnership(pos int) error {
	t, err := b.Tile(pos)
	if err != nil {
		return err
	}
	t.Owner = ""
	t.Houses = 0
	t.Mortgaged = false
	return nil
}

// AddHouses raises the house count at pos by count. Construction is only
// legal while the owner holds the tile's entire color group.
func (b *Board) AddHouses(pos, count int) error {
	t, err := b.Tile(pos)
	if err != nil {
		return err
	}
	if t.Kind != KindProperty {
		return ErrNotAProperty
	}
	if t.Owner == "" || !b.HasMonopoly(t.Owner, t.Group) {
		return ErrNotAMonopoly
	}
	if t.Houses+count > MaxHouses {
		return ErrCapacityExceeded
	}
	t.Houses += count
	return nil
}

// GroupTiles returns the tiles sharing a color group, in board order.
func (b *Board) GroupTiles(group string) []*Tile {
	var out []*Tile
	for i := range b.tiles {
		if b.tiles[i].Group == group && b.tiles[i].Group != "" {
			out = append(out, &b.tiles[i])
		}
	}
	return out
}

// HasMonopoly reports whether playerID owns every property tile of group.
func (b *Board) HasMonopoly(playerID, group string) bool {
	if playerID == "" || group == "" {
		return false
	}
	found := false
	for i := range b.tiles {
		t := &b.tiles[i]
		if t.Kind != KindProperty || t.Group != group {
			continue
		}
		if t.Owner != playerID {
			return false
		}
		found = true
	}
	return found
}

// CountOwned counts the tiles of one kind held by playerID. Mortgaged tiles
// still count toward railroad and utility multipliers.
func (b *Board) CountOwned(playerID string, kind Kind) int {
	n := 0
	for i := range b.tiles {
		if b.tiles[i].Kind == kind && b.tiles[i].Owner == playerID {
			n++
		}
	}
	return n
}

// OwnedBy returns every tile held by playerID, in board order.
func (b *Board) OwnedBy(playerID string) []*Tile {
	var out []*Tile
	if playerID == "" {
		return out
	}
	for i := range b.tiles {
		if b.tiles[i].Owner == playerID {
			out = append(out, &b.tiles[i])
		}
	}
	return out
}
