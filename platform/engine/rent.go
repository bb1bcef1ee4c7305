package engine

import "nexopoly/platform/board"

// houseRent maps house count (index) to the base-rent multiplier; index 5
// is the hotel tier.
var houseRent = [board.MaxHouses + 1]int{1, 5, 15, 45, 80, 110}

// RentDue computes the rent owed by landingPlayerID on the tile at pos.
// diceTotal is the just-rolled total, used only for utilities. The result
// is 0 for special tiles, mortgaged tiles, unowned tiles and self-landings.
func RentDue(b *board.Board, pos int, landingPlayerID string, diceTotal int) (int, error) {
	t, err := b.Tile(pos)
	if err != nil {
		return 0, err
	}
	if t.Mortgaged {
		return 0, nil
	}
	if t.Kind == board.KindSpecial || t.Owner == "" || t.Owner == landingPlayerID {
		return 0, nil
	}
	switch t.Kind {
	case board.KindRailroad:
		// 25 doubled per additional railroad: 25, 50, 100, 200.
		n := b.CountOwned(t.Owner, board.KindRailroad)
		return 25 << (n - 1), nil
	case board.KindUtility:
		if b.CountOwned(t.Owner, board.KindUtility) >= 2 {
			return diceTotal * 10, nil
		}
		return diceTotal * 4, nil
	}
	if t.Houses > 0 {
		return t.BaseRent * houseRent[t.Houses], nil
	}
	if b.HasMonopoly(t.Owner, t.Group) {
		return 2 * t.BaseRent, nil
	}
	return t.BaseRent, nil
}
