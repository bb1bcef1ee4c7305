package models

// LobbyPlayer is one seated participant; seats become engine players when
// the game starts.
type LobbyPlayer struct {
	User_id  string
	Lobby_id string
	Username string
	Color    string
	Seat     int
}
