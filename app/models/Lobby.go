package models

// Lobby is the pre-game room; Id doubles as the join code.
type Lobby struct {
	Id      string
	Name    string
	Mode    string
	Status  string
	Host_id string
}

type LobbyCreateDto struct {
	Name    string
	Mode    string
	Host_id string
}

type VerifyLobbyDto struct {
	Code    string
	User_id string
}
