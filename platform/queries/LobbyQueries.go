package queries

import (
	"github.com/go-pg/pg/v10"

	"nexopoly/app/models"
	"nexopoly/platform/engine"
	"nexopoly/platform/logging"
	"nexopoly/platform/store"
)

// seatColors is the palette handed out in seating order.
var seatColors = []string{"red", "blue", "green", "yellow", "purple", "orange", "cyan", "pink"}

func VerifyLobby(id string, db *pg.DB) bool {
	lobby := &models.Lobby{Id: id}
	return db.Model(lobby).WherePK().Select() == nil
}

func GetUserData(userID string, db *pg.DB) (*models.User, error) {
	user := &models.User{Id: userID}
	if err := db.Model(user).WherePK().Select(); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateLobbyPlayer seats a user in a lobby, assigning the next seat and
// its color.
func CreateLobbyPlayer(player models.LobbyPlayer, db *pg.DB) error {
	seat, err := db.Model((*models.LobbyPlayer)(nil)).
		Where("lobby_id = ?", player.Lobby_id).
		Count()
	if err != nil {
		return err
	}
	player.Seat = seat
	if player.Color == "" {
		player.Color = seatColors[seat%len(seatColors)]
	}
	_, err = db.Model(&player).Insert()
	return err
}

// DeleteLobbyPlayer unseats a user; an emptied lobby is deleted with them.
func DeleteLobbyPlayer(userID, lobbyID string, db *pg.DB) error {
	player := new(models.LobbyPlayer)
	if _, err := db.Model(player).
		Where("user_id = ? and lobby_id = ?", userID, lobbyID).
		Delete(); err != nil {
		return err
	}
	remaining, err := db.Model((*models.LobbyPlayer)(nil)).
		Where("lobby_id = ?", lobbyID).
		Count()
	if err != nil {
		return err
	}
	if remaining == 0 {
		_, err = db.Model(&models.Lobby{Id: lobbyID}).WherePK().Delete()
	}
	return err
}

// SeatedPlayers lists a lobby's players in seating order.
func SeatedPlayers(lobbyID string, db *pg.DB) ([]models.LobbyPlayer, error) {
	var players []models.LobbyPlayer
	err := db.Model(&players).
		Where("lobby_id = ?", lobbyID).
		Order("seat ASC").
		Select()
	return players, err
}

// StartGame turns a lobby's seats into a fresh game, writes the initial
// snapshot and marks the lobby in progress.
func StartGame(lobbyID string, db *pg.DB, games store.GameStore) (*engine.Game, error) {
	players, err := SeatedPlayers(lobbyID, db)
	if err != nil {
		return nil, err
	}
	seats := make([]engine.Seat, 0, len(players))
	for _, p := range players {
		seats = append(seats, engine.Seat{
			PlayerID: p.User_id,
			Name:     p.Username,
			Color:    p.Color,
		})
	}
	g, err := engine.NewGame(lobbyID, seats)
	if err != nil {
		return nil, err
	}
	if err := games.Create(g); err != nil {
		return nil, err
	}
	if _, err := db.Model(&models.Lobby{Id: lobbyID}).
		WherePK().
		Set("status = ?", "in progress").
		Update(); err != nil {
		logging.Log.Errorw("lobby status update failed", "lobby", lobbyID, "err", err)
	}
	return g, nil
}

// CleanupLobby removes every trace of a lobby once its game is over.
func CleanupLobby(lobbyID string, db *pg.DB, games store.GameStore) error {
	if _, err := db.Model((*models.LobbyPlayer)(nil)).
		Where("lobby_id = ?", lobbyID).
		Delete(); err != nil {
		return err
	}
	if _, err := db.Model(&models.Lobby{Id: lobbyID}).WherePK().Delete(); err != nil {
		return err
	}
	return games.Delete(lobbyID)
}
