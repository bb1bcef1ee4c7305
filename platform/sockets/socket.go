// Package sockets is the realtime boundary: it translates client events
// into engine transitions against the store and fans results back out to
// the lobby's room. All game validation lives in the engine; this layer
// only parses, applies and broadcasts.
package sockets

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"

	"nexopoly/app/models"
	"nexopoly/platform/cache"
	"nexopoly/platform/database"
	"nexopoly/platform/engine"
	"nexopoly/platform/logging"
	"nexopoly/platform/queries"
	"nexopoly/platform/store"
)

// applyRetries bounds CAS retry loops. Each retry re-reads the snapshot,
// so a stale action fails validation (NotYourTurn etc.) instead of
// applying against state it never saw.
const applyRetries = 3

func applyAction(games store.GameStore, lobbyID string, fn func(*engine.Game) error) (*engine.Game, error) {
	for attempt := 0; attempt < applyRetries; attempt++ {
		g, err := games.Load(lobbyID)
		if err != nil {
			return nil, err
		}
		if err := fn(g); err != nil {
			return nil, err
		}
		if err := games.Save(g); err != nil {
			if errors.Is(err, store.ErrConflict) {
				continue
			}
			return nil, err
		}
		return g, nil
	}
	return nil, store.ErrConflict
}

func parse(jsonStr string) map[string]string {
	var result map[string]string
	json.Unmarshal([]byte(jsonStr), &result)
	return result
}

func atoi(m map[string]string, key string) int {
	n, _ := strconv.Atoi(m[key])
	return n
}

// CreateSocketServer runs the socket.io endpoint until the process exits.
func CreateSocketServer() {
	server, err := socketio.NewServer(nil)
	if err != nil {
		logging.Log.Fatalw("socket server init failed", "err", err)
	}
	db := database.Connect()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()
	games := store.NewRedisStore(pool)

	// afterAction pushes the turn/game status to the room; observers
	// re-read full state on game-updated.
	afterAction := func(lobbyID string, g *engine.Game) {
		server.BroadcastToRoom("/", lobbyID, "game-updated")
		server.BroadcastToRoom("/", lobbyID, "change-turn", g.State.CurrentPlayerID)
		if g.Finished() {
			winner := ""
			if w := g.Winner(); w != nil {
				winner = w.ID
			}
			server.BroadcastToRoom("/", lobbyID, "game-over", winner)
		}
	}

	// gameAction wires the common load/apply/save/broadcast path.
	gameAction := func(event string, fn func(g *engine.Game, msg map[string]string) error) {
		server.OnEvent("/", event, func(s socketio.Conn, jsonStr string) {
			msg := parse(jsonStr)
			lobbyID := msg["lobby_id"]
			g, err := applyAction(games, lobbyID, func(g *engine.Game) error {
				return fn(g, msg)
			})
			if err != nil {
				s.Emit("error-message", err.Error())
				return
			}
			afterAction(lobbyID, g)
		})
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		return nil
	})

	server.OnEvent("/", "join-lobby", func(s socketio.Conn, jsonStr string) {
		msg := parse(jsonStr)
		lobbyID, userID := msg["lobby_id"], msg["user_id"]
		if lobbyID == "" || userID == "" {
			s.Emit("error-message", "lobby_id and user_id are required")
			return
		}
		if !queries.VerifyLobby(lobbyID, db) {
			s.Emit("error-message", "Invalid lobby")
			return
		}
		user, err := queries.GetUserData(userID, db)
		if err != nil {
			s.Emit("error-message", "User not authenticated")
			return
		}
		if err := queries.CreateLobbyPlayer(models.LobbyPlayer{
			Lobby_id: lobbyID,
			User_id:  userID,
			Username: user.Email,
		}, db); err != nil {
			logging.Log.Errorw("seat create failed", "lobby", lobbyID, "err", err)
			s.Emit("error-message", "Failed joining lobby")
			return
		}
		s.Join(lobbyID)
		server.BroadcastToRoom("/", lobbyID, "player-join", userID)
		s.Emit("joined-lobby", strconv.Itoa(server.RoomLen("/", lobbyID)))
	})

	server.OnEvent("/", "leave-lobby", func(s socketio.Conn, jsonStr string) {
		msg := parse(jsonStr)
		s.Leave(msg["lobby_id"])
		if err := queries.DeleteLobbyPlayer(msg["user_id"], msg["lobby_id"], db); err != nil {
			logging.Log.Errorw("seat delete failed", "lobby", msg["lobby_id"], "err", err)
		}
		server.BroadcastToRoom("/", msg["lobby_id"], "player-left", msg["user_id"])
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, lobbyID string) {
		g, err := queries.StartGame(lobbyID, db, games)
		if err != nil {
			s.Emit("error-message", "Unable to start game: "+err.Error())
			return
		}
		snap, _ := json.Marshal(g.Snapshot())
		server.BroadcastToRoom("/", lobbyID, "game-start", string(snap))
		server.BroadcastToRoom("/", lobbyID, "change-turn", g.State.CurrentPlayerID)
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		msg := parse(jsonStr)
		lobbyID := msg["lobby_id"]
		var outcome *engine.RollOutcome
		g, err := applyAction(games, lobbyID, func(g *engine.Game) error {
			out, err := g.RollDice(msg["user_id"])
			outcome = out
			return err
		})
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		rolled, _ := json.Marshal(outcome)
		server.BroadcastToRoom("/", lobbyID, "dice-rolled", string(rolled))
		afterAction(lobbyID, g)
	})

	gameAction("buy-property", func(g *engine.Game, msg map[string]string) error {
		return g.Purchase(msg["user_id"], atoi(msg, "position"))
	})

	gameAction("decline-purchase", func(g *engine.Game, msg map[string]string) error {
		return g.DeclinePurchase(msg["user_id"])
	})

	gameAction("build-houses", func(g *engine.Game, msg map[string]string) error {
		return g.BuildHouses(msg["user_id"], atoi(msg, "position"), atoi(msg, "count"))
	})

	gameAction("mortgage", func(g *engine.Game, msg map[string]string) error {
		return g.Mortgage(msg["user_id"], atoi(msg, "position"))
	})

	gameAction("unmortgage", func(g *engine.Game, msg map[string]string) error {
		return g.Unmortgage(msg["user_id"], atoi(msg, "position"))
	})

	gameAction("transfer-money", func(g *engine.Game, msg map[string]string) error {
		return g.TransferMoney(msg["user_id"], msg["to_id"], atoi(msg, "amount"))
	})

	gameAction("sell-property", func(g *engine.Game, msg map[string]string) error {
		return g.SellProperty(msg["user_id"], atoi(msg, "position"))
	})

	gameAction("declare-bankruptcy", func(g *engine.Game, msg map[string]string) error {
		return g.DeclareBankruptcy(msg["user_id"])
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logging.Log.Errorw("socket error", "err", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		for _, room := range s.Rooms() {
			server.BroadcastToRoom("/", room, "player-left")
		}
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	addr := os.Getenv("SOCKET_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	logging.Log.Infow("socket server listening", "addr", addr)
	if err := http.ListenAndServe(addr, c.Handler(mux)); err != nil {
		logging.Log.Fatalw("socket server stopped", "err", err)
	}
}
