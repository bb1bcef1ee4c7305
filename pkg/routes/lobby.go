package routes

import (
	"github.com/gofiber/fiber/v2"

	"nexopoly/app/controllers"
)

func LobbyRoutes(a *fiber.App) {
	route := a.Group("/lobby")
	route.Post("/create", controllers.CreateLobby)
	route.Get("/verify", controllers.VerifyLobby)
	route.Get("/all", controllers.GetOpenLobbies)
	route.Get("/find", controllers.FindOpenLobby)
}
