package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"nexopoly/app/controllers"
	"nexopoly/pkg/routes"
	"nexopoly/platform/logging"
	"nexopoly/platform/sockets"
)

func main() {
	logging.Init()
	defer logging.Sync()

	app := fiber.New()
	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.LobbyRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JWTSecret(),
	}))
	app.Get("/user/cur", controllers.Cur)

	go sockets.CreateSocketServer()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":4101"
	}
	logging.Log.Infow("http server listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		logging.Log.Fatalw("http server stopped", "err", err)
	}
}
