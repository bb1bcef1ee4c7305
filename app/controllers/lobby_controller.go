package controllers

import (
	"github.com/gofiber/fiber/v2"

	"nexopoly/app/models"
	"nexopoly/pkg"
	"nexopoly/platform/database"
	"nexopoly/platform/logging"
)

func CreateLobby(c *fiber.Ctx) error {
	db := database.Connect()
	defer db.Close()

	dto := new(models.LobbyCreateDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	lobby := &models.Lobby{
		Id:      pkg.RandString(8),
		Name:    dto.Name,
		Mode:    dto.Mode,
		Status:  "open",
		Host_id: dto.Host_id,
	}
	if _, err := db.Model(lobby).Insert(); err != nil {
		logging.Log.Errorw("lobby insert failed", "err", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"id": lobby.Id})
}

func VerifyLobby(c *fiber.Ctx) error {
	db := database.Connect()
	defer db.Close()

	dto := new(models.VerifyLobbyDto)
	if err := c.QueryParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	lobby := &models.Lobby{Id: dto.Code}
	if err := db.Model(lobby).WherePK().Select(); err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true})
}

func GetOpenLobbies(c *fiber.Ctx) error {
	db := database.Connect()
	defer db.Close()

	var lobbies []models.Lobby
	if err := db.Model(&lobbies).Where("status = ?", "open").Select(); err != nil {
		logging.Log.Errorw("lobby listing failed", "err", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(lobbies)
}

func FindOpenLobby(c *fiber.Ctx) error {
	db := database.Connect()
	defer db.Close()

	lobby := new(models.Lobby)
	if err := db.Model(lobby).Where("status = ?", "open").Limit(1).Select(); err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"id": lobby.Id})
}
