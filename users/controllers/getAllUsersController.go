package controllers

import (
	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func userView(u *models.User) fiber.Map {
	return fiber.Map{
		"Id":        u.ID,
		"Username":  u.Username,
		"IsAdmin":   u.IsAdmin,
		"CreatedAt": u.CreatedAt,
	}
}

func (uc *UserController) GetAllUsers(c *fiber.Ctx) error {
	users, err := uc.UserRepo.GetAllUsers()
	if err != nil {
		config.Logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	views := make([]fiber.Map, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"users": views,
	})
}
