package controllers

import (
	"kpi-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	type DeleteRequest struct {
		ID uint `json:"Id"`
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "User Id required",
		})
	}

	affected, err := uc.UserRepo.DeleteUser(req.ID)
	if err != nil {
		config.Logger.Error("Failed to delete user",
			zap.Uint("user_id", req.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	return c.JSON(fiber.Map{"ok": affected > 0})
}
