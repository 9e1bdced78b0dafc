package controllers

import (
	"kpi-tracker-backend/config"
	"kpi-tracker-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UpdateUser applies a partial update; only the supplied fields change.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	type UpdateRequest struct {
		ID       uint    `json:"Id"`
		Username *string `json:"Username"`
		Password *string `json:"Password"`
		IsAdmin  *bool   `json:"IsAdmin"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "User Id required",
		})
	}
	if req.Username == nil && req.Password == nil && req.IsAdmin == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "No fields to update.",
		})
	}

	user, err := uc.UserRepo.GetUserByID(req.ID)
	if err != nil {
		return c.JSON(fiber.Map{"ok": false})
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := services.HashPassword(*req.Password)
		if err != nil {
			config.Logger.Error("Failed to hash password", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":      false,
				"message": "Something went wrong",
			})
		}
		user.PasswordHash = hash
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if _, err := uc.UserRepo.UpdateUser(user); err != nil {
		config.Logger.Error("Failed to update user",
			zap.Uint("user_id", req.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}
