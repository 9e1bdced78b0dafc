package controllers

import (
	"kpi-tracker-backend/config"
	"kpi-tracker-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ResetPassword sets a user's password to the supplied value, or to the
// stock fallback when none is given, and echoes the plaintext back so an
// admin can hand it over.
func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	type ResetRequest struct {
		ID       uint   `json:"Id"`
		Password string `json:"Password"`
	}

	var req ResetRequest
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "User Id required",
		})
	}

	newPassword := req.Password
	if newPassword == "" {
		newPassword = "default123"
	}

	hash, err := services.HashPassword(newPassword)
	if err != nil {
		config.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	user, err := uc.UserRepo.GetUserByID(req.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Password reset failed or user not found",
		})
	}

	user.PasswordHash = hash
	if _, err := uc.UserRepo.UpdateUser(user); err != nil {
		config.Logger.Error("Failed to reset password",
			zap.Uint("user_id", req.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Password reset failed or user not found",
		})
	}

	return c.JSON(fiber.Map{
		"ok":       true,
		"message":  "Password reset successfully",
		"password": newPassword,
	})
}
