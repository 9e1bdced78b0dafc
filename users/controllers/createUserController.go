package controllers

import (
	"strings"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"
	"kpi-tracker-backend/users/repositories"
	"kpi-tracker-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	UserRepo repositories.UserRepository
}

func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	type CreateRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"isAdmin"`
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Username and password required.",
		})
	}

	if validationError := services.ValidateNewUser(req.Username, req.Password); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": validationError,
		})
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		config.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		IsAdmin:      req.IsAdmin,
	}

	if _, err := uc.UserRepo.CreateUser(&user); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":      false,
				"message": "Username already exists.",
			})
		}
		config.Logger.Error("Failed to create user",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "User created.",
	})
}
