package controllers

import (
	"fmt"
	"strings"

	"kpi-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SearchUsers filters by username substring and/or admin flag. At least one
// non-blank filter is required.
func (uc *UserController) SearchUsers(c *fiber.Ctx) error {
	var filters map[string]string
	if err := c.BodyParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "At least one search parameter required.",
		})
	}

	hasFilter := false
	for _, v := range filters {
		if strings.TrimSpace(v) != "" {
			hasFilter = true
			break
		}
	}
	if !hasFilter {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "At least one search parameter required.",
		})
	}

	users, err := uc.UserRepo.SearchUsers(filters)
	if err != nil {
		config.Logger.Error("User search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	views := make([]map[string]string, 0, len(users))
	for i := range users {
		u := &users[i]
		isAdmin := "No"
		if u.IsAdmin {
			isAdmin = "Yes"
		}
		views = append(views, map[string]string{
			"Id":        fmt.Sprintf("%d", u.ID),
			"Username":  u.Username,
			"IsAdmin":   isAdmin,
			"CreatedAt": u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"users": views,
	})
}
