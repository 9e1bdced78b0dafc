package controllers

import (
	"time"

	"kpi-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LogoutUser drops the redis-backed refresh token and expires both cookies.
func (lc *LoginController) LogoutUser(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		if err := lc.RedisClient.Del(lc.Ctx, "refresh_token:"+refreshToken).Err(); err != nil {
			config.Logger.Warn("Error deleting refresh token during logout", zap.Error(err))
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/"})

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Logged out",
	})
}
