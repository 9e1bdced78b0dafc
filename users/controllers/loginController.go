package controllers

import (
	"context"
	"sync"
	"time"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/token"
	"kpi-tracker-backend/users/repositories"
	"kpi-tracker-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
)

type LoginController struct {
	UserRepo    repositories.UserRepository
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// limiterFor returns the per-client login limiter, 10 attempts per minute
// with a burst of 5.
func (lc *LoginController) limiterFor(ip string) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.limiters == nil {
		lc.limiters = make(map[string]*rate.Limiter)
	}
	limiter, ok := lc.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/10), 5)
		lc.limiters[ip] = limiter
	}
	return limiter
}

func (lc *LoginController) LoginUser(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if !lc.limiterFor(c.IP()).Allow() {
		config.Logger.Warn("Login rate limit exceeded", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"ok":      false,
			"message": "Too many login attempts. Try again later.",
		})
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Username and password required.",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Username and password required.",
		})
	}

	user, err := lc.UserRepo.GetUserByUsername(req.Username)
	if err != nil || !services.CheckPasswordHash(req.Password, user.PasswordHash) {
		if err != nil {
			config.Logger.Warn("Login attempt: user not found or database error",
				zap.String("username", req.Username),
				zap.Error(err),
			)
		} else {
			config.Logger.Warn("Login attempt: invalid password",
				zap.String("username", req.Username),
			)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid username or password.",
		})
	}

	accessToken, err := lc.PasetoMaker.CreateToken(user.Username, accessTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate access token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	refreshToken, err := lc.PasetoMaker.CreateToken(user.Username, refreshTokenDuration)
	if err != nil {
		config.Logger.Error("Could not generate refresh token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	if err := lc.RedisClient.Set(lc.Ctx, "refresh_token:"+refreshToken,
		user.ID, refreshTokenDuration).Err(); err != nil {
		config.Logger.Error("Error storing refresh token in Redis",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	secure := config.GetEnvOrDefault("APP_ENV", "development") == "production"
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(accessTokenDuration),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(refreshTokenDuration),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "Login successful",
		"isAdmin": user.IsAdmin,
	})
}
