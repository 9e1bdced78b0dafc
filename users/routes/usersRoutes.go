package router

import (
	"context"

	"kpi-tracker-backend/middleware"
	"kpi-tracker-backend/token"
	"kpi-tracker-backend/users/controllers"
	"kpi-tracker-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func InitUserRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
) {
	loginController := &controllers.LoginController{
		UserRepo:    userRepo,
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}
	userController := &controllers.UserController{
		UserRepo: userRepo,
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	api := app.Group("/api")

	// Public routes
	api.Post("/login", loginController.LoginUser)
	api.Post("/logout", loginController.LogoutUser)

	// Protected routes
	protected := api.Group("", middleware.ProtectedRoute(appContext))
	protected.Get("/users", userController.GetAllUsers)
	protected.Post("/users/create", userController.CreateUser)
	protected.Post("/users/update", userController.UpdateUser)
	protected.Post("/users/delete", userController.DeleteUser)
	protected.Post("/users/reset-password", userController.ResetPassword)
	protected.Post("/user-search", userController.SearchUsers)
}
