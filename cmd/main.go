package main

import (
	"context"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/middleware"
	"kpi-tracker-backend/token"
	"kpi-tracker-backend/utils"

	// Repositories
	kpi_repositories "kpi-tracker-backend/kpi/repositories"
	users_repositories "kpi-tracker-backend/users/repositories"

	// Routes
	kpi_routes "kpi-tracker-backend/kpi/routes"
	user_routes "kpi-tracker-backend/users/routes"

	// bleve
	bleveControllers "kpi-tracker-backend/bleve/controllers"
	bleveRepositories "kpi-tracker-backend/bleve/repositories"
	bleveRoutes "kpi-tracker-backend/bleve/routes"
	bleveServices "kpi-tracker-backend/bleve/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file loaded", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024,
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewPasetoMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	indexPath := config.GetEnvOrDefault("BLEVE_INDEX_PATH", "./bleve_data")

	// Business timezone and mailer
	utils.InitializeDateLocation()
	utils.InitializeMailer()

	// Serve generated error reports
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	bleveServiceRepo, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	kpiRepo := kpi_repositories.NewKpiRepository(db)
	userRepo := users_repositories.NewUserRepository(db)

	// The app manages its own accounts, so the default admin must exist.
	if err := userRepo.EnsureAdminUser(); err != nil {
		config.Logger.Fatal("Failed to ensure admin user", zap.Error(err))
	}

	// Routes
	user_routes.InitUserRoutes(app, userRepo, ctx, redisClient, tokenMaker)
	kpi_routes.InitKpiRoutes(app, kpiRepo, db, ctx, redisClient, tokenMaker, bleveInterfaceRepo)

	// Bleve Routes
	bleveController := bleveControllers.NewSearchController(bleveServiceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController)

	// Background cleanup tasks
	go utils.RunScheduledCleanup(redisClient)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
