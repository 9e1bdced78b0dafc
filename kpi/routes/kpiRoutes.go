package router

import (
	"context"

	indexing_repository "kpi-tracker-backend/bleve/repositories"
	"kpi-tracker-backend/kpi/controllers"
	"kpi-tracker-backend/kpi/repositories"
	"kpi-tracker-backend/kpi/services"
	"kpi-tracker-backend/middleware"
	"kpi-tracker-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitKpiRoutes(
	app *fiber.App,
	kpiRepo repositories.KpiRepository,
	db *gorm.DB,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
	bleveRepo indexing_repository.BleveRepositoryInterface,
) {
	kpiController := &controllers.KpiController{
		KpiRepo:     kpiRepo,
		DB:          db,
		Ctx:         ctx,
		RedisClient: redisClient,
		BleveRepo:   bleveRepo,
		RegionCfg:   services.DefaultRegionConfig(),
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	api := app.Group("/api", middleware.ProtectedRoute(appContext))

	api.Post("/process-csv", kpiController.ProcessCsv)
	api.Post("/search-db", kpiController.SearchDb)
	api.Get("/view-db", kpiController.ViewDb)
	api.Post("/update-row", kpiController.UpdateRow)
	api.Post("/delete-row", kpiController.DeleteRow)
	api.Get("/export", kpiController.Export)
	api.Get("/analysis", kpiController.Analysis)
}
