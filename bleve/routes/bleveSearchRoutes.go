package routes

import (
	"kpi-tracker-backend/bleve/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitBleveRoutes(app *fiber.App, controller *controllers.SearchController) {
	api := app.Group("/api/bleve_search")

	api.Get("/kpi", controller.SearchKpiController)
}
