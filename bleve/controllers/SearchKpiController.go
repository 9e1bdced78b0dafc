package controllers

import (
	bleveModels "kpi-tracker-backend/bleve/models"
	"kpi-tracker-backend/bleve/repositories"

	"github.com/gofiber/fiber/v2"
)

type SearchController struct {
	repo *repositories.BleveRepository
}

func NewSearchController(repo *repositories.BleveRepository) *SearchController {
	return &SearchController{repo: repo}
}

func (c *SearchController) SearchKpiController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	region := ctx.Query("region")
	circle := ctx.Query("circle")
	week := ctx.Query("week")
	month := ctx.Query("month")

	results, err := c.repo.SearchKpiRecords(query, region, circle, week, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	response := bleveModels.SearchResponse{
		Hits: make([]bleveModels.SearchHit, 0, len(results.Hits)),
	}
	for _, hit := range results.Hits {
		doc, err := c.repo.GetKpiDocument(hit.ID)
		if err != nil {
			continue
		}
		fields, _ := doc.(map[string]interface{})
		response.Hits = append(response.Hits, bleveModels.SearchHit{
			ID:     hit.ID,
			Fields: fields,
		})
	}

	return ctx.JSON(fiber.Map{
		"results": response.Hits,
		"total":   results.Total,
	})
}
