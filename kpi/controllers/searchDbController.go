package controllers

import (
	"strings"

	"kpi-tracker-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SearchDb filters rows by substring match on any column, AND-combined.
// At least one non-blank filter is required.
func (kc *KpiController) SearchDb(c *fiber.Ctx) error {
	var filters map[string]string
	if err := c.BodyParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Please provide at least one search parameter.",
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
			"message": "Please provide at least one search parameter.",
		})
	}

	records, err := kc.KpiRepo.SearchRecords(filters)
	if err != nil {
		config.Logger.Error("Record search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	rows := make([]map[string]string, 0, len(records))
	for i := range records {
		rows = append(rows, recordView(&records[i]))
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"columns": recordColumns(),
		"rows":    rows,
	})
}
