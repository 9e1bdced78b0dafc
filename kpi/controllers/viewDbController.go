package controllers

import (
	"fmt"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// recordColumns is the wire column list for browse/search responses: the
// identifier plus every fixed column in persisted order.
func recordColumns() []string {
	columns := make([]string, 0, len(models.KpiColumns)+1)
	columns = append(columns, "Id")
	for _, c := range models.KpiColumns {
		columns = append(columns, c.Display)
	}
	return columns
}

func recordView(r *models.KpiRecord) map[string]string {
	view := make(map[string]string, len(models.KpiColumns)+1)
	view["Id"] = fmt.Sprintf("%d", r.ID)
	for _, c := range models.KpiColumns {
		view[c.Display] = r.GetField(c.Display)
	}
	for k, v := range r.ExtraFields {
		if s, ok := v.(string); ok {
			view[k] = s
		}
	}
	return view
}

// ViewDb returns every persisted row.
func (kc *KpiController) ViewDb(c *fiber.Ctx) error {
	records, err := kc.KpiRepo.GetAllRecords()
	if err != nil {
		config.Logger.Error("Failed to load records", zap.Error(err))
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
