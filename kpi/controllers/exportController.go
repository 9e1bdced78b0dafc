package controllers

import (
	"fmt"
	"strings"
	"time"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/kpi/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Export streams the filtered rows as a fully quoted CSV attachment, or a
// JSON diagnostic payload when debug=true.
func (kc *KpiController) Export(c *fiber.Ctx) error {
	all := strings.EqualFold(c.Query("all"), "true")
	debug := strings.EqualFold(c.Query("debug"), "true")

	week := c.Query("week")
	month := c.Query("month")
	weeksRaw := c.Query("weeks")
	monthsRaw := c.Query("months")
	yearsRaw := c.Query("years")

	blank := func(s string) bool { return strings.TrimSpace(s) == "" }
	if !all && blank(week) && blank(weeksRaw) && blank(month) && blank(monthsRaw) && blank(yearsRaw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Provide filters: all=true OR week+month OR weeks OR months OR years.",
		})
	}

	var filter services.ExportFilter
	if !all {
		filter = services.BuildExportFilter(week, month, weeksRaw, monthsRaw, yearsRaw)
		if filter.Clause == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok":      false,
				"message": "No valid filters provided.",
			})
		}
	}

	records, err := kc.KpiRepo.FilteredRecords(filter.Clause, filter.Args)
	if err != nil {
		config.Logger.Error("Export query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Export failed.",
			"error":   err.Error(),
		})
	}

	columns := recordColumns()

	if debug {
		sql := `SELECT * FROM "kpi_data"`
		if !all && filter.Clause != "" {
			sql += " WHERE " + filter.Clause
		}
		sample := make([]map[string]string, 0, 10)
		for i := range records {
			if i >= 10 {
				break
			}
			sample = append(sample, recordView(&records[i]))
		}
		return c.JSON(fiber.Map{
			"ok":         true,
			"sql":        sql,
			"parameters": filter.Parameters,
			"rowCount":   len(records),
			"sample":     sample,
		})
	}

	var sb strings.Builder
	quoted := make([]string, len(columns))
	for i, h := range columns {
		quoted[i] = csvQuote(h)
	}
	sb.WriteString(strings.Join(quoted, ","))
	sb.WriteString("\n")
	for i := range records {
		view := recordView(&records[i])
		fields := make([]string, len(columns))
		for j, h := range columns {
			fields[j] = csvQuote(view[h])
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}

	stamp := "ALL"
	if !all {
		stamp = time.Now().UTC().Format("20060102_150405")
	}
	fileName := fmt.Sprintf("Export_%s.csv", stamp)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.SendString(sb.String())
}
