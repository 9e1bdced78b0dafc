package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"
	"kpi-tracker-backend/kpi/services"
	"kpi-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UpdateRow applies a partial field update. The merged record (current values
// overlaid with the payload) is revalidated in full, with the record's own
// key excluded from duplicate detection.
func (kc *KpiController) UpdateRow(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil || data == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Id is required.",
		})
	}

	idString, ok := data["Id"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Id is required.",
		})
	}
	delete(data, "Id")

	// System fields are write-once.
	delete(data, models.FieldBusinessCategory)
	delete(data, models.FieldCategory)

	id, err := strconv.ParseUint(idString, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Invalid Id format.",
		})
	}

	if len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "No fields to update.",
		})
	}

	record, err := kc.KpiRepo.GetRecordByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Record not found.",
		})
	}

	existingKeys, err := kc.KpiRepo.GetAllUniqueKeys(kc.DB, uint(id))
	if err != nil {
		config.Logger.Error("Failed to load uniqueness keys", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	merged := record.Clone()
	updates := make(map[string]interface{}, len(data)+3)
	extrasTouched := false
	for field, value := range data {
		merged.SetField(field, value)
		if column, ok := models.KnownColumn(field); ok {
			updates[column] = value
		} else {
			extrasTouched = true
		}
	}
	if extrasTouched {
		updates["extra_fields"] = merged.ExtraFields
	}

	now, _ := utils.NetworkTimeIST()
	validationErrors := services.ValidateKpiRow(kc.RegionCfg, merged.FieldMap(), existingKeys, now)
	if len(validationErrors) > 0 {
		for _, msg := range validationErrors {
			config.Logger.Info("Validation error", zap.String("error", msg))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "Validation failed.",
			"errors":  validationErrors,
		})
	}

	// Date may have changed; rederive the period labels.
	dateStr := strings.TrimSpace(merged.Date)
	if dateVal, err := time.Parse(services.DateFormat, dateStr); err == nil {
		merged.WorkdoneWeek, merged.BookingMonth = services.BusinessPeriod(dateVal)
		updates["workdone_week"] = merged.WorkdoneWeek
		updates["booking_month"] = merged.BookingMonth
	}

	if err := kc.KpiRepo.UpdateRecordFields(uint(id), updates); err != nil {
		config.Logger.Error("Failed to update record",
			zap.Uint("record_id", uint(id)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "No rows were updated.",
		})
	}

	if kc.BleveRepo != nil {
		if err := kc.BleveRepo.UpdateKpiRecord(&merged); err != nil {
			config.Logger.Warn("Failed to re-index updated record",
				zap.String("record_id", fmt.Sprintf("%d", merged.ID)),
				zap.Error(err),
			)
		}
	}
	utils.InvalidateCacheAsync(kc.RedisClient, "analysis")

	return c.JSON(fiber.Map{
		"ok":             true,
		"message":        "Record updated successfully.",
		"updated_fields": len(data),
	})
}
