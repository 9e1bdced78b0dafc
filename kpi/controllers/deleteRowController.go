package controllers

import (
	"fmt"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (kc *KpiController) DeleteRow(c *fiber.Ctx) error {
	type DeleteRequest struct {
		ID uint `json:"Id"`
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil || req.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok": false,
		})
	}

	affected, err := kc.KpiRepo.DeleteRecord(req.ID)
	if err != nil {
		config.Logger.Error("Failed to delete record",
			zap.Uint("record_id", req.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok": false,
		})
	}

	if affected > 0 {
		if kc.BleveRepo != nil {
			if err := kc.BleveRepo.DeleteKpiRecord(fmt.Sprintf("%d", req.ID)); err != nil {
				config.Logger.Warn("Failed to delete record from Bleve index",
					zap.Uint("record_id", req.ID),
					zap.Error(err),
				)
			}
		}
		utils.InvalidateCacheAsync(kc.RedisClient, "analysis")
	}

	return c.JSON(fiber.Map{"ok": affected > 0})
}
