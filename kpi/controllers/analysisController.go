package controllers

import (
	"encoding/json"
	"strings"
	"time"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/kpi/services"
	"kpi-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const analysisCacheKey = "analysis:grid"
const analysisCacheTTL = 5 * time.Minute

// Analysis returns the coverage grid for the current period: one row per
// expected (region, circle) pair with an uploaded yes/no flag, compared
// case-insensitively against the persisted data.
func (kc *KpiController) Analysis(c *fiber.Ctx) error {
	if cached, err := kc.RedisClient.Get(kc.Ctx, analysisCacheKey).Result(); err == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	} else if err != redis.Nil {
		config.Logger.Warn("Analysis cache read failed", zap.Error(err))
	}

	now, usedFallback := utils.NetworkTimeIST()
	currentWeek, currentMonth := services.BusinessPeriod(now)

	pairs, err := kc.KpiRepo.DistinctRegionCircle(currentWeek, currentMonth)
	if err != nil {
		config.Logger.Error("Analysis query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Analysis failed",
			"error":   err.Error(),
		})
	}

	uploaded := make(map[[2]string]struct{}, len(pairs))
	for _, p := range pairs {
		region := strings.ToUpper(strings.TrimSpace(p.Region))
		circle := strings.ToUpper(strings.TrimSpace(p.Circle))
		if region == "" || circle == "" {
			continue
		}
		uploaded[[2]string{region, circle}] = struct{}{}
	}

	var analysis []map[string]string
	for _, region := range kc.RegionCfg.Regions() {
		for _, circle := range kc.RegionCfg.CirclesByRegion[region] {
			circle = strings.TrimSpace(circle)
			if circle == "" {
				continue
			}
			key := [2]string{
				strings.ToUpper(strings.TrimSpace(region)),
				strings.ToUpper(circle),
			}
			_, isUploaded := uploaded[key]
			count, uploadedFlag := "", "No"
			if isUploaded {
				count, uploadedFlag = "1", "Yes"
			}
			analysis = append(analysis, map[string]string{
				"Region":        region,
				"Circle":        circle,
				"Count":         count,
				"Workdone Week": currentWeek,
				"Booking Month": currentMonth,
				"Uploaded":      uploadedFlag,
			})
		}
	}

	var fallbackReason interface{}
	if usedFallback {
		fallbackReason = "network time unavailable; local clock used"
	}

	result := fiber.Map{
		"ok":       true,
		"week":     currentWeek,
		"month":    currentMonth,
		"analysis": analysis,
		"fallback": fallbackReason,
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := kc.RedisClient.Set(kc.Ctx, analysisCacheKey, payload, analysisCacheTTL).Err(); err != nil {
			config.Logger.Warn("Analysis cache write failed", zap.Error(err))
		}
	}

	return c.JSON(result)
}
