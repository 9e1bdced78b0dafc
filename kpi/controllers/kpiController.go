package controllers

import (
	"context"

	indexing_repository "kpi-tracker-backend/bleve/repositories"
	"kpi-tracker-backend/kpi/repositories"
	"kpi-tracker-backend/kpi/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type KpiController struct {
	KpiRepo     repositories.KpiRepository
	DB          *gorm.DB
	Ctx         context.Context
	RedisClient *redis.Client
	BleveRepo   indexing_repository.BleveRepositoryInterface
	RegionCfg   *services.RegionConfig
}
