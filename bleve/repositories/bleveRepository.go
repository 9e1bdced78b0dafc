package repositories

import (
	"context"

	bleveindex "kpi-tracker-backend/bleve/services"
	"kpi-tracker-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	DeleteKpiIndex(ctx context.Context) error

	// ==== KPI Record Indexing ====
	IndexSingleKpiRecord(record *models.KpiRecord) error
	IndexExistingKpiRecords(records []models.KpiRecord) error
	UpdateKpiRecord(record *models.KpiRecord) error
	DeleteKpiRecord(recordID string) error
	GetKpiDocument(recordID string) (interface{}, error)
	SearchKpiRecords(queryString, region, circle, week, month string) (*bleve.SearchResult, error)
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteKpiIndex(ctx context.Context) error {
	return r.indexer.DeleteIndex(kpiIndexName)
}
