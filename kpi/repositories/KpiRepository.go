package repositories

import (
	"errors"
	"fmt"

	"kpi-tracker-backend/db/models"
	"kpi-tracker-backend/kpi/services"

	"gorm.io/gorm"
)

// RegionCircle is one distinct (region, circle) pair uploaded for a period.
type RegionCircle struct {
	Region string
	Circle string
}

type KpiRepository interface {
	GetAllUniqueKeys(tx *gorm.DB, excludeID uint) (map[string]struct{}, error)
	BulkCreate(tx *gorm.DB, records []models.KpiRecord) error
	GetAllRecords() ([]models.KpiRecord, error)
	GetRecordByID(id uint) (*models.KpiRecord, error)
	SearchRecords(filters map[string]string) ([]models.KpiRecord, error)
	FilteredRecords(clause string, args []interface{}) ([]models.KpiRecord, error)
	UpdateRecordFields(id uint, updates map[string]interface{}) error
	DeleteRecord(id uint) (int64, error)
	DistinctRegionCircle(week, month string) ([]RegionCircle, error)
	LogBulkUploadErrors(failures []models.BulkUploadErrorKpi) error
	LogEmailSent(log *models.EmailLog) error
}

type kpiRepository struct {
	db *gorm.DB
}

func NewKpiRepository(db *gorm.DB) KpiRepository {
	return &kpiRepository{
		db: db,
	}
}

// GetAllUniqueKeys builds the persisted uniqueness-key snapshot inside the
// caller's transaction so the duplicate check and the insert see the same
// data. excludeID drops one record from the snapshot, used by the update
// path to keep a record from colliding with itself.
func (r *kpiRepository) GetAllUniqueKeys(tx *gorm.DB, excludeID uint) (map[string]struct{}, error) {
	var records []models.KpiRecord
	query := tx.Model(&models.KpiRecord{})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(records))
	for i := range records {
		keys[services.RecordUniqueKey(&records[i])] = struct{}{}
	}
	return keys, nil
}

func (r *kpiRepository) BulkCreate(tx *gorm.DB, records []models.KpiRecord) error {
	if len(records) == 0 {
		return nil
	}
	return tx.Create(&records).Error
}

func (r *kpiRepository) GetAllRecords() ([]models.KpiRecord, error) {
	var records []models.KpiRecord
	err := r.db.Order("id").Find(&records).Error
	return records, err
}

func (r *kpiRepository) GetRecordByID(id uint) (*models.KpiRecord, error) {
	var record models.KpiRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("record with id %d not found", id)
		}
		return nil, err
	}
	return &record, nil
}

// SearchRecords applies each filter as a case-sensitive substring match on
// its column, AND-combined. Filter keys are display names; unknown names are
// ignored.
func (r *kpiRepository) SearchRecords(filters map[string]string) ([]models.KpiRecord, error) {
	query := r.db.Model(&models.KpiRecord{})
	for display, value := range filters {
		if value == "" {
			continue
		}
		if display == "Id" {
			query = query.Where("id = ?", value)
			continue
		}
		column, ok := models.KnownColumn(display)
		if !ok {
			continue
		}
		query = query.Where(column+" LIKE ?", "%"+value+"%")
	}

	var records []models.KpiRecord
	err := query.Order("id").Find(&records).Error
	return records, err
}

// FilteredRecords runs the export query; an empty clause selects everything.
func (r *kpiRepository) FilteredRecords(clause string, args []interface{}) ([]models.KpiRecord, error) {
	query := r.db.Model(&models.KpiRecord{})
	if clause != "" {
		query = query.Where(clause, args...)
	}
	var records []models.KpiRecord
	err := query.Order("id").Find(&records).Error
	return records, err
}

// UpdateRecordFields writes only the supplied columns, leaving everything
// else untouched even when the caller's in-memory view is stale.
func (r *kpiRepository) UpdateRecordFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.KpiRecord{}).Where("id = ?", id).Updates(updates).Error
}

func (r *kpiRepository) DeleteRecord(id uint) (int64, error) {
	result := r.db.Delete(&models.KpiRecord{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// DistinctRegionCircle lists the distinct non-blank (region, circle) pairs
// persisted for one business period.
func (r *kpiRepository) DistinctRegionCircle(week, month string) ([]RegionCircle, error) {
	var pairs []RegionCircle
	err := r.db.Model(&models.KpiRecord{}).
		Distinct("TRIM(region) AS region", "TRIM(circle) AS circle").
		Where("workdone_week = ? AND booking_month = ?", week, month).
		Where("region <> '' AND circle <> ''").
		Scan(&pairs).Error
	return pairs, err
}

func (r *kpiRepository) LogBulkUploadErrors(failures []models.BulkUploadErrorKpi) error {
	if len(failures) == 0 {
		return nil
	}
	return r.db.Create(&failures).Error
}

func (r *kpiRepository) LogEmailSent(log *models.EmailLog) error {
	return r.db.Create(log).Error
}
