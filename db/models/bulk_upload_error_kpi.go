package models

import (
	"time"

	"github.com/google/uuid"
)

type BulkUploadErrorType string

const (
	DuplicateErrorType  BulkUploadErrorType = "duplicate"
	ValidationErrorType BulkUploadErrorType = "validation"
	StructuralErrorType BulkUploadErrorType = "structural"
)

type AddedViaType string

const (
	BulkAddedViaType   AddedViaType = "bulk_upload"
	SingleAddedViaType AddedViaType = "single_entry"
)

// BulkUploadErrorKpi logs one rejected upload row so failed batches can be
// audited and re-driven from the generated error report.
type BulkUploadErrorKpi struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key;" json:"id"`
	BatchID    uuid.UUID           `gorm:"type:uuid;index" json:"batch_id"`
	RowNumber  int                 `json:"row_number"`
	Region     string              `json:"region"`
	Circle     string              `json:"circle"`
	SiteID     string              `json:"site_id"`
	Customer   string              `json:"customer"`
	Date       string              `json:"date"`
	Reason     string              `json:"reason"`
	ErrorType  BulkUploadErrorType `json:"error_type"`
	AddedVia   AddedViaType        `json:"added_via"`
	UploadedBy string              `json:"uploaded_by"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
