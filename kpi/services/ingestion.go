package services

import (
	"fmt"
	"strings"
	"time"

	"kpi-tracker-backend/db/models"
)

// systemManagedFields are columns the pipeline owns; values for them in the
// uploaded file are ignored rather than trusted.
var systemManagedFields = map[string]struct{}{
	models.FieldBusinessCategory:      {},
	models.FieldCategory:              {},
	models.FieldWorkdoneWeek:          {},
	models.FieldBookingMonth:          {},
	models.FieldCustomerBillingStatus: {},
	models.FieldCustomerBillQty:       {},
	models.FieldCustomerBilledAmount:  {},
	models.FieldCustomerBillingMonth:  {},
	models.FieldPartnerBillNo:         {},
	models.FieldPartnerWCC:            {},
	models.FieldPartnerWCCMailDate:    {},
	models.FieldPartnerBilledQty:      {},
	models.FieldPartnerBilledRate:     {},
	models.FieldPartnerBilledAmount:   {},
	models.FieldUploadedAt:            {},
}

// RowFailure describes one rejected upload row for the error log.
type RowFailure struct {
	RowNumber int
	Region    string
	Circle    string
	SiteID    string
	Customer  string
	Date      string
	Reason    string
	Duplicate bool
}

// BatchResult is the outcome of validating one uploaded batch. Staged rows
// are only ever persisted when Errors is empty; the caller owns the
// transaction and the all-or-nothing decision.
type BatchResult struct {
	Staged   []models.KpiRecord
	Errors   []string
	Failures []RowFailure
	Previews []map[string]string
}

// BuildKpiBatch runs the ingestion pipeline over parsed tabular data: it
// materializes each row into a full record (classification constants,
// trimmed upload values, blank billing placeholders, upload timestamp),
// validates it, injects the derived period when the Date rule passed, and
// applies the two-tier duplicate check — first against rows already accepted
// in this batch, then against the persisted-key snapshot. The snapshot is
// never extended while the batch runs; only the batch-local set grows.
//
// Data rows are 1-indexed in error messages.
func BuildKpiBatch(
	cfg *RegionConfig,
	headers []string,
	rows [][]string,
	persistedKeys map[string]struct{},
	now time.Time,
	uploadedAt string,
	preview bool,
) BatchResult {
	var result BatchResult
	batchKeys := make(map[string]struct{})

	for i, row := range rows {
		rowNumber := i + 1

		rec := models.KpiRecord{
			BusinessCategory: models.BusinessCategoryValue,
			Category:         models.CategoryValue,
			UploadedAt:       uploadedAt,
		}
		for col, h := range headers {
			if _, managed := systemManagedFields[h]; managed {
				continue
			}
			var value string
			if col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			rec.SetField(h, value)
		}

		fields := rec.FieldMap()
		rowErrs := ValidateKpiRow(cfg, fields, nil, now)

		// Derived period fields are written only when the Date rule passed.
		dateStr := strings.TrimSpace(fields[models.FieldDate])
		if dateVal, err := time.Parse(DateFormat, dateStr); err == nil {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if !dateVal.After(today) {
				rec.WorkdoneWeek, rec.BookingMonth = BusinessPeriod(dateVal)
			}
		}

		key := UniqueKey(fields)
		duplicate := false
		if _, inBatch := batchKeys[key]; inBatch {
			rowErrs = append(rowErrs, "Duplicate row detected based on uniqueness key.")
			duplicate = true
		}
		if _, inDB := persistedKeys[key]; inDB {
			rowErrs = append(rowErrs, "Duplicate row already exists in database.")
			duplicate = true
		}

		if len(rowErrs) > 0 {
			joined := strings.Join(rowErrs, "; ")
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNumber, joined))
			result.Failures = append(result.Failures, RowFailure{
				RowNumber: rowNumber,
				Region:    strings.TrimSpace(fields[models.FieldRegion]),
				Circle:    strings.TrimSpace(fields[models.FieldCircle]),
				SiteID:    strings.TrimSpace(fields[models.FieldSiteID]),
				Customer:  strings.TrimSpace(fields[models.FieldCustomer]),
				Date:      dateStr,
				Reason:    joined,
				Duplicate: duplicate,
			})
		} else {
			result.Staged = append(result.Staged, rec)
			batchKeys[key] = struct{}{}
		}

		if preview {
			previewRow := make(map[string]string, len(headers)+1)
			for _, h := range headers {
				previewRow[h] = rec.GetField(h)
			}
			previewRow["_errors"] = strings.Join(rowErrs, "; ")
			result.Previews = append(result.Previews, previewRow)
		}
	}

	return result
}
