package services

import (
	"strings"

	"kpi-tracker-backend/db/models"
)

// uniqueKeyFields is the ordered 13-field composite identifying a logically
// distinct KPI record. Two rows differing only outside these fields are
// still duplicates.
var uniqueKeyFields = []string{
	models.FieldRegion,
	models.FieldCircle,
	models.FieldProjectNamePMS,
	models.FieldProjectNameTeam,
	models.FieldCustomer,
	models.FieldCustomerQty,
	models.FieldSiteID,
	models.FieldSiteIDSuffix,
	models.FieldSLICode,
	models.FieldCustomerSLI,
	models.FieldCustomerRate,
	models.FieldCustomerAmount,
	models.FieldDate,
}

// UniqueKey builds the composite uniqueness key from a display-name keyed
// field mapping. Components are trimmed so a stray space never hides a
// duplicate.
func UniqueKey(fields map[string]string) string {
	parts := make([]string, len(uniqueKeyFields))
	for i, f := range uniqueKeyFields {
		parts[i] = strings.TrimSpace(fields[f])
	}
	return strings.Join(parts, "||")
}

// RecordUniqueKey builds the uniqueness key directly from a persisted record.
func RecordUniqueKey(r *models.KpiRecord) string {
	return UniqueKey(r.FieldMap())
}
