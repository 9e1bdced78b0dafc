package repositories

import (
	"testing"

	"kpi-tracker-backend/db/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestKpiRepo(t *testing.T) (KpiRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KpiRecord{}))
	return NewKpiRepository(db), db
}

func TestUpdateRecordFieldsWritesOnlySuppliedColumns(t *testing.T) {
	repo, db := newTestKpiRepo(t)

	rec := models.KpiRecord{
		Region:                "North",
		Circle:                "DL",
		Customer:              "Airtel",
		CustomerBillingStatus: "Billed",
	}
	require.NoError(t, db.Create(&rec).Error)

	// A concurrent writer changes a column the update does not carry.
	require.NoError(t, db.Model(&models.KpiRecord{}).
		Where("id = ?", rec.ID).
		Update("customer_billing_status", "Paid").Error)

	require.NoError(t, repo.UpdateRecordFields(rec.ID, map[string]interface{}{
		"customer": "Jio",
	}))

	updated, err := repo.GetRecordByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jio", updated.Customer)
	assert.Equal(t, "North", updated.Region)
	// The concurrent write survives because only "customer" was written.
	assert.Equal(t, "Paid", updated.CustomerBillingStatus)
}

func TestUpdateRecordFieldsTargetsOneRow(t *testing.T) {
	repo, db := newTestKpiRepo(t)

	a := models.KpiRecord{Region: "North", Circle: "DL", Customer: "Airtel"}
	b := models.KpiRecord{Region: "East", Circle: "WB", Customer: "Airtel"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	require.NoError(t, repo.UpdateRecordFields(a.ID, map[string]interface{}{
		"customer": "Jio",
	}))

	other, err := repo.GetRecordByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Airtel", other.Customer)
}
