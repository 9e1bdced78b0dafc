package services

import (
	"strings"
	"testing"

	"kpi-tracker-backend/db/models"

	"github.com/stretchr/testify/assert"
)

func TestUniqueKeyTrimsComponents(t *testing.T) {
	a := validRow()
	b := validRow()
	b[models.FieldCustomer] = "  Airtel  "
	b[models.FieldSiteID] = " DL-1001#A"
	assert.Equal(t, UniqueKey(a), UniqueKey(b))
}

func TestUniqueKeyHasThirteenComponents(t *testing.T) {
	key := UniqueKey(validRow())
	assert.Len(t, strings.Split(key, "||"), 13)
}

func TestUniqueKeyIgnoresNonIdentityFields(t *testing.T) {
	a := validRow()
	b := validRow()
	b[models.FieldWorkDoneBy] = "RVS"
	b[models.FieldPartnerName] = "NA"
	b[models.FieldPartnerAmount] = "0"
	assert.Equal(t, UniqueKey(a), UniqueKey(b))
}

func TestUniqueKeyDistinguishesIdentityFields(t *testing.T) {
	a := validRow()
	b := validRow()
	b[models.FieldDate] = "04-Sep-2025"
	assert.NotEqual(t, UniqueKey(a), UniqueKey(b))
}

func TestRecordUniqueKeyMatchesFieldMap(t *testing.T) {
	var rec models.KpiRecord
	for field, value := range validRow() {
		rec.SetField(field, value)
	}
	assert.Equal(t, UniqueKey(rec.FieldMap()), RecordUniqueKey(&rec))
	assert.Equal(t, UniqueKey(validRow()), RecordUniqueKey(&rec))
}
