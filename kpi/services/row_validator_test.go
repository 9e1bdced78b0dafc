package services

import (
	"testing"
	"time"

	"kpi-tracker-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validationNow keeps date checks deterministic.
var validationNow = time.Date(2025, time.September, 20, 12, 0, 0, 0, time.UTC)

func validRow() map[string]string {
	return map[string]string{
		models.FieldRegion:          "North",
		models.FieldCircle:          "DL",
		models.FieldProjectNamePMS:  "Fiber Rollout",
		models.FieldProjectNameTeam: "Fiber Rollout Ph2",
		models.FieldCustomer:        "Airtel",
		models.FieldCustomerQty:     "2",
		models.FieldSiteID:          "DL-1001#A",
		models.FieldSiteIDSuffix:    "A1",
		models.FieldSLICode:         "SLI-09",
		models.FieldCustomerSLI:     "CSLI-4",
		models.FieldCustomerRate:    "10.50",
		models.FieldCustomerAmount:  "21.00",
		models.FieldDate:            "05-Sep-2025",
		models.FieldWorkDoneBy:      "Partner",
		models.FieldPartnerName:     "Sky Infra",
		models.FieldPartnerSLI:      "PSLI-2",
		models.FieldPartnerQty:      "2",
		models.FieldPartnerRate:     "5",
		models.FieldPartnerAmount:   "10",
	}
}

func TestValidateKpiRowAcceptsValidRow(t *testing.T) {
	errs := ValidateKpiRow(DefaultRegionConfig(), validRow(), nil, validationNow)
	assert.Empty(t, errs)
}

func TestValidateKpiRowTrimsBeforeChecking(t *testing.T) {
	row := validRow()
	row[models.FieldRegion] = "  North  "
	row[models.FieldCustomerQty] = " 2 "
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Empty(t, errs)
}

func TestValidateKpiRowMandatoryMissing(t *testing.T) {
	row := validRow()
	row[models.FieldCustomer] = "   "
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Mandatory 'Customer' missing."}, errs)
}

func TestValidateKpiRowRegionInvalid(t *testing.T) {
	row := validRow()
	row[models.FieldRegion] = "Central"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Contains(t, errs, "Region invalid.")
}

func TestValidateKpiRowCircleOutsideRegion(t *testing.T) {
	row := validRow()
	row[models.FieldCircle] = "TN"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Circle 'TN' invalid for region 'North'."}, errs)
}

func TestValidateKpiRowWorkDoneByInvalid(t *testing.T) {
	row := validRow()
	row[models.FieldWorkDoneBy] = "Vendor"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Contains(t, errs, "Work Done by invalid.")
}

func TestValidateKpiRowPartnerCannotBeNA(t *testing.T) {
	row := validRow()
	row[models.FieldPartnerName] = "na"
	row[models.FieldPartnerSLI] = "NA"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Contains(t, errs, "Partner Name cannot be NA for Partner.")
	assert.Contains(t, errs, "Partner SLI cannot be NA for Partner.")
}

func TestValidateKpiRowRVSRequiresNAAndZeroes(t *testing.T) {
	row := validRow()
	row[models.FieldWorkDoneBy] = "RVS"
	row[models.FieldPartnerQty] = "0"
	row[models.FieldPartnerRate] = "0"
	row[models.FieldPartnerAmount] = "0"
	row[models.FieldPartnerName] = "NA"
	row[models.FieldPartnerSLI] = "NA"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Empty(t, errs)

	row[models.FieldPartnerName] = "Sky Infra"
	errs = ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Partner Name must be NA for RVS."}, errs)

	row[models.FieldPartnerName] = "NA"
	row[models.FieldPartnerQty] = "1"
	errs = ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Partner Qty/Rate/Amount must be 0 for RVS."}, errs)
}

func TestValidateKpiRowCustomerAmountMismatch(t *testing.T) {
	row := validRow()
	row[models.FieldCustomerAmount] = "22.00"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Customer Amount mismatch with Qty*Rate."}, errs)
}

func TestValidateKpiRowAmountRoundsToTwoDecimals(t *testing.T) {
	row := validRow()
	row[models.FieldCustomerQty] = "3"
	row[models.FieldCustomerRate] = "0.335"
	row[models.FieldCustomerAmount] = "1.01"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Empty(t, errs)
}

func TestValidateKpiRowQtyParseFailureStillReportsMismatch(t *testing.T) {
	row := validRow()
	row[models.FieldCustomerQty] = "two"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	// A failed parse contributes zero to the product, so the mismatch
	// fires alongside the parse error.
	assert.Contains(t, errs, "Customer Qty must be digits.")
	assert.Contains(t, errs, "Customer Amount mismatch with Qty*Rate.")
	assert.Len(t, errs, 2)
}

func TestValidateKpiRowPartnerAmountMismatchOnlyForPartner(t *testing.T) {
	row := validRow()
	row[models.FieldPartnerAmount] = "11"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Partner Amount mismatch with Qty*Rate."}, errs)
}

func TestValidateKpiRowSiteIDFormat(t *testing.T) {
	row := validRow()
	row[models.FieldSiteID] = "DL 1001"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Site ID invalid format."}, errs)

	row[models.FieldSiteID] = "DL-1001@B#2_x"
	errs = ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Empty(t, errs)
}

func TestValidateKpiRowDateRules(t *testing.T) {
	row := validRow()
	row[models.FieldDate] = "2025-09-05"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Date format invalid, must be DD-MMM-YYYY."}, errs)

	row[models.FieldDate] = "21-Sep-2025"
	errs = ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Equal(t, []string{"Date cannot be in the future."}, errs)

	// Same day as "today" is allowed.
	row[models.FieldDate] = "20-Sep-2025"
	errs = ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Empty(t, errs)
}

func TestValidateKpiRowDuplicateAgainstKnownKeys(t *testing.T) {
	row := validRow()
	known := map[string]struct{}{
		UniqueKey(row): {},
	}
	errs := ValidateKpiRow(DefaultRegionConfig(), row, known, validationNow)
	assert.Equal(t, []string{"Duplicate record detected."}, errs)
}

func TestValidateKpiRowRevalidationIsIdempotent(t *testing.T) {
	// A persisted row excluded from the duplicate set must keep passing
	// when resubmitted unchanged as an update.
	row := validRow()
	require.Empty(t, ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow))
	otherKeys := map[string]struct{}{
		"someone||else||entirely": {},
	}
	assert.Empty(t, ValidateKpiRow(DefaultRegionConfig(), row, otherKeys, validationNow))
}

func TestValidateKpiRowCollectsAllViolations(t *testing.T) {
	row := validRow()
	row[models.FieldCustomer] = ""
	row[models.FieldCircle] = "WB"
	row[models.FieldDate] = "bad"
	errs := ValidateKpiRow(DefaultRegionConfig(), row, nil, validationNow)
	assert.Contains(t, errs, "Mandatory 'Customer' missing.")
	assert.Contains(t, errs, "Circle 'WB' invalid for region 'North'.")
	assert.Contains(t, errs, "Date format invalid, must be DD-MMM-YYYY.")
}
