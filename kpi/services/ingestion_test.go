package services

import (
	"testing"

	"kpi-tracker-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uploadHeaders = []string{
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
	models.FieldWorkDoneBy,
	models.FieldPartnerName,
	models.FieldPartnerSLI,
	models.FieldPartnerQty,
	models.FieldPartnerRate,
	models.FieldPartnerAmount,
}

func rowValues(fields map[string]string) []string {
	values := make([]string, len(uploadHeaders))
	for i, h := range uploadHeaders {
		values[i] = fields[h]
	}
	return values
}

func TestBuildKpiBatchStagesValidRows(t *testing.T) {
	r1 := validRow()
	r2 := validRow()
	r2[models.FieldSiteID] = "DL-1002"
	r2[models.FieldDate] = "02-Sep-2025"
	r3 := validRow()
	r3[models.FieldSiteID] = "DL-1003"

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{rowValues(r1), rowValues(r2), rowValues(r3)},
		nil,
		validationNow,
		"2025-09-20T12:00:00Z",
		false,
	)

	require.Empty(t, result.Errors)
	require.Len(t, result.Staged, 3)

	first := result.Staged[0]
	assert.Equal(t, models.BusinessCategoryValue, first.BusinessCategory)
	assert.Equal(t, models.CategoryValue, first.Category)
	assert.Equal(t, "2025-09-20T12:00:00Z", first.UploadedAt)
	// September 2025 week split: day 5 opens W2, day 2 still sits in W1.
	assert.Equal(t, "W2", first.WorkdoneWeek)
	assert.Equal(t, "Sep-25", first.BookingMonth)

	assert.Equal(t, "W1", result.Staged[1].WorkdoneWeek)
	assert.Equal(t, "Sep-25", result.Staged[1].BookingMonth)
}

func TestBuildKpiBatchReportsRowNumbers(t *testing.T) {
	good := validRow()
	bad := validRow()
	bad[models.FieldSiteID] = "DL-1002"
	bad[models.FieldCustomer] = ""

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{rowValues(good), rowValues(bad)},
		nil,
		validationNow,
		"ts",
		false,
	)

	assert.Equal(t, []string{"Row 2: Mandatory 'Customer' missing."}, result.Errors)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 2, result.Failures[0].RowNumber)
	assert.False(t, result.Failures[0].Duplicate)
	assert.Len(t, result.Staged, 1)
}

func TestBuildKpiBatchDetectsIntraBatchDuplicates(t *testing.T) {
	r := validRow()

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{rowValues(r), rowValues(r)},
		nil,
		validationNow,
		"ts",
		false,
	)

	assert.Equal(t, []string{"Row 2: Duplicate row detected based on uniqueness key."}, result.Errors)
	require.Len(t, result.Failures, 1)
	assert.True(t, result.Failures[0].Duplicate)
}

func TestBuildKpiBatchDetectsPersistedDuplicates(t *testing.T) {
	r := validRow()
	persisted := map[string]struct{}{
		UniqueKey(r): {},
	}

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{rowValues(r)},
		persisted,
		validationNow,
		"ts",
		false,
	)

	assert.Equal(t, []string{"Row 1: Duplicate row already exists in database."}, result.Errors)
	assert.Empty(t, result.Staged)
}

func TestBuildKpiBatchIgnoresManagedColumns(t *testing.T) {
	headers := append(append([]string{}, uploadHeaders...), models.FieldWorkdoneWeek, models.FieldCustomerBillingStatus)
	values := append(rowValues(validRow()), "W4", "Billed")

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		headers,
		[][]string{values},
		nil,
		validationNow,
		"ts",
		false,
	)

	require.Empty(t, result.Errors)
	require.Len(t, result.Staged, 1)
	// Uploaded values for pipeline-owned columns are discarded; the week
	// comes from the Date and billing starts blank.
	assert.Equal(t, "W2", result.Staged[0].WorkdoneWeek)
	assert.Equal(t, "", result.Staged[0].CustomerBillingStatus)
}

func TestBuildKpiBatchStoresUnknownColumnsAsExtras(t *testing.T) {
	headers := append(append([]string{}, uploadHeaders...), "Remarks")
	values := append(rowValues(validRow()), "follow up next week")

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		headers,
		[][]string{values},
		nil,
		validationNow,
		"ts",
		false,
	)

	require.Len(t, result.Staged, 1)
	assert.Equal(t, "follow up next week", result.Staged[0].GetField("Remarks"))
}

func TestBuildKpiBatchPreviewEchoesRows(t *testing.T) {
	good := validRow()
	bad := validRow()
	bad[models.FieldSiteID] = "DL 2"

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{rowValues(good), rowValues(bad)},
		nil,
		validationNow,
		"ts",
		true,
	)

	require.Len(t, result.Previews, 2)
	assert.Equal(t, "DL-1001#A", result.Previews[0][models.FieldSiteID])
	assert.Equal(t, "", result.Previews[0]["_errors"])
	assert.Equal(t, "Site ID invalid format.", result.Previews[1]["_errors"])
}

func TestBuildKpiBatchSkipsPeriodForBadDates(t *testing.T) {
	r := validRow()
	r[models.FieldDate] = "31-Dec-2099"

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{rowValues(r)},
		nil,
		validationNow,
		"ts",
		true,
	)

	assert.Equal(t, []string{"Row 1: Date cannot be in the future."}, result.Errors)
	require.Len(t, result.Previews, 1)
	assert.Equal(t, "", result.Previews[0][models.FieldWorkdoneWeek])
}

func TestBuildKpiBatchToleratesShortRows(t *testing.T) {
	// A trailing-cell-short row is padded with blanks, which then trip the
	// mandatory checks instead of panicking.
	short := rowValues(validRow())[:5]

	result := BuildKpiBatch(
		DefaultRegionConfig(),
		uploadHeaders,
		[][]string{short},
		nil,
		validationNow,
		"ts",
		false,
	)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Mandatory 'Customer Qty' missing.")
	assert.Empty(t, result.Staged)
}
