package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeekToken(t *testing.T) {
	assert.Equal(t, "W3", NormalizeWeekToken("3"))
	assert.Equal(t, "W12", NormalizeWeekToken("12"))
	assert.Equal(t, "W12", NormalizeWeekToken("w12"))
	assert.Equal(t, "W4", NormalizeWeekToken("W4"))
	assert.Equal(t, "week4", NormalizeWeekToken("week4"))
}

func TestNormalizeMonthToken(t *testing.T) {
	assert.Equal(t, "Sep-25", NormalizeMonthToken("2025-09"))
	assert.Equal(t, "Sep-25", NormalizeMonthToken("2025-9"))
	assert.Equal(t, "Jan-26", NormalizeMonthToken("2026-01"))
	assert.Equal(t, "Dec-99", NormalizeMonthToken("1999-12"))
	// Out-of-range months and unrecognized shapes pass through untouched.
	assert.Equal(t, "2025-13", NormalizeMonthToken("2025-13"))
	assert.Equal(t, "Sep-25", NormalizeMonthToken("Sep-25"))
}

func TestNormalizeYearToken(t *testing.T) {
	assert.Equal(t, "25", NormalizeYearToken("2025"))
	assert.Equal(t, "05", NormalizeYearToken("2005"))
	assert.Equal(t, "25", NormalizeYearToken("25"))
}

func TestBuildExportFilterLegacyExact(t *testing.T) {
	f := BuildExportFilter("W2", "Sep-25", "", "", "")
	assert.Equal(t, "workdone_week = ? AND booking_month = ?", f.Clause)
	assert.Equal(t, []interface{}{"W2", "Sep-25"}, f.Args)
	assert.Equal(t, map[string]string{"w_exact": "W2", "m_exact": "Sep-25"}, f.Parameters)
}

func TestBuildExportFilterListsOverrideLegacy(t *testing.T) {
	// Any list parameter disables the exact week+month form.
	f := BuildExportFilter("W2", "Sep-25", "3", "", "")
	assert.Equal(t, "(workdone_week LIKE ?)", f.Clause)
	assert.Equal(t, []interface{}{"%W3"}, f.Args)
}

func TestBuildExportFilterCombinesLists(t *testing.T) {
	f := BuildExportFilter("", "", "1, w2", "2025-09", "2024")
	assert.Equal(t,
		"(workdone_week LIKE ? OR workdone_week LIKE ?) AND (booking_month LIKE ?) AND (booking_month LIKE ?)",
		f.Clause)
	require.Equal(t, []interface{}{"%W1", "%W2", "%Sep-25", "%-24"}, f.Args)
	assert.Equal(t, map[string]string{
		"wk0": "%W1",
		"wk1": "%W2",
		"mo0": "%Sep-25",
		"yr0": "%-24",
	}, f.Parameters)
}

func TestBuildExportFilterDedupesTokens(t *testing.T) {
	f := BuildExportFilter("", "", "3,3, 3 ,", "", "")
	assert.Equal(t, "(workdone_week LIKE ?)", f.Clause)
	assert.Equal(t, []interface{}{"%W3"}, f.Args)
}

func TestBuildExportFilterEmptyInput(t *testing.T) {
	f := BuildExportFilter("", "", "", "", "")
	assert.Equal(t, "", f.Clause)
	assert.Empty(t, f.Args)
	assert.Empty(t, f.Parameters)
}

func TestBuildExportFilterBlankTokensOnly(t *testing.T) {
	f := BuildExportFilter("", "", " , ,", "", "")
	assert.Equal(t, "", f.Clause)
	assert.Empty(t, f.Args)
}
