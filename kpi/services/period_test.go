package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessPeriodSeptember2025IrregularSplit(t *testing.T) {
	cases := []struct {
		day  int
		week string
	}{
		{1, "W1"},
		{4, "W1"},
		{5, "W2"},
		{11, "W2"},
		{12, "W3"},
		{18, "W3"},
		{19, "W4"},
		{25, "W4"},
		{26, "W5"},
		{30, "W5"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("day_%d", tc.day), func(t *testing.T) {
			week, month := BusinessPeriod(day(2025, time.September, tc.day))
			assert.Equal(t, tc.week, week)
			assert.Equal(t, "Sep-25", month)
		})
	}
}

func TestBusinessPeriodRegularMonths(t *testing.T) {
	cases := []struct {
		day  int
		week string
	}{
		{1, "W1"},
		{7, "W1"},
		{8, "W2"},
		{14, "W2"},
		{15, "W3"},
		{21, "W3"},
		{22, "W4"},
		{28, "W4"},
		{29, "W5"},
		{31, "W5"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("day_%d", tc.day), func(t *testing.T) {
			week, month := BusinessPeriod(day(2025, time.August, tc.day))
			assert.Equal(t, tc.week, week)
			assert.Equal(t, "Aug-25", month)
		})
	}
}

func TestBusinessPeriodOtherSeptembersAreRegular(t *testing.T) {
	week, month := BusinessPeriod(day(2024, time.September, 4))
	assert.Equal(t, "W1", week)
	assert.Equal(t, "Sep-24", month)

	week, _ = BusinessPeriod(day(2026, time.September, 5))
	assert.Equal(t, "W1", week)
}

func TestBusinessPeriodMonthLabelFormat(t *testing.T) {
	_, month := BusinessPeriod(day(2026, time.January, 15))
	assert.Equal(t, "Jan-26", month)

	_, month = BusinessPeriod(day(2025, time.December, 31))
	assert.Equal(t, "Dec-25", month)
}
