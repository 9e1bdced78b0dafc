package services

import (
	"fmt"
	"time"
)

// BusinessPeriod derives the business week-of-month label and booking month
// label for a date. Business weeks are day-of-month buckets, not ISO weeks.
// September 2025 carries an irregular split from a one-off operational
// calendar adjustment; it must stay hard-coded, not generalized.
func BusinessPeriod(date time.Time) (week string, month string) {
	day := date.Day()
	var w int
	if date.Month() == time.September && date.Year() == 2025 {
		switch {
		case day <= 4:
			w = 1
		case day <= 11:
			w = 2
		case day <= 18:
			w = 3
		case day <= 25:
			w = 4
		default:
			w = 5
		}
	} else {
		switch {
		case day <= 7:
			w = 1
		case day <= 14:
			w = 2
		case day <= 21:
			w = 3
		case day <= 28:
			w = 4
		default:
			w = 5
		}
	}
	return fmt.Sprintf("W%d", w), date.Format("Jan-06")
}
