package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	bareDigitsPattern = regexp.MustCompile(`^\d+$`)
	weekLabelPattern  = regexp.MustCompile(`^(?i)W\d+$`)
	yearMonthPattern  = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	bareYearPattern   = regexp.MustCompile(`^\d{4}$`)
)

// ExportFilter is a fully parameterized WHERE clause for the export query,
// plus the named parameters for the debug echo.
type ExportFilter struct {
	Clause     string
	Args       []interface{}
	Parameters map[string]string
}

// splitTokens splits a comma list, trims each token, drops blanks and
// de-duplicates while keeping first-seen order.
func splitTokens(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeWeekToken turns user-supplied week tokens into stored week labels:
// bare digits become "W{n}", "w3" style labels are upper-cased, anything else
// passes through untouched.
func NormalizeWeekToken(t string) string {
	if bareDigitsPattern.MatchString(t) {
		return "W" + t
	}
	if weekLabelPattern.MatchString(t) {
		return strings.ToUpper(t)
	}
	return t
}

// NormalizeMonthToken turns "2025-09" style tokens into the stored "Sep-25"
// label; anything else passes through untouched.
func NormalizeMonthToken(t string) string {
	m := yearMonthPattern.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return t
	}
	mon := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan")
	return fmt.Sprintf("%s-%02d", mon, year%100)
}

// NormalizeYearToken reduces a bare 4-digit year to its 2-digit form;
// anything else passes through untouched.
func NormalizeYearToken(t string) string {
	if bareYearPattern.MatchString(t) {
		year, _ := strconv.Atoi(t)
		return fmt.Sprintf("%02d", year%100)
	}
	return t
}

// BuildExportFilter assembles the export WHERE clause. The legacy exact form
// (week+month, no lists) matches both labels exactly; the list form matches
// each normalized token as a trailing LIKE, OR within a list and AND across
// lists. An empty Clause with empty Parameters means no usable filter was
// supplied.
func BuildExportFilter(week, month, weeksRaw, monthsRaw, yearsRaw string) ExportFilter {
	f := ExportFilter{Parameters: make(map[string]string)}

	legacyExact := strings.TrimSpace(week) != "" && strings.TrimSpace(month) != "" &&
		strings.TrimSpace(weeksRaw) == "" && strings.TrimSpace(monthsRaw) == "" &&
		strings.TrimSpace(yearsRaw) == ""
	if legacyExact {
		f.Clause = "workdone_week = ? AND booking_month = ?"
		f.Args = []interface{}{week, month}
		f.Parameters["w_exact"] = week
		f.Parameters["m_exact"] = month
		return f
	}

	var groups []string

	if tokens := splitTokens(weeksRaw); len(tokens) > 0 {
		var parts []string
		for i, t := range tokens {
			pattern := "%" + NormalizeWeekToken(t)
			parts = append(parts, "workdone_week LIKE ?")
			f.Args = append(f.Args, pattern)
			f.Parameters[fmt.Sprintf("wk%d", i)] = pattern
		}
		groups = append(groups, "("+strings.Join(parts, " OR ")+")")
	}

	if tokens := splitTokens(monthsRaw); len(tokens) > 0 {
		var parts []string
		for i, t := range tokens {
			pattern := "%" + NormalizeMonthToken(t)
			parts = append(parts, "booking_month LIKE ?")
			f.Args = append(f.Args, pattern)
			f.Parameters[fmt.Sprintf("mo%d", i)] = pattern
		}
		groups = append(groups, "("+strings.Join(parts, " OR ")+")")
	}

	if tokens := splitTokens(yearsRaw); len(tokens) > 0 {
		var parts []string
		for i, t := range tokens {
			pattern := "%-" + NormalizeYearToken(t)
			parts = append(parts, "booking_month LIKE ?")
			f.Args = append(f.Args, pattern)
			f.Parameters[fmt.Sprintf("yr%d", i)] = pattern
		}
		groups = append(groups, "("+strings.Join(parts, " OR ")+")")
	}

	f.Clause = strings.Join(groups, " AND ")
	return f
}
