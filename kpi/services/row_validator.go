package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kpi-tracker-backend/db/models"

	"github.com/shopspring/decimal"
)

// DateFormat is the only accepted Date layout, e.g. "05-Sep-2025".
const DateFormat = "02-Jan-2006"

var siteIDPattern = regexp.MustCompile(`^[\w\-@#]+$`)

// mandatoryFields are the 18 fields that must be non-blank after trimming.
var mandatoryFields = []string{
	models.FieldRegion,
	models.FieldCircle,
	models.FieldProjectNamePMS,
	models.FieldProjectNameTeam,
	models.FieldCustomer,
	models.FieldCustomerQty,
	models.FieldSiteID,
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

// ValidateKpiRow checks one row against the full business rule set and
// returns every violation as a human-readable message. All rules are
// evaluated; nothing short-circuits. The function never mutates its inputs.
//
// knownKeys is the composite-key set the row must not collide with. The
// update path passes the keys of all other persisted records (a row is never
// a duplicate of itself); the ingestion pipeline passes an empty set and
// runs its own two-tier batch/persisted check for the batch-specific
// messages.
//
// Amount consistency rounds to two decimals with shopspring's Round, which
// is half away from zero.
func ValidateKpiRow(cfg *RegionConfig, fields map[string]string, knownKeys map[string]struct{}, now time.Time) []string {
	var errs []string

	get := func(key string) string {
		return strings.TrimSpace(fields[key])
	}

	for _, f := range mandatoryFields {
		if get(f) == "" {
			errs = append(errs, fmt.Sprintf("Mandatory '%s' missing.", f))
		}
	}

	region := get(models.FieldRegion)
	circle := get(models.FieldCircle)
	if _, ok := cfg.ValidRegions[region]; !ok {
		errs = append(errs, "Region invalid.")
	} else if !cfg.CircleValid(region, circle) {
		errs = append(errs, fmt.Sprintf("Circle '%s' invalid for region '%s'.", circle, region))
	}

	workDoneBy := get(models.FieldWorkDoneBy)
	if _, ok := cfg.ValidWorkDoneBy[workDoneBy]; !ok {
		errs = append(errs, "Work Done by invalid.")
	}

	partnerName := get(models.FieldPartnerName)
	partnerSLI := get(models.FieldPartnerSLI)
	switch workDoneBy {
	case "Partner":
		if strings.EqualFold(partnerName, "NA") {
			errs = append(errs, "Partner Name cannot be NA for Partner.")
		}
		if strings.EqualFold(partnerSLI, "NA") {
			errs = append(errs, "Partner SLI cannot be NA for Partner.")
		}
	case "RVS":
		if !strings.EqualFold(partnerName, "NA") {
			errs = append(errs, "Partner Name must be NA for RVS.")
		}
		if !strings.EqualFold(partnerSLI, "NA") {
			errs = append(errs, "Partner SLI must be NA for RVS.")
		}
	}

	// Failed parses contribute zero to the product checks below, so a row
	// with a bad Qty still reports the mismatch the way the legacy system did.
	var custQty int64
	if q, err := strconv.ParseInt(get(models.FieldCustomerQty), 10, 64); err != nil {
		errs = append(errs, "Customer Qty must be digits.")
	} else {
		custQty = q
	}
	custRate := decimal.Zero
	if r, err := decimal.NewFromString(get(models.FieldCustomerRate)); err != nil {
		errs = append(errs, "Customer Rate invalid.")
	} else {
		custRate = r
	}
	if custAmount, err := decimal.NewFromString(get(models.FieldCustomerAmount)); err != nil {
		errs = append(errs, "Customer Amount invalid.")
	} else if !decimal.NewFromInt(custQty).Mul(custRate).Round(2).Equal(custAmount.Round(2)) {
		errs = append(errs, "Customer Amount mismatch with Qty*Rate.")
	}

	partnerQty := decimal.Zero
	if q, err := decimal.NewFromString(get(models.FieldPartnerQty)); err != nil {
		errs = append(errs, "Partner Qty invalid.")
	} else {
		partnerQty = q
	}
	partnerRate := decimal.Zero
	if r, err := decimal.NewFromString(get(models.FieldPartnerRate)); err != nil {
		errs = append(errs, "Partner Rate invalid.")
	} else {
		partnerRate = r
	}
	if partnerAmount, err := decimal.NewFromString(get(models.FieldPartnerAmount)); err != nil {
		errs = append(errs, "Partner Amount invalid.")
	} else {
		if workDoneBy == "Partner" && !partnerQty.Mul(partnerRate).Round(2).Equal(partnerAmount.Round(2)) {
			errs = append(errs, "Partner Amount mismatch with Qty*Rate.")
		}
		if workDoneBy == "RVS" && (!partnerQty.IsZero() || !partnerRate.IsZero() || !partnerAmount.IsZero()) {
			errs = append(errs, "Partner Qty/Rate/Amount must be 0 for RVS.")
		}
	}

	if !siteIDPattern.MatchString(get(models.FieldSiteID)) {
		errs = append(errs, "Site ID invalid format.")
	}

	dateStr := get(models.FieldDate)
	if dateVal, err := time.Parse(DateFormat, dateStr); err != nil {
		errs = append(errs, "Date format invalid, must be DD-MMM-YYYY.")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if dateVal.After(today) {
			errs = append(errs, "Date cannot be in the future.")
		}
	}

	if _, exists := knownKeys[UniqueKey(fields)]; exists {
		errs = append(errs, "Duplicate record detected.")
	}

	return errs
}
