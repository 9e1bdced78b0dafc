package models

import (
	"time"

	"gorm.io/datatypes"
)

// Fixed classification values, written once at ingestion and never user-editable.
const (
	BusinessCategoryValue = "Telecom Project"
	CategoryValue         = "Onsite Projects"
)

// KpiRecord is one billable unit of work. Every value travels as a string on
// the wire (the upload is CSV), so the columns are all text; columns not in
// the fixed set below land in ExtraFields.
type KpiRecord struct {
	ID uint `gorm:"primaryKey" json:"Id"`

	BusinessCategory string `gorm:"column:business_category" json:"business_category"`
	Category         string `gorm:"column:category" json:"category"`

	Region          string `gorm:"column:region;index" json:"region"`
	Circle          string `gorm:"column:circle;index" json:"circle"`
	ProjectNamePMS  string `gorm:"column:project_name_pms" json:"project_name_pms"`
	ProjectNameTeam string `gorm:"column:project_name_team" json:"project_name_team"`
	Customer        string `gorm:"column:customer" json:"customer"`
	CustomerQty     string `gorm:"column:customer_qty" json:"customer_qty"`
	SiteID          string `gorm:"column:site_id" json:"site_id"`
	SiteIDSuffix    string `gorm:"column:site_id_suffix" json:"site_id_suffix"`
	SLICode         string `gorm:"column:sli_code" json:"sli_code"`
	CustomerSLI     string `gorm:"column:customer_sli" json:"customer_sli"`
	CustomerRate    string `gorm:"column:customer_rate" json:"customer_rate"`
	CustomerAmount  string `gorm:"column:customer_amount" json:"customer_amount"`
	Date            string `gorm:"column:date" json:"date"`
	WorkDoneBy      string `gorm:"column:work_done_by" json:"work_done_by"`
	PartnerName     string `gorm:"column:partner_name" json:"partner_name"`
	PartnerSLI      string `gorm:"column:partner_sli" json:"partner_sli"`
	PartnerQty      string `gorm:"column:partner_qty" json:"partner_qty"`
	PartnerRate     string `gorm:"column:partner_rate" json:"partner_rate"`
	PartnerAmount   string `gorm:"column:partner_amount" json:"partner_amount"`

	WorkdoneWeek string `gorm:"column:workdone_week;index" json:"workdone_week"`
	BookingMonth string `gorm:"column:booking_month;index" json:"booking_month"`

	// Billing lifecycle placeholders, populated after ingestion, never validated.
	CustomerBillingStatus string `gorm:"column:customer_billing_status" json:"customer_billing_status"`
	CustomerBillQty       string `gorm:"column:customer_bill_qty" json:"customer_bill_qty"`
	CustomerBilledAmount  string `gorm:"column:customer_billed_amount" json:"customer_billed_amount"`
	CustomerBillingMonth  string `gorm:"column:customer_billing_month" json:"customer_billing_month"`
	PartnerBillNo         string `gorm:"column:partner_bill_no" json:"partner_bill_no"`
	PartnerWCC            string `gorm:"column:partner_wcc" json:"partner_wcc"`
	PartnerWCCMailDate    string `gorm:"column:partner_wcc_mail_date" json:"partner_wcc_mail_date"`
	PartnerBilledQty      string `gorm:"column:partner_billed_qty" json:"partner_billed_qty"`
	PartnerBilledRate     string `gorm:"column:partner_billed_rate" json:"partner_billed_rate"`
	PartnerBilledAmount   string `gorm:"column:partner_billed_amount" json:"partner_billed_amount"`

	UploadedAt string `gorm:"column:uploaded_at" json:"uploaded_at"`

	// Uploaded columns outside the fixed set.
	ExtraFields datatypes.JSONMap `gorm:"column:extra_fields" json:"extra_fields,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KpiRecord) TableName() string {
	return "kpi_data"
}

// Display (wire) names of the fixed columns, in persisted order. These are
// the exact header strings the upload files and the browser UI use.
const (
	FieldBusinessCategory      = "Business Category"
	FieldCategory              = "Category"
	FieldRegion                = "Region"
	FieldCircle                = "Circle"
	FieldProjectNamePMS        = "Project Name (As per PMS)"
	FieldProjectNameTeam       = "Project Name (As per Project Team)"
	FieldCustomer              = "Customer"
	FieldCustomerQty           = "Customer Qty"
	FieldSiteID                = "Site ID"
	FieldSiteIDSuffix          = "Site ID as per Suffex"
	FieldSLICode               = "SLI Code"
	FieldCustomerSLI           = "Customer SLI"
	FieldCustomerRate          = "Customer Rate"
	FieldCustomerAmount        = "Customer Amount"
	FieldDate                  = "Date"
	FieldWorkDoneBy            = "Work Done by"
	FieldPartnerName           = "Partner Name"
	FieldPartnerSLI            = "Partner SLI"
	FieldPartnerQty            = "Partner Qty"
	FieldPartnerRate           = "Partner Rate"
	FieldPartnerAmount         = "Partner Amount"
	FieldWorkdoneWeek          = "Workdone Week"
	FieldBookingMonth          = "Booking Month"
	FieldCustomerBillingStatus = "Customer Billing Status"
	FieldCustomerBillQty       = "Customer Bill Qty"
	FieldCustomerBilledAmount  = "Customer Billed Amount"
	FieldCustomerBillingMonth  = "Customer Billing Month"
	FieldPartnerBillNo         = "Partner Bill no"
	FieldPartnerWCC            = "PartnerWCC"
	FieldPartnerWCCMailDate    = "Partner WCC mail Date"
	FieldPartnerBilledQty      = "Partner Billed Qty"
	FieldPartnerBilledRate     = "Partner Billed Rate"
	FieldPartnerBilledAmount   = "Partner Billed Amount"
	FieldUploadedAt            = "Uploaded At"
)

// KpiColumn maps a display name onto its storage column.
type KpiColumn struct {
	Display string
	Column  string
}

// KpiColumns lists the fixed columns in persisted order.
var KpiColumns = []KpiColumn{
	{FieldBusinessCategory, "business_category"},
	{FieldCategory, "category"},
	{FieldRegion, "region"},
	{FieldCircle, "circle"},
	{FieldProjectNamePMS, "project_name_pms"},
	{FieldProjectNameTeam, "project_name_team"},
	{FieldCustomer, "customer"},
	{FieldCustomerQty, "customer_qty"},
	{FieldSiteID, "site_id"},
	{FieldSiteIDSuffix, "site_id_suffix"},
	{FieldSLICode, "sli_code"},
	{FieldCustomerSLI, "customer_sli"},
	{FieldCustomerRate, "customer_rate"},
	{FieldCustomerAmount, "customer_amount"},
	{FieldDate, "date"},
	{FieldWorkDoneBy, "work_done_by"},
	{FieldPartnerName, "partner_name"},
	{FieldPartnerSLI, "partner_sli"},
	{FieldPartnerQty, "partner_qty"},
	{FieldPartnerRate, "partner_rate"},
	{FieldPartnerAmount, "partner_amount"},
	{FieldWorkdoneWeek, "workdone_week"},
	{FieldBookingMonth, "booking_month"},
	{FieldCustomerBillingStatus, "customer_billing_status"},
	{FieldCustomerBillQty, "customer_bill_qty"},
	{FieldCustomerBilledAmount, "customer_billed_amount"},
	{FieldCustomerBillingMonth, "customer_billing_month"},
	{FieldPartnerBillNo, "partner_bill_no"},
	{FieldPartnerWCC, "partner_wcc"},
	{FieldPartnerWCCMailDate, "partner_wcc_mail_date"},
	{FieldPartnerBilledQty, "partner_billed_qty"},
	{FieldPartnerBilledRate, "partner_billed_rate"},
	{FieldPartnerBilledAmount, "partner_billed_amount"},
	{FieldUploadedAt, "uploaded_at"},
}

var kpiColumnByDisplay = func() map[string]string {
	m := make(map[string]string, len(KpiColumns))
	for _, c := range KpiColumns {
		m[c.Display] = c.Column
	}
	return m
}()

// KnownColumn resolves a display name to its storage column.
func KnownColumn(display string) (string, bool) {
	col, ok := kpiColumnByDisplay[display]
	return col, ok
}

// fieldPtr returns the struct field backing a fixed display name, nil for
// anything outside the fixed set.
func (r *KpiRecord) fieldPtr(display string) *string {
	switch display {
	case FieldBusinessCategory:
		return &r.BusinessCategory
	case FieldCategory:
		return &r.Category
	case FieldRegion:
		return &r.Region
	case FieldCircle:
		return &r.Circle
	case FieldProjectNamePMS:
		return &r.ProjectNamePMS
	case FieldProjectNameTeam:
		return &r.ProjectNameTeam
	case FieldCustomer:
		return &r.Customer
	case FieldCustomerQty:
		return &r.CustomerQty
	case FieldSiteID:
		return &r.SiteID
	case FieldSiteIDSuffix:
		return &r.SiteIDSuffix
	case FieldSLICode:
		return &r.SLICode
	case FieldCustomerSLI:
		return &r.CustomerSLI
	case FieldCustomerRate:
		return &r.CustomerRate
	case FieldCustomerAmount:
		return &r.CustomerAmount
	case FieldDate:
		return &r.Date
	case FieldWorkDoneBy:
		return &r.WorkDoneBy
	case FieldPartnerName:
		return &r.PartnerName
	case FieldPartnerSLI:
		return &r.PartnerSLI
	case FieldPartnerQty:
		return &r.PartnerQty
	case FieldPartnerRate:
		return &r.PartnerRate
	case FieldPartnerAmount:
		return &r.PartnerAmount
	case FieldWorkdoneWeek:
		return &r.WorkdoneWeek
	case FieldBookingMonth:
		return &r.BookingMonth
	case FieldCustomerBillingStatus:
		return &r.CustomerBillingStatus
	case FieldCustomerBillQty:
		return &r.CustomerBillQty
	case FieldCustomerBilledAmount:
		return &r.CustomerBilledAmount
	case FieldCustomerBillingMonth:
		return &r.CustomerBillingMonth
	case FieldPartnerBillNo:
		return &r.PartnerBillNo
	case FieldPartnerWCC:
		return &r.PartnerWCC
	case FieldPartnerWCCMailDate:
		return &r.PartnerWCCMailDate
	case FieldPartnerBilledQty:
		return &r.PartnerBilledQty
	case FieldPartnerBilledRate:
		return &r.PartnerBilledRate
	case FieldPartnerBilledAmount:
		return &r.PartnerBilledAmount
	case FieldUploadedAt:
		return &r.UploadedAt
	}
	return nil
}

// GetField returns the value for a display name; unknown names are looked up
// in ExtraFields.
func (r *KpiRecord) GetField(display string) string {
	if p := r.fieldPtr(display); p != nil {
		return *p
	}
	if r.ExtraFields != nil {
		if v, ok := r.ExtraFields[display]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// SetField assigns a value by display name; unknown names go into ExtraFields.
func (r *KpiRecord) SetField(display, value string) {
	if p := r.fieldPtr(display); p != nil {
		*p = value
		return
	}
	if r.ExtraFields == nil {
		r.ExtraFields = datatypes.JSONMap{}
	}
	r.ExtraFields[display] = value
}

// Clone returns a copy safe to mutate: ExtraFields is a map, so a plain
// struct copy would alias the original's extras.
func (r *KpiRecord) Clone() KpiRecord {
	out := *r
	if r.ExtraFields != nil {
		out.ExtraFields = make(datatypes.JSONMap, len(r.ExtraFields))
		for k, v := range r.ExtraFields {
			out.ExtraFields[k] = v
		}
	}
	return out
}

// FieldMap flattens the record into display-name keyed strings, extras included.
func (r *KpiRecord) FieldMap() map[string]string {
	m := make(map[string]string, len(KpiColumns)+len(r.ExtraFields))
	for _, c := range KpiColumns {
		m[c.Display] = *r.fieldPtr(c.Display)
	}
	for k, v := range r.ExtraFields {
		if s, ok := v.(string); ok {
			m[k] = s
		}
	}
	return m
}
