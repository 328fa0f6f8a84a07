package transport

import (
	"time"

	"lead_dashboard_backend/internal/leads/dashboard"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates (no time component).
const DateLayout = "2006-01-02"

// Enum values
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeCondo      PropertyType = "Condo"
	PropertyTypeLand       PropertyType = "Land"
	PropertyTypeTownhouse  PropertyType = "Townhouse"
	PropertyTypeCommercial PropertyType = "Commercial"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusHot       LeadStatus = "Hot"
	LeadStatusCold      LeadStatus = "Cold"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusInvestor  LeadStatus = "Investor"
)

// Request DTOs

type CreateLeadRequest struct {
	Name         string       `json:"name" validate:"required,min=1,max=200"`
	Email        string       `json:"email" validate:"required,email"`
	Zipcode      string       `json:"zipcode" validate:"required,min=1,max=20"`
	PropertyType PropertyType `json:"propertyType" validate:"required,oneof=House Condo Land Townhouse Commercial"`
	Status       LeadStatus   `json:"status" validate:"required,oneof=New Hot Cold Contacted Investor"`
	InquiryDate  string       `json:"inquiryDate" validate:"required"`
}

// FilterQuery carries the per-view filter selection. Unset dimensions fall
// back to observed defaults server-side.
type FilterQuery struct {
	StartDate     string   `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string   `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Zipcodes      []string `form:"zipcode" validate:"omitempty,max=500,dive,min=1,max=20"`
	PropertyTypes []string `form:"propertyType" validate:"omitempty,max=5,dive,oneof=House Condo Land Townhouse Commercial"`
	Search        string   `form:"search" validate:"max=100"`
	SortBy        string   `form:"sortBy" validate:"omitempty,oneof=inquiry_date lead_score name"`
}

// ToSelection converts the query to a dashboard selection. Validation has
// already guaranteed the date strings parse.
func (q FilterQuery) ToSelection() dashboard.Selection {
	sel := dashboard.Selection{
		Zipcodes:      q.Zipcodes,
		PropertyTypes: q.PropertyTypes,
		Search:        q.Search,
		SortBy:        dashboard.SortKey(q.SortBy),
	}
	if q.StartDate != "" {
		sel.StartDate, _ = time.Parse(DateLayout, q.StartDate)
	}
	if q.EndDate != "" {
		sel.EndDate, _ = time.Parse(DateLayout, q.EndDate)
	}
	return sel
}

// Response DTOs

type LeadResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Zipcode      string    `json:"zipcode"`
	PropertyType string    `json:"propertyType"`
	Status       string    `json:"status"`
	InquiryDate  string    `json:"inquiryDate"`
	LeadScore    int       `json:"leadScore"`
}

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MetricsResponse struct {
	Total           int     `json:"total"`
	HotCount        int     `json:"hotCount"`
	AvgLeadScore    float64 `json:"avgLeadScore"`
	TopPropertyType string  `json:"topPropertyType"`
	TopZipcode      string  `json:"topZipcode"`
}

type InsightsResponse struct {
	ConversionPotential float64 `json:"conversionPotential"`
	AvgInquiryLagDays   float64 `json:"avgInquiryLagDays"`
	BestZipByScore      string  `json:"bestZipByScore"`
}

// FilterEcho is the selection actually applied, defaults included, so the
// UI can render its controls from one response.
type FilterEcho struct {
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	Zipcodes      []string `json:"zipcodes"`
	PropertyTypes []string `json:"propertyTypes"`
	Search        string   `json:"search,omitempty"`
	SortBy        string   `json:"sortBy"`
}

// FilterOptions lists every observed value per selector.
type FilterOptions struct {
	Zipcodes      []string `json:"zipcodes"`
	PropertyTypes []string `json:"propertyTypes"`
}

type DashboardResponse struct {
	Leads           []LeadResponse        `json:"leads"`
	HotLeads        []LeadResponse        `json:"hotLeads"`
	NewHotCount     int                   `json:"newHotCount"`
	StatusHistogram []StatusCountResponse `json:"statusHistogram"`
	Metrics         MetricsResponse       `json:"metrics"`
	Insights        InsightsResponse      `json:"insights"`
	Suggestion      string                `json:"suggestion"`
	Filter          FilterEcho            `json:"filter"`
	Options         FilterOptions         `json:"options"`
	// AlertNotice carries a non-fatal alert delivery problem; the view
	// still renders.
	AlertNotice string `json:"alertNotice,omitempty"`
}

// ToLeadResponse maps a scored lead to its wire form.
func ToLeadResponse(lead dashboard.ScoredLead) LeadResponse {
	return LeadResponse{
		ID:           lead.ID,
		Name:         lead.Name,
		Email:        lead.Email,
		Zipcode:      lead.Zipcode,
		PropertyType: lead.PropertyType,
		Status:       lead.Status,
		InquiryDate:  lead.InquiryDate.Format(DateLayout),
		LeadScore:    lead.LeadScore,
	}
}

// ToLeadResponses maps a scored lead slice, preserving order.
func ToLeadResponses(leads []dashboard.ScoredLead) []LeadResponse {
	result := make([]LeadResponse, len(leads))
	for i, lead := range leads {
		result[i] = ToLeadResponse(lead)
	}
	return result
}
