package dashboard

import (
	"testing"
	"time"

	"lead_dashboard_backend/internal/leads/repository"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleLeads() []repository.Lead {
	return []repository.Lead{
		{Name: "Jane Doe", Email: "jane@example.com", Zipcode: "90210", PropertyType: "House", Status: "Hot", InquiryDate: date("2026-08-20")},
		{Name: "Bob Ray", Email: "bob@example.com", Zipcode: "10001", PropertyType: "Condo", Status: "New", InquiryDate: date("2026-08-10")},
		{Name: "Ann Lee", Email: "ann@corp.io", Zipcode: "90210", PropertyType: "Land", Status: "Cold", InquiryDate: date("2026-07-01")},
	}
}

func TestNormalize_FillsDefaultsFromObservedValues(t *testing.T) {
	leads := sampleLeads()
	sel := Normalize(Selection{}, leads, date("2026-08-28"))

	if !sel.StartDate.Equal(date("2026-07-01")) {
		t.Fatalf("StartDate = %v, want 2026-07-01", sel.StartDate)
	}
	if !sel.EndDate.Equal(date("2026-08-20")) {
		t.Fatalf("EndDate = %v, want 2026-08-20", sel.EndDate)
	}
	if len(sel.Zipcodes) != 2 || sel.Zipcodes[0] != "10001" || sel.Zipcodes[1] != "90210" {
		t.Fatalf("Zipcodes = %v, want sorted distinct [10001 90210]", sel.Zipcodes)
	}
	if len(sel.PropertyTypes) != 3 {
		t.Fatalf("PropertyTypes = %v, want 3 distinct values", sel.PropertyTypes)
	}
	if sel.SortBy != SortByInquiryDate {
		t.Fatalf("SortBy = %q, want %q", sel.SortBy, SortByInquiryDate)
	}
}

func TestNormalize_EmptyLeadSetUsesToday(t *testing.T) {
	today := date("2026-08-28")
	sel := Normalize(Selection{}, nil, today)

	if !sel.StartDate.Equal(today) || !sel.EndDate.Equal(today) {
		t.Fatalf("range = %v..%v, want today..today", sel.StartDate, sel.EndDate)
	}
	if len(sel.Zipcodes) != 0 || len(sel.PropertyTypes) != 0 {
		t.Fatalf("selectors over empty set must stay empty, got %v / %v", sel.Zipcodes, sel.PropertyTypes)
	}
}

func TestNormalize_KeepsExplicitSelection(t *testing.T) {
	leads := sampleLeads()
	in := Selection{
		StartDate: date("2026-08-01"),
		EndDate:   date("2026-08-31"),
		Zipcodes:  []string{"90210"},
		SortBy:    SortByName,
	}
	sel := Normalize(in, leads, date("2026-08-28"))

	if !sel.StartDate.Equal(in.StartDate) || !sel.EndDate.Equal(in.EndDate) {
		t.Fatalf("explicit dates were overwritten: %v..%v", sel.StartDate, sel.EndDate)
	}
	if len(sel.Zipcodes) != 1 || sel.Zipcodes[0] != "90210" {
		t.Fatalf("explicit zipcodes were overwritten: %v", sel.Zipcodes)
	}
	if sel.SortBy != SortByName {
		t.Fatalf("explicit sort was overwritten: %q", sel.SortBy)
	}
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	leads := sampleLeads()
	sel := Normalize(Selection{
		StartDate: date("2026-08-10"),
		EndDate:   date("2026-08-20"),
	}, leads, date("2026-08-28"))

	got := Filter(leads, sel)
	if len(got) != 2 {
		t.Fatalf("got %d leads, want 2 (boundary dates included)", len(got))
	}
	for _, lead := range got {
		if lead.Name == "Ann Lee" {
			t.Fatalf("lead outside the range passed the filter")
		}
	}
}

func TestFilter_DimensionsCompose(t *testing.T) {
	leads := sampleLeads()
	sel := Normalize(Selection{Zipcodes: []string{"90210"}}, leads, date("2026-08-28"))

	got := Filter(leads, sel)
	if len(got) != 2 {
		t.Fatalf("zip filter: got %d, want 2", len(got))
	}

	sel.PropertyTypes = []string{"Land"}
	got = Filter(leads, sel)
	if len(got) != 1 || got[0].Name != "Ann Lee" {
		t.Fatalf("zip+type filter: got %v, want only Ann Lee", got)
	}
}

func TestFilter_SearchMatchesNameOrEmail(t *testing.T) {
	leads := sampleLeads()
	base := Normalize(Selection{}, leads, date("2026-08-28"))

	base.Search = "JANE"
	if got := Filter(leads, base); len(got) != 1 || got[0].Name != "Jane Doe" {
		t.Fatalf("name search: got %v", got)
	}

	base.Search = "corp.io"
	if got := Filter(leads, base); len(got) != 1 || got[0].Name != "Ann Lee" {
		t.Fatalf("email search: got %v", got)
	}

	base.Search = "nobody"
	if got := Filter(leads, base); len(got) != 0 {
		t.Fatalf("non-matching search: got %v, want none", got)
	}
}

func TestFilter_ResultIsSubset(t *testing.T) {
	leads := sampleLeads()
	sel := Normalize(Selection{Search: "e"}, leads, date("2026-08-28"))

	byEmail := make(map[string]repository.Lead, len(leads))
	for _, lead := range leads {
		byEmail[lead.Email] = lead
	}
	for _, lead := range Filter(leads, sel) {
		if _, ok := byEmail[lead.Email]; !ok {
			t.Fatalf("filter produced a lead not in the input: %v", lead)
		}
	}
}
