// Package dashboard holds the pure view-building pipeline: filtering,
// scoring annotation, sorting and metric derivation over a lead snapshot.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"lead_dashboard_backend/internal/leads/repository"
)

// SortKey selects the dashboard sort order.
type SortKey string

const (
	SortByInquiryDate SortKey = "inquiry_date"
	SortByLeadScore   SortKey = "lead_score"
	SortByName        SortKey = "name"
)

// Selection is the per-view filter input. Zero-valued dimensions mean
// "unset" and are filled by Normalize.
type Selection struct {
	StartDate     time.Time
	EndDate       time.Time
	Zipcodes      []string
	PropertyTypes []string
	Search        string
	SortBy        SortKey
}

// Normalize fills unset selector dimensions from the full lead set:
// the date range spans the observed min..max inquiry dates (today..today
// when the set is empty, so an empty store never produces an unbounded
// control), and the zip/type selectors default to all observed values,
// never to the empty set.
func Normalize(sel Selection, leads []repository.Lead, today time.Time) Selection {
	if sel.StartDate.IsZero() || sel.EndDate.IsZero() {
		start, end := observedDateRange(leads, today)
		if sel.StartDate.IsZero() {
			sel.StartDate = start
		}
		if sel.EndDate.IsZero() {
			sel.EndDate = end
		}
	}
	if len(sel.Zipcodes) == 0 {
		sel.Zipcodes = observedValues(leads, func(l repository.Lead) string { return l.Zipcode })
	}
	if len(sel.PropertyTypes) == 0 {
		sel.PropertyTypes = observedValues(leads, func(l repository.Lead) string { return l.PropertyType })
	}
	if sel.SortBy == "" {
		sel.SortBy = SortByInquiryDate
	}
	return sel
}

// Filter returns the subset of leads satisfying every selection dimension:
// inquiry date within the inclusive range, zipcode and property type set
// membership, and (when a search string is given) a case-insensitive
// substring match on name or email.
func Filter(leads []repository.Lead, sel Selection) []repository.Lead {
	zips := toSet(sel.Zipcodes)
	types := toSet(sel.PropertyTypes)
	search := strings.ToLower(strings.TrimSpace(sel.Search))
	start := dateOnly(sel.StartDate)
	end := dateOnly(sel.EndDate)

	result := make([]repository.Lead, 0, len(leads))
	for _, lead := range leads {
		date := dateOnly(lead.InquiryDate)
		if date.Before(start) || date.After(end) {
			continue
		}
		if _, ok := zips[lead.Zipcode]; !ok {
			continue
		}
		if _, ok := types[lead.PropertyType]; !ok {
			continue
		}
		if search != "" && !matchesSearch(lead, search) {
			continue
		}
		result = append(result, lead)
	}
	return result
}

func matchesSearch(lead repository.Lead, search string) bool {
	return strings.Contains(strings.ToLower(lead.Name), search) ||
		strings.Contains(strings.ToLower(lead.Email), search)
}

func observedDateRange(leads []repository.Lead, today time.Time) (time.Time, time.Time) {
	if len(leads) == 0 {
		t := dateOnly(today)
		return t, t
	}
	start := dateOnly(leads[0].InquiryDate)
	end := start
	for _, lead := range leads[1:] {
		d := dateOnly(lead.InquiryDate)
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
	}
	return start, end
}

// ObservedZipcodes returns every distinct zipcode in the lead set, sorted.
func ObservedZipcodes(leads []repository.Lead) []string {
	return observedValues(leads, func(l repository.Lead) string { return l.Zipcode })
}

// ObservedPropertyTypes returns every distinct property type, sorted.
func ObservedPropertyTypes(leads []repository.Lead) []string {
	return observedValues(leads, func(l repository.Lead) string { return l.PropertyType })
}

// observedValues returns the distinct values of one lead field, sorted.
func observedValues(leads []repository.Lead, field func(repository.Lead) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, lead := range leads {
		value := field(lead)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// dateOnly truncates a timestamp to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
