package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"lead_dashboard_backend/internal/leads/repository"
	"lead_dashboard_backend/internal/leads/scoring"
)

// ScoredLead is a lead annotated with its derived score. The score is
// recomputed on every view, never persisted.
type ScoredLead struct {
	repository.Lead
	LeadScore int
}

// StatusCount is one histogram bucket, keyed by lower-cased status text.
type StatusCount struct {
	Status string
	Count  int
}

// Metrics are the headline dashboard numbers over the filtered set.
type Metrics struct {
	Total           int
	HotCount        int
	AvgLeadScore    float64
	TopPropertyType string
	TopZipcode      string
}

// Insights are the derived secondary indicators.
type Insights struct {
	ConversionPotential float64 // percent of leads classified hot or investor
	AvgInquiryLagDays   float64 // mean whole-day age of inquiries
	BestZipByScore      string  // "N/A" when the set is empty
}

// BestZipEmpty is the sentinel returned when no leads are available to rank.
const BestZipEmpty = "N/A"

// ScoreAll annotates each lead with its derived score, preserving order.
func ScoreAll(leads []repository.Lead) []ScoredLead {
	scored := make([]ScoredLead, len(leads))
	for i, lead := range leads {
		scored[i] = ScoredLead{Lead: lead, LeadScore: scoring.Score(lead.Status)}
	}
	return scored
}

// Sort returns a sorted copy: lead_score and inquiry_date descending,
// name ascending. The sort is stable, so equal keys keep fetch order.
func Sort(leads []ScoredLead, key SortKey) []ScoredLead {
	sorted := append([]ScoredLead(nil), leads...)
	switch key {
	case SortByLeadScore:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LeadScore > sorted[j].LeadScore
		})
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].InquiryDate.After(sorted[j].InquiryDate)
		})
	}
	return sorted
}

// Hot returns the leads whose status classifies as hot.
func Hot(leads []ScoredLead) []ScoredLead {
	hot := make([]ScoredLead, 0)
	for _, lead := range leads {
		if scoring.IsHot(lead.Status) {
			hot = append(hot, lead)
		}
	}
	return hot
}

// NewHot returns the hot leads whose email is not yet in the notified set.
// Email is the dedup key: two leads sharing an email are indistinguishable
// here.
func NewHot(hot []ScoredLead, notified map[string]struct{}) []ScoredLead {
	fresh := make([]ScoredLead, 0)
	for _, lead := range hot {
		if _, ok := notified[lead.Email]; !ok {
			fresh = append(fresh, lead)
		}
	}
	return fresh
}

// Histogram counts leads per distinct lower-cased status value, ordered by
// descending count with ties kept in first-encountered order.
func Histogram(leads []ScoredLead) []StatusCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, lead := range leads {
		status := lowerStatus(lead.Status)
		if _, ok := counts[status]; !ok {
			order = append(order, status)
		}
		counts[status]++
	}

	buckets := make([]StatusCount, 0, len(order))
	for _, status := range order {
		buckets = append(buckets, StatusCount{Status: status, Count: counts[status]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// ComputeMetrics derives the headline numbers. The mean score over an
// empty set is 0, never a division error. Mode tie-breaks go to the value
// first encountered in the order leads are passed in; callers hand in the
// sorted view, so ties resolve deterministically per selection.
func ComputeMetrics(leads []ScoredLead) Metrics {
	m := Metrics{Total: len(leads)}
	if len(leads) == 0 {
		return m
	}

	sum := 0
	for _, lead := range leads {
		sum += lead.LeadScore
		if scoring.IsHot(lead.Status) {
			m.HotCount++
		}
	}
	m.AvgLeadScore = round1(float64(sum) / float64(len(leads)))
	m.TopPropertyType = mode(leads, func(l ScoredLead) string { return l.PropertyType })
	m.TopZipcode = mode(leads, func(l ScoredLead) string { return l.Zipcode })
	return m
}

// ComputeInsights derives conversion potential, mean inquiry lag in whole
// calendar days relative to today, and the zip with the highest mean score.
func ComputeInsights(leads []ScoredLead, today time.Time) Insights {
	ins := Insights{BestZipByScore: BestZipEmpty}
	if len(leads) == 0 {
		return ins
	}

	convertible := 0
	lagSum := 0
	zipSum := make(map[string]int)
	zipCount := make(map[string]int)
	zipOrder := make([]string, 0)

	day := dateOnly(today)
	for _, lead := range leads {
		if scoring.IsConvertible(lead.Status) {
			convertible++
		}
		lagSum += int(day.Sub(dateOnly(lead.InquiryDate)).Hours() / 24)
		if _, ok := zipCount[lead.Zipcode]; !ok {
			zipOrder = append(zipOrder, lead.Zipcode)
		}
		zipSum[lead.Zipcode] += lead.LeadScore
		zipCount[lead.Zipcode]++
	}

	ins.ConversionPotential = round1(100 * float64(convertible) / float64(len(leads)))
	ins.AvgInquiryLagDays = round1(float64(lagSum) / float64(len(leads)))

	best := zipOrder[0]
	bestMean := float64(zipSum[best]) / float64(zipCount[best])
	for _, zip := range zipOrder[1:] {
		mean := float64(zipSum[zip]) / float64(zipCount[zip])
		if mean > bestMean {
			best = zip
			bestMean = mean
		}
	}
	ins.BestZipByScore = best
	return ins
}

// Suggestion turns the insights into one follow-up recommendation.
func Suggestion(ins Insights) string {
	switch {
	case ins.ConversionPotential > 50:
		return "Strong conversion potential. Focus on " + ins.BestZipByScore + "."
	case ins.AvgInquiryLagDays > 30:
		return "Leads are aging. Follow up sooner."
	default:
		return "Monitor lead patterns weekly for optimization."
	}
}

// mode returns the most frequent value of one field, ties broken by first
// occurrence in the input order.
func mode(leads []ScoredLead, field func(ScoredLead) string) string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, lead := range leads {
		value := field(lead)
		counts[value]++
		if counts[value] > bestCount {
			best = value
			bestCount = counts[value]
		}
	}
	return best
}

func lowerStatus(status string) string {
	return strings.ToLower(status)
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
