// Package service orchestrates lead intake and dashboard view building.
package service

import (
	"context"
	"errors"
	"time"

	"lead_dashboard_backend/internal/events"
	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/internal/leads/repository"
	"lead_dashboard_backend/internal/leads/transport"
	"lead_dashboard_backend/platform/apperr"
	"lead_dashboard_backend/platform/config"
	"lead_dashboard_backend/platform/logger"
	"lead_dashboard_backend/platform/metrics"
)

// AlertService is the slice of the notification module this service needs.
type AlertService interface {
	Snapshot(ctx context.Context) (map[string]struct{}, error)
	Alert(ctx context.Context, newHot []dashboard.ScoredLead) string
}

type Service struct {
	repo   repository.LeadsRepository
	alerts AlertService
	cfg    config.DatabaseConfig
	bus    events.Bus
	log    *logger.Logger
	now    func() time.Time
}

func New(repo repository.LeadsRepository, alerts AlertService, cfg config.DatabaseConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		alerts: alerts,
		cfg:    cfg,
		bus:    bus,
		log:    log,
		now:    time.Now,
	}
}

// Create records a new lead. Structural validation has already run in the
// handler; this adds the date sanity check and fires the creation event.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	const op = "leads.Service.Create"

	inquiryDate, err := time.Parse(transport.DateLayout, req.InquiryDate)
	if err != nil {
		return transport.LeadResponse{}, apperr.Validation("inquiryDate must be formatted as YYYY-MM-DD").WithOp(op)
	}
	if inquiryDate.After(s.now()) {
		return transport.LeadResponse{}, apperr.Validation("inquiryDate cannot be in the future").WithOp(op)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.GetStoreTimeout())
	defer cancel()

	lead, err := s.repo.Insert(storeCtx, repository.CreateLeadParams{
		Name:         req.Name,
		Email:        req.Email,
		Zipcode:      req.Zipcode,
		PropertyType: string(req.PropertyType),
		Status:       string(req.Status),
		InquiryDate:  inquiryDate,
	})
	if err != nil {
		return transport.LeadResponse{}, s.storeError(op, "failed to insert lead", err)
	}

	metrics.RecordLeadCreated()
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Email:     lead.Email,
		Status:    lead.Status,
	})

	return transport.ToLeadResponse(dashboard.ScoreAll([]repository.Lead{lead})[0]), nil
}

// Dashboard builds the full view for one filter selection: the filtered and
// sorted lead list, hot leads, histogram, metrics, insights and a follow-up
// suggestion. Viewing the dashboard also triggers the hot-lead alert pass;
// a delivery failure surfaces as AlertNotice, never as an error.
func (s *Service) Dashboard(ctx context.Context, sel dashboard.Selection) (transport.DashboardResponse, error) {
	const op = "leads.Service.Dashboard"

	all, err := s.fetchAll(ctx, op)
	if err != nil {
		return transport.DashboardResponse{}, err
	}

	today := s.now()
	sel = dashboard.Normalize(sel, all, today)
	filtered := dashboard.Filter(all, sel)
	scored := dashboard.Sort(dashboard.ScoreAll(filtered), sel.SortBy)
	hot := dashboard.Hot(scored)

	var alertNotice string
	var newHot []dashboard.ScoredLead
	if notified, snapErr := s.alerts.Snapshot(ctx); snapErr != nil {
		// Dedup state is unavailable; skip the alert pass rather than
		// re-alerting on every known hot lead.
		s.log.Error("notified set unavailable, skipping alert pass", "error", snapErr)
	} else {
		newHot = dashboard.NewHot(hot, notified)
		alertNotice = s.alerts.Alert(ctx, newHot)
	}

	insights := dashboard.ComputeInsights(scored, today)

	return transport.DashboardResponse{
		Leads:           transport.ToLeadResponses(scored),
		HotLeads:        transport.ToLeadResponses(hot),
		NewHotCount:     len(newHot),
		StatusHistogram: toHistogramResponse(dashboard.Histogram(scored)),
		Metrics:         toMetricsResponse(dashboard.ComputeMetrics(scored)),
		Insights:        toInsightsResponse(insights),
		Suggestion:      dashboard.Suggestion(insights),
		Filter: transport.FilterEcho{
			StartDate:     sel.StartDate.Format(transport.DateLayout),
			EndDate:       sel.EndDate.Format(transport.DateLayout),
			Zipcodes:      sel.Zipcodes,
			PropertyTypes: sel.PropertyTypes,
			Search:        sel.Search,
			SortBy:        string(sel.SortBy),
		},
		Options: transport.FilterOptions{
			Zipcodes:      dashboard.ObservedZipcodes(all),
			PropertyTypes: dashboard.ObservedPropertyTypes(all),
		},
		AlertNotice: alertNotice,
	}, nil
}

// FilteredScored returns the filtered, scored and sorted lead set for one
// selection. Exports reuse it so a download matches what the dashboard shows.
func (s *Service) FilteredScored(ctx context.Context, sel dashboard.Selection) ([]dashboard.ScoredLead, error) {
	const op = "leads.Service.FilteredScored"

	all, err := s.fetchAll(ctx, op)
	if err != nil {
		return nil, err
	}
	sel = dashboard.Normalize(sel, all, s.now())
	return dashboard.Sort(dashboard.ScoreAll(dashboard.Filter(all, sel)), sel.SortBy), nil
}

func (s *Service) fetchAll(ctx context.Context, op string) ([]repository.Lead, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.GetStoreTimeout())
	defer cancel()

	all, err := s.repo.FetchAll(storeCtx)
	if err != nil {
		return nil, s.storeError(op, "failed to fetch leads", err)
	}
	return all, nil
}

func (s *Service) storeError(op, message string, err error) error {
	s.log.DatabaseError(op, err)
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindTimeout, message, err).WithOp(op)
	}
	return apperr.Wrap(apperr.KindUnavailable, message, err).WithOp(op)
}

func toHistogramResponse(buckets []dashboard.StatusCount) []transport.StatusCountResponse {
	result := make([]transport.StatusCountResponse, len(buckets))
	for i, b := range buckets {
		result[i] = transport.StatusCountResponse{Status: b.Status, Count: b.Count}
	}
	return result
}

func toMetricsResponse(m dashboard.Metrics) transport.MetricsResponse {
	return transport.MetricsResponse{
		Total:           m.Total,
		HotCount:        m.HotCount,
		AvgLeadScore:    m.AvgLeadScore,
		TopPropertyType: m.TopPropertyType,
		TopZipcode:      m.TopZipcode,
	}
}

func toInsightsResponse(ins dashboard.Insights) transport.InsightsResponse {
	return transport.InsightsResponse{
		ConversionPotential: ins.ConversionPotential,
		AvgInquiryLagDays:   ins.AvgInquiryLagDays,
		BestZipByScore:      ins.BestZipByScore,
	}
}
