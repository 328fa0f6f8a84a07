// Package leads is the lead management bounded context: intake, filtering,
// scoring and the dashboard view.
package leads

import (
	"lead_dashboard_backend/internal/events"
	apphttp "lead_dashboard_backend/internal/http"
	"lead_dashboard_backend/internal/leads/handler"
	"lead_dashboard_backend/internal/leads/repository"
	"lead_dashboard_backend/internal/leads/service"
	"lead_dashboard_backend/platform/config"
	"lead_dashboard_backend/platform/logger"
	"lead_dashboard_backend/platform/validator"
)

// Module bundles the leads context for route registration.
type Module struct {
	Service *service.Service
	handler *handler.Handler
}

func NewModule(repo repository.LeadsRepository, alerts service.AlertService, cfg config.DatabaseConfig, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, alerts, cfg, bus, log)
	return &Module{
		Service: svc,
		handler: handler.New(svc, val),
	}
}

func (m *Module) Name() string { return "leads" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/dashboard", m.handler.Dashboard)
	ctx.V1.POST("/leads", ctx.WriteRateLimiter.RateLimit(), m.handler.CreateLead)
}
