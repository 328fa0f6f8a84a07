package exports

import (
	"lead_dashboard_backend/internal/adapters/storage"
	"lead_dashboard_backend/internal/email"
	"lead_dashboard_backend/internal/events"
	apphttp "lead_dashboard_backend/internal/http"
	"lead_dashboard_backend/platform/logger"
	"lead_dashboard_backend/platform/validator"
)

// Module bundles the exports context for route registration.
type Module struct {
	handler *Handler
}

func NewModule(source LeadSource, mailer email.Sender, store storage.StorageService, cfg Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := New(source, mailer, store, cfg, bus, log)
	return &Module{handler: NewHandler(svc, val)}
}

func (m *Module) Name() string { return "exports" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/exports")
	group.GET("/leads.csv", m.handler.DownloadCSV)
	group.GET("/leads.xlsx", m.handler.DownloadXLSX)
	group.POST("/email", ctx.WriteRateLimiter.RateLimit(), m.handler.EmailReport)
	group.POST("/upload", ctx.WriteRateLimiter.RateLimit(), m.handler.UploadReport)
}
