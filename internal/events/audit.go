package events

import (
	"context"

	"lead_dashboard_backend/platform/logger"
)

// AuditLogger is the process-local audit trail. It subscribes to every
// domain event and records it as a structured log line, off the request
// path, so publishers never wait on the sink.
type AuditLogger struct {
	log *logger.Logger
}

func NewAuditLogger(log *logger.Logger) *AuditLogger {
	return &AuditLogger{log: log}
}

// RegisterHandlers subscribes the audit trail to all domain events.
func (a *AuditLogger) RegisterHandlers(bus Bus) {
	bus.Subscribe(LeadCreated{}.EventName(), a)
	bus.Subscribe(HotLeadAlertSent{}.EventName(), a)
	bus.Subscribe(ReportExported{}.EventName(), a)
}

// Handle dispatches on the concrete event type.
func (a *AuditLogger) Handle(ctx context.Context, event Event) error {
	log := a.log.WithContext(ctx)
	switch e := event.(type) {
	case LeadCreated:
		log.Info("audit_event",
			"event", e.EventName(),
			"lead_id", e.LeadID,
			"status", e.Status,
		)
	case HotLeadAlertSent:
		log.Info("audit_event",
			"event", e.EventName(),
			"count", e.Count,
		)
	case ReportExported:
		log.Info("audit_event",
			"event", e.EventName(),
			"format", e.Format,
			"destination", e.Destination,
			"rows", e.Rows,
		)
	default:
		log.Warn("audit_event_unhandled", "event", event.EventName())
	}
	return nil
}

// Compile-time check that AuditLogger implements Handler
var _ Handler = (*AuditLogger)(nil)
