package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"lead_dashboard_backend/platform/logger"

	"github.com/google/uuid"
)

func newCaptureLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(buf, nil))}
}

func TestAuditLogger_ReceivesPublishedEvents(t *testing.T) {
	var buf bytes.Buffer
	log := newCaptureLogger(&buf)
	bus := NewInMemoryBus(log)
	NewAuditLogger(log).RegisterHandlers(bus)

	ctx := context.Background()
	leadID := uuid.New()
	if err := bus.PublishSync(ctx, LeadCreated{BaseEvent: NewBaseEvent(), LeadID: leadID, Email: "jane@example.com", Status: "hot"}); err != nil {
		t.Fatalf("publish LeadCreated: %v", err)
	}
	if err := bus.PublishSync(ctx, HotLeadAlertSent{BaseEvent: NewBaseEvent(), Count: 2, Emails: []string{"jane@example.com"}}); err != nil {
		t.Fatalf("publish HotLeadAlertSent: %v", err)
	}
	if err := bus.PublishSync(ctx, ReportExported{BaseEvent: NewBaseEvent(), Format: "xlsx", Destination: "upload", Rows: 5}); err != nil {
		t.Fatalf("publish ReportExported: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"leads.lead.created",
		leadID.String(),
		"notification.hot_lead_alert.sent",
		"exports.report.exported",
		"destination=upload",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("audit log missing %q:\n%s", want, out)
		}
	}
}

type unregisteredEvent struct{ BaseEvent }

func (unregisteredEvent) EventName() string { return "test.unregistered" }

func TestAuditLogger_IgnoresUnregisteredEvents(t *testing.T) {
	var buf bytes.Buffer
	log := newCaptureLogger(&buf)
	bus := NewInMemoryBus(log)
	NewAuditLogger(log).RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), unregisteredEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no audit output, got:\n%s", buf.String())
	}
}
