// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"lead_dashboard_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event     = events.Event
	Bus       = events.Bus
	Handler   = events.Handler
	BaseEvent = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// LeadCreated is published when a new lead is inserted into the store.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Email  string    `json:"email"`
	Status string    `json:"status"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// HotLeadAlertSent is published after an alert email is confirmed sent.
type HotLeadAlertSent struct {
	BaseEvent
	Count  int      `json:"count"`
	Emails []string `json:"emails"`
}

func (e HotLeadAlertSent) EventName() string { return "notification.hot_lead_alert.sent" }

// ReportExported is published when a report is built for download, email
// or upload.
type ReportExported struct {
	BaseEvent
	Format      string `json:"format"`
	Destination string `json:"destination"`
	Rows        int    `json:"rows"`
}

func (e ReportExported) EventName() string { return "exports.report.exported" }
