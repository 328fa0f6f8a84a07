package notification

import (
	"context"

	"lead_dashboard_backend/internal/email"
	"lead_dashboard_backend/internal/events"
	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/platform/config"
	"lead_dashboard_backend/platform/logger"
	"lead_dashboard_backend/platform/metrics"
)

// Alerter sends the hot-lead alert email and advances the notified set.
// Emails are marked notified only after a confirmed send, so a failed
// send is retried on the next dashboard view.
type Alerter struct {
	sender email.Sender
	store  NotifiedStore
	cfg    config.SMTPConfig
	bus    events.Bus
	log    *logger.Logger
}

func NewAlerter(sender email.Sender, store NotifiedStore, cfg config.SMTPConfig, bus events.Bus, log *logger.Logger) *Alerter {
	return &Alerter{sender: sender, store: store, cfg: cfg, bus: bus, log: log}
}

// Snapshot exposes the current notified set for dedup during view building.
func (a *Alerter) Snapshot(ctx context.Context) (map[string]struct{}, error) {
	return a.store.Snapshot(ctx)
}

// Alert sends one email covering every newly hot lead and returns a
// human-readable notice when delivery fails. Delivery problems never fail
// the caller.
func (a *Alerter) Alert(ctx context.Context, newHot []dashboard.ScoredLead) string {
	if len(newHot) == 0 || !a.cfg.GetEmailEnabled() {
		return ""
	}

	top := newHot[0]
	for _, lead := range newHot[1:] {
		if lead.LeadScore > top.LeadScore {
			top = lead
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, a.cfg.GetMailTimeout())
	defer cancel()

	recipient := a.cfg.GetAlertRecipient()
	if err := a.sender.SendHotLeadAlert(sendCtx, recipient, len(newHot), top.Name, top.Email); err != nil {
		a.log.MailEvent("hot_lead_alert", recipient, false, err.Error())
		metrics.RecordAlert("failure")
		return "Hot lead alert could not be delivered; it will be retried on the next view."
	}

	emails := make([]string, len(newHot))
	for i, lead := range newHot {
		emails[i] = lead.Email
	}
	if err := a.store.MarkAll(ctx, emails); err != nil {
		// The mail went out; worst case is one duplicate alert later.
		a.log.Error("failed to record notified leads", "error", err)
	}

	a.log.MailEvent("hot_lead_alert", recipient, true, "")
	metrics.RecordAlert("success")
	a.bus.Publish(ctx, events.HotLeadAlertSent{BaseEvent: events.NewBaseEvent(), Count: len(newHot), Emails: emails})
	return ""
}
