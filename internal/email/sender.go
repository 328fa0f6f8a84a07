// Package email provides outbound email delivery for hot-lead alerts and
// report mailings.
package email

import (
	"context"

	"lead_dashboard_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte
	FileName string // e.g. "filtered_leads.xlsx"
	MIMEType string
}

// Sender delivers the two email kinds the dashboard produces.
type Sender interface {
	// SendHotLeadAlert notifies the configured recipient about newly
	// detected hot leads. topName/topEmail identify the highest-ranked one.
	SendHotLeadAlert(ctx context.Context, toEmail string, count int, topName, topEmail string) error

	// SendLeadReport mails the filtered-leads report as an attachment.
	SendLeadReport(ctx context.Context, toEmail string, attachment Attachment) error
}

// NoopSender is used when email is disabled. Sends succeed without effect.
type NoopSender struct{}

func (NoopSender) SendHotLeadAlert(ctx context.Context, toEmail string, count int, topName, topEmail string) error {
	return nil
}

func (NoopSender) SendLeadReport(ctx context.Context, toEmail string, attachment Attachment) error {
	return nil
}

// NewSender returns the SMTP sender when email is configured, otherwise a noop.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}
