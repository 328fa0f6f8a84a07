package exports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"lead_dashboard_backend/internal/adapters/storage"
	"lead_dashboard_backend/internal/email"
	"lead_dashboard_backend/internal/events"
	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/platform/apperr"
	"lead_dashboard_backend/platform/config"
	"lead_dashboard_backend/platform/logger"
	"lead_dashboard_backend/platform/metrics"
)

// reportFolder is the object-storage prefix for uploaded reports.
const reportFolder = "reports"

// LeadSource supplies the filtered, scored lead set a report covers.
type LeadSource interface {
	FilteredScored(ctx context.Context, sel dashboard.Selection) ([]dashboard.ScoredLead, error)
}

// Report is a fully rendered export file.
type Report struct {
	FileName    string
	ContentType string
	Data        []byte
	Rows        int
}

// Config combines the settings the export service needs.
type Config interface {
	config.SMTPConfig
	config.MinIOConfig
}

type Service struct {
	source  LeadSource
	mailer  email.Sender
	storage storage.StorageService
	cfg     Config
	bus     events.Bus
	log     *logger.Logger
	now     func() time.Time
}

// New creates the export service. storage may be nil when MinIO is not
// configured; upload requests then fail with an unavailable error.
func New(source LeadSource, mailer email.Sender, store storage.StorageService, cfg Config, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		source:  source,
		mailer:  mailer,
		storage: store,
		cfg:     cfg,
		bus:     bus,
		log:     log,
		now:     time.Now,
	}
}

// BuildReport renders the current filtered lead set into a downloadable file.
func (s *Service) BuildReport(ctx context.Context, sel dashboard.Selection, format Format) (Report, error) {
	const op = "exports.Service.BuildReport"

	leads, err := s.source.FilteredScored(ctx, sel)
	if err != nil {
		return Report{}, err
	}

	data, err := Build(format, leads)
	if err != nil {
		return Report{}, apperr.Wrap(apperr.KindInternal, "failed to render report", err).WithOp(op)
	}

	report := Report{
		FileName:    fmt.Sprintf("filtered_leads_%s.%s", s.now().Format("20060102"), format),
		ContentType: format.ContentType(),
		Data:        data,
		Rows:        len(leads),
	}
	s.log.ExportEvent(string(format), report.Rows, "download")
	metrics.RecordExport(string(format), "download")
	s.publishExported(ctx, format, "download", report.Rows)
	return report, nil
}

// EmailReport renders the report and sends it as an attachment. An empty
// recipient falls back to the configured alert recipient.
func (s *Service) EmailReport(ctx context.Context, sel dashboard.Selection, format Format, recipient string) (string, Report, error) {
	const op = "exports.Service.EmailReport"

	if !s.cfg.GetEmailEnabled() {
		return "", Report{}, apperr.Unavailable("email delivery is not configured").WithOp(op)
	}
	if recipient == "" {
		recipient = s.cfg.GetAlertRecipient()
	}

	leads, err := s.source.FilteredScored(ctx, sel)
	if err != nil {
		return "", Report{}, err
	}
	data, err := Build(format, leads)
	if err != nil {
		return "", Report{}, apperr.Wrap(apperr.KindInternal, "failed to render report", err).WithOp(op)
	}

	report := Report{
		FileName:    fmt.Sprintf("filtered_leads_%s.%s", s.now().Format("20060102"), format),
		ContentType: format.ContentType(),
		Data:        data,
		Rows:        len(leads),
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.GetMailTimeout())
	defer cancel()

	attachment := email.Attachment{
		Content:  report.Data,
		FileName: report.FileName,
		MIMEType: report.ContentType,
	}
	if err := s.mailer.SendLeadReport(sendCtx, recipient, attachment); err != nil {
		s.log.MailEvent("lead_report", recipient, false, err.Error())
		if ctx.Err() == nil && sendCtx.Err() == context.DeadlineExceeded {
			return "", Report{}, apperr.Wrap(apperr.KindTimeout, "report email timed out", err).WithOp(op)
		}
		return "", Report{}, apperr.Wrap(apperr.KindUnavailable, "failed to send report email", err).WithOp(op)
	}

	s.log.MailEvent("lead_report", recipient, true, "")
	s.log.ExportEvent(string(format), report.Rows, "email")
	metrics.RecordExport(string(format), "email")
	s.publishExported(ctx, format, "email", report.Rows)
	return recipient, report, nil
}

// UploadReport renders the report, stores it in the reports bucket and
// returns a presigned view URL.
func (s *Service) UploadReport(ctx context.Context, sel dashboard.Selection, format Format) (*storage.PresignedURL, Report, error) {
	const op = "exports.Service.UploadReport"

	if s.storage == nil {
		return nil, Report{}, apperr.Unavailable("object storage is not configured").WithOp(op)
	}

	leads, err := s.source.FilteredScored(ctx, sel)
	if err != nil {
		return nil, Report{}, err
	}
	data, err := Build(format, leads)
	if err != nil {
		return nil, Report{}, apperr.Wrap(apperr.KindInternal, "failed to render report", err).WithOp(op)
	}

	report := Report{
		FileName:    fmt.Sprintf("filtered_leads_%s.%s", s.now().Format("20060102"), format),
		ContentType: format.ContentType(),
		Data:        data,
		Rows:        len(leads),
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.GetUploadTimeout())
	defer cancel()

	bucket := s.cfg.GetMinioBucketReports()
	fileKey, err := s.storage.UploadFile(uploadCtx, bucket, reportFolder, report.FileName, report.ContentType, bytes.NewReader(report.Data), int64(len(report.Data)))
	if err != nil {
		if ctx.Err() == nil && uploadCtx.Err() == context.DeadlineExceeded {
			return nil, Report{}, apperr.Wrap(apperr.KindTimeout, "report upload timed out", err).WithOp(op)
		}
		return nil, Report{}, apperr.Wrap(apperr.KindUnavailable, "failed to upload report", err).WithOp(op)
	}

	viewURL, err := s.storage.GenerateDownloadURL(uploadCtx, bucket, fileKey)
	if err != nil {
		return nil, Report{}, apperr.Wrap(apperr.KindUnavailable, "failed to presign report URL", err).WithOp(op)
	}

	s.log.ExportEvent(string(format), report.Rows, "upload")
	metrics.RecordExport(string(format), "upload")
	s.publishExported(ctx, format, "upload", report.Rows)
	return viewURL, report, nil
}

func (s *Service) publishExported(ctx context.Context, format Format, destination string, rows int) {
	s.bus.Publish(ctx, events.ReportExported{
		BaseEvent:   events.NewBaseEvent(),
		Format:      string(format),
		Destination: destination,
		Rows:        rows,
	})
}
