package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"lead_dashboard_backend/internal/adapters/storage"
	"lead_dashboard_backend/internal/email"
	"lead_dashboard_backend/internal/events"
	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/platform/apperr"
	"lead_dashboard_backend/platform/logger"
)

type fakeSource struct {
	leads []dashboard.ScoredLead
	err   error
}

func (s *fakeSource) FilteredScored(_ context.Context, _ dashboard.Selection) ([]dashboard.ScoredLead, error) {
	return s.leads, s.err
}

type fakeMailer struct {
	err        error
	reports    int
	attachment email.Attachment
}

func (m *fakeMailer) SendHotLeadAlert(_ context.Context, _ string, _ int, _, _ string) error {
	return m.err
}

func (m *fakeMailer) SendLeadReport(_ context.Context, _ string, attachment email.Attachment) error {
	m.reports++
	m.attachment = attachment
	return m.err
}

type fakeStorage struct {
	err     error
	uploads int
	key     string
}

func (s *fakeStorage) UploadFile(_ context.Context, _, folder, fileName, _ string, _ io.Reader, _ int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads++
	s.key = folder + "/" + fileName
	return s.key, nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, bucket, fileKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{
		URL:       "https://minio.local/" + bucket + "/" + fileKey,
		FileKey:   fileKey,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (s *fakeStorage) EnsureBucketExists(_ context.Context, _ string) error { return nil }
func (s *fakeStorage) ValidateContentType(_ string) error                   { return nil }

type fakeConfig struct{ emailEnabled bool }

func (c fakeConfig) GetEmailEnabled() bool           { return c.emailEnabled }
func (c fakeConfig) GetSMTPHost() string             { return "localhost" }
func (c fakeConfig) GetSMTPPort() int                { return 587 }
func (c fakeConfig) GetSMTPUsername() string         { return "" }
func (c fakeConfig) GetSMTPPassword() string         { return "" }
func (c fakeConfig) GetEmailFromName() string        { return "Lead Dashboard" }
func (c fakeConfig) GetEmailFromAddress() string     { return "noreply@example.com" }
func (c fakeConfig) GetAlertRecipient() string       { return "agent@example.com" }
func (c fakeConfig) GetMailTimeout() time.Duration   { return time.Second }
func (c fakeConfig) GetMinIOEndpoint() string        { return "minio.local" }
func (c fakeConfig) GetMinIOAccessKey() string       { return "key" }
func (c fakeConfig) GetMinIOSecretKey() string       { return "secret" }
func (c fakeConfig) GetMinIOUseSSL() bool            { return false }
func (c fakeConfig) GetMinioBucketReports() string   { return "lead-reports" }
func (c fakeConfig) GetUploadTimeout() time.Duration { return time.Second }
func (c fakeConfig) IsMinIOEnabled() bool            { return true }

func newTestExports(source LeadSource, mailer email.Sender, store storage.StorageService) *Service {
	log := logger.New("development")
	return New(source, mailer, store, fakeConfig{emailEnabled: true}, events.NewInMemoryBus(log), log)
}

func exportLeads(t *testing.T) []dashboard.ScoredLead {
	t.Helper()
	return testLeads(t)
}

func TestBuildReport(t *testing.T) {
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, &fakeMailer{}, &fakeStorage{})

	report, err := svc.BuildReport(context.Background(), dashboard.Selection{}, FormatCSV)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.Rows != 2 || report.ContentType != "text/csv" {
		t.Fatalf("report = %+v, want 2 rows of csv", report)
	}

	records, err := csv.NewReader(bytes.NewReader(report.Data)).ReadAll()
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want 3", len(records))
	}
}

func TestEmailReport_AttachesRenderedFile(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, mailer, &fakeStorage{})

	recipient, report, err := svc.EmailReport(context.Background(), dashboard.Selection{}, FormatXLSX, "")
	if err != nil {
		t.Fatalf("EmailReport: %v", err)
	}
	if recipient != "agent@example.com" {
		t.Fatalf("recipient = %q, want the configured fallback", recipient)
	}
	if mailer.reports != 1 {
		t.Fatalf("sent %d reports, want 1", mailer.reports)
	}
	if mailer.attachment.FileName != report.FileName || mailer.attachment.MIMEType != xlsxContentType {
		t.Fatalf("attachment = %+v, want %q as xlsx", mailer.attachment, report.FileName)
	}
	if len(mailer.attachment.Content) == 0 {
		t.Fatalf("attachment content is empty")
	}
}

func TestEmailReport_SendFailureIsUnavailable(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, mailer, &fakeStorage{})

	_, _, err := svc.EmailReport(context.Background(), dashboard.Selection{}, FormatCSV, "agent@example.com")
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("kind = %v, want unavailable", apperr.GetKind(err))
	}
}

func TestUploadReport_ReturnsViewURL(t *testing.T) {
	store := &fakeStorage{}
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, &fakeMailer{}, store)

	viewURL, report, err := svc.UploadReport(context.Background(), dashboard.Selection{}, FormatCSV)
	if err != nil {
		t.Fatalf("UploadReport: %v", err)
	}
	if store.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", store.uploads)
	}
	if viewURL.URL == "" || viewURL.FileKey != store.key {
		t.Fatalf("viewURL = %+v, want presigned URL for %q", viewURL, store.key)
	}
	if report.Rows != 2 {
		t.Fatalf("rows = %d, want 2", report.Rows)
	}
}

func TestUploadReport_WithoutStorageIsUnavailable(t *testing.T) {
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, &fakeMailer{}, nil)

	_, _, err := svc.UploadReport(context.Background(), dashboard.Selection{}, FormatCSV)
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("kind = %v, want unavailable", apperr.GetKind(err))
	}
}

func TestExport_SourceErrorPassesThrough(t *testing.T) {
	srcErr := apperr.Unavailable("store down")
	svc := newTestExports(&fakeSource{err: srcErr}, &fakeMailer{}, &fakeStorage{})

	if _, err := svc.BuildReport(context.Background(), dashboard.Selection{}, FormatCSV); !errors.Is(err, srcErr) {
		t.Fatalf("err = %v, want the source error", err)
	}
}
