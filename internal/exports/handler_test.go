package exports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lead_dashboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, validator.New())
	r := gin.New()
	r.POST("/exports/email", h.EmailReport)
	r.POST("/exports/upload", h.UploadReport)
	return r
}

func TestEmailReportHandler_EmptyBodyUsesDefaults(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, mailer, &fakeStorage{})
	r := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exports/email", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp EmailReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Recipient != "agent@example.com" {
		t.Fatalf("recipient = %q, want configured alert recipient", resp.Recipient)
	}
	if !strings.HasSuffix(resp.FileName, ".xlsx") {
		t.Fatalf("fileName = %q, want xlsx default", resp.FileName)
	}
	if mailer.reports != 1 {
		t.Fatalf("reports sent = %d, want 1", mailer.reports)
	}
}

func TestUploadReportHandler_EmptyBodyUsesDefaults(t *testing.T) {
	store := &fakeStorage{}
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, &fakeMailer{}, store)
	r := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exports/upload", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if store.uploads != 1 {
		t.Fatalf("uploads = %d, want 1", store.uploads)
	}

	var resp UploadReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasSuffix(resp.FileName, ".xlsx") {
		t.Fatalf("fileName = %q, want xlsx default", resp.FileName)
	}
}

func TestEmailReportHandler_MalformedBodyRejected(t *testing.T) {
	svc := newTestExports(&fakeSource{leads: exportLeads(t)}, &fakeMailer{}, &fakeStorage{})
	r := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/exports/email", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
