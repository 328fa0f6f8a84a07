package exports

import (
	"errors"
	"io"
	"net/http"
	"time"

	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/internal/leads/transport"
	"lead_dashboard_backend/platform/httpkit"
	"lead_dashboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler exposes the report download, email and upload endpoints. Every
// endpoint accepts the same filter query the dashboard uses, so an export
// always matches what the operator is looking at.
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Recipient defaults to the configured alert recipient when omitted.
type EmailReportRequest struct {
	Recipient string `json:"recipient" validate:"omitempty,email"`
	Format    string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

type UploadReportRequest struct {
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

type EmailReportResponse struct {
	Recipient string `json:"recipient"`
	FileName  string `json:"fileName"`
	Rows      int    `json:"rows"`
}

type UploadReportResponse struct {
	ViewURL   string `json:"viewUrl"`
	FileKey   string `json:"fileKey"`
	FileName  string `json:"fileName"`
	Rows      int    `json:"rows"`
	ExpiresAt string `json:"expiresAt"`
}

// DownloadCSV handles GET /api/v1/exports/leads.csv.
func (h *Handler) DownloadCSV(c *gin.Context) {
	h.download(c, FormatCSV)
}

// DownloadXLSX handles GET /api/v1/exports/leads.xlsx.
func (h *Handler) DownloadXLSX(c *gin.Context) {
	h.download(c, FormatXLSX)
}

func (h *Handler) download(c *gin.Context, format Format) {
	sel, ok := h.bindSelection(c)
	if !ok {
		return
	}

	report, err := h.svc.BuildReport(c.Request.Context(), sel, format)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	c.Data(http.StatusOK, report.ContentType, report.Data)
}

// EmailReport handles POST /api/v1/exports/email.
func (h *Handler) EmailReport(c *gin.Context) {
	sel, ok := h.bindSelection(c)
	if !ok {
		return
	}

	var req EmailReportRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	recipient, report, err := h.svc.EmailReport(c.Request.Context(), sel, formatOrDefault(req.Format), req.Recipient)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, EmailReportResponse{
		Recipient: recipient,
		FileName:  report.FileName,
		Rows:      report.Rows,
	})
}

// UploadReport handles POST /api/v1/exports/upload.
func (h *Handler) UploadReport(c *gin.Context) {
	sel, ok := h.bindSelection(c)
	if !ok {
		return
	}

	var req UploadReportRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	viewURL, report, err := h.svc.UploadReport(c.Request.Context(), sel, formatOrDefault(req.Format))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, UploadReportResponse{
		ViewURL:   viewURL.URL,
		FileKey:   viewURL.FileKey,
		FileName:  report.FileName,
		Rows:      report.Rows,
		ExpiresAt: viewURL.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) bindSelection(c *gin.Context) (sel dashboard.Selection, ok bool) {
	var query transport.FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return sel, false
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return sel, false
	}
	return query.ToSelection(), true
}

// bindOptionalJSON decodes the request body into dst. Every field on the
// export request bodies is optional, so a missing or empty body binds to
// the zero value instead of failing.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func formatOrDefault(raw string) Format {
	if raw == "" {
		return FormatXLSX
	}
	return Format(raw)
}
