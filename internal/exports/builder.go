// Package exports builds downloadable lead reports and ships them by
// email or to object storage.
package exports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/internal/leads/transport"
)

// Format selects the report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	xlsxSheetName = "Leads"
)

// reportColumns is the fixed column order: the stored fields in table
// order with the derived score appended last.
var reportColumns = []string{
	"id",
	"name",
	"email",
	"zipcode",
	"property_type",
	"status",
	"inquiry_date",
	"lead_score",
}

// ContentType returns the MIME type for a report format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return xlsxContentType
	}
	return csvContentType
}

// Valid reports whether the format is one of the supported values.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

func reportRow(lead dashboard.ScoredLead) []string {
	return []string{
		lead.ID.String(),
		lead.Name,
		lead.Email,
		lead.Zipcode,
		lead.PropertyType,
		lead.Status,
		lead.InquiryDate.Format(transport.DateLayout),
		strconv.Itoa(lead.LeadScore),
	}
}

// BuildCSV renders the lead set as CSV. An empty set still produces the
// header row, so the file is always parseable.
func BuildCSV(leads []dashboard.ScoredLead) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportColumns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, lead := range leads {
		if err := writer.Write(reportRow(lead)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Build renders the lead set in the requested format.
func Build(format Format, leads []dashboard.ScoredLead) ([]byte, error) {
	if format == FormatXLSX {
		return BuildXLSX(leads)
	}
	return BuildCSV(leads)
}
