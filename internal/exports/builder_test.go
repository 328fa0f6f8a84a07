package exports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"lead_dashboard_backend/internal/leads/dashboard"
	"lead_dashboard_backend/internal/leads/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func testLeads(t *testing.T) []dashboard.ScoredLead {
	t.Helper()
	inquiry, err := time.Parse("2006-01-02", "2026-08-20")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return dashboard.ScoreAll([]repository.Lead{
		{ID: uuid.New(), Name: "Jane Doe", Email: "jane@example.com", Zipcode: "90210", PropertyType: "House", Status: "Hot", InquiryDate: inquiry},
		{ID: uuid.New(), Name: "Bob Ray", Email: "bob@example.com", Zipcode: "10001", PropertyType: "Condo", Status: "New", InquiryDate: inquiry},
	})
}

func TestBuildCSV(t *testing.T) {
	leads := testLeads(t)

	data, err := BuildCSV(leads)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header plus 2 leads", len(records))
	}
	if records[0][0] != "id" || records[0][7] != "lead_score" {
		t.Fatalf("header = %v, want id first and lead_score last", records[0])
	}
	if records[1][1] != "Jane Doe" || records[1][7] != "100" {
		t.Fatalf("row 1 = %v, want Jane Doe scored 100", records[1])
	}
	if records[2][6] != "2026-08-20" {
		t.Fatalf("inquiry date = %q, want 2026-08-20", records[2][6])
	}
}

func TestBuildCSV_EmptySetIsHeaderOnly(t *testing.T) {
	data, err := BuildCSV(nil)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 || len(records[0]) != len(reportColumns) {
		t.Fatalf("empty export = %v, want exactly the header row", records)
	}
}

func TestBuildXLSX(t *testing.T) {
	leads := testLeads(t)

	data, err := BuildXLSX(leads)
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(xlsxSheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 leads", len(rows))
	}
	if rows[0][0] != "id" || rows[0][7] != "lead_score" {
		t.Fatalf("header = %v, want id first and lead_score last", rows[0])
	}
	if rows[1][1] != "Jane Doe" || rows[1][7] != "100" {
		t.Fatalf("row 1 = %v, want Jane Doe scored 100", rows[1])
	}
}

func TestBuildXLSX_EmptySetIsHeaderOnly(t *testing.T) {
	data, err := BuildXLSX(nil)
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(xlsxSheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export has %d rows, want only the header", len(rows))
	}
}

func TestFormat(t *testing.T) {
	if !FormatCSV.Valid() || !FormatXLSX.Valid() || Format("pdf").Valid() {
		t.Fatalf("format validity is wrong")
	}
	if FormatCSV.ContentType() != "text/csv" {
		t.Fatalf("csv content type = %q", FormatCSV.ContentType())
	}
	if FormatXLSX.ContentType() != xlsxContentType {
		t.Fatalf("xlsx content type = %q", FormatXLSX.ContentType())
	}
}
