package exports

import (
	"fmt"

	"lead_dashboard_backend/internal/leads/dashboard"

	"github.com/xuri/excelize/v2"
)

// BuildXLSX renders the lead set as an Excel workbook with one sheet.
// Like the CSV builder, an empty set yields a header-only sheet.
func BuildXLSX(leads []dashboard.ScoredLead) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := make([]interface{}, len(reportColumns))
	for i, column := range reportColumns {
		header[i] = column
	}
	if err := file.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, lead := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		fields := reportRow(lead)
		row := make([]interface{}, len(fields))
		for j, field := range fields {
			row[j] = field
		}
		if err := file.SetSheetRow(xlsxSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
