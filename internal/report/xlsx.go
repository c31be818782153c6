// Package report renders the HR claim report as a spreadsheet.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"claimflow/internal/model"
)

// SheetName is the worksheet holding the report rows.
const SheetName = "Claims"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers are the report columns in order.
var Headers = []string{"Contractor", "Month", "Hours", "Rate", "Amount", "Status", "Coordinator", "Submitted At"}

// FileName is the download name for a report of monthKey; an empty key means all months.
func FileName(monthKey string) string {
	if monthKey == "" {
		return "claims-report.xlsx"
	}
	return fmt.Sprintf("claims-report-%s.xlsx", monthKey)
}

// WriteXLSX writes rows to w as a single-sheet workbook with a totals row.
// Timestamps are rendered in loc; a nil loc means UTC.
func WriteXLSX(w io.Writer, rows []model.ClaimReportRow, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		c := r.Claim
		submitted := ""
		if c.SubmittedAt != nil {
			submitted = c.SubmittedAt.In(loc).Format("2006-01-02 15:04")
		}
		values := []interface{}{
			r.ContractorName,
			c.MonthKey,
			c.Hours.InexactFloat64(),
			c.Rate.InexactFloat64(),
			c.Amount().InexactFloat64(),
			string(c.Status),
			r.CoordinatorName,
			submitted,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		last := len(rows) + 1
		total := last + 1
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", total), "Total"); err != nil {
			return err
		}
		for _, col := range []string{"C", "E"} {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, last)
			if err := f.SetCellFormula(SheetName, fmt.Sprintf("%s%d", col, total), formula); err != nil {
				return fmt.Errorf("write total: %w", err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "F", "H", 22); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
