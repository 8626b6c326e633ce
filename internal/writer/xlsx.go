package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
)

// SheetName is the worksheet holding the report.
const SheetName = "Statements"

// amountCol is the 1-based column of total_due_amount.
const amountCol = 6

// XLSXWriter writes reports as a single-sheet Excel workbook.
type XLSXWriter struct{}

// Write writes the workbook to out. Normalized amounts are stored as numbers.
func (w *XLSXWriter) Write(out io.Writer, reports []models.StatementReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range reports {
		cells := row(r)
		values := make([]interface{}, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		if r.Result != nil {
			if d, err := parser.NormalizeAmount(r.Result.TotalDue); err == nil {
				values[amountCol-1] = d.InexactFloat64()
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", r.File, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "I", 18); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
