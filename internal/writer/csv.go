package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// CSVWriter writes reports in CSV format.
type CSVWriter struct {
	// OmitHeader skips the column header row.
	OmitHeader bool
}

// Write writes one row per report to out.
func (w *CSVWriter) Write(out io.Writer, reports []models.StatementReport) error {
	writer := csv.NewWriter(out)

	if !w.OmitHeader {
		if err := writer.Write(Columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, r := range reports {
		if err := writer.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", r.File, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
