package writer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// JSONWriter writes reports as one JSON array.
type JSONWriter struct {
	Indent bool
}

func (w *JSONWriter) Write(out io.Writer, reports []models.StatementReport) error {
	if reports == nil {
		reports = []models.StatementReport{}
	}
	enc := json.NewEncoder(out)
	if w.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
