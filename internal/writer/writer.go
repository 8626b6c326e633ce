// Package writer renders batch parse reports as CSV, XLSX or JSON.
package writer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
)

// Writer renders a batch of statement reports.
type Writer interface {
	Write(out io.Writer, reports []models.StatementReport) error
}

// Columns is the column order of the tabular formats.
var Columns = []string{
	"file",
	"issuer",
	"card_number",
	"due_date",
	"total_due",
	"total_due_amount",
	"statement_period",
	"method",
	"error",
}

// Formats lists the supported output formats.
var Formats = []string{"json", "csv", "xlsx"}

// New returns the writer for format.
func New(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONWriter{Indent: true}, nil
	case "csv":
		return &CSVWriter{}, nil
	case "xlsx":
		return &XLSXWriter{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// WriteToFile writes reports to path using w.
func WriteToFile(w Writer, path string, reports []models.StatementReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// row flattens a report into Columns order. Reports without a result
// leave the field columns empty.
func row(r models.StatementReport) []string {
	out := []string{r.File, "", "", "", "", "", "", string(r.Method), r.Error}
	if r.Result == nil {
		return out
	}
	out[1] = r.Result.Issuer
	out[2] = r.Result.CardNumber
	out[3] = r.Result.DueDate
	out[4] = r.Result.TotalDue
	out[5] = amount(r.Result.TotalDue)
	out[6] = r.Result.StatementPeriod
	return out
}

// amount returns the normalized total due, or "" when it cannot be read.
func amount(s string) string {
	d, err := parser.NormalizeAmount(s)
	if err != nil {
		return ""
	}
	return d.StringFixed(2)
}
