package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-parser/internal/api"
	"github.com/insightdelivered/statement-parser/internal/extractor"
	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
	"github.com/insightdelivered/statement-parser/internal/writer"
)

type parseOptions struct {
	issuer string
	format string
	output string
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [flags] <statement.pdf> [statement2.pdf ...]",
		Short: "Parse statement PDFs and print a report",
		Long: `Parses one or more statement PDFs and writes one report row per file.

The issuer is detected from the statement text unless --issuer is given.
Supported issuers:
` + issuerList(),
		Example: `  # Auto-detect the issuer and print JSON
  statement-parser parse statement.pdf

  # Force the issuer and write a spreadsheet
  statement-parser parse --issuer hdfc --format xlsx --output report.xlsx jan.pdf feb.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := writer.New(opts.format)
			if err != nil {
				return err
			}
			var profile *parser.IssuerProfile
			if opts.issuer != "" {
				if profile, err = parser.Lookup(opts.issuer); err != nil {
					return err
				}
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			ext, err := buildExtractor(cfg.OCR, logger)
			if err != nil {
				return err
			}

			reports := parseFiles(cmd.Context(), ext, profile, args, logger)

			if opts.output == "" {
				err = w.Write(cmd.OutOrStdout(), reports)
			} else {
				err = writer.WriteToFile(w, opts.output, reports)
			}
			if err != nil {
				return err
			}
			return batchError(reports)
		},
	}

	cmd.Flags().StringVar(&opts.issuer, "issuer", "", "issuer key or name, one of "+strings.Join(parser.Keys(), ", ")+" (auto-detected if omitted)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: "+strings.Join(writer.Formats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (defaults to stdout)")
	return cmd
}

// parseFiles produces one report per path, in order. A nil profile means the
// issuer is detected per file.
func parseFiles(ctx context.Context, src extractor.TextSource, profile *parser.IssuerProfile, paths []string, logger *slog.Logger) []models.StatementReport {
	reports := make([]models.StatementReport, 0, len(paths))
	for _, path := range paths {
		report := parseFile(ctx, src, profile, path)
		if report.Error != "" {
			logger.Warn("file not parsed", "file", path, "error", report.Error)
		} else {
			logger.Info("file parsed", "file", path, "issuer", report.Result.Issuer, "method", report.Method)
		}
		reports = append(reports, report)
	}
	return reports
}

func parseFile(ctx context.Context, src extractor.TextSource, profile *parser.IssuerProfile, path string) models.StatementReport {
	report := models.StatementReport{File: filepath.Base(path)}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		report.Error = api.MsgInvalidFileType
		return report
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}

	res, err := src.Extract(ctx, data)
	if errors.Is(err, extractor.ErrNoText) {
		report.Error = api.MsgExtractionFailed
		return report
	}
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Method = res.Method

	var result models.ExtractionResult
	if profile != nil {
		result = parser.Extract(profile, res.Text)
	} else {
		result, err = parser.Parse(res.Text)
		if errors.Is(err, parser.ErrUnsupportedIssuer) {
			report.Error = api.MsgUnsupportedBank
			return report
		}
		if err != nil {
			report.Error = err.Error()
			return report
		}
	}
	report.Result = &result
	return report
}

func issuerList() string {
	var b strings.Builder
	for _, p := range parser.Profiles() {
		fmt.Fprintf(&b, "  %-6s %s\n", p.Key, p.Name)
	}
	return b.String()
}

// batchError reports how many files failed, or nil when all were parsed.
func batchError(reports []models.StatementReport) error {
	failed := 0
	for _, r := range reports {
		if r.Error != "" {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d file(s) could not be parsed", failed, len(reports))
}
