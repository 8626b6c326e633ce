// Package cli wires configuration, extraction and output into the
// statement-parser commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-parser/internal/api"
	"github.com/insightdelivered/statement-parser/internal/config"
	"github.com/insightdelivered/statement-parser/internal/extractor"
	"github.com/insightdelivered/statement-parser/internal/logging"
)

// NewRootCmd returns the statement-parser command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "statement-parser",
		Short: "Extract billing fields from credit-card statement PDFs",
		Long: `Extracts the card number, payment due date, total amount due and
statement period from credit-card statement PDFs issued by
HDFC Bank, ICICI Bank, SBI Card, Axis Bank and American Express.

Text is read from the PDF text layer, falling back to OCR for scanned
statements. Run "serve" for the HTTP API or "parse" for local files.`,
		Version:       api.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newParseCmd())
	return root
}

// Execute runs the root command and reports errors on stderr.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// buildExtractor assembles the text-layer extractor with the configured OCR
// engines. OCR is left out when disabled.
func buildExtractor(cfg config.OCRConfig, logger *slog.Logger) (*extractor.Extractor, error) {
	if !cfg.Enabled {
		logger.Info("OCR disabled; scanned statements will fail extraction")
		return extractor.New(nil, logger), nil
	}

	opts := extractor.OCROptions{Language: cfg.Language, DPI: cfg.DPI}
	rasterizer, err := extractor.NewRasterizer(cfg.Rasterizer, opts)
	if err != nil {
		return nil, err
	}
	recognizer, err := extractor.NewRecognizer(cfg.Engine, opts)
	if err != nil {
		return nil, err
	}

	if cfg.Rasterizer == "pdftoppm" && cfg.Engine == "tesseract" && !extractor.IsOCRAvailable() {
		logger.Warn("pdftoppm or tesseract not found on PATH; OCR fallback will fail")
	}

	return extractor.New(&extractor.OCR{Rasterizer: rasterizer, Recognizer: recognizer}, logger), nil
}
