package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// ErrNoText is returned when neither the text layer nor OCR produced any text.
var ErrNoText = errors.New("no text could be extracted from the PDF")

// Result is the text acquired from a PDF and how it was obtained.
type Result struct {
	Text     string
	Method   models.Method
	Duration time.Duration
}

// TextSource acquires plain text from PDF bytes.
type TextSource interface {
	Extract(ctx context.Context, data []byte) (Result, error)
}

// Extractor reads the PDF text layer and falls back to OCR only when the
// text layer is missing, empty or cannot be decoded.
type Extractor struct {
	// TextLayer defaults to the package-level TextLayer function.
	TextLayer func(ctx context.Context, data []byte) (string, error)
	// OCR may be nil, in which case an empty text layer is a failure.
	OCR    *OCR
	Logger *slog.Logger
}

// New returns an Extractor using the given OCR engine.
func New(ocr *OCR, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		TextLayer: TextLayer,
		OCR:       ocr,
		Logger:    logger,
	}
}

// Extract returns the statement text. The OCR result is used only when the
// text layer yields nothing; the two are never combined.
func (e *Extractor) Extract(ctx context.Context, data []byte) (Result, error) {
	start := time.Now()
	logger := e.logger()

	textLayer := e.TextLayer
	if textLayer == nil {
		textLayer = TextLayer
	}

	text, err := textLayer(ctx, data)
	if err != nil {
		logger.Warn("text layer extraction failed, falling back to OCR", "error", err)
	}
	if err == nil && text != "" {
		return Result{Text: text, Method: models.MethodTextLayer, Duration: time.Since(start)}, nil
	}

	if e.OCR == nil {
		return Result{}, fmt.Errorf("%w: no text layer and OCR is disabled", ErrNoText)
	}

	attrs := []any{}
	if n, err := PageCount(data); err == nil {
		attrs = append(attrs, "pages", n)
	}
	logger.Info("no text layer found, running OCR", attrs...)
	text, err = e.OCR.Extract(ctx, data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: OCR failed: %w", ErrNoText, err)
	}
	if text == "" {
		return Result{}, fmt.Errorf("%w: OCR produced no text", ErrNoText)
	}
	return Result{Text: text, Method: models.MethodOCR, Duration: time.Since(start)}, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}
