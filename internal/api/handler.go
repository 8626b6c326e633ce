package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-parser/internal/extractor"
	"github.com/insightdelivered/statement-parser/internal/metrics"
	"github.com/insightdelivered/statement-parser/internal/parser"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Client-facing error messages.
const (
	MsgNoFilePart       = "No file part in the request"
	MsgNoFileSelected   = "No file selected"
	MsgInvalidFileType  = "Invalid file type. Please upload a PDF."
	MsgExtractionFailed = "Could not extract text from the PDF using OCR. File may be corrupted."
	MsgUnsupportedBank  = "Could not determine the credit card issuer. This bank is not supported."
	msgUnexpectedPrefix = "An unexpected error occurred: "
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Extractor extractor.TextSource
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// HandleHealth reports that the service is up.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

// HandleParse accepts a multipart upload in field "file", extracts the
// statement text and returns the issuer's billing fields.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	header, msg := uploadedPDF(c)
	if msg != "" {
		h.Metrics.ObserveRequest(metrics.OutcomeRejected)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
	}

	data, err := readUpload(header)
	if err != nil {
		h.Metrics.ObserveRequest(metrics.OutcomeError)
		return unexpected(c, err)
	}

	logger := h.logger().With("file", header.Filename, "size", len(data))

	res, err := h.Extractor.Extract(c.UserContext(), data)
	if errors.Is(err, extractor.ErrNoText) {
		logger.Warn("text extraction failed", "error", err)
		h.Metrics.ObserveRequest(metrics.OutcomeExtractionFailed)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: MsgExtractionFailed})
	}
	if err != nil {
		h.Metrics.ObserveRequest(metrics.OutcomeError)
		return unexpected(c, err)
	}
	h.Metrics.ObserveExtraction(res.Method, res.Duration)

	result, err := parser.Parse(res.Text)
	if errors.Is(err, parser.ErrUnsupportedIssuer) {
		// Reported with 200: the request itself was processed.
		logger.Info("issuer not recognized", "method", res.Method)
		h.Metrics.ObserveRequest(metrics.OutcomeUnsupported)
		return c.JSON(ErrorResponse{Error: MsgUnsupportedBank})
	}
	if err != nil {
		h.Metrics.ObserveRequest(metrics.OutcomeError)
		return unexpected(c, err)
	}

	logger.Info("statement parsed",
		"issuer", result.Issuer,
		"method", res.Method,
		"missing", len(result.Missing()),
		"duration", res.Duration,
	)
	h.Metrics.ObserveResult(result)
	h.Metrics.ObserveRequest(metrics.OutcomeParsed)
	return c.JSON(result)
}

// uploadedPDF validates the "file" part. It returns a client error message
// when the request must be rejected.
func uploadedPDF(c *fiber.Ctx) (*multipart.FileHeader, string) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, MsgNoFilePart
	}

	files := form.File["file"]
	if len(files) == 0 {
		// A part sent with an empty filename is parsed as a plain value.
		if _, ok := form.Value["file"]; ok {
			return nil, MsgNoFileSelected
		}
		return nil, MsgNoFilePart
	}

	header := files[0]
	if header.Filename == "" {
		return nil, MsgNoFileSelected
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		return nil, MsgInvalidFileType
	}
	return header, ""
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func unexpected(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: msgUnexpectedPrefix + err.Error()})
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}
