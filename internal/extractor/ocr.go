package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Rasterizer renders every page of a PDF to a PNG image.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([][]byte, error)
}

// Recognizer runs optical character recognition on a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// OCROptions configures the OCR engines.
type OCROptions struct {
	Language string // tesseract language code, e.g. "eng"
	DPI      int    // rasterization resolution
}

func (o OCROptions) withDefaults() OCROptions {
	if o.Language == "" {
		o.Language = "eng"
	}
	if o.DPI <= 0 {
		o.DPI = 300
	}
	return o
}

var (
	rasterizers = map[string]func(OCROptions) Rasterizer{
		"pdftoppm": func(o OCROptions) Rasterizer { return &PdftoppmRasterizer{DPI: o.DPI} },
	}
	recognizers = map[string]func(OCROptions) Recognizer{
		"tesseract": func(o OCROptions) Recognizer { return &TesseractCLI{Language: o.Language} },
	}
)

// NewRasterizer returns the rasterizer registered under name.
// "fitz" is only available in builds with the fitz tag.
func NewRasterizer(name string, opts OCROptions) (Rasterizer, error) {
	factory, ok := rasterizers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown rasterizer %q", name)
	}
	return factory(opts.withDefaults()), nil
}

// NewRecognizer returns the OCR engine registered under name.
// "gosseract" is only available in builds with the gosseract tag.
func NewRecognizer(name string, opts OCROptions) (Recognizer, error) {
	factory, ok := recognizers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown OCR engine %q", name)
	}
	return factory(opts.withDefaults()), nil
}

// OCR extracts text from image-based PDFs by rasterizing each page and
// recognizing it. Pages are processed sequentially.
type OCR struct {
	Rasterizer Rasterizer
	Recognizer Recognizer
}

// Extract returns the recognized text of all pages joined with newlines.
// A page that fails recognition fails the whole document.
func (o *OCR) Extract(ctx context.Context, data []byte) (string, error) {
	images, err := o.Rasterizer.Rasterize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("rasterize: %w", err)
	}
	if len(images) == 0 {
		return "", fmt.Errorf("rasterizer produced no page images")
	}

	var b strings.Builder
	for i, img := range images {
		text, err := o.Recognizer.Recognize(ctx, img)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", i+1, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// IsOCRAvailable reports whether the external OCR tools are installed.
// Requires: pdftoppm (poppler-utils) and tesseract (tesseract-ocr).
func IsOCRAvailable() bool {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return false
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return false
	}
	return true
}

// PdftoppmRasterizer renders pages with the pdftoppm command (poppler-utils).
type PdftoppmRasterizer struct {
	DPI int
}

// Rasterize writes the PDF to a temporary directory and converts each page
// to PNG. Images are returned in page order.
func (p *PdftoppmRasterizer) Rasterize(ctx context.Context, data []byte) ([][]byte, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "statement.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp PDF: %w", err)
	}

	dpi := p.DPI
	if dpi <= 0 {
		dpi = 300
	}
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(dpi), "-png", pdfPath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	// pdftoppm zero-pads page numbers, so name order is page order.
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	images := make([][]byte, 0, len(names))
	for _, name := range names {
		img, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read page image: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

// TesseractCLI runs the tesseract command on each page image.
type TesseractCLI struct {
	Language string
	// PageSegMode is passed as --psm when non-zero.
	PageSegMode int
}

// Recognize pipes the image through "tesseract stdin stdout".
func (t *TesseractCLI) Recognize(ctx context.Context, image []byte) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not available (install tesseract-ocr): %w", err)
	}

	args := []string{"stdin", "stdout"}
	if t.Language != "" {
		args = append(args, "-l", t.Language)
	}
	if t.PageSegMode > 0 {
		args = append(args, "--psm", strconv.Itoa(t.PageSegMode))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "tesseract", args...)
	cmd.Stdin = bytes.NewReader(image)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w (output: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
