package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayer decodes the embedded text of a PDF page by page and joins the
// pages with newlines. Pages without a text layer contribute nothing.
// An empty string with a nil error means the document has no text layer.
func TextLayer(ctx context.Context, data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText := pageText(r, i)
		if pageText == "" {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// PageCount returns the number of pages in the document.
func PageCount(data []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open PDF: %w", err)
	}
	return r.NumPage(), nil
}

// pageText extracts the plain text of page i using the page's own font map.
// Decoding errors are treated as an empty page.
func pageText(r *pdf.Reader, i int) string {
	page := r.Page(i)
	if page.V.IsNull() {
		return ""
	}

	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}

	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
