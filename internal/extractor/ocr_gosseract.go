//go:build gosseract

package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

func init() {
	recognizers["gosseract"] = func(o OCROptions) Recognizer {
		return &GosseractRecognizer{Language: o.Language, DPI: o.DPI}
	}
}

// GosseractRecognizer runs Tesseract in-process through libtesseract.
// A fresh client is created per page.
type GosseractRecognizer struct {
	Language string
	DPI      int
}

func (g *GosseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := gosseract.NewClient()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if g.Language != "" {
		if err := c.SetLanguage(g.Language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if g.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(g.DPI)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
