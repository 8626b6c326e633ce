//go:build fitz

package extractor

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

func init() {
	rasterizers["fitz"] = func(o OCROptions) Rasterizer { return &FitzRasterizer{DPI: o.DPI} }
}

// FitzRasterizer renders pages in-process with MuPDF.
type FitzRasterizer struct {
	DPI int
}

func (f *FitzRasterizer) Rasterize(ctx context.Context, data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF from memory: %w", err)
	}
	defer doc.Close()

	dpi := float64(f.DPI)
	if dpi <= 0 {
		dpi = 300
	}

	images := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
