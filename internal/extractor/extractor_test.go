package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/insightdelivered/statement-parser/internal/models"
)

func textLayerStub(text string, err error, calls *int) func(context.Context, []byte) (string, error) {
	return func(context.Context, []byte) (string, error) {
		*calls++
		return text, err
	}
}

func TestExtract_TextLayerSkipsOCR(t *testing.T) {
	var layerCalls int
	raster := &stubRasterizer{images: [][]byte{[]byte("p1")}}
	recog := &stubRecognizer{pages: map[string]string{"p1": "from OCR"}}
	e := &Extractor{
		TextLayer: textLayerStub("HDFC Bank statement", nil, &layerCalls),
		OCR:       &OCR{Rasterizer: raster, Recognizer: recog},
	}

	res, err := e.Extract(context.Background(), []byte("%PDF"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "HDFC Bank statement" {
		t.Errorf("text: got %q, want %q", res.Text, "HDFC Bank statement")
	}
	if res.Method != models.MethodTextLayer {
		t.Errorf("method: got %q, want %q", res.Method, models.MethodTextLayer)
	}
	if raster.calls != 0 || recog.calls != 0 {
		t.Errorf("OCR should not run: rasterizer=%d recognizer=%d", raster.calls, recog.calls)
	}
	if layerCalls != 1 {
		t.Errorf("text layer calls: got %d, want 1", layerCalls)
	}
}

func TestExtract_FallsBackToOCR(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		layerErr error
	}{
		{name: "empty text layer", text: ""},
		{name: "text layer decode error", layerErr: errors.New("malformed xref")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var layerCalls int
			raster := &stubRasterizer{images: [][]byte{[]byte("p1")}}
			recog := &stubRecognizer{pages: map[string]string{"p1": "SBI Card"}}
			e := &Extractor{
				TextLayer: textLayerStub(tt.text, tt.layerErr, &layerCalls),
				OCR:       &OCR{Rasterizer: raster, Recognizer: recog},
			}

			res, err := e.Extract(context.Background(), []byte("%PDF"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Text != "SBI Card" {
				t.Errorf("text: got %q, want %q", res.Text, "SBI Card")
			}
			if res.Method != models.MethodOCR {
				t.Errorf("method: got %q, want %q", res.Method, models.MethodOCR)
			}
			if raster.calls != 1 {
				t.Errorf("rasterizer calls: got %d, want 1", raster.calls)
			}
		})
	}
}

func TestExtract_BothPathsFail(t *testing.T) {
	tests := []struct {
		name string
		ocr  *OCR
	}{
		{
			name: "OCR error",
			ocr: &OCR{
				Rasterizer: &stubRasterizer{err: errors.New("pdftoppm failed")},
				Recognizer: &stubRecognizer{},
			},
		},
		{
			name: "OCR empty output",
			ocr: &OCR{
				Rasterizer: &stubRasterizer{images: [][]byte{[]byte("blank")}},
				Recognizer: &stubRecognizer{pages: map[string]string{"blank": "   "}},
			},
		},
		{
			name: "OCR disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var layerCalls int
			e := &Extractor{
				TextLayer: textLayerStub("", nil, &layerCalls),
				OCR:       tt.ocr,
			}
			_, err := e.Extract(context.Background(), []byte("%PDF"))
			if !errors.Is(err, ErrNoText) {
				t.Errorf("expected ErrNoText, got %v", err)
			}
		})
	}
}

func TestExtract_OCRErrorKeepsCause(t *testing.T) {
	cause := errors.New("tesseract crashed")
	var layerCalls int
	e := &Extractor{
		TextLayer: textLayerStub("", nil, &layerCalls),
		OCR: &OCR{
			Rasterizer: &stubRasterizer{images: [][]byte{[]byte("p1")}},
			Recognizer: &stubRecognizer{err: cause},
		},
	}
	_, err := e.Extract(context.Background(), nil)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
