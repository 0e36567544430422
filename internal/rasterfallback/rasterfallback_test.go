package rasterfallback

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/easylearning/docforge/internal/certificate"
)

func TestNewRenderer_MissingFont(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer("/nonexistent/font.ttf", nil)
	if !errors.Is(err, ErrFontUnavailable) {
		t.Errorf("err = %v, want ErrFontUnavailable", err)
	}
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer("", nil)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	data, err := r.RenderPNG(certificate.Data{
		StudentName:    "Asha Rao",
		Rank:           2,
		TestsAttempted: 8,
		Medal:          "silver",
		EventName:      "Spring Quiz",
		Date:           time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not decode as PNG: %v", err)
	}
	if img.Bounds().Dx() != certificate.CanvasWidth || img.Bounds().Dy() != certificate.CanvasHeight {
		t.Errorf("bounds = %v, want %dx%d", img.Bounds(), certificate.CanvasWidth, certificate.CanvasHeight)
	}
}
