// Package rasterfallback paints certificates directly onto a raster canvas,
// for hosts without a browser engine. Output is plainer than the HTML
// renderer (no gradients or emoji) but needs no external process.
package rasterfallback

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/easylearning/docforge/internal/certificate"
	"github.com/easylearning/docforge/internal/logging"
)

// ErrFontUnavailable indicates the configured font file cannot be loaded.
var ErrFontUnavailable = errors.New("font unavailable")

// Renderer paints certificates at the authored 1600x1131 canvas size.
type Renderer struct {
	log  *logging.Logger
	font *truetype.Font
}

// NewRenderer builds a Renderer. fontPath selects a TTF file; empty uses the
// bundled Go Regular face.
func NewRenderer(fontPath string, zl *zap.Logger) (*Renderer, error) {
	ttf := goregular.TTF
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
		}
		ttf = data
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return &Renderer{log: logging.Wrap(zl), font: f}, nil
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size})
}

// RenderPNG paints the certificate and returns the encoded PNG.
func (r *Renderer) RenderPNG(d certificate.Data) ([]byte, error) {
	w, h := certificate.CanvasWidth, certificate.CanvasHeight
	dc := gg.NewContext(w, h)

	// Canvas and frame.
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.SetHexColor("#f8fbff")
	dc.DrawRoundedRectangle(14, 14, float64(w)-28, float64(h)-28, 22)
	dc.Fill()
	dc.SetHexColor("#0b82b6")
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(32, 32, float64(w)-64, float64(h)-64, 16)
	dc.Stroke()

	cx := float64(w) / 2

	dc.SetHexColor("#1e40af")
	dc.SetFontFace(r.face(31))
	dc.DrawStringAnchored("EasyLearning", cx, 80, 0.5, 0.5)
	dc.SetHexColor("#6b7280")
	dc.SetFontFace(r.face(15))
	dc.DrawStringAnchored("Making Learning Easy", cx, 110, 0.5, 0.5)

	dc.SetHexColor("#1e40af")
	dc.SetFontFace(r.face(67))
	dc.DrawStringAnchored("Certificate of Achievement", cx, 280, 0.5, 0.5)
	dc.SetHexColor("#1d4ed8")
	dc.SetFontFace(r.face(18))
	dc.DrawStringAnchored(strings.ToUpper(d.EventName), cx, 340, 0.5, 0.5)

	dc.SetHexColor("#6b7280")
	dc.SetFontFace(r.face(14))
	dc.DrawStringAnchored("THIS IS PROUDLY AWARDED TO", cx, 420, 0.5, 0.5)
	dc.SetHexColor("#1f2937")
	dc.SetFontFace(r.face(63))
	dc.DrawStringAnchored(d.StudentName, cx, 500, 0.5, 0.5)

	// Medal badge.
	dc.SetHexColor("#fef3c7")
	dc.DrawCircle(cx, 680, 90)
	dc.Fill()
	dc.SetHexColor("#d97706")
	dc.SetLineWidth(4)
	dc.DrawCircle(cx, 680, 90)
	dc.Stroke()
	dc.SetHexColor("#92400e")
	dc.SetFontFace(r.face(20))
	dc.DrawStringAnchored(strings.ToUpper(d.Medal), cx, 660, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("RANK %d", d.Rank), cx, 700, 0.5, 0.5)

	dc.SetHexColor("#374151")
	dc.SetFontFace(r.face(16))
	meta := fmt.Sprintf("Rank %d   •   %d Tests Attempted   •   %s",
		d.Rank, d.TestsAttempted, d.Date.Format("January 02, 2006"))
	dc.DrawStringAnchored(meta, cx, 850, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode certificate: %w", err)
	}
	r.log.Debug("certificate painted", "student", d.StudentName)
	return buf.Bytes(), nil
}
