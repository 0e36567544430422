package docforge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/certificate"
	"github.com/easylearning/docforge/internal/rasterfallback"
)

// CertificateHTML renders the certificate document for the given data, sized
// to the fixed 1600x1131 canvas the Renderer captures. The student's medal is
// derived from the rank when unset.
func CertificateHTML(data CertificateData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	return certificate.HTML(toCertificate(data.withDerivedMedal()))
}

// CertificateFilename derives the suggested download name (without
// extension) from the student's name.
func CertificateFilename(data CertificateData) string {
	name := strings.ToLower(strings.TrimSpace(data.Student.Name))
	name = strings.Join(strings.Fields(name), "-")
	return SafeFilename("certificate-" + name)
}

// ParseBatch parses a certificate roster, one "rank, name, tests" row per
// non-blank line.
func ParseBatch(text string) ([]BatchEntry, error) {
	entries, err := certificate.ParseBatch(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatchRow, err)
	}
	out := make([]BatchEntry, len(entries))
	for i, e := range entries {
		out[i] = BatchEntry{
			Rank:           e.Rank,
			StudentName:    e.StudentName,
			TestsAttempted: e.TestsAttempted,
		}
	}
	return out, nil
}

// FallbackRenderer paints certificates without a browser engine. Output is
// plainer than the HTML renderer but depends only on a font face.
type FallbackRenderer struct {
	renderer *rasterfallback.Renderer
}

// NewFallbackRenderer builds a FallbackRenderer. fontPath selects a TTF
// file; empty uses the bundled face. Returns ErrFontUnavailable when the
// font cannot be loaded.
func NewFallbackRenderer(fontPath string, zl *zap.Logger) (*FallbackRenderer, error) {
	r, err := rasterfallback.NewRenderer(fontPath, zl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}
	return &FallbackRenderer{renderer: r}, nil
}

// RenderPNG paints the certificate and returns the encoded PNG.
func (f *FallbackRenderer) RenderPNG(data CertificateData) ([]byte, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return f.renderer.RenderPNG(toCertificate(data.withDerivedMedal()))
}

func toCertificate(data CertificateData) certificate.Data {
	return certificate.Data{
		StudentName:    data.Student.Name,
		Rank:           data.Student.Rank,
		TestsAttempted: data.Student.TestsAttempted,
		Medal:          string(data.Student.Medal),
		EventName:      data.Event.Name,
		Date:           data.Event.Date,
	}
}
