// Package pageimage rasterizes every page of an uploaded page-description
// document to PNG. A page that fails to rasterize is skipped and extraction
// continues; only a document that cannot be opened at all fails the batch.
package pageimage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
	ltpdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/logging"
)

// Page is one successfully extracted page. Index is the original 0-based page
// index; gaps in the sequence mark skipped pages.
type Page struct {
	Index int
	Name  string
	PNG   []byte
	Text  string
}

// rasterizer abstracts the native document backend so extraction logic can be
// tested without a real document.
type rasterizer interface {
	NumPages() int
	Rasterize(page int, scale float64) (image.Image, error)
	Close() error
}

// fitzDocument adapts a MuPDF document handle.
type fitzDocument struct {
	doc *fitz.Document
}

var _ rasterizer = (*fitzDocument)(nil)

func (f *fitzDocument) NumPages() int { return f.doc.NumPage() }

func (f *fitzDocument) Rasterize(page int, scale float64) (image.Image, error) {
	// The backend takes DPI; scale 1.0 is the document's native 72dpi.
	return f.doc.ImageDPI(page, 72*scale)
}

func (f *fitzDocument) Close() error { return f.doc.Close() }

func openFitz(data []byte) (rasterizer, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &fitzDocument{doc: doc}, nil
}

// Extractor turns document bytes into page images.
type Extractor struct {
	log *logging.Logger

	// open is the document backend; replaced in tests.
	open func(data []byte) (rasterizer, error)
}

// NewExtractor returns an Extractor backed by the native rasterizer, logging
// per-page failures to zl (nil for silent operation).
func NewExtractor(zl *zap.Logger) *Extractor {
	return &Extractor{log: logging.Wrap(zl), open: openFitz}
}

// ExtractPages rasterizes every page at the given scale factor and re-encodes
// each to PNG. The returned error is non-nil only when the document itself
// cannot be opened or the context ends; individual page failures are logged
// and skipped. The native handle is released on every path, with a release
// failure logged but never escalated over the extraction outcome.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte, scale float64) ([]Page, error) {
	doc, err := e.open(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			e.log.Warn("document handle release failed", "error", cerr)
		}
	}()

	texts := e.pageTexts(data)

	total := doc.NumPages()
	pages := make([]Page, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.Rasterize(i, scale)
		if err != nil {
			e.log.Warn("page rasterization failed, skipping", "page", i, "error", err)
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			e.log.Warn("page encode failed, skipping", "page", i, "error", err)
			continue
		}
		page := Page{
			Index: i,
			Name:  uuid.NewString() + ".png",
			PNG:   buf.Bytes(),
		}
		if i < len(texts) {
			page.Text = texts[i]
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// pageTexts extracts plain text per page, best effort: any failure yields an
// empty slice or empty entries, never an error.
func (e *Extractor) pageTexts(data []byte) []string {
	defer func() {
		if r := recover(); r != nil {
			e.log.Debug("page text extraction panicked", "cause", r)
		}
	}()

	r, err := ltpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.log.Debug("page text extraction unavailable", "error", err)
		return nil
	}
	texts := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		texts = append(texts, text)
	}
	return texts
}
