package docforge

import (
	"context"

	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/pageimage"
)

// Extractor rasterizes every page of an uploaded page-description document to
// PNG and tags each surviving page with its positional role.
type Extractor struct {
	extractor *pageimage.Extractor
}

// NewExtractor returns an Extractor logging per-page failures to zl (nil for
// silent operation).
func NewExtractor(zl *zap.Logger) *Extractor {
	return &Extractor{extractor: pageimage.NewExtractor(zl)}
}

// ExtractPages rasterizes every page at the given scale factor. A page that
// fails to rasterize is skipped and extraction continues; the call fails only
// when the input is empty, the scale is not positive, or the document cannot
// be opened at all. Roles are computed from each page's original index, so
// skipped pages never shift the roles of surviving pages.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte, scale float64) ([]FlashcardPage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if scale <= 0 {
		return nil, ErrInvalidScale
	}

	pages, err := e.extractor.ExtractPages(ctx, data, scale)
	if err != nil {
		return nil, err
	}

	out := make([]FlashcardPage, len(pages))
	for i, p := range pages {
		out[i] = FlashcardPage{
			Index: p.Index,
			Name:  p.Name,
			PNG:   p.PNG,
			Text:  p.Text,
			Role:  RoleForIndex(p.Index),
		}
	}
	return out, nil
}

// Thumbnail scales a page image down so its longest edge is at most maxEdge
// pixels, re-encoding to PNG. Images already small enough pass through.
func Thumbnail(pngData []byte, maxEdge int) ([]byte, error) {
	return pageimage.Thumbnail(pngData, maxEdge)
}
