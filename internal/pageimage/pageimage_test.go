package pageimage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/easylearning/docforge/internal/logging"
)

// fakeDoc is a rasterizer with scripted per-page failures.
type fakeDoc struct {
	pages    int
	failAt   map[int]bool
	closed   bool
	closeErr error
}

func (f *fakeDoc) NumPages() int { return f.pages }

func (f *fakeDoc) Rasterize(page int, scale float64) (image.Image, error) {
	if f.failAt[page] {
		return nil, errors.New("render failure")
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(page%4, 0, color.Black)
	return img, nil
}

func (f *fakeDoc) Close() error {
	f.closed = true
	return f.closeErr
}

func fakeExtractor(doc *fakeDoc, openErr error) *Extractor {
	return &Extractor{
		log: logging.Nop(),
		open: func([]byte) (rasterizer, error) {
			if openErr != nil {
				return nil, openErr
			}
			return doc, nil
		},
	}
}

func TestExtractPages_AllPages(t *testing.T) {
	t.Parallel()

	doc := &fakeDoc{pages: 3}
	pages, err := fakeExtractor(doc, nil).ExtractPages(context.Background(), []byte("not a real pdf"), 2.0)
	if err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len = %d, want 3", len(pages))
	}
	for i, p := range pages {
		if p.Index != i {
			t.Errorf("pages[%d].Index = %d, want %d", i, p.Index, i)
		}
		if !strings.HasSuffix(p.Name, ".png") {
			t.Errorf("pages[%d].Name = %q, want .png suffix", i, p.Name)
		}
		if _, err := png.Decode(bytes.NewReader(p.PNG)); err != nil {
			t.Errorf("pages[%d].PNG does not decode: %v", i, err)
		}
	}
	if !doc.closed {
		t.Error("document handle not released")
	}
}

func TestExtractPages_SkipsFailedPage(t *testing.T) {
	t.Parallel()

	// 5-page document where page 2 (0-based) fails: 4 entries survive with
	// their original indices intact.
	doc := &fakeDoc{pages: 5, failAt: map[int]bool{2: true}}
	pages, err := fakeExtractor(doc, nil).ExtractPages(context.Background(), []byte("doc"), 1.0)
	if err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}
	if len(pages) != 4 {
		t.Fatalf("len = %d, want 4", len(pages))
	}
	wantIdx := []int{0, 1, 3, 4}
	for i, p := range pages {
		if p.Index != wantIdx[i] {
			t.Errorf("pages[%d].Index = %d, want %d", i, p.Index, wantIdx[i])
		}
	}
}

func TestExtractPages_OpenFailure(t *testing.T) {
	t.Parallel()

	if _, err := fakeExtractor(nil, errors.New("corrupt")).ExtractPages(context.Background(), []byte("x"), 1.0); err == nil {
		t.Fatal("expected error when document cannot be opened")
	}
}

func TestExtractPages_CloseErrorDoesNotMaskResult(t *testing.T) {
	t.Parallel()

	doc := &fakeDoc{pages: 1, closeErr: errors.New("release failed")}
	pages, err := fakeExtractor(doc, nil).ExtractPages(context.Background(), []byte("doc"), 1.0)
	if err != nil {
		t.Fatalf("ExtractPages() error = %v, want nil despite close failure", err)
	}
	if len(pages) != 1 {
		t.Errorf("len = %d, want 1", len(pages))
	}
	if !doc.closed {
		t.Error("close not attempted")
	}
}

func TestExtractPages_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := &fakeDoc{pages: 3}
	if _, err := fakeExtractor(doc, nil).ExtractPages(ctx, []byte("doc"), 1.0); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if !doc.closed {
		t.Error("document handle not released on cancellation")
	}
}

func TestExtractPages_UniqueNames(t *testing.T) {
	t.Parallel()

	doc := &fakeDoc{pages: 4}
	pages, err := fakeExtractor(doc, nil).ExtractPages(context.Background(), []byte("doc"), 1.0)
	if err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}
	seen := map[string]bool{}
	for _, p := range pages {
		if seen[p.Name] {
			t.Errorf("duplicate page name %q", p.Name)
		}
		seen[p.Name] = true
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnail_ScalesDown(t *testing.T) {
	t.Parallel()

	out, err := Thumbnail(encodePNG(t, 400, 200), 100)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Errorf("bounds = %v, want 100x50", img.Bounds())
	}
}

func TestThumbnail_SmallImageUnchanged(t *testing.T) {
	t.Parallel()

	src := encodePNG(t, 40, 20)
	out, err := Thumbnail(src, 100)
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Error("small image was re-encoded")
	}
}

func TestThumbnail_RejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := Thumbnail([]byte("junk"), 100); err == nil {
		t.Error("expected error for undecodable input")
	}
	if _, err := Thumbnail(encodePNG(t, 4, 4), 0); err == nil {
		t.Error("expected error for non-positive edge")
	}
}
