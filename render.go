package docforge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/easylearning/docforge/internal/certificate"
)

// htmlRenderer abstracts HTML rasterization to enable testing without a
// browser.
type htmlRenderer interface {
	RenderPNG(ctx context.Context, html string) ([]byte, error)
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ htmlRenderer = (*Renderer)(nil)

// DefaultRenderTimeout bounds a single page load and capture.
const DefaultRenderTimeout = 30 * time.Second

// Certificate canvas in CSS pixels; the viewport is fixed to it so output is
// deterministic, not responsive-reflow-dependent.
const (
	renderViewportWidth  = certificate.CanvasWidth
	renderViewportHeight = certificate.CanvasHeight

	cssPixelsPerInch = 96
)

// Renderer rasterizes HTML documents to PNG or PDF using headless Chrome.
// Rod automatically downloads Chromium on first run if not found; set
// ROD_BROWSER_BIN to use a pre-installed browser.
//
// A Renderer owns one browser process. The process is launched lazily on
// first render and released by Close. Each render uses its own page, closed
// on every exit path.
type Renderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout sets the per-render timeout. Panics if d is not positive.
func WithRenderTimeout(d time.Duration) RendererOption {
	if d <= 0 {
		panic("docforge: render timeout must be positive")
	}
	return func(r *Renderer) {
		r.timeout = d
	}
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{timeout: DefaultRenderTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ensureBrowser lazily launches and connects to the browser.
func (r *Renderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderPNG loads the HTML, waits for the network to go idle (embedded remote
// images resolved), and captures a full-viewport screenshot.
func (r *Renderer) RenderPNG(ctx context.Context, html string) ([]byte, error) {
	var out []byte
	err := r.withPage(ctx, html, func(page *rod.Page) error {
		data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRenderPNG, err)
		}
		out = data
		return nil
	})
	return out, err
}

// RenderPDF loads the HTML like RenderPNG and prints it to a single
// canvas-sized PDF page with no margins.
func (r *Renderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	var out []byte
	err := r.withPage(ctx, html, func(page *rod.Page) error {
		reader, err := page.PDF(&proto.PagePrintToPDF{
			PaperWidth:      floatPtr(float64(renderViewportWidth) / cssPixelsPerInch),
			PaperHeight:     floatPtr(float64(renderViewportHeight) / cssPixelsPerInch),
			MarginTop:       floatPtr(0),
			MarginBottom:    floatPtr(0),
			MarginLeft:      floatPtr(0),
			MarginRight:     floatPtr(0),
			PrintBackground: true,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRenderPDF, err)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("%w: reading PDF stream: %v", ErrRenderPDF, err)
		}
		out = data
		return nil
	})
	return out, err
}

// withPage runs capture with a freshly loaded page at the fixed viewport.
// The page is closed on every exit path.
func (r *Renderer) withPage(ctx context.Context, html string, capture func(*rod.Page) error) error {
	if strings.TrimSpace(html) == "" {
		return ErrEmptyHTML
	}
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.ensureBrowser(); err != nil {
		return err
	}

	tmpPath, cleanup, err := writeTempFile(html, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             renderViewportWidth,
		Height:            renderViewportHeight,
		DeviceScaleFactor: 1,
	}).Call(page); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	// Network idle so remote images are painted before capture.
	if err := page.WaitIdle(timeout); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return err
	}
	return capture(page)
}

// writeTempFile writes content to a temp file and returns its path plus a
// cleanup func.
func writeTempFile(content, ext string) (string, func(), error) {
	f, err := os.CreateTemp("", "docforge-*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
