package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrPreviewConversion indicates the preview HTML conversion failed.
var ErrPreviewConversion = errors.New("preview conversion failed")

// previewTemplate wraps the rendered cards in a standalone HTML5 document
// styled to resemble the deck.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Calibri, sans-serif; background: #F8F9FA; color: #2D3748; margin: 0; padding: 24px; }
h1 { text-align: center; }
.card { background: #FFFFFF; border-radius: 8px; padding: 16px; margin: 16px auto; max-width: 480px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.card .front { font-size: 1.2em; font-weight: bold; margin-bottom: 8px; }
.card .back { color: #4A5568; }
code { font-family: "Courier New", monospace; color: #1A202C; }
blockquote { color: #4A5568; font-style: italic; border-left: 3px solid #4A90E2; margin-left: 0; padding-left: 12px; }
</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>`

// previewMarkdown renders card backs with GFM and syntax highlighting so the
// in-browser preview matches what the deck will show.
var previewMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithXHTML(),
	),
)

// PreviewHTML converts a flashcard set into a standalone HTML document for
// browser preview or raster rendering. Goldmark does not take a context, so
// cancellation uses the goroutine + select pattern.
func PreviewHTML(ctx context.Context, cards []Card, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var body strings.Builder
		for _, card := range cards {
			var back bytes.Buffer
			if err := previewMarkdown.Convert([]byte(card.Back), &back); err != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrPreviewConversion, err)}
				return
			}
			body.WriteString(`<div class="card"><div class="front">`)
			body.WriteString(escapeHTML(card.Front))
			body.WriteString(`</div><div class="back">`)
			body.WriteString(back.String())
			body.WriteString(`</div></div>` + "\n")
		}
		safeTitle := escapeHTML(title)
		done <- result{html: fmt.Sprintf(previewTemplate, safeTitle, safeTitle, body.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
