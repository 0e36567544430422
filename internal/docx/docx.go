// Package docx assembles a word-processor package (OOXML ZIP container) from
// normalized question records. The part naming inside the archive is the
// interoperability contract: [Content_Types].xml, _rels/.rels,
// word/document.xml, word/styles.xml, word/_rels/document.xml.rels, and
// word/media/* must appear under exactly those names or standard office
// software refuses the file.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/easylearning/docforge/internal/logging"
)

// Option is one answer choice with its correctness status.
type Option struct {
	Text    string
	Correct bool
}

// Image is an embeddable payload referenced by an [Image: id] token in a
// field's text. Data must decode as PNG, JPEG, or GIF to embed.
type Image struct {
	ID   string
	Data []byte
	Ext  string
	Alt  string
}

// Question is one record rendered as a table in the document.
type Question struct {
	Text     string
	Type     string
	Solution string
	Marks    int
	Options  []Option
	Images   []Image
}

// Builder assembles question documents. Safe for reuse; each Build call is
// independent.
type Builder struct {
	log *logging.Logger
}

// NewBuilder returns a Builder logging per-image failures to zl (nil for
// silent operation).
func NewBuilder(zl *zap.Logger) *Builder {
	return &Builder{log: logging.Wrap(zl)}
}

// Build produces the complete package bytes for the given questions.
func (b *Builder) Build(questions []Question) ([]byte, error) {
	st := newBuildState(b.log)
	document := b.documentXML(questions, st)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML(st.media))},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/document.xml", []byte(document)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML(st.media))},
	}
	for _, m := range st.media {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + m.filename, m.data})
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, fmt.Errorf("write part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// documentXML builds the main content part: one bordered three-column table
// per question with a spacer paragraph after each.
func (b *Builder) documentXML(questions []Question, st *buildState) string {
	var body strings.Builder
	for _, q := range questions {
		images := imageIndex(q.Images)

		body.WriteString(`<w:tbl>` + tablePropsXML + tableGridXML)

		body.WriteString(row(
			labelCell("Question"),
			valueCell(q.Text, 2, images, st),
		))
		body.WriteString(row(
			labelCell("Type"),
			valueCell(q.Type, 2, images, st),
		))
		for i, opt := range q.Options {
			status := "incorrect"
			if opt.Correct {
				status = "correct"
			}
			body.WriteString(row(
				labelCell(fmt.Sprintf("Option %d", i+1)),
				valueCell(opt.Text, 1, images, st),
				valueCell(status, 1, nil, st),
			))
		}
		body.WriteString(row(
			labelCell("Solution"),
			valueCell(q.Solution, 2, images, st),
		))
		body.WriteString(row(
			labelCell("Marks"),
			valueCell(fmt.Sprintf("%d", q.Marks), 2, nil, st),
		))

		body.WriteString(`</w:tbl>`)
		body.WriteString(`<w:p><w:pPr><w:spacing w:after="240"/></w:pPr></w:p>`)
	}

	return xmlHeader + documentOpenXML + body.String() + documentCloseXML
}

func row(cells ...string) string {
	return "<w:tr>" + strings.Join(cells, "") + "</w:tr>"
}

// labelCell renders the bold label column.
func labelCell(text string) string {
	return cell(text, 1, true, nil)
}

// valueCell renders a content cell: the field text with image tokens removed,
// followed by one drawing element per embeddable referenced image.
func valueCell(text string, span int, images map[string]Image, st *buildState) string {
	refs := imageTokens.FindAllStringSubmatch(text, -1)
	visible := strings.TrimSpace(imageTokens.ReplaceAllString(text, ""))

	var drawings []string
	for _, ref := range refs {
		img, ok := images[ref[1]]
		if !ok {
			continue
		}
		if xml, ok := st.embed(img); ok {
			drawings = append(drawings, xml)
		}
	}
	return cell(visible, span, false, drawings)
}

// cell assembles one table cell. Drawings follow the text run inside the same
// paragraph so they stay anchored to their field.
func cell(text string, span int, bold bool, drawings []string) string {
	var b strings.Builder
	b.WriteString("<w:tc><w:tcPr>")
	if span > 1 {
		fmt.Fprintf(&b, `<w:gridSpan w:val="%d"/>`, span)
	}
	b.WriteString(cellBordersXML + cellMarginsXML)
	b.WriteString("</w:tcPr><w:p><w:r>")
	if bold {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">` + escapeXML(text) + `</w:t></w:r>`)
	for _, d := range drawings {
		b.WriteString("<w:r>" + d + "</w:r>")
	}
	b.WriteString("</w:p></w:tc>")
	return b.String()
}

func imageIndex(images []Image) map[string]Image {
	if len(images) == 0 {
		return nil
	}
	m := make(map[string]Image, len(images))
	for _, img := range images {
		m[img.ID] = img
	}
	return m
}

// escapeXML escapes the five XML special characters. Every piece of free text
// written into a content part must pass through here.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)
