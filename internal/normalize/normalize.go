// Package normalize converts arbitrary rich-text input (HTML exported from
// editors, LaTeX-ish math notation, MathJax/MathML markup) into clean,
// font-renderable plain text plus a side list of extracted image references.
//
// The pipeline never fails: malformed markup degrades to sentinel text, so
// every raw field yields a usable record.
package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Sentinel texts produced when content cannot be recovered.
const (
	MissingContent = "Content not available"
	MathExpression = "Mathematical Expression"
)

// Length ceilings for normalized text. Exceeding fields are truncated with an
// ellipsis marker appended.
const (
	MaxFieldLen    = 1500
	MaxQuestionLen = 5000

	truncationMarker = "..."
)

// Image is an image reference extracted from the raw content.
type Image struct {
	Source string
	Alt    string
}

// Record is the result of normalizing one raw field.
type Record struct {
	Text   string
	Images []Image
}

// Precompiled patterns. Grouped by pipeline stage; order of application is
// significant because later substitutions depend on earlier ones remaining
// unresolved.
var (
	// Stage 1: image extraction (before any tag stripping).
	imgTag  = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	srcAttr = regexp.MustCompile(`(?i)\bsrc\s*=\s*["']([^"']*)["']`)
	altAttr = regexp.MustCompile(`(?i)\balt\s*=\s*["']([^"']*)["']`)

	// Stage 2: code-point-annotated math containers (MathJax CHTML output).
	mjxContainer = regexp.MustCompile(`(?is)<mjx-container\b.*?</mjx-container>`)
	mjxCodePoint = regexp.MustCompile(`(?i)(?:mjx-c|data-c=["'])([0-9A-Fa-f]{2,6})`)

	// Stage 3: presentational math/SVG blocks.
	mathBlock = regexp.MustCompile(`(?is)<math\b.*?</math>|<svg\b.*?</svg>|<annotation\b.*?</annotation>`)

	// Stage 5: remaining markup.
	lineBreakTag = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>|</tr>|</h[1-6]>`)
	anyTag       = regexp.MustCompile(`(?s)</?[a-zA-Z][^>]*>`)

	// Stage 6: whitespace collapse.
	horizontalRuns = regexp.MustCompile(`[ \t\x{00A0}]+`)
	spacesAroundNL = regexp.MustCompile(` ?\n ?`)
	blankLineRuns  = regexp.MustCompile(`\n{3,}`)
)

// Field normalizes raw with the default field ceiling.
func Field(raw string) Record {
	return Normalize(raw, MaxFieldLen)
}

// Normalize converts raw rich content into a Record, enforcing maxLen on the
// resulting text. A nil-equivalent (empty) input returns the MissingContent
// sentinel. The function is pure and never fails on malformed markup.
func Normalize(raw string, maxLen int) Record {
	if strings.TrimSpace(raw) == "" {
		return Record{Text: MissingContent, Images: []Image{}}
	}

	// 1. Extract image references in document order, before tag stripping.
	images := extractImages(raw)
	s := imgTag.ReplaceAllString(raw, " ")

	// 2. Reassemble code-point-annotated math containers.
	s = mjxContainer.ReplaceAllStringFunc(s, MathContent)

	// 3. Remaining presentational math becomes a fixed placeholder.
	s = mathBlock.ReplaceAllString(s, MathExpression)

	// 4. LaTeX fragment substitutions (fixed ordered table).
	s = resolveLaTeX(s)

	// 5. Strip markup, decode entities, drop control code points.
	s = lineBreakTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = stripControl(s)

	// 6. Collapse whitespace.
	s = collapseWhitespace(s)

	// 7. Last resort: re-extract any raw text before giving up.
	if s == "" {
		s = StripMarkup(imgTag.ReplaceAllString(raw, " "))
		if s == "" {
			s = MissingContent
		}
	}

	// 8. Length ceiling.
	if maxLen > 0 && len(s) > maxLen {
		s = truncate(s, maxLen)
	}

	// 9. A bare math placeholder with recovered images gets a count-qualified
	// note so the record is not purely a placeholder.
	if s == MathExpression && len(images) > 0 {
		s = fmt.Sprintf("Mathematical content with %d image(s)", len(images))
	}

	return Record{Text: s, Images: images}
}

// StripMarkup removes tags (converting line-break-equivalent tags to
// newlines), decodes entities, drops control code points, and collapses
// whitespace. It performs no math or LaTeX resolution.
func StripMarkup(s string) string {
	s = lineBreakTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return collapseWhitespace(stripControl(s))
}

// MathContainers matches code-point-annotated math containers; exported for
// the markup importer, which tokenizes them instead of resolving in place.
var MathContainers = mjxContainer

// MathBlocks matches presentational MathML/SVG blocks.
var MathBlocks = mathBlock

// ImageTags matches <img> elements.
var ImageTags = imgTag

// ImageAttrs extracts src and alt from a single <img> tag.
func ImageAttrs(tag string) (src, alt string) {
	if m := srcAttr.FindStringSubmatch(tag); m != nil {
		src = m[1]
	}
	if m := altAttr.FindStringSubmatch(tag); m != nil {
		alt = m[1]
	}
	return src, alt
}

// extractImages returns every <img> reference in document order.
func extractImages(raw string) []Image {
	tags := imgTag.FindAllString(raw, -1)
	images := make([]Image, 0, len(tags))
	for _, tag := range tags {
		img := Image{}
		if m := srcAttr.FindStringSubmatch(tag); m != nil {
			img.Source = m[1]
		}
		if m := altAttr.FindStringSubmatch(tag); m != nil {
			img.Alt = m[1]
		}
		if img.Source == "" && img.Alt == "" {
			continue
		}
		images = append(images, img)
	}
	return images
}

// MathContent rebuilds the text a MathJax container represents by mapping its
// hexadecimal code-point annotations to characters. Falls back to the
// container's stripped text content, then to the math placeholder.
func MathContent(container string) string {
	matches := mjxCodePoint.FindAllStringSubmatch(container, -1)
	var b strings.Builder
	for _, m := range matches {
		cp, err := strconv.ParseInt(m[1], 16, 32)
		if err != nil {
			continue
		}
		r := rune(cp)
		if !utf8Valid(r) {
			continue
		}
		b.WriteRune(r)
	}
	if text := strings.TrimSpace(b.String()); text != "" {
		return text
	}

	// No code points recovered: fall back to whatever text survives tag
	// stripping inside the container.
	stripped := strings.TrimSpace(anyTag.ReplaceAllString(container, ""))
	if stripped != "" {
		return stripped
	}
	return MathExpression
}

// utf8Valid reports whether r is an encodable, assigned-range scalar value.
func utf8Valid(r rune) bool {
	if r < 0x20 || (r >= 0xD800 && r <= 0xDFFF) || r > unicode.MaxRune {
		return false
	}
	return !isNonCharacter(r)
}

// stripControl removes control and non-character code points. Tabs become
// spaces and newlines survive so line structure is preserved.
func stripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r == '\t':
			b.WriteRune(' ')
		case r == '\r':
			// dropped; \r\n pairs leave their \n
		case unicode.IsControl(r), isNonCharacter(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isNonCharacter reports Unicode non-characters (U+FDD0..U+FDEF and the two
// final code points of every plane).
func isNonCharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r&0xFFFE == 0xFFFE
}

// collapseWhitespace reduces horizontal runs to one space, blank-line runs to
// one blank line, and trims both ends.
func collapseWhitespace(s string) string {
	s = horizontalRuns.ReplaceAllString(s, " ")
	s = spacesAroundNL.ReplaceAllString(s, "\n")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// truncate cuts s at a rune boundary at or below maxLen bytes and appends the
// truncation marker.
func truncate(s string, maxLen int) string {
	cut := maxLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationMarker
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
