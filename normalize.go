package docforge

import "github.com/easylearning/docforge/internal/normalize"

// Normalization sentinels and ceilings, re-exported for callers that need to
// recognize them.
const (
	MissingContent = normalize.MissingContent
	MathExpression = normalize.MathExpression

	MaxFieldLen    = normalize.MaxFieldLen
	MaxQuestionLen = normalize.MaxQuestionLen
)

// Normalize converts raw rich content (HTML, MathJax/MathML markup, LaTeX
// fragments) into font-safe plain text plus extracted image references,
// enforcing maxLen on the text. It never fails on malformed markup; the
// result degrades to sentinel text instead.
func Normalize(raw string, maxLen int) NormalizedRecord {
	return toRecord(normalize.Normalize(raw, maxLen))
}

// NormalizeField normalizes raw with the default field-length ceiling.
func NormalizeField(raw string) NormalizedRecord {
	return toRecord(normalize.Field(raw))
}

func toRecord(r normalize.Record) NormalizedRecord {
	images := make([]ImageRef, len(r.Images))
	for i, img := range r.Images {
		images[i] = ImageRef{Source: img.Source, Alt: img.Alt}
	}
	return NormalizedRecord{Text: r.Text, Images: images}
}
