package docforge

import (
	"strings"

	"github.com/easylearning/docforge/internal/markup"
)

// ParseTagged parses blank-line-delimited tagged markup ([Q]/[O]/[A]/[S]/[M],
// case-insensitive prefixes) into questions. Blocks yielding no question text
// are silently dropped; an input that is empty or produces no questions at
// all is an error.
func ParseTagged(text string) ([]Question, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMarkup
	}
	questions := fromMarkup(markup.ParseTagged(text))
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// ParseHTML heuristically imports questions from rich-text-exported HTML.
// This path is best-effort and lossy for atypical formatting; each returned
// Question keeps its raw source block in Source for manual review.
func ParseHTML(html string) ([]Question, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyMarkup
	}
	questions := fromMarkup(markup.ParseHTML(html))
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// FormatTagged serializes questions back to the tagged markup protocol.
// Parsing the output yields questions equal in text, options, solution, and
// marks.
func FormatTagged(questions []Question) string {
	return markup.FormatTagged(toMarkup(questions))
}

func fromMarkup(in []markup.Question) []Question {
	out := make([]Question, len(in))
	for i, q := range in {
		options := make([]Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = Option{
				ID:      j + 1,
				Text:    NormalizedRecord{Text: opt.Text},
				Correct: opt.Correct,
			}
		}
		images := make([]ImagePayload, len(q.Images))
		for j, img := range q.Images {
			images[j] = ImagePayload{ID: img.ID, Data: img.Data, Ext: img.Ext, Alt: img.Alt}
		}
		out[i] = Question{
			ID:       i + 1,
			Text:     NormalizedRecord{Text: q.Text},
			Solution: NormalizedRecord{Text: q.Solution},
			Type:     q.Type,
			Marks:    q.Marks,
			Options:  options,
			Images:   images,
			Source:   q.Source,
		}
	}
	return out
}

func toMarkup(in []Question) []markup.Question {
	out := make([]markup.Question, len(in))
	for i, q := range in {
		options := make([]markup.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = markup.Option{Text: opt.Text.Text, Correct: opt.Correct}
		}
		out[i] = markup.Question{
			Text:     q.Text.Text,
			Solution: q.Solution.Text,
			Type:     q.Type,
			Marks:    q.Marks,
			Options:  options,
			Source:   q.Source,
		}
	}
	return out
}
